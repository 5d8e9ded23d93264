package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

// Occasion is the TPO (time/place/occasion) of a recommendation request.
type Occasion string

const (
	OccasionSchool    Occasion = "school"
	OccasionWork      Occasion = "work"
	OccasionWedding   Occasion = "wedding"
	OccasionExercise  Occasion = "exercise"
	OccasionTravel    Occasion = "travel"
	OccasionDate      Occasion = "date"
	OccasionInterview Occasion = "interview"
	OccasionOuting    Occasion = "outing"
	OccasionOther     Occasion = "other"
)

func (o *Occasion) Scan(value interface{}) error {
	*o = Occasion(value.(string))
	return nil
}

func (o Occasion) Value() (string, error) {
	return string(o), nil
}

var occasionPattern = regexp.MustCompile("^(school|work|wedding|exercise|travel|date|interview|outing|other)$")

func ValidateOccasion(fl validator.FieldLevel) bool {
	return occasionPattern.MatchString(fl.Field().String())
}

func ValidateOccasionRaw(value string) bool {
	return occasionPattern.MatchString(value)
}
