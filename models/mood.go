package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

// Mood doubles as the onboarding style vocabulary.
type Mood string

const (
	MoodMinimal Mood = "minimal"
	MoodCasual  Mood = "casual"
	MoodFormal  Mood = "formal"
	MoodStreet  Mood = "street"
	MoodLovely  Mood = "lovely"
	MoodSporty  Mood = "sporty"
	MoodClassic Mood = "classic"
)

func (m *Mood) Scan(value interface{}) error {
	*m = Mood(value.(string))
	return nil
}

func (m Mood) Value() (string, error) {
	return string(m), nil
}

var moodPattern = regexp.MustCompile("^(minimal|casual|formal|street|lovely|sporty|classic)$")

func ValidateMood(fl validator.FieldLevel) bool {
	return moodPattern.MatchString(fl.Field().String())
}

func ValidateMoodRaw(value string) bool {
	return moodPattern.MatchString(value)
}
