// Package recommend is the rule engine behind the daily outfit pick and the
// similar-reference feed. Everything in here is a pure function over
// read-only snapshots of the wardrobe/post collections: no storage, no
// clock reads (callers pass `now` where age matters), no mutation.
package recommend

import (
	"github.com/lib/pq"

	"ootdapi/models"
)

// Context is one recommendation request's conditions. Built fresh per
// request from user input (optionally merged with a weather reading) and
// immutable afterwards. Missing optional fields contribute nothing to
// scoring instead of failing.
type Context struct {
	TempC         *float64
	PrecipProb    *float64
	Occasion      models.Occasion
	Moods         []string
	FormalityNeed float64

	// Display-only, never consulted by the numeric scoring.
	BodyShape      string
	BodyNote       string
	City           string
	WeatherSummary string

	Season Season
}

// NewContext derives the season from the temperature so scoring and
// theming always agree on it.
func NewContext(tempC, precipProb *float64, occasion models.Occasion, moods []string, formalityNeed float64) Context {
	return Context{
		TempC:         tempC,
		PrecipProb:    precipProb,
		Occasion:      occasion,
		Moods:         moods,
		FormalityNeed: formalityNeed,
		Season:        SeasonFromTemp(tempC),
	}
}

// FromSnapshot rebuilds a Context out of a persisted snapshot, e.g. when
// ranking old feed posts against today's conditions.
func FromSnapshot(s models.ContextSnapshot) Context {
	ctx := NewContext(s.TempC, s.PrecipProb, s.Occasion, []string(s.Moods), s.FormalityNeed)
	ctx.BodyShape = s.BodyShape
	ctx.BodyNote = s.BodyNote
	ctx.City = s.City
	if s.WeatherSummary != nil {
		ctx.WeatherSummary = *s.WeatherSummary
	}
	return ctx
}

// Snapshot is the inverse of FromSnapshot, used when persisting the
// context alongside an outfit or post.
func (c Context) Snapshot() models.ContextSnapshot {
	var summary *string
	if c.WeatherSummary != "" {
		summary = &c.WeatherSummary
	}
	return models.ContextSnapshot{
		TempC:          c.TempC,
		PrecipProb:     c.PrecipProb,
		Occasion:       c.Occasion,
		Moods:          pq.StringArray(c.Moods),
		FormalityNeed:  c.FormalityNeed,
		BodyShape:      c.BodyShape,
		BodyNote:       c.BodyNote,
		City:           c.City,
		WeatherSummary: summary,
	}
}
