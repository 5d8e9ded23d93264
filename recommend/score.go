package recommend

import (
	"math"

	"ootdapi/models"
)

// formalOccasions demand dressed-up pieces; casualOccasions get a flat
// small boost so scored items still separate from zero.
var formalOccasions = map[models.Occasion]bool{
	models.OccasionWork:      true,
	models.OccasionInterview: true,
	models.OccasionWedding:   true,
}

var casualOccasions = map[models.Occasion]bool{
	models.OccasionTravel: true,
	models.OccasionDate:   true,
	models.OccasionSchool: true,
	models.OccasionOuting: true,
}

var dressedUpCategories = map[models.Category]bool{
	models.CategoryTop:    true,
	models.CategoryBottom: true,
	models.CategoryOuter:  true,
	models.CategoryShoes:  true,
	models.CategoryDress:  true,
}

func hasTag(tags []string, wanted ...string) bool {
	for _, t := range tags {
		for _, w := range wanted {
			if t == w {
				return true
			}
		}
	}
	return false
}

// ScoreItem rates one wardrobe item against one request context. The value
// has no fixed range and only orders items within a category. Deterministic:
// the only non-input term is a stable hash of the item's public id.
func ScoreItem(item models.WardrobeItem, ctx Context) float64 {
	score := 0.0
	tags := []string(item.Tags)

	switch {
	case formalOccasions[ctx.Occasion]:
		if dressedUpCategories[item.Category] {
			score += 0.6
		}
		if hasTag(tags, "casual") {
			score -= 0.2
		}
		if hasTag(tags, "formal", "office") {
			score += 0.2
		}
	case ctx.Occasion == models.OccasionExercise:
		if hasTag(tags, "exercise") ||
			item.Category == models.CategoryShoes ||
			item.Category == models.CategoryTop ||
			item.Category == models.CategoryBottom {
			score += 0.6
		}
		if hasTag(tags, "formal") {
			score -= 0.2
		}
	case casualOccasions[ctx.Occasion]:
		score += 0.2
	}

	switch ctx.Season {
	case SeasonWinter:
		score += 0.8 * (item.Warmth - 0.3)
	case SeasonSummer:
		score += 0.8 * (0.7 - item.Warmth)
	case SeasonSpringFall, SeasonMild:
		score += 0.3 * (0.6 - math.Abs(item.Warmth-0.6))
	}

	if ctx.PrecipProb != nil && *ctx.PrecipProb >= 50 {
		if hasTag(tags, "waterproof", "rain") {
			score += 0.4
		}
		for _, c := range models.DarkRainColors {
			if item.Color == c {
				score += 0.1
				break
			}
		}
	}

	score += 0.8 * (1 - math.Abs(item.Formality-ctx.FormalityNeed))

	// Stable per-item jitter in [0, 0.08] keeps equal-scoring items in a
	// reproducible order.
	score += float64(stableHash(item.PublicID)%17) / 200.0

	return score
}
