package recommend

import "math"

// Similarity dimension weights. The full five-dimension set sums to 1.0;
// dimensions missing from either context drop out of both numerator and
// denominator.
const (
	weightTemp      = 0.28
	weightPrecip    = 0.18
	weightOccasion  = 0.26
	weightMood      = 0.18
	weightFormality = 0.10
)

// ContextSimilarity scores how alike two request contexts are, in [0,1].
// A context compared to itself scores 1 as long as any dimension is
// comparable; two contexts with nothing in common score 0.
func ContextSimilarity(a, b Context) float64 {
	sum := 0.0
	weight := 0.0

	if a.TempC != nil && b.TempC != nil {
		ba, bb := TempBucket(*a.TempC), TempBucket(*b.TempC)
		v := 0.0
		switch {
		case ba == bb:
			v = 1.0
		case abs(ba-bb) == 1:
			v = 0.3
		}
		sum += weightTemp * v
		weight += weightTemp
	}

	if a.PrecipProb != nil && b.PrecipProb != nil {
		ba, bb := PrecipBucket(*a.PrecipProb), PrecipBucket(*b.PrecipProb)
		v := 0.0
		switch {
		case ba == bb:
			v = 1.0
		case abs(ba-bb) == 1:
			v = 0.4
		}
		sum += weightPrecip * v
		weight += weightPrecip
	}

	if a.Occasion != "" && b.Occasion != "" {
		if a.Occasion == b.Occasion {
			sum += weightOccasion
		}
		weight += weightOccasion
	}

	// Mood and formality always have a defined value, so they are always
	// comparable: two empty mood sets are a perfect match, a zero formality
	// preference is still a preference.
	sum += weightMood * Jaccard(a.Moods, b.Moods)
	weight += weightMood

	sum += weightFormality * (1 - math.Min(1, math.Abs(a.FormalityNeed-b.FormalityNeed)))
	weight += weightFormality

	if weight == 0 {
		return 0
	}
	return clamp01(sum / weight)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
