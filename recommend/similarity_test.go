package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ootdapi/models"
)

func TestTempBucket(t *testing.T) {
	assert.Equal(t, TempBucket(17), TempBucket(19))
	assert.Equal(t, 3, TempBucket(17))
	assert.Equal(t, 4, TempBucket(24))
	assert.Equal(t, -1, TempBucket(-2))
	assert.Equal(t, 0, TempBucket(0))
}

func TestPrecipBucket(t *testing.T) {
	assert.Equal(t, 0, PrecipBucket(0))
	assert.Equal(t, 0, PrecipBucket(19.9))
	assert.Equal(t, 1, PrecipBucket(20))
	assert.Equal(t, 1, PrecipBucket(49))
	assert.Equal(t, 2, PrecipBucket(50))
	assert.Equal(t, 3, PrecipBucket(80))
	assert.Equal(t, 3, PrecipBucket(100))
}

func TestJaccard(t *testing.T) {
	assert.Equal(t, 1.0, Jaccard(nil, nil))
	assert.Equal(t, 0.0, Jaccard([]string{"x"}, nil))
	assert.Equal(t, 0.0, Jaccard(nil, []string{"x"}))
	assert.InDelta(t, 1.0/3, Jaccard([]string{"a", "b"}, []string{"b", "c"}), 1e-9)
	assert.Equal(t, 1.0, Jaccard([]string{"a", "a", "b"}, []string{"b", "a"}))
}

func TestSimilaritySelfIsOne(t *testing.T) {
	ctx := NewContext(fp(18), fp(30), models.OccasionWork, []string{"minimal", "classic"}, 0.7)
	assert.InDelta(t, 1.0, ContextSimilarity(ctx, ctx), 1e-9)
}

func TestSimilarityBounds(t *testing.T) {
	contexts := []Context{
		NewContext(fp(-10), fp(90), models.OccasionWedding, []string{"formal"}, 1),
		NewContext(fp(35), fp(0), models.OccasionExercise, []string{"sporty"}, 0),
		NewContext(nil, nil, models.OccasionOther, nil, 0.5),
		NewContext(fp(18), nil, "", []string{"casual", "street"}, 0.4),
	}
	for _, a := range contexts {
		for _, b := range contexts {
			sim := ContextSimilarity(a, b)
			assert.GreaterOrEqual(t, sim, 0.0)
			assert.LessOrEqual(t, sim, 1.0)
		}
	}
}

func TestSimilarityTemperatureBuckets(t *testing.T) {
	base := NewContext(fp(17), nil, models.OccasionWork, []string{"minimal"}, 0.6)
	sameBucket := NewContext(fp(19), nil, models.OccasionWork, []string{"minimal"}, 0.6)
	adjacent := NewContext(fp(24), nil, models.OccasionWork, []string{"minimal"}, 0.6)
	farOff := NewContext(fp(35), nil, models.OccasionWork, []string{"minimal"}, 0.6)

	assert.InDelta(t, 1.0, ContextSimilarity(base, sameBucket), 1e-9)

	// Adjacent bucket scores 0.3 on the temperature dimension, everything
	// else matches: (0.28*0.3 + 0.26 + 0.18 + 0.10) / 0.82.
	assert.InDelta(t, 0.624/0.82, ContextSimilarity(base, adjacent), 1e-9)

	// Two buckets away scores 0 on temperature.
	assert.InDelta(t, 0.54/0.82, ContextSimilarity(base, farOff), 1e-9)
}

func TestSimilarityPrecipAdjacent(t *testing.T) {
	a := NewContext(nil, fp(10), models.OccasionWork, nil, 0.5)
	b := NewContext(nil, fp(30), models.OccasionWork, nil, 0.5)

	// precip adjacent 0.4, occasion match, moods both empty, formality
	// equal: (0.18*0.4 + 0.26 + 0.18 + 0.10) / 0.72.
	assert.InDelta(t, 0.612/0.72, ContextSimilarity(a, b), 1e-9)
}

func TestSimilarityOccasionMismatch(t *testing.T) {
	a := NewContext(nil, nil, models.OccasionWork, nil, 0.5)
	b := NewContext(nil, nil, models.OccasionDate, nil, 0.5)

	// moods and formality still match: (0.18 + 0.10) / 0.54.
	assert.InDelta(t, 0.28/0.54, ContextSimilarity(a, b), 1e-9)
}

func TestSimilarityMoodOverlap(t *testing.T) {
	a := NewContext(nil, nil, "", []string{"minimal", "classic"}, 0.5)
	b := NewContext(nil, nil, "", []string{"classic", "street"}, 0.5)
	oneEmpty := NewContext(nil, nil, "", nil, 0.5)

	// Jaccard 1/3 on moods, formality 1: (0.18/3 + 0.10) / 0.28.
	assert.InDelta(t, 0.16/0.28, ContextSimilarity(a, b), 1e-9)
	// One empty mood set scores 0: 0.10 / 0.28.
	assert.InDelta(t, 0.10/0.28, ContextSimilarity(a, oneEmpty), 1e-9)
}

func TestSimilarityRenormalizes(t *testing.T) {
	// Only the always-present dimensions are comparable; a perfect match on
	// them must still reach 1 after renormalization.
	a := NewContext(nil, nil, "", []string{"casual"}, 0.3)
	b := NewContext(fp(20), fp(40), "", []string{"casual"}, 0.3)

	assert.InDelta(t, 1.0, ContextSimilarity(a, b), 1e-9)
}
