package recommend

import (
	"hash/fnv"
	"math"
)

// TempBucket groups temperatures into 5-degree bands so two readings a
// degree apart compare as identical. Uses floor, so -1° and -4° share a
// bucket while -1° and 1° do not.
func TempBucket(tempC float64) int {
	return int(math.Floor(tempC / 5))
}

// precipEdges are the lower bounds of the precipitation bands:
// [0,20) [20,50) [50,80) [80,100].
var precipEdges = []float64{20, 50, 80}

// PrecipBucket maps a probability in [0,100] to a band index 0..3.
// Out-of-range input is clamped.
func PrecipBucket(prob float64) int {
	for i, edge := range precipEdges {
		if prob < edge {
			return i
		}
	}
	return len(precipEdges)
}

// Jaccard is the intersection-over-union of two string sets. Two empty
// sets are a perfect match; one empty set against a non-empty one is a
// total miss. Duplicates in the input count once.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}
	inter := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}

// stableHash is a deterministic per-item jitter source. FNV-1a keeps the
// value stable across processes and restarts, unlike Go's map iteration
// or hash/maphash seeds.
func stableHash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
