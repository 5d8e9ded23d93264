package recommend

import (
	"math"
	"sort"
	"time"

	"ootdapi/models"
)

// Reference is one ranked feed post annotated with the numbers that placed
// it, for display next to the recommendation.
type Reference struct {
	Post       models.Post `json:"post"`
	Likes      int         `json:"likes"`
	Similarity float64     `json:"similarity"`
	Score      float64     `json:"score"`
}

// DefaultTopReferences is how many reference posts a recommendation shows.
const DefaultTopReferences = 3

// TrendingScore is likes decayed by the square root of the post's age in
// hours. Age is floored at one hour so brand-new posts don't blow up the
// ratio.
func TrendingScore(createdAt time.Time, likes int, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	return float64(likes) / math.Sqrt(math.Max(1, ageHours))
}

// RankReferences orders posts by a blend of context similarity and capped
// trending score, most relevant first, and returns at most topK of them.
// Ties on the blended score break by similarity descending, then keep the
// input order. Callers pass `now` so ranking stays reproducible.
func RankReferences(posts []models.Post, likeCounts map[string]int, ctx Context, topK int, now time.Time) []Reference {
	if topK <= 0 {
		topK = DefaultTopReferences
	}
	refs := make([]Reference, 0, len(posts))
	for _, p := range posts {
		likes := likeCounts[p.PublicID]
		sim := ContextSimilarity(ctx, FromSnapshot(p.ContextSnapshot))
		trend := TrendingScore(p.CreatedAt, likes, now)
		refs = append(refs, Reference{
			Post:       p,
			Likes:      likes,
			Similarity: sim,
			Score:      0.75*sim + 0.25*math.Min(1, trend/5),
		})
	}
	sort.SliceStable(refs, func(i, j int) bool {
		if refs[i].Score != refs[j].Score {
			return refs[i].Score > refs[j].Score
		}
		return refs[i].Similarity > refs[j].Similarity
	})
	if len(refs) > topK {
		refs = refs[:topK]
	}
	return refs
}
