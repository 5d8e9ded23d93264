package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"ootdapi/models"
	"ootdapi/recommend"
	"ootdapi/services"
)

type FeedController struct {
}

type PublishPostIn struct {
	Title         string   `json:"title" validate:"required,max=120"`
	Caption       string   `json:"caption" validate:"max=2000"`
	OutfitText    string   `json:"outfit_text" validate:"required,max=4000"`
	TempC         *float64 `json:"temp_c"`
	PrecipProb    *float64 `json:"precip_prob" validate:"omitempty,min=0,max=100"`
	Occasion      string   `json:"occasion" validate:"required,occasion"`
	Moods         []string `json:"moods" validate:"max=7,dive,mood"`
	FormalityNeed float64  `json:"formality_need" validate:"min=0,max=1"`
	City          string   `json:"city" validate:"max=120"`
}

type PostOut struct {
	PublicID   string                 `json:"public_id"`
	Title      string                 `json:"title"`
	Caption    string                 `json:"caption"`
	OutfitText string                 `json:"outfit_text"`
	Context    models.ContextSnapshot `json:"context"`
	Likes      int                    `json:"likes"`
	CreatedAt  string                 `json:"created_at"`
}

func postOut(p models.Post, likes int) PostOut {
	return PostOut{
		PublicID:   p.PublicID,
		Title:      p.Title,
		Caption:    p.Caption,
		OutfitText: p.OutfitText,
		Context:    p.ContextSnapshot,
		Likes:      likes,
		CreatedAt:  p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (controller *FeedController) FeedRoutes(g *echo.Group) {
	g.POST("", controller.Publish)
	g.GET("", controller.List)
	g.POST("/:publicId/like", controller.Like)
	g.POST("/references", controller.References)
}

// Publish shares a generated outfit to the feed with the context it was
// produced under, so later requests can rank it by similarity.
func (controller *FeedController) Publish(c echo.Context) error {
	var req PublishPostIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	ctx := recommend.NewContext(req.TempC, req.PrecipProb, models.Occasion(req.Occasion), services.NormalizeTags(req.Moods), req.FormalityNeed)
	ctx.City = req.City

	post := models.Post{
		PublicID:        uuid.NewString(),
		OwnerID:         user.ID,
		Title:           req.Title,
		Caption:         req.Caption,
		OutfitText:      req.OutfitText,
		ContextSnapshot: ctx.Snapshot(),
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		return tx.Create(&models.PostLike{PostID: post.ID, Count: 0}).Error
	})
	if err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusCreated, postOut(post, 0))
}

func loadLikeCounts(db *gorm.DB, posts []models.Post) (map[uint]int, error) {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	var likeRows []models.PostLike
	if err := db.Where("post_id in ?", ids).Find(&likeRows).Error; err != nil {
		return nil, err
	}
	counts := map[uint]int{}
	for _, row := range likeRows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

// List returns the feed sorted by recency, or by the trending score when
// sort=trending.
func (controller *FeedController) List(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)

	var posts []models.Post
	if err := db.Order("created_at desc").Limit(100).Find(&posts).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch feed"})
	}
	likeCounts, err := loadLikeCounts(db, posts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch likes"})
	}

	out := make([]PostOut, 0, len(posts))
	for _, p := range posts {
		out = append(out, postOut(p, likeCounts[p.ID]))
	}

	if c.QueryParam("sort") == "trending" {
		now := time.Now()
		trend := map[string]float64{}
		for _, p := range posts {
			trend[p.PublicID] = recommend.TrendingScore(p.CreatedAt, likeCounts[p.ID], now)
		}
		sort.SliceStable(out, func(i, j int) bool {
			return trend[out[i].PublicID] > trend[out[j].PublicID]
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": out})
}

// Like increments the external like counter of a post. Serialized through
// a single UPDATE so concurrent likes don't lose counts.
func (controller *FeedController) Like(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)

	var post models.Post
	r := db.Where("public_id = ?", c.Param("publicId")).Limit(1).Find(&post)
	if r.Error != nil {
		return echo.ErrInternalServerError
	}
	if r.RowsAffected == 0 {
		return echo.ErrNotFound
	}

	result := db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).UpdateColumn("count", gorm.Expr("count + 1"))
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return echo.ErrInternalServerError
	}
	if result.RowsAffected == 0 {
		if err := db.Create(&models.PostLike{PostID: post.ID, Count: 1}).Error; err != nil {
			sentry.CaptureException(err)
			return echo.ErrInternalServerError
		}
	}

	var likeRow models.PostLike
	db.Where("post_id = ?", post.ID).Limit(1).Find(&likeRow)
	return c.JSON(http.StatusOK, echo.Map{
		"public_id": post.PublicID,
		"likes":     likeRow.Count,
	})
}

// References ranks the feed against a request context and returns the top
// few posts worth looking at for these conditions.
func (controller *FeedController) References(c echo.Context) error {
	var req RecommendIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	db := c.Get("__db").(*gorm.DB)
	ctx := recommend.NewContext(req.TempC, req.PrecipProb, models.Occasion(req.Occasion), services.NormalizeTags(req.Moods), req.FormalityNeed)

	topK := recommend.DefaultTopReferences
	if k := c.QueryParam("top"); k != "" {
		if parsed, err := strconv.Atoi(k); err == nil && parsed > 0 && parsed <= 20 {
			topK = parsed
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"references": loadReferencesTopK(db, ctx, topK),
	})
}

func loadReferencesTopK(db *gorm.DB, ctx recommend.Context, topK int) []recommend.Reference {
	var posts []models.Post
	if err := db.Where("created_at > ?", time.Now().Add(-30*24*time.Hour)).Find(&posts).Error; err != nil {
		fmt.Println("Failed to fetch feed posts for references:", err)
		return nil
	}
	if len(posts) == 0 {
		return nil
	}
	likesByRowID, err := loadLikeCounts(db, posts)
	if err != nil {
		fmt.Println("Failed to fetch like counts:", err)
		return nil
	}
	likeCounts := map[string]int{}
	for _, p := range posts {
		likeCounts[p.PublicID] = likesByRowID[p.ID]
	}
	return recommend.RankReferences(posts, likeCounts, ctx, topK, time.Now())
}
