package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"ootdapi/models"
	"ootdapi/recommend"
	"ootdapi/services"
	"ootdapi/tasks"
)

type RecommendController struct {
	Weather services.WeatherProvider
}

type RecommendIn struct {
	TempC         *float64 `json:"temp_c"`
	PrecipProb    *float64 `json:"precip_prob" validate:"omitempty,min=0,max=100"`
	Occasion      string   `json:"occasion" validate:"required,occasion"`
	Moods         []string `json:"moods" validate:"max=7,dive,mood"`
	FormalityNeed float64  `json:"formality_need" validate:"min=0,max=1"`
	BodyShape     string   `json:"body_shape" validate:"max=60"`
	BodyNote      string   `json:"body_note" validate:"max=300"`
	City          string   `json:"city" validate:"max=120"`
	AutoWeather   bool     `json:"auto_weather"`
}

type SaveOutfitIn struct {
	RecommendIn
	OutfitText    string `json:"outfit_text" validate:"required,max=4000"`
	ReasonWeather string `json:"reason_weather" validate:"max=1000"`
	ReasonTPO     string `json:"reason_tpo" validate:"max=1000"`
	ReasonBody    string `json:"reason_body" validate:"max=1000"`
	Source        string `json:"source" validate:"omitempty,oneof=rules stylist"`
}

type StylistIn struct {
	RecommendIn
}

func (controller *RecommendController) RecommendRoutes(g *echo.Group) {
	g.POST("", controller.Recommend)
	g.POST("/outfits", controller.SaveOutfit)
	g.GET("/outfits", controller.ListOutfits)
	g.POST("/stylist", controller.RequestStylist)
	g.GET("/stylist/:publicId", controller.StylistStatus)
}

// buildContext merges user-entered conditions with an optional forecast.
// The forecast only fills the gaps, typed-in values always win.
func (controller *RecommendController) buildContext(c echo.Context, req RecommendIn) recommend.Context {
	tempC := req.TempC
	precipProb := req.PrecipProb
	summary := ""
	if req.AutoWeather && req.City != "" && controller.Weather != nil {
		reading, err := controller.Weather.CurrentWeather(c.Request().Context(), req.City)
		if err != nil {
			fmt.Println("Weather lookup failed, falling back to manual input:", err)
		} else {
			if tempC == nil {
				tempC = reading.TempC
			}
			if precipProb == nil {
				precipProb = reading.PrecipProb
			}
			summary = reading.Summary
		}
	}

	ctx := recommend.NewContext(tempC, precipProb, models.Occasion(req.Occasion), services.NormalizeTags(req.Moods), req.FormalityNeed)
	ctx.BodyShape = req.BodyShape
	ctx.BodyNote = req.BodyNote
	ctx.City = req.City
	ctx.WeatherSummary = summary
	return ctx
}

func reasonCards(ctx recommend.Context) (weather, tpo, body string) {
	switch {
	case ctx.TempC == nil:
		weather = "No weather data, picked an all-season combination."
	default:
		weather = fmt.Sprintf("Around %.0f°C", *ctx.TempC)
		if ctx.WeatherSummary != "" {
			weather += ", " + ctx.WeatherSummary
		}
		if ctx.PrecipProb != nil && *ctx.PrecipProb >= 50 {
			weather += " with rain likely, leaned on water-friendly pieces"
		}
		weather += "."
	}

	if ctx.Occasion != "" {
		tpo = fmt.Sprintf("Dressed for %s with formality around %.1f.", ctx.Occasion, ctx.FormalityNeed)
	}

	if ctx.BodyShape != "" || ctx.BodyNote != "" {
		body = strings.TrimSpace(fmt.Sprintf("Kept your %s notes in mind. %s", ctx.BodyShape, ctx.BodyNote))
	}
	return weather, tpo, body
}

// loadReferences ranks the recent feed against the request context.
func loadReferences(db *gorm.DB, ctx recommend.Context) []recommend.Reference {
	return loadReferencesTopK(db, ctx, recommend.DefaultTopReferences)
}

func (controller *RecommendController) Recommend(c echo.Context) error {
	var req RecommendIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var items []models.WardrobeItem
	if err := db.Where("owner_id = ?", user.ID).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}

	ctx := controller.buildContext(c, req)
	outfit := recommend.Compose(items, ctx)
	outfitText := recommend.RenderOutfitText(outfit)
	weather, tpo, body := reasonCards(ctx)

	return c.JSON(http.StatusOK, echo.Map{
		"outfit":         outfit,
		"outfit_text":    outfitText,
		"reason_weather": weather,
		"reason_tpo":     tpo,
		"reason_body":    body,
		"season":         ctx.Season,
		"theme":          recommend.ThemeForSeason(ctx.Season),
		"context":        ctx.Snapshot(),
		"references":     loadReferences(db, ctx),
	})
}

func (controller *RecommendController) SaveOutfit(c echo.Context) error {
	var req SaveOutfitIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	ctx := controller.buildContext(c, req.RecommendIn)
	source := req.Source
	if source == "" {
		source = "rules"
	}
	record := models.OutfitRecord{
		PublicID:        uuid.NewString(),
		OwnerID:         user.ID,
		ContextSnapshot: ctx.Snapshot(),
		OutfitText:      req.OutfitText,
		ReasonWeather:   req.ReasonWeather,
		ReasonTPO:       req.ReasonTPO,
		ReasonBody:      req.ReasonBody,
		Source:          source,
	}
	if err := db.Create(&record).Error; err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusCreated, record)
}

func (controller *RecommendController) ListOutfits(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var records []models.OutfitRecord
	if err := db.Where("owner_id = ?", user.ID).Order("created_at desc").Limit(50).Find(&records).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch outfits"})
	}
	return c.JSON(http.StatusOK, echo.Map{"outfits": records})
}

// RequestStylist creates a pending LLM generation and hands it to the
// worker queue.
func (controller *RecommendController) RequestStylist(c echo.Context) error {
	var req StylistIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)
	asynqClient, ok := c.Get("__asynqclient").(*asynq.Client)
	if !ok || asynqClient == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"message": "Stylist is not available right now, please try again later"})
	}

	var itemCount int64
	if err := db.Model(&models.WardrobeItem{}).Where("owner_id = ?", user.ID).Count(&itemCount).Error; err != nil {
		return echo.ErrInternalServerError
	}
	if itemCount == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Register some items to your closet first"})
	}

	ctx := controller.buildContext(c, req.RecommendIn)
	generation := models.StylistGeneration{
		PublicID:        uuid.NewString(),
		UserAccountID:   user.ID,
		ContextSnapshot: ctx.Snapshot(),
		Status:          "pending",
	}
	if err := db.Create(&generation).Error; err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}

	if err := tasks.EnqueueStylistGeneration(asynqClient, generation.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not submit the stylist request, please try again"})
	}
	fmt.Println("[Queue] Stylist generation submitted, ID:", generation.ID)

	return c.JSON(http.StatusAccepted, echo.Map{
		"public_id": generation.PublicID,
		"status":    generation.Status,
	})
}

func (controller *RecommendController) StylistStatus(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var generation models.StylistGeneration
	r := db.Where("user_account_id = ? and public_id = ?", user.ID, c.Param("publicId")).Limit(1).Find(&generation)
	if r.Error != nil {
		return echo.ErrInternalServerError
	}
	if r.RowsAffected == 0 {
		return echo.ErrNotFound
	}
	return c.JSON(http.StatusOK, generation)
}
