package controllers

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"ootdapi/models"
	"ootdapi/services"
)

type OnboardingController struct {
}

type OnboardingIn struct {
	Style        string `json:"style" validate:"required,mood"`
	Context      string `json:"context" validate:"required,max=40"`
	ColorPref    string `json:"color_pref" validate:"required,max=40"`
	WardrobeSize string `json:"wardrobe_size" validate:"required,max=40"`
}

func (controller *OnboardingController) OnboardingRoutes(g *echo.Group) {
	g.POST("/complete", controller.Complete)
	g.POST("/skip", controller.Skip)
	g.POST("/reset", controller.Reset)
}

// Complete stores the quick-start answers and generates the preset starter
// closet so the first recommendation has something to work with.
func (controller *OnboardingController) Complete(c echo.Context) error {
	var req OnboardingIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	if user.OnboardingCompleted {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Onboarding already completed"})
	}

	user.OnboardingCompleted = true
	user.OnboardingSkipped = false
	user.OnboardingStyle = StrPointer(req.Style)
	user.OnboardingContext = StrPointer(req.Context)
	user.OnboardingColorPref = StrPointer(req.ColorPref)
	user.OnboardingWardrobeSize = StrPointer(req.WardrobeSize)

	presets := services.PresetCatalog(user, models.Mood(req.Style), req.ColorPref)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Create(&presets).Error
	})
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not finish onboarding, please try again"})
	}
	fmt.Println("Onboarding completed for user", user.ID, "style:", req.Style, "presets:", len(presets))

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "completed",
		"preset_count":  len(presets),
		"style":         req.Style,
		"color_pref":    req.ColorPref,
		"wardrobe_size": req.WardrobeSize,
	})
}

func (controller *OnboardingController) Skip(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	user.OnboardingCompleted = true
	user.OnboardingSkipped = true
	if err := db.Save(&user).Error; err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "skipped"})
}

// Reset clears the onboarding answers and drops the generated presets so
// the wizard can run again.
func (controller *OnboardingController) Reset(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	user.OnboardingCompleted = false
	user.OnboardingSkipped = false
	user.OnboardingStyle = nil
	user.OnboardingContext = nil
	user.OnboardingColorPref = nil
	user.OnboardingWardrobeSize = nil

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Where("owner_id = ? and is_preset = true", user.ID).Delete(&models.WardrobeItem{}).Error
	})
	if err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reset"})
}
