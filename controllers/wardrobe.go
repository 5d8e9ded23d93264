package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"ootdapi/models"
	"ootdapi/services"
)

type WardrobeController struct {
	AWSService    services.AWSServiceProvider
	ImageURLCache services.ImageURLCacheProvider
}

type CreateItemIn struct {
	Name      string   `json:"name" validate:"required,max=120"`
	Category  string   `json:"category" validate:"required,category"`
	Color     string   `json:"color" validate:"required,color"`
	Tags      []string `json:"tags" validate:"max=10,dive,max=40"`
	Warmth    float64  `json:"warmth" validate:"min=0,max=1"`
	Formality float64  `json:"formality" validate:"min=0,max=1"`
	FileName  *string  `json:"file_name" validate:"omitempty,max=1000"`
	Link      string   `json:"link" validate:"max=1000"`
}

type ItemResponse struct {
	PublicID  string   `json:"public_id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Color     string   `json:"color"`
	Tags      []string `json:"tags"`
	Warmth    float64  `json:"warmth"`
	Formality float64  `json:"formality"`
	IsPreset  bool     `json:"is_preset"`
	ImageURL  *string  `json:"image_url"`
	Link      string   `json:"link"`
	CreatedAt string   `json:"created_at"`
}

type ItemCreatedResponse struct {
	ItemResponse
	FileUploadUrl string `json:"file_upload_url,omitempty"`
}

func itemResponse(item models.WardrobeItem) ItemResponse {
	return ItemResponse{
		PublicID:  item.PublicID,
		Name:      item.Name,
		Category:  string(item.Category),
		Color:     string(item.Color),
		Tags:      item.Tags,
		Warmth:    item.Warmth,
		Formality: item.Formality,
		IsPreset:  item.IsPreset,
		ImageURL:  item.ImageURL,
		Link:      item.Link,
		CreatedAt: item.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.POST("/items", controller.CreateItem)
	g.GET("/items", controller.ListItems)
	g.DELETE("/items/presets", controller.DeletePresets)
	g.DELETE("/items/:publicId", controller.DeleteItem)
}

func (controller *WardrobeController) CreateItem(c echo.Context) error {
	var req CreateItemIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	item := models.WardrobeItem{
		PublicID:  uuid.NewString(),
		Name:      req.Name,
		OwnerID:   user.ID,
		Category:  models.Category(req.Category),
		Color:     models.Color(req.Color),
		Tags:      pq.StringArray(services.NormalizeTags(req.Tags)),
		Warmth:    req.Warmth,
		Formality: req.Formality,
		Link:      req.Link,
	}

	var uploadUrl string
	if req.FileName != nil && *req.FileName != "" {
		var bucketName = services.GetEnv("R2_BUCKET_NAME", "")
		safeFileName := fmt.Sprintf("wardrobe/%v/%s", user.ID, *req.FileName)
		var presignErr error
		uploadUrl, presignErr = controller.AWSService.PresignLink(context.Background(), bucketName, safeFileName)
		if presignErr != nil {
			log.Printf("Unable to presign upload for %s!, %s", item.Name, presignErr)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "Error while creating item with attachment",
			})
		}
		item.ImageURL = &safeFileName
	}

	if err := db.Create(&item).Error; err != nil {
		sentry.CaptureException(err)
		return err
	}

	return c.JSON(http.StatusCreated, ItemCreatedResponse{
		ItemResponse:  itemResponse(item),
		FileUploadUrl: uploadUrl,
	})
}

func (controller *WardrobeController) ListItems(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	query := db.Where("owner_id = ?", user.ID)
	if category := c.QueryParam("category"); category != "" {
		if !models.ValidateCategoryRaw(category) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown category"})
		}
		query = query.Where("category = ?", category)
	}
	if color := c.QueryParam("color"); color != "" {
		if !models.ValidateColorRaw(color) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown color"})
		}
		query = query.Where("color = ?", color)
	}
	switch c.QueryParam("kind") {
	case "preset":
		query = query.Where("is_preset = true")
	case "own":
		query = query.Where("is_preset = false")
	}
	if q := c.QueryParam("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name ilike ? or array_to_string(tags, ' ') ilike ?", pattern, pattern)
	}

	var items []models.WardrobeItem
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		resp := itemResponse(item)
		if item.ImageURL != nil && controller.ImageURLCache != nil {
			readURL, err := controller.ImageURLCache.GetReadURL(c.Request().Context(), *item.ImageURL)
			if err != nil {
				log.Printf("Could not presign read URL for item %s: %v", item.PublicID, err)
			} else if readURL != "" {
				resp.ImageURL = &readURL
			}
		}
		responses = append(responses, resp)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": responses,
		"count": len(responses),
	})
}

func (controller *WardrobeController) DeleteItem(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	publicId := c.Param("publicId")
	result := db.Where("owner_id = ? and public_id = ?", user.ID, publicId).Delete(&models.WardrobeItem{})
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return echo.ErrInternalServerError
	}
	if result.RowsAffected == 0 {
		return echo.ErrNotFound
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// DeletePresets removes the whole auto-generated starter closet at once.
func (controller *WardrobeController) DeletePresets(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	result := db.Where("owner_id = ? and is_preset = true", user.ID).Delete(&models.WardrobeItem{})
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return echo.ErrInternalServerError
	}
	fmt.Println("Deleted", result.RowsAffected, "preset items for user", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "deleted",
		"count":   result.RowsAffected,
	})
}
