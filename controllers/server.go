package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	firebase "firebase.google.com/go/v4"
	"github.com/go-playground/validator"
	"github.com/hibiken/asynq"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"ootdapi/models"
	"ootdapi/services"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		// Optionally, you could return the error to give each route more control over the status code
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func SetupServer(
	db *gorm.DB,
	googleService services.GoogleServiceProvider,
	awsService services.AWSServiceProvider,
	weatherService services.WeatherProvider,
	imageURLCache services.ImageURLCacheProvider,
	firebaseApp *firebase.App,
	asynqClient *asynq.Client,
) *echo.Echo {

	err := awsService.InitPresignClient(context.Background())
	if err != nil {
		log.Fatal("Failed to initialize AWS provider: S3")
	}

	e := echo.New()
	v := validator.New()
	v.RegisterValidation("platform", models.ValidatePlatform)
	v.RegisterValidation("category", models.ValidateCategory)
	v.RegisterValidation("color", models.ValidateColor)
	v.RegisterValidation("occasion", models.ValidateOccasion)
	v.RegisterValidation("mood", models.ValidateMood)
	e.Validator = &CustomValidator{validator: v}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__db", db)
			c.Set("__asynqclient", asynqClient)
			return next(c)
		}
	})

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	authGroup := e.Group("auth")

	authController := AuthController{Google: googleService, FirebaseApp: firebaseApp, AWSService: awsService}
	authController.AuthRoutes(authGroup)

	apiGroup := e.Group("api", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))))
	apiGroup.Use(UserMiddleware)

	onboardingController := OnboardingController{}
	onboardingController.OnboardingRoutes(apiGroup.Group("/onboarding"))

	wardrobeController := WardrobeController{AWSService: awsService, ImageURLCache: imageURLCache}
	wardrobeController.WardrobeRoutes(apiGroup.Group("/wardrobe"))

	recommendController := RecommendController{Weather: weatherService}
	recommendController.RecommendRoutes(apiGroup.Group("/recommend"))

	feedController := FeedController{}
	feedController.FeedRoutes(apiGroup.Group("/feed"))

	fmt.Println("Routes ready")
	return e
}
