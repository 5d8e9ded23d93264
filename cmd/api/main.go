package main

import (
	"context"
	"log"
	"ootdapi/controllers"
	"ootdapi/dbhelper"
	"ootdapi/services"
	"ootdapi/telegram"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		Environment:      services.GetEnv("ENV", "local"),
		Release:          "ootdapi@1.0.0",
		Debug:            false,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	db := dbhelper.SetupDB()

	var firebaseApp *firebase.App
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" {
		firebaseApp, err = firebase.NewApp(context.Background(), nil)
		if err != nil {
			log.Fatalf("error initializing firebase app: %v\n", err)
		}
	} else {
		log.Println("Firebase credentials not set, push notifications disabled")
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: services.GetEnv("REDIS_ADDR", "localhost:6379")})

	awsService := &services.AWSService{}
	bucketName := services.GetEnv("R2_BUCKET_NAME", "")
	imageURLCache, err := services.NewImageURLCacheService(awsService, bucketName)
	if err != nil {
		log.Fatal("Failed to initialize image URL cache")
	}

	weatherService, err := services.NewWeatherCacheService(services.NewOpenMeteoService())
	if err != nil {
		log.Fatal("Failed to initialize weather cache")
	}

	e := controllers.SetupServer(
		db, services.GoogleService{}, awsService, weatherService,
		imageURLCache, firebaseApp, asynqClient,
	)
	e.Debug = true

	if os.Getenv("TG_TOKEN") != "" {
		tgService, err := telegram.NewTelegramService(db)
		if err != nil {
			log.Println("Telegram bot disabled:", err)
		} else {
			go tgService.RunStatsBot()
		}
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(3)))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	e.Logger.Fatal(e.Start(":8083"))
}
