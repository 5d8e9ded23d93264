package main

import (
	"context"
	"log"
	"ootdapi/dbhelper"
	"ootdapi/services"
	"ootdapi/tasks"
	"ootdapi/telegram"
	"os"

	firebase "firebase.google.com/go/v4"
	"github.com/hibiken/asynq"
)

func runScheduler() {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: services.GetEnv("REDIS_ADDR", "localhost:6379")},
		&asynq.SchedulerOpts{LogLevel: asynq.InfoLevel},
	)

	digestTask, err := tasks.NewTrendingDigestTask()
	if err != nil {
		log.Fatalf("Failed to build trending digest task: %v", err)
	}
	// 9:00 AM daily
	entryID, err := scheduler.Register("0 9 * * *", digestTask, asynq.Queue("generate"))
	if err != nil {
		log.Fatalf("Failed to register trending digest: %v", err)
	}
	log.Printf("Registered trending digest with ID: %s", entryID)

	log.Println("Starting scheduler...")
	if err := scheduler.Run(); err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}

func main() {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: services.GetEnv("REDIS_ADDR", "localhost:6379")},
		asynq.Config{Concurrency: 10, Queues: map[string]int{
			"generate": 7,
		}},
	)

	var firebaseApp *firebase.App
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" {
		app, err := firebase.NewApp(context.Background(), nil)
		if err != nil {
			log.Fatalf("error initializing firebase app: %v\n", err)
		}
		firebaseApp = app
	}

	db := dbhelper.SetupDB()
	stylist := services.GoogleStylist{}

	var tgService *telegram.TelegramService
	if os.Getenv("TG_TOKEN") != "" {
		var err error
		tgService, err = telegram.NewTelegramService(db)
		if err != nil {
			log.Println("[Queue] Telegram digest disabled:", err)
		}
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeStylistGeneration, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleStylistGenerationTask(ctx, t, db, stylist, firebaseApp)
	})
	mux.HandleFunc(tasks.TypeTrendingDigest, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleTrendingDigestTask(ctx, t, db, tgService)
	})

	go runScheduler()
	if err := srv.Run(mux); err != nil {
		log.Fatal(err)
	}
}
