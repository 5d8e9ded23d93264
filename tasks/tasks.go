package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"ootdapi/models"
	"ootdapi/recommend"
	"ootdapi/services"
	"ootdapi/telegram"
)

const (
	TypeStylistGeneration = "generate:stylist"
	TypeTrendingDigest    = "feed:trending_digest"
)

type StylistGenerationPayload struct {
	GenerationID uint `json:"generation_id"`
}

// Client initializes an asynq client for enqueuing tasks
func NewClient() (*asynq.Client, error) {
	return asynq.NewClient(asynq.RedisClientOpt{Addr: services.GetEnv("REDIS_ADDR", "localhost:6379")}), nil
}

func NewStylistGenerationTask(generationID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(StylistGenerationPayload{GenerationID: generationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStylistGeneration, payload), nil
}

// EnqueueStylistGeneration puts a pending generation on the generate queue.
func EnqueueStylistGeneration(asynqClient *asynq.Client, generationID uint) error {
	task, err := NewStylistGenerationTask(generationID)
	if err != nil {
		return err
	}
	taskInfo, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.ProcessIn(1*time.Second), asynq.Queue("generate"))
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[QUEUE] Error enqueueing stylist generation %v: %v", generationID, err))
		return err
	}
	fmt.Printf("[Stylist: %v] Enqueued task: %s\n", generationID, taskInfo.ID)
	return nil
}

func NewTrendingDigestTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeTrendingDigest, nil), nil
}

func saveGenerationFail(db *gorm.DB, generation models.StylistGeneration, msg string, shouldRetry bool) error {
	generation.GenerationRetryTimes = generation.GenerationRetryTimes + 1
	generation.GenerationErrorMessage = services.StrPointer(msg)
	if !shouldRetry || generation.GenerationRetryTimes >= 3 {
		generation.Status = "failed"
	}
	tx := db.Save(&generation)
	if tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Fail Stylist %v] Error on saving generation for failed status", generation.ID))
		return tx.Error
	}
	return nil
}

// HandleStylistGenerationTask runs one pending stylist generation: load the
// user's wardrobe and the stored context, ask the LLM, persist the result
// and notify the user.
func HandleStylistGenerationTask(
	ctx context.Context, t *asynq.Task, db *gorm.DB, stylist services.StylistProvider, fbApp *firebase.App) error {
	var payload StylistGenerationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	fmt.Printf("[Stylist: %v] Start processing\n", payload.GenerationID)

	var generation models.StylistGeneration
	res := db.First(&generation, payload.GenerationID)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[QUEUE] Error on retrieving stylist generation %v", payload.GenerationID))
		return res.Error
	}
	if generation.Status == "completed" {
		fmt.Printf("[Stylist: %v] Already completed, skipping\n", payload.GenerationID)
		return nil
	}

	var items []models.WardrobeItem
	res = db.Where("owner_id = ?", generation.UserAccountID).Find(&items)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Stylist: %v] Error fetching wardrobe: %v", payload.GenerationID, res.Error))
		return res.Error
	}
	if len(items) == 0 {
		saveGenerationFail(db, generation, "Your closet is empty, register some items first", false)
		return nil
	}

	reqCtx := recommend.FromSnapshot(generation.ContextSnapshot)

	started := time.Now()
	result, err := stylist.SuggestOutfit(ctx, items, reqCtx, services.Flash25)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Stylist: %v] LLM error: %v", payload.GenerationID, err))
		saveGenerationFail(db, generation, "The stylist is unavailable right now, please retry", true)
		return err
	}
	duration := time.Since(started).Seconds()
	fmt.Printf("[Stylist: %v] Generated in %.1fs with %s\n", payload.GenerationID, duration, result.ModelName)

	generation.OutfitText = services.StrPointer(result.OutfitText)
	generation.Reason = services.StrPointer(result.Reason)
	generation.Status = "completed"
	generation.Duration = &duration
	generation.LLMModel = services.StrPointer(result.ModelName)
	generation.LLMInputTokenCount = services.Int32Pointer(result.InputTokenCount)
	generation.LLMOutputTokenCount = services.Int32Pointer(result.OutputTokenCount)
	generation.LLMThoughtsTokenCount = services.Int32Pointer(result.ThoughtsCount)
	generation.LLMTotalTokenCount = services.Int32Pointer(result.TotalTokenCount)
	generation.GenerationErrorMessage = nil

	tx := db.Save(&generation)
	if tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Stylist %v] Error on saving generation at the end", payload.GenerationID))
		return tx.Error
	}

	if fbApp != nil {
		services.SendNotification(
			fbApp, db, generation.UserAccountID,
			"Your outfit is ready", "The stylist picked today's look for you",
			map[string]string{"generation_id": generation.PublicID, "type": "stylist_completed"},
		)
	}
	return nil
}

// HandleTrendingDigestTask posts the current top trending feed entries to
// the admin telegram channel. Scheduled daily by the worker.
func HandleTrendingDigestTask(ctx context.Context, t *asynq.Task, db *gorm.DB, tgService *telegram.TelegramService) error {
	fmt.Printf("[Trending Digest] Processing\n")

	var posts []models.Post
	res := db.Where("created_at > ?", time.Now().Add(-7*24*time.Hour)).Find(&posts)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Trending Digest] Error fetching posts: %v", res.Error))
		return res.Error
	}
	if len(posts) == 0 {
		fmt.Println("[Trending Digest] No recent posts, skipping")
		return nil
	}

	var likeRows []models.PostLike
	res = db.Find(&likeRows)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Trending Digest] Error fetching likes: %v", res.Error))
		return res.Error
	}
	likesByPostID := map[uint]int{}
	for _, row := range likeRows {
		likesByPostID[row.PostID] = row.Count
	}

	now := time.Now()
	type scored struct {
		post  models.Post
		likes int
		trend float64
	}
	var top []scored
	for _, p := range posts {
		likes := likesByPostID[p.ID]
		top = append(top, scored{p, likes, recommend.TrendingScore(p.CreatedAt, likes, now)})
	}
	sort.Slice(top, func(i, j int) bool { return top[i].trend > top[j].trend })
	if len(top) > 5 {
		top = top[:5]
	}

	message := "🔥 Trending outfits this week:\n"
	for i, entry := range top {
		message += fmt.Sprintf("%d. %s (%d likes, trend %.1f)\n", i+1, entry.post.Title, entry.likes, entry.trend)
	}
	if tgService != nil {
		tgService.NotifyAdmins(telegram.EscapeMessage(message))
	}
	return nil
}
