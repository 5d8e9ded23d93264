package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ootdapi/dbhelper"
	"ootdapi/models"
	"ootdapi/test"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedGeneration(db *gorm.DB, userID uint, status string) models.StylistGeneration {
	tempC := 4.0
	generation := models.StylistGeneration{
		PublicID:      uuid.NewString(),
		UserAccountID: userID,
		Status:        status,
		ContextSnapshot: models.ContextSnapshot{
			TempC:         &tempC,
			Occasion:      models.OccasionWork,
			Moods:         pq.StringArray{"minimal"},
			FormalityNeed: 0.8,
		},
	}
	db.Create(&generation)
	return generation
}

func seedWardrobe(db *gorm.DB, userID uint) {
	items := []models.WardrobeItem{
		{PublicID: uuid.NewString(), Name: "White shirt", OwnerID: userID, Category: models.CategoryTop, Color: models.ColorWhite, Warmth: 0.3, Formality: 0.7},
		{PublicID: uuid.NewString(), Name: "Wool slacks", OwnerID: userID, Category: models.CategoryBottom, Color: models.ColorGray, Warmth: 0.6, Formality: 0.8},
	}
	db.Create(&items)
}

func TestStylistGenerationTaskOk(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)
	seedWardrobe(db, user.ID)
	generation := seedGeneration(db, user.ID, "pending")

	task, err := NewStylistGenerationTask(generation.ID)
	require.NoError(t, err)

	err = HandleStylistGenerationTask(context.Background(), task, db, test.StylistMock{}, nil)
	require.NoError(t, err)

	var saved models.StylistGeneration
	db.First(&saved, generation.ID)
	require.Equal(t, "completed", saved.Status)
	require.NotNil(t, saved.OutfitText)
	require.Contains(t, *saved.OutfitText, "- Top:")
	require.NotNil(t, saved.Reason)
	require.NotNil(t, saved.Duration)
	require.NotNil(t, saved.LLMModel)
	require.Equal(t, int32(10), *saved.LLMInputTokenCount)
	require.Equal(t, int32(13), *saved.LLMOutputTokenCount)
	require.Nil(t, saved.GenerationErrorMessage)
}

func TestStylistGenerationTaskAlreadyCompleted(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)
	seedWardrobe(db, user.ID)
	generation := seedGeneration(db, user.ID, "completed")

	task, err := NewStylistGenerationTask(generation.ID)
	require.NoError(t, err)

	// A failing stylist proves the handler never calls it.
	err = HandleStylistGenerationTask(context.Background(), task, db, test.StylistMock{Err: errors.New("should not be called")}, nil)
	require.NoError(t, err)

	var saved models.StylistGeneration
	db.First(&saved, generation.ID)
	require.Equal(t, "completed", saved.Status)
}

func TestStylistGenerationTaskEmptyCloset(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)
	generation := seedGeneration(db, user.ID, "pending")

	task, err := NewStylistGenerationTask(generation.ID)
	require.NoError(t, err)

	// No retry for an empty closet, the task finishes without error.
	err = HandleStylistGenerationTask(context.Background(), task, db, test.StylistMock{}, nil)
	require.NoError(t, err)

	var saved models.StylistGeneration
	db.First(&saved, generation.ID)
	require.Equal(t, "failed", saved.Status)
	require.NotNil(t, saved.GenerationErrorMessage)
	require.Contains(t, *saved.GenerationErrorMessage, "closet is empty")
}

func TestStylistGenerationTaskLLMFailure(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)
	seedWardrobe(db, user.ID)
	generation := seedGeneration(db, user.ID, "pending")

	task, err := NewStylistGenerationTask(generation.ID)
	require.NoError(t, err)

	stylist := test.StylistMock{Err: errors.New("model overloaded")}

	// The first two failures leave the generation retryable.
	for i := 1; i <= 2; i++ {
		err = HandleStylistGenerationTask(context.Background(), task, db, stylist, nil)
		require.Error(t, err)

		var saved models.StylistGeneration
		db.First(&saved, generation.ID)
		require.Equal(t, "pending", saved.Status)
		require.Equal(t, i, saved.GenerationRetryTimes)
	}

	// The third one gives up.
	err = HandleStylistGenerationTask(context.Background(), task, db, stylist, nil)
	require.Error(t, err)

	var saved models.StylistGeneration
	db.First(&saved, generation.ID)
	require.Equal(t, "failed", saved.Status)
	require.Equal(t, 3, saved.GenerationRetryTimes)
}

func TestTrendingDigestTaskNoPosts(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()

	task, err := NewTrendingDigestTask()
	require.NoError(t, err)

	err = HandleTrendingDigestTask(context.Background(), task, db, nil)
	assert.NoError(t, err)
}

func TestTrendingDigestTaskWithPosts(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	for i := 0; i < 3; i++ {
		post := models.Post{
			PublicID:   uuid.NewString(),
			OwnerID:    user.ID,
			Title:      "Look",
			OutfitText: "- Top: Tee (white)",
		}
		db.Create(&post)
		db.Create(&models.PostLike{PostID: post.ID, Count: i * 5})
	}

	task, err := NewTrendingDigestTask()
	require.NoError(t, err)

	// nil telegram service: ranking runs, the send is skipped.
	err = HandleTrendingDigestTask(context.Background(), task, db, nil)
	assert.NoError(t, err)
}

func TestNewStylistGenerationTaskPayload(t *testing.T) {
	task, err := NewStylistGenerationTask(42)
	require.NoError(t, err)
	require.Equal(t, TypeStylistGeneration, task.Type())

	var payload StylistGenerationPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	require.Equal(t, uint(42), payload.GenerationID)
}
