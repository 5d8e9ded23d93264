package models

import "github.com/lib/pq"

// ContextSnapshot is the request context a recommendation was produced
// under, persisted verbatim on outfits, feed posts and stylist generations
// so similarity ranking can compare against it later.
type ContextSnapshot struct {
	TempC          *float64       `json:"temp_c"`
	PrecipProb     *float64       `json:"precip_prob"`
	Occasion       Occasion       `json:"occasion"`
	Moods          pq.StringArray `gorm:"type:text[]" json:"moods"`
	FormalityNeed  float64        `json:"formality_need"`
	BodyShape      string         `json:"body_shape"`
	BodyNote       string         `json:"body_note"`
	City           string         `json:"city"`
	WeatherSummary *string        `json:"weather_summary"`
}

// OutfitRecord is a recommendation the user chose to keep.
type OutfitRecord struct {
	JsonModel
	PublicID string      `gorm:"uniqueIndex" json:"public_id"`
	Owner    UserAccount `json:"-"`
	OwnerID  uint        `json:"-"`

	ContextSnapshot
	OutfitText    string `gorm:"type:text" json:"outfit_text"`
	ReasonWeather string `json:"reason_weather"`
	ReasonTPO     string `json:"reason_tpo"`
	ReasonBody    string `json:"reason_body"`
	Source        string `json:"source"` // rules, stylist
}

// Post is an outfit shared to the feed. Immutable once published, the like
// counter lives in its own row.
type Post struct {
	JsonModel
	PublicID string      `gorm:"uniqueIndex" json:"public_id"`
	Owner    UserAccount `json:"-"`
	OwnerID  uint        `json:"-"`

	Title      string `json:"title"`
	Caption    string `gorm:"type:text" json:"caption"`
	OutfitText string `gorm:"type:text" json:"outfit_text"`

	ContextSnapshot
}

// PostLike is the external like counter for one post. The calling layer
// serializes increments, rankers only ever read a snapshot of these rows.
type PostLike struct {
	JsonModel
	PostID uint `gorm:"uniqueIndex" json:"post_id"`
	Post   Post `json:"-"`
	Count  int  `json:"count"`
}

// StylistGeneration tracks one async LLM outfit recommendation.
type StylistGeneration struct {
	JsonModel
	PublicID      string      `gorm:"uniqueIndex" json:"public_id"`
	UserAccount   UserAccount `json:"-"`
	UserAccountID uint        `json:"-"`

	ContextSnapshot

	OutfitText *string  `gorm:"type:text" json:"outfit_text"`
	Reason     *string  `gorm:"type:text" json:"reason"`
	Status     string   `json:"status"`   // pending, completed, failed
	Duration   *float64 `json:"duration"` // in seconds

	LLMModel               *string `json:"llm_model"`
	LLMInputTokenCount     *int32  `json:"llm_input_token_count"`
	LLMOutputTokenCount    *int32  `json:"llm_output_token_count"`
	LLMTotalTokenCount     *int32  `json:"llm_total_token_count"`
	LLMThoughtsTokenCount  *int32  `json:"llm_thoughts_token_count"`
	GenerationRetryTimes   int     `json:"generation_retry_times"`
	GenerationErrorMessage *string `json:"generation_error_message"`
}
