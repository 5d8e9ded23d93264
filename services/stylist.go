package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"ootdapi/models"
	"ootdapi/recommend"
)

// LLMModelName is the GenAI model used for stylist generations.
type LLMModelName int32

const (
	Flash25 LLMModelName = iota
	FlashLite25
	Flash20
)

func (t LLMModelName) String() string {
	switch t {
	case Flash25:
		return "gemini-2.5-flash"
	case FlashLite25:
		return "gemini-2.5-flash-lite-preview-06-17"
	case Flash20:
		return "gemini-2.0-flash"
	default:
		return "gemini-2.0-flash"
	}
}

func floatPointer(f float32) *float32 {
	return &f
}

func Int32Pointer(i int32) *int32 {
	return &i
}

// StylistResult is one LLM outfit suggestion plus usage bookkeeping.
type StylistResult struct {
	OutfitText       string `json:"outfit_text"`
	Reason           string `json:"reason"`
	ModelName        string `json:"model_name"`
	InputTokenCount  int32  `json:"input_token_count"`
	OutputTokenCount int32  `json:"output_token_count"`
	ThoughtsCount    int32  `json:"thoughts_token_count"`
	TotalTokenCount  int32  `json:"total_token_count"`
}

type StylistProvider interface {
	SuggestOutfit(ctx context.Context, items []models.WardrobeItem, reqCtx recommend.Context, modelName LLMModelName) (*StylistResult, error)
}

type stylistReply struct {
	OutfitText string `json:"outfit_text"`
	Reason     string `json:"reason"`
}

type GoogleStylist struct{}

var jsonFenceRegex = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// stripJSONFence unwraps a fenced code block if the model added one despite
// the JSON response mime type.
func stripJSONFence(text string) string {
	if m := jsonFenceRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

func buildStylistPrompt(items []models.WardrobeItem, reqCtx recommend.Context) string {
	var b strings.Builder
	b.WriteString("You are a personal stylist. Compose one outfit strictly from the wardrobe below.\n\nWardrobe:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- [%s] %s (%s), warmth %.2f, formality %.2f", item.Category, item.Name, item.Color, item.Warmth, item.Formality)
		if len(item.Tags) > 0 {
			fmt.Fprintf(&b, ", tags: %s", strings.Join(item.Tags, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nConditions:\n")
	if reqCtx.TempC != nil {
		fmt.Fprintf(&b, "- Temperature: %.1f C (%s)\n", *reqCtx.TempC, reqCtx.Season)
	}
	if reqCtx.PrecipProb != nil {
		fmt.Fprintf(&b, "- Precipitation probability: %.0f%%\n", *reqCtx.PrecipProb)
	}
	if reqCtx.Occasion != "" {
		fmt.Fprintf(&b, "- Occasion: %s\n", reqCtx.Occasion)
	}
	if len(reqCtx.Moods) > 0 {
		fmt.Fprintf(&b, "- Desired moods: %s\n", strings.Join(reqCtx.Moods, ", "))
	}
	fmt.Fprintf(&b, "- Formality preference: %.2f\n", reqCtx.FormalityNeed)
	if reqCtx.BodyShape != "" {
		fmt.Fprintf(&b, "- Body shape: %s\n", reqCtx.BodyShape)
	}
	if reqCtx.BodyNote != "" {
		fmt.Fprintf(&b, "- Body note: %s\n", reqCtx.BodyNote)
	}

	b.WriteString("\nPick at most one item per category. A dress replaces both top and bottom, never combine them. ")
	b.WriteString(`Reply with JSON only: {"outfit_text": "<one '- Slot: item' line per chosen item>", "reason": "<2-3 sentences on why this works for the weather, occasion and body notes>"}`)
	return b.String()
}

func (GoogleStylist) SuggestOutfit(ctx context.Context, items []models.WardrobeItem, reqCtx recommend.Context, modelName LLMModelName) (*StylistResult, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GOOGLE_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating genai client: %v", err)
	}

	parts := []*genai.Part{{Text: buildStylistPrompt(items, reqCtx)}}

	result, err := client.Models.GenerateContent(ctx, modelName.String(), []*genai.Content{{Parts: parts}}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		MaxOutputTokens:  4000,
		Temperature:      floatPointer(0.8),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: "You are a pragmatic personal stylist. Only reference items that exist in the provided wardrobe. Always answer with the requested JSON object and nothing else."},
			},
		},
	})
	if err != nil {
		fmt.Println("Error in GenerateContent:", err)
		return nil, fmt.Errorf("%v", err)
	}

	if result.PromptFeedback != nil {
		fmt.Println(result.PromptFeedback.BlockReason)
		fmt.Println(result.PromptFeedback.BlockReasonMessage)
		return nil, fmt.Errorf("content violation: %s", result.PromptFeedback.BlockReasonMessage)
	}

	text := stripJSONFence(result.Text())
	var reply stylistReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return nil, fmt.Errorf("unparseable stylist reply: %v: %s", err, text)
	}
	if reply.OutfitText == "" {
		return nil, fmt.Errorf("stylist reply missing outfit_text: %s", text)
	}

	out := &StylistResult{
		OutfitText: reply.OutfitText,
		Reason:     reply.Reason,
		ModelName:  modelName.String(),
	}
	if result.UsageMetadata != nil {
		out.InputTokenCount = result.UsageMetadata.PromptTokenCount
		out.OutputTokenCount = result.UsageMetadata.CandidatesTokenCount
		out.ThoughtsCount = result.UsageMetadata.ThoughtsTokenCount
		out.TotalTokenCount = result.UsageMetadata.TotalTokenCount
		fmt.Println("Input token count:", out.InputTokenCount)
		fmt.Println("Output token count:", out.OutputTokenCount)
		fmt.Println("Total token count:", out.TotalTokenCount)
	}
	return out, nil
}
