package services

import (
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ootdapi/models"
)

var TitleCaser = cases.Title(language.English)
var LowerCaser = cases.Lower(language.English)

// NormalizeTags lowercases, trims and dedupes free-form tags so scoring
// matches on "Formal" and "formal" alike.
func NormalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tag := range tags {
		t := LowerCaser.String(tag)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// FormalityForStyle maps an onboarding style to the baseline formality of
// the generated starter items.
func FormalityForStyle(style models.Mood) float64 {
	switch style {
	case models.MoodMinimal:
		return 0.6
	case models.MoodCasual:
		return 0.3
	case models.MoodFormal:
		return 0.85
	case models.MoodStreet:
		return 0.35
	case models.MoodLovely:
		return 0.5
	case models.MoodSporty:
		return 0.25
	case models.MoodClassic:
		return 0.75
	default:
		return 0.5
	}
}

// PaletteForPreference picks the starter item colors. "mono" keeps to
// black/white/gray, "tonedown" adds earthy neutrals, "accent" allows one
// strong color, anything else gets the mixed default.
func PaletteForPreference(pref string) []models.Color {
	switch pref {
	case "mono":
		return []models.Color{models.ColorBlack, models.ColorWhite, models.ColorGray}
	case "tonedown":
		return []models.Color{models.ColorBeige, models.ColorBrown, models.ColorNavy, models.ColorGray}
	case "accent":
		return []models.Color{models.ColorBlack, models.ColorWhite, models.ColorRed}
	default:
		return []models.Color{models.ColorWhite, models.ColorNavy, models.ColorBeige, models.ColorBlack}
	}
}

type presetBlueprint struct {
	name     string
	category models.Category
	warmth   float64
	tags     []string
}

// The starter closet: 4 tops, 3 bottoms, 2 outer, 2 shoes, 1 bag,
// 1 accessory.
var presetBlueprints = []presetBlueprint{
	{"basic tee", models.CategoryTop, 0.2, []string{"casual"}},
	{"oxford shirt", models.CategoryTop, 0.3, []string{"office"}},
	{"knit sweater", models.CategoryTop, 0.7, nil},
	{"hoodie", models.CategoryTop, 0.6, []string{"casual"}},
	{"straight jeans", models.CategoryBottom, 0.4, []string{"casual"}},
	{"slacks", models.CategoryBottom, 0.4, []string{"office"}},
	{"shorts", models.CategoryBottom, 0.1, []string{"casual"}},
	{"trench coat", models.CategoryOuter, 0.6, nil},
	{"puffer jacket", models.CategoryOuter, 0.9, nil},
	{"white sneakers", models.CategoryShoes, 0.3, []string{"casual"}},
	{"loafers", models.CategoryShoes, 0.3, []string{"office"}},
	{"tote bag", models.CategoryBag, 0.2, nil},
	{"simple watch", models.CategoryAccessory, 0.1, nil},
}

// PresetCatalog builds the deterministic starter wardrobe for a completed
// onboarding. Style nudges the lineup a little: dressed-up styles trade the
// hoodie for a cardigan, sporty trades loafers for runners.
func PresetCatalog(owner models.UserAccount, style models.Mood, colorPref string) []models.WardrobeItem {
	formality := FormalityForStyle(style)
	palette := PaletteForPreference(colorPref)
	styleTag := LowerCaser.String(string(style))

	items := make([]models.WardrobeItem, 0, len(presetBlueprints))
	for i, bp := range presetBlueprints {
		name := bp.name
		tags := append([]string{}, bp.tags...)
		switch {
		case name == "hoodie" && (style == models.MoodFormal || style == models.MoodClassic):
			name = "cardigan"
			tags = nil
		case name == "loafers" && style == models.MoodSporty:
			name = "runners"
			tags = []string{"exercise"}
		}
		if styleTag != "" {
			tags = append(tags, styleTag)
		}

		itemFormality := formality
		if hasTag(tags, "office") {
			itemFormality = min(1, formality+0.15)
		}
		if hasTag(tags, "casual") {
			itemFormality = max(0, formality-0.1)
		}

		items = append(items, models.WardrobeItem{
			PublicID:  uuid.NewString(),
			Name:      TitleCaser.String(name),
			Owner:     owner,
			OwnerID:   owner.ID,
			Category:  bp.category,
			Color:     palette[i%len(palette)],
			Tags:      NormalizeTags(tags),
			Warmth:    bp.warmth,
			Formality: itemFormality,
			IsPreset:  true,
		})
	}
	return items
}

func hasTag(tags []string, wanted string) bool {
	for _, t := range tags {
		if t == wanted {
			return true
		}
	}
	return false
}
