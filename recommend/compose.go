package recommend

import (
	"fmt"
	"strings"

	"ootdapi/models"
)

// Outfit is one pick per slot. A nil slot means the wardrobe had no
// candidate for it. An outfit is either separates-based or dress-based:
// Dress is never populated together with Top or Bottom.
type Outfit struct {
	Outer     *models.WardrobeItem `json:"outer"`
	Top       *models.WardrobeItem `json:"top"`
	Bottom    *models.WardrobeItem `json:"bottom"`
	Dress     *models.WardrobeItem `json:"dress"`
	Shoes     *models.WardrobeItem `json:"shoes"`
	Bag       *models.WardrobeItem `json:"bag"`
	Accessory *models.WardrobeItem `json:"accessory"`
}

// dressDivisor biases the dress-vs-separates decision toward separates:
// a dress replaces top+bottom only when it scores more than their combined
// score divided by this.
const dressDivisor = 1.8

// Compose picks the best item per slot for the given context. Socks are
// tracked in the wardrobe but have no outfit slot. An empty item list
// yields an all-empty outfit.
func Compose(items []models.WardrobeItem, ctx Context) Outfit {
	best := map[models.Category]*models.WardrobeItem{}
	bestScore := map[models.Category]float64{}
	for i := range items {
		item := &items[i]
		s := ScoreItem(*item, ctx)
		if _, ok := best[item.Category]; !ok || s > bestScore[item.Category] {
			best[item.Category] = item
			bestScore[item.Category] = s
		}
	}

	o := Outfit{
		Outer:     best[models.CategoryOuter],
		Top:       best[models.CategoryTop],
		Bottom:    best[models.CategoryBottom],
		Dress:     best[models.CategoryDress],
		Shoes:     best[models.CategoryShoes],
		Bag:       best[models.CategoryBag],
		Accessory: best[models.CategoryAccessory],
	}

	if o.Dress != nil {
		separates := 0.0
		if o.Top != nil {
			separates += bestScore[models.CategoryTop]
		}
		if o.Bottom != nil {
			separates += bestScore[models.CategoryBottom]
		}
		if bestScore[models.CategoryDress] > separates/dressDivisor {
			o.Top = nil
			o.Bottom = nil
		} else {
			o.Dress = nil
		}
	}

	return o
}

// EmptyOutfitText is rendered when no slot could be filled.
const EmptyOutfitText = "Register some items to your closet first!"

var slotLabels = []struct {
	label string
	pick  func(Outfit) *models.WardrobeItem
}{
	{"Outer", func(o Outfit) *models.WardrobeItem { return o.Outer }},
	{"Top", func(o Outfit) *models.WardrobeItem { return o.Top }},
	{"Bottom", func(o Outfit) *models.WardrobeItem { return o.Bottom }},
	{"Dress", func(o Outfit) *models.WardrobeItem { return o.Dress }},
	{"Shoes", func(o Outfit) *models.WardrobeItem { return o.Shoes }},
	{"Bag", func(o Outfit) *models.WardrobeItem { return o.Bag }},
	{"Accessory", func(o Outfit) *models.WardrobeItem { return o.Accessory }},
}

// RenderOutfitText formats an outfit as a plain-text list, one populated
// slot per line.
func RenderOutfitText(o Outfit) string {
	var lines []string
	for _, slot := range slotLabels {
		item := slot.pick(o)
		if item == nil {
			continue
		}
		line := fmt.Sprintf("- %s: %s (%s)", slot.label, item.Name, item.Color)
		if item.IsPreset {
			line += " (preset)"
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return EmptyOutfitText
	}
	return strings.Join(lines, "\n")
}

// Items returns the populated slots in display order, for persistence and
// prompts.
func (o Outfit) Items() []models.WardrobeItem {
	var out []models.WardrobeItem
	for _, slot := range slotLabels {
		if item := slot.pick(o); item != nil {
			out = append(out, *item)
		}
	}
	return out
}
