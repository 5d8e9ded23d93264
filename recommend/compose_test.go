package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ootdapi/models"
)

func TestComposeEmptyWardrobe(t *testing.T) {
	ctx := NewContext(fp(20), nil, models.OccasionOuting, nil, 0.5)

	outfit := Compose(nil, ctx)

	assert.Nil(t, outfit.Outer)
	assert.Nil(t, outfit.Top)
	assert.Nil(t, outfit.Bottom)
	assert.Nil(t, outfit.Dress)
	assert.Nil(t, outfit.Shoes)
	assert.Nil(t, outfit.Bag)
	assert.Nil(t, outfit.Accessory)
	assert.Equal(t, EmptyOutfitText, RenderOutfitText(outfit))
}

func TestComposePicksBestPerSlot(t *testing.T) {
	ctx := NewContext(fp(-2), nil, models.OccasionOther, nil, 0.5)

	items := []models.WardrobeItem{
		makeItem("parka", models.CategoryOuter, models.ColorBlack, 0.95, 0.5),
		makeItem("windbreaker", models.CategoryOuter, models.ColorBlue, 0.3, 0.4),
		makeItem("boots", models.CategoryShoes, models.ColorBrown, 0.8, 0.5),
	}

	outfit := Compose(items, ctx)

	require.NotNil(t, outfit.Outer)
	assert.Equal(t, "parka", outfit.Outer.PublicID)
	require.NotNil(t, outfit.Shoes)
	assert.Equal(t, "boots", outfit.Shoes.PublicID)
	assert.Nil(t, outfit.Top)
	assert.Nil(t, outfit.Bag)
}

func TestComposeDressWinsOverWeakSeparates(t *testing.T) {
	ctx := NewContext(nil, nil, models.OccasionOther, nil, 0.9)

	items := []models.WardrobeItem{
		makeItem("slip-dress", models.CategoryDress, models.ColorBlack, 0.4, 0.9),
		makeItem("old-tee", models.CategoryTop, models.ColorGray, 0.3, 0.0),
		makeItem("sweatpants", models.CategoryBottom, models.ColorGray, 0.4, 0.0),
	}

	outfit := Compose(items, ctx)

	require.NotNil(t, outfit.Dress)
	assert.Equal(t, "slip-dress", outfit.Dress.PublicID)
	assert.Nil(t, outfit.Top)
	assert.Nil(t, outfit.Bottom)
}

func TestComposeSeparatesWinOverWeakDress(t *testing.T) {
	ctx := NewContext(nil, nil, models.OccasionOther, nil, 0.9)

	items := []models.WardrobeItem{
		makeItem("beach-dress", models.CategoryDress, models.ColorYellow, 0.1, 0.0),
		makeItem("silk-blouse", models.CategoryTop, models.ColorWhite, 0.3, 0.9),
		makeItem("slacks", models.CategoryBottom, models.ColorBlack, 0.4, 0.9),
	}

	outfit := Compose(items, ctx)

	assert.Nil(t, outfit.Dress)
	require.NotNil(t, outfit.Top)
	assert.Equal(t, "silk-blouse", outfit.Top.PublicID)
	require.NotNil(t, outfit.Bottom)
	assert.Equal(t, "slacks", outfit.Bottom.PublicID)
}

func TestComposeSlotExclusivity(t *testing.T) {
	contexts := []Context{
		NewContext(fp(-5), fp(80), models.OccasionWork, []string{"formal"}, 0.8),
		NewContext(fp(30), fp(0), models.OccasionOuting, []string{"casual"}, 0.2),
		NewContext(nil, nil, models.OccasionDate, nil, 0.5),
	}
	items := []models.WardrobeItem{
		makeItem("dress-a", models.CategoryDress, models.ColorBlack, 0.5, 0.7),
		makeItem("dress-b", models.CategoryDress, models.ColorPink, 0.2, 0.4),
		makeItem("top-a", models.CategoryTop, models.ColorWhite, 0.3, 0.6),
		makeItem("bottom-a", models.CategoryBottom, models.ColorNavy, 0.4, 0.6),
		makeItem("coat", models.CategoryOuter, models.ColorGray, 0.8, 0.5),
	}

	for _, ctx := range contexts {
		outfit := Compose(items, ctx)
		if outfit.Dress != nil {
			assert.Nil(t, outfit.Top)
			assert.Nil(t, outfit.Bottom)
		}
		assert.NotNil(t, outfit.Outer)
	}
}

func TestComposeDeterministic(t *testing.T) {
	ctx := NewContext(fp(12), fp(60), models.OccasionWork, []string{"minimal"}, 0.6)
	items := []models.WardrobeItem{
		makeItem("shirt-a", models.CategoryTop, models.ColorWhite, 0.3, 0.6),
		makeItem("shirt-b", models.CategoryTop, models.ColorBlue, 0.3, 0.6),
		makeItem("chinos", models.CategoryBottom, models.ColorBeige, 0.4, 0.5),
	}

	first := Compose(items, ctx)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compose(items, ctx))
	}
}

func TestRenderOutfitText(t *testing.T) {
	top := makeItem("white-shirt", models.CategoryTop, models.ColorWhite, 0.3, 0.6)
	top.Name = "White shirt"
	shoes := makeItem("loafers", models.CategoryShoes, models.ColorBrown, 0.3, 0.7)
	shoes.Name = "Loafers"
	shoes.IsPreset = true

	text := RenderOutfitText(Outfit{Top: &top, Shoes: &shoes})

	assert.Equal(t, "- Top: White shirt (white)\n- Shoes: Loafers (brown) (preset)", text)
}
