package models

import "github.com/lib/pq"

// WardrobeItem is a single garment/accessory in a user's closet. Items are
// never edited in place, an edit is a delete followed by a re-register.
type WardrobeItem struct {
	JsonModel
	PublicID string      `gorm:"uniqueIndex" json:"public_id"`
	Name     string      `json:"name"`
	Owner    UserAccount `json:"-"`
	OwnerID  uint        `json:"-"`

	Category Category       `sql:"type:ENUM('top', 'bottom', 'dress', 'outer', 'shoes', 'socks', 'accessory', 'bag')" json:"category"`
	Color    Color          `json:"color"`
	Tags     pq.StringArray `gorm:"type:text[]" json:"tags"`

	// Subjective 0..1 sliders set at registration time.
	Warmth    float64 `json:"warmth"`
	Formality float64 `json:"formality"`

	// true for the auto-generated quick-start closet, shown as a badge and
	// bulk-deletable, never looked at by the scorer itself.
	IsPreset bool `gorm:"default:false" json:"is_preset"`

	ImageURL *string `json:"image_url"`
	Link     string  `json:"link"`
}
