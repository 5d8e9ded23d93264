package models

import "time"

type UserAccount struct {
	JsonModel
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Banned   bool   `gorm:"default:false" json:"-"`
	LastIp   string `json:"-"`
	//"STARTED_AUTH", "FINISHED_AUTH"
	Status              string     `json:"-"`
	GoogleID            string     `json:"-"`
	AppleID             string     `json:"-"`
	Platform            Platform   `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`
	ConfirmedDeleteDate *time.Time `json:"-"`
	// Notifications settings
	ReceiveNotifications bool   `json:"receive_notifications"`
	AvatarURL            string `json:"avatar_url"`

	// Onboarding / quick-start answers. Profile values are display-only,
	// the generated preset items carry the actual scoring attributes.
	OnboardingCompleted    bool    `json:"onboarding_completed"`
	OnboardingSkipped      bool    `json:"-"`
	OnboardingStyle        *string `json:"onboarding_style"`
	OnboardingContext      *string `json:"onboarding_context"`
	OnboardingColorPref    *string `json:"onboarding_color_pref"`
	OnboardingWardrobeSize *string `json:"onboarding_wardrobe_size"`
}

type UserPushToken struct {
	JsonModel
	UserAccountID uint
	UserAccount   UserAccount `json:"user_account"`
	Platform      Platform    `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`
	Token         string      `json:"token"`
	Active        bool        `gorm:"default:false" json:"-"`
}

type UserPushIn struct {
	Token    string `json:"token"`
	Platform string `json:"platform" validate:"required,platform"`
}

type UserSettingsIn struct {
	ReceiveNotifications bool `json:"receive_notifications"`
}
