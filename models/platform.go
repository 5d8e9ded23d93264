package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

func (p *Platform) Scan(value interface{}) error {
	*p = Platform(value.(string))
	return nil
}

func (p Platform) Value() (string, error) {
	return string(p), nil
}

// ScanPlatform coerces free-form input to a known platform, defaulting to
// web.
func ScanPlatform(value string) Platform {
	switch Platform(value) {
	case PlatformIOS, PlatformAndroid, PlatformWeb:
		return Platform(value)
	default:
		return PlatformWeb
	}
}

var platformPattern = regexp.MustCompile("^(ios|android|web)$")

func ValidatePlatform(fl validator.FieldLevel) bool {
	return platformPattern.MatchString(fl.Field().String())
}

func ValidatePlatformRaw(value string) bool {
	return platformPattern.MatchString(value)
}
