package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

type Color string

const (
	ColorBlack  Color = "black"
	ColorWhite  Color = "white"
	ColorGray   Color = "gray"
	ColorNavy   Color = "navy"
	ColorBeige  Color = "beige"
	ColorBrown  Color = "brown"
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPink   Color = "pink"
	ColorPurple Color = "purple"
	ColorOther  Color = "other"
)

func (c *Color) Scan(value interface{}) error {
	*c = Color(value.(string))
	return nil
}

func (c Color) Value() (string, error) {
	return string(c), nil
}

// DarkRainColors are the colors that get a small bonus on rainy days.
var DarkRainColors = []Color{ColorBlack, ColorNavy, ColorGray}

var colorPattern = regexp.MustCompile("^(black|white|gray|navy|beige|brown|red|blue|green|yellow|pink|purple|other)$")

func ValidateColor(fl validator.FieldLevel) bool {
	return colorPattern.MatchString(fl.Field().String())
}

func ValidateColorRaw(value string) bool {
	return colorPattern.MatchString(value)
}
