package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

type Category string

const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryDress     Category = "dress"
	CategoryOuter     Category = "outer"
	CategoryShoes     Category = "shoes"
	CategorySocks     Category = "socks"
	CategoryAccessory Category = "accessory"
	CategoryBag       Category = "bag"
)

func (c *Category) Scan(value interface{}) error {
	*c = Category(value.(string))
	return nil
}

func (c Category) Value() (string, error) {
	return string(c), nil
}

var categoryPattern = regexp.MustCompile("^(top|bottom|dress|outer|shoes|socks|accessory|bag)$")

func ValidateCategory(fl validator.FieldLevel) bool {
	return categoryPattern.MatchString(fl.Field().String())
}

func ValidateCategoryRaw(value string) bool {
	return categoryPattern.MatchString(value)
}
