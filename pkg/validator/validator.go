package validator

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with the media_url rule registered
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("media_url", validateMediaURL)
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// validateMediaURL accepts absolute http and https URLs with a host
func validateMediaURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Messages flattens validation errors into one readable line per field
func Messages(err error) []string {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}

	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			out = append(out, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "media_url":
			out = append(out, fmt.Sprintf("%s must be an http or https URL", fe.Field()))
		default:
			out = append(out, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}
	return out
}
