package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/studybuddy-team/study-buddy/pkg/ai"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with the custom rules
// registered.
func New() *CustomValidator {
	v := validator.New()

	// youtube_url accepts any URL shape the video id extractor understands.
	_ = v.RegisterValidation("youtube_url", func(fl validator.FieldLevel) bool {
		_, err := ai.ExtractVideoID(fl.Field().String())
		return err == nil
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
