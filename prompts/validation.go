package prompts

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance used across the package.
var validate *validator.Validate

func init() {
	validate = validator.New()

	// template_syntax passes when the engine's structural validation finds
	// no defects.
	if err := validate.RegisterValidation("template_syntax", validateTemplateSyntax); err != nil {
		panic(fmt.Sprintf("failed to register template_syntax validator: %v", err))
	}
}

func validateTemplateSyntax(fl validator.FieldLevel) bool {
	return len(Validate(fl.Field().String())) == 0
}

// ValidateStruct checks the given struct against its validation tags.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// RegisterCustomValidation registers an additional validation tag with the
// shared validator.
func RegisterCustomValidation(tag string, fn validator.Func) error {
	return validate.RegisterValidation(tag, fn)
}
