package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"

	"github.com/umbrellio/gbot/internal/apperrors"
)

var validatorInstance = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})
	return v
}

// Validate checks cfg and reports every invalid field in one
// *apperrors.ConfigurationError.
func Validate(cfg *Config) error {
	err := validatorInstance.Struct(cfg)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewConfigurationError("failed to validate config", err)
	}

	problems := make([]string, len(validationErrors))
	for i, fe := range validationErrors {
		problems[i] = describe(fe)
	}
	return apperrors.NewConfigurationError(strings.Join(problems, "; "), nil)
}

// RequireWebhook fails when there is nowhere to send the digest.
func (c *Config) RequireWebhook() error {
	if c.Messenger.Webhook == "" {
		return apperrors.NewConfigurationError("missing webhook", ErrNoWebhook)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "glob":
		return fmt.Sprintf("%s is not a valid path pattern", field)
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}
