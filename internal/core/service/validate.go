package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/eduinsight/console-client/internal/core/domain"
	"github.com/eduinsight/console-client/internal/core/ports"
)

var validate = validator.New()

// ValidateLogin checks the login form client-side. It never reaches the
// network: a failure is a *domain.ValidationError.
func ValidateLogin(in ports.LoginInput) error {
	if in.UniversityID <= 0 {
		return &domain.ValidationError{Message: "Select your university first"}
	}
	return structError(in)
}

// ValidateBootstrap checks the admin auto-setup payload before submission.
func ValidateBootstrap(in ports.BootstrapInput) error {
	return structError(in)
}

// structError converts validator failures into a single human-readable
// ValidationError.
func structError(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return &domain.ValidationError{Message: strings.Join(msgs, "; ")}
	}
	return err
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
