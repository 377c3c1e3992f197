package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is shared by the client and the backend so both reject the same drafts.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("rarity", func(fl validator.FieldLevel) bool {
		return Rarity(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("tradestatus", func(fl validator.FieldLevel) bool {
		return TradeStatus(fl.Field().String()).Valid()
	})
	return v
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

// Violation describes one field that failed validation
type Violation struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// Violations flattens a validation error into per-field descriptions.
// Errors that are not validation errors yield a single field-less entry.
func Violations(err error) []Violation {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []Violation{{Violation: "invalid", Message: err.Error()}}
	}

	out := make([]Violation, 0, len(ve))
	for _, fe := range ve {
		out = append(out, Violation{
			Field:     fe.Field(),
			Violation: fe.Tag(),
			Message:   violationMessage(fe),
		})
	}
	return out
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "rarity":
		return fmt.Sprintf("%s must be one of %v", fe.Field(), rarities)
	case "tradestatus":
		return fmt.Sprintf("%s must be one of %v", fe.Field(), tradeStatuses)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}
