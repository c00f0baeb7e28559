// Package validation checks typed request commands against the rules declared in
// their `validate` struct tags and reports every failing field at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"taskmate/internal/models"
)

// FieldErrors maps a form field name to a human readable message.
type FieldErrors map[string]string

// FormErrorKey holds errors that do not belong to a single field.
const FormErrorKey = "_form"

// bcrypt only looks at the first 72 bytes of a password.
const maxPasswordBytes = 72

var (
	validate *validator.Validate
	once     sync.Once
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(fieldName)
		mustRegister(v, "notblank", validators.NotBlank)
		mustRegister(v, "category", func(fl validator.FieldLevel) bool {
			_, err := models.ParseCategory(fl.Field().String())
			return err == nil
		})
		mustRegister(v, "deadline", func(fl validator.FieldLevel) bool {
			_, err := models.ParseDeadline(fl.Field().String())
			return err == nil
		})
		mustRegister(v, "pwbytes", func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) <= maxPasswordBytes
		})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// fieldName reports errors under the form field name, falling back to the json name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct validates s and returns nil when every rule passes.
func Struct(s any) FieldErrors {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{FormErrorKey: err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	label := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
	case "pwbytes":
		return fmt.Sprintf("%s must be at most %d bytes long", label, maxPasswordBytes)
	case "category":
		names := make([]string, len(models.Categories))
		for i, c := range models.Categories {
			names[i] = string(c)
		}
		return fmt.Sprintf("%s must be one of %s", label, strings.Join(names, ", "))
	case "deadline":
		return fmt.Sprintf("%s must be a date or date-time", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// label turns "task_id" into "Task id".
func label(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
