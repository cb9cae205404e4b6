package gateway

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"betsense/internal/models"
)

var (
	ErrInvalidInput    = errors.New("invalid contract input")
	ErrMalformedOutput = errors.New("malformed model output")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", Finite)
	return v
}

// Finite is the "finite" tag: float fields must not be NaN or infinite.
func Finite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		return models.Finite(fl.Field().Float())
	default:
		return true
	}
}

// ValidationError lists the offending fields of a contract input by JSON name.
type ValidationError struct {
	Contract string
	Fields   map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", e.Contract, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func validateInput(contract string, in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%s: %w", contract, ErrInvalidInput)
	}
	return &ValidationError{Contract: contract, Fields: FieldMessages(verrs)}
}

func validateOutput(contract string, out any) error {
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%s: %w: %v", contract, ErrMalformedOutput, err)
	}
	return nil
}

// FieldMessages renders validator errors as {field: message}, using the
// namespace below the top-level struct ("currentBetContext.sport").
func FieldMessages(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out[field] = Message(fe)
	}
	return out
}

func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "finite":
		return "must be a finite number"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}

// ValidateInput checks a contract input without calling an analyst. The
// error is a *ValidationError when fields fail.
func ValidateInput(contract string, in any) error {
	return validateInput(contract, in)
}
