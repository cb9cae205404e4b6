package forms

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"betsense/internal/gateway"
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
	_ = v.RegisterValidation("finite", gateway.Finite)
	return v
}

// FieldErrors maps a JSON field name to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "invalid form"
}

func (e FieldErrors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// check runs struct validation and renders failures with msgs, keyed by
// "field.tag" then "field". Unlisted failures use the generic wording.
func check(form any, msgs map[string]string) FieldErrors {
	out := FieldErrors{}
	err := validate.Struct(form)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.add("_", err.Error())
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		if m, ok := msgs[field+"."+fe.Tag()]; ok {
			out.add(field, m)
			continue
		}
		if m, ok := msgs[field]; ok {
			out.add(field, m)
			continue
		}
		out.add(field, gateway.Message(fe))
	}
	return out
}

func orNil(errs FieldErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
