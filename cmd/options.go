package cmd

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// options holds the flag and argument values for one run.
type options struct {
	InputFile   string   `flag:"input-file" validate:"required"`
	MaxPerGroup int      `flag:"--max-per-group" validate:"min=1"`
	Output      string   `flag:"--output" validate:"oneof=json yaml text"`
	Paths       []string `flag:"--path" validate:"dive,required"`
	Verbose     bool     `flag:"--verbose"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report flag names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("flag"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks option values and returns the first problem as a
// user-facing error.
func (o *options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating options: %w", err)
	}
	return describe(verrs[0])
}

func describe(fe validator.FieldError) error {
	name := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must not be empty", name)
	case "min":
		return fmt.Errorf("invalid %s %v: must be at least %s", name, fe.Value(), fe.Param())
	case "oneof":
		return fmt.Errorf("invalid %s %q: must be one of %s", name, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Errorf("invalid %s: failed %q check", name, fe.Tag())
	}
}
