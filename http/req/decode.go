package req

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/trailhead"
)

// fromSchema sorts gorilla/schema's errors into ValidationErrors for bad values
// and trailhead errors for structs the decoder cannot fill.
func fromSchema(err error) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return fmt.Errorf("%w: %s", trailhead.ErrBadFormat, err)
	}

	var verrs ValidationErrors
	for _, e := range multi {
		var (
			conv    schema.ConversionError
			empty   schema.EmptyFieldError
			unknown schema.UnknownKeyError
		)

		switch {
		case errors.As(e, &conv):
			verrs = append(verrs, ValidationError{
				Field: conv.Key,
				Got:   fmt.Sprintf("bad value at index %d", max(0, conv.Index)),
				Rule:  "must be " + conv.Type.String(),
				Msg:   "Enter a valid value.",
			})
		case errors.As(e, &unknown):
			verrs = append(verrs, ValidationError{Field: unknown.Key, Got: "value is set", Rule: "unexpected key should not be set"})
		case errors.As(e, &empty):
			return fmt.Errorf(`%w: mark required fields with validate:"required", not schema`, trailhead.ErrNotImplemented)
		case strings.Contains(e.Error(), "converter not found"):
			return fmt.Errorf("%w: %s", trailhead.ErrNotImplemented, e)
		default:
			return fmt.Errorf("%w: %s", trailhead.ErrUnexpected, e)
		}
	}

	return verrs
}
