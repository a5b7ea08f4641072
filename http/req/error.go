package req

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xy-planning-network/trailhead"
)

// A ValidationError is an issue with a concrete value not matching the rule set on its field.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`

	// Msg is a human-readable description of the issue.
	Msg string `json:"msg,omitempty"`
}

// ValidationErrors is a set of ValidationError.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msg := fmt.Sprintf("field=%q rule=%q got=%q", err.Field, err.Rule, fmt.Sprint(err.Got))
		msgs = append(msgs, msg)
	}

	return strings.Join(msgs, "\n")
}

// Fields maps each field to the message of its first ValidationError.
func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		if _, ok := fields[err.Field]; ok {
			continue
		}

		fields[err.Field] = err.Msg
	}

	return fields
}

func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	var errs struct {
		E []ValidationError `json:"validationErrors,omitempty"`
	}

	errs.E = append(errs.E, v...)
	return json.Marshal(errs)
}

func (ValidationErrors) Unwrap() error { return trailhead.ErrNotValid }
