package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"
)

// A Response normalizes what the backend returned.
type Response[T any] struct {
	// Data is the decoded body.
	// It is the zero-value of T for 204s and bodies that are not JSON.
	Data T

	// Status is the HTTP status code.
	Status int

	// OK reports whether Status is in the 2xx range.
	OK bool

	// Message is the human-readable reason the backend attached to a body, if any.
	Message string
}

// Empty is the Data of calls whose body carries nothing of use.
type Empty struct{}

// SignInResult is what the backend answers a successful sign in with.
type SignInResult struct {
	UserID       string `json:"userId"`
	SessionToken string `json:"sessionToken"`
}

// messageKeys are tried in order to find a human-readable reason in a body.
var messageKeys = []string{"message", "error.message", "error"}

func newResponse[T any](status int, body []byte) Response[T] {
	res := Response[T]{Status: status, OK: status >= 200 && status < 300}
	if status == http.StatusNoContent || len(body) == 0 || !gjson.ValidBytes(body) {
		return res
	}

	for _, k := range messageKeys {
		if v := gjson.GetBytes(body, k); v.Exists() && v.Type == gjson.String {
			res.Message = v.String()
			break
		}
	}

	var data T
	if err := json.Unmarshal(body, &data); err != nil {
		return res
	}
	res.Data = data

	return res
}
