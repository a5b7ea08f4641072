package logger

import (
	"encoding"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/xy-planning-network/trailhead"
)

var _ encoding.TextMarshaler = LogContext{}

// LogUser exposes who was signed in when something was logged.
// trailhead.User implements it.
type LogUser interface {
	GetID() string
	GetEmail() string
}

// A LogContext carries what a log message cannot say tersely.
type LogContext struct {
	Data    map[string]any
	Error   error
	Request *http.Request
	User    LogUser
}

const redacted = "xxxxxxx"

// Redact copies vals, masking OAuth codes and states and every password field.
func Redact(vals url.Values) url.Values {
	out := make(url.Values, len(vals))
	for k, v := range vals {
		if k == "code" || k == "state" || strings.Contains(strings.ToLower(k), "password") {
			v = []string{redacted}
		}
		out[k] = v
	}

	return out
}

// MarshalText encodes the non-zero fields of lc as JSON.
//
// Only the method, redacted URL, request ID, IP address and redacted form of a Request are kept;
// headers and bodies carry session cookies and passwords.
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if lc.Request != nil {
		m["request"] = requestFields(lc.Request)
	}

	if u := userFields(lc.User); len(u) > 0 {
		m["user"] = u
	}

	return json.Marshal(m)
}

func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return strconv.Quote(err.Error())
	}

	return string(b)
}

func requestFields(r *http.Request) map[string]any {
	u := *r.URL
	u.RawQuery = Redact(u.Query()).Encode()

	f := map[string]any{"method": r.Method, "url": u.String()}
	if id, ok := r.Context().Value(trailhead.RequestIDKey).(string); ok {
		f["id"] = id
	}

	if ip, ok := r.Context().Value(trailhead.IpAddrKey).(string); ok {
		f["ip"] = ip
	}

	if len(r.PostForm) > 0 {
		f["form"] = Redact(r.PostForm)
	}

	return f
}

func userFields(u LogUser) map[string]string {
	if u == nil {
		return nil
	}

	f := make(map[string]string, 2)
	if id := u.GetID(); id != "" {
		f["id"] = id
	}

	if email := u.GetEmail(); email != "" {
		f["email"] = email
	}

	return f
}
