package resp

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/http/template"
	"github.com/xy-planning-network/trailhead/logger"
)

func TestResponderWithAuthTemplate(t *testing.T) {
	expected := "test.tmpl"
	d := NewResponder(WithAuthTemplate(expected))
	require.Equal(t, expected, d.layouts.authed)
}

func TestResponderWithContactErrMsg(t *testing.T) {
	require.Equal(t, session.DefaultErrMsg, NewResponder().contact)

	expected := fmt.Sprintf(session.ContactUsErr, "us@example.com")
	d := NewResponder(WithContactErrMsg(expected))
	require.Equal(t, expected, d.contact)
}

func TestResponderWithErrTemplate(t *testing.T) {
	require.Equal(t, template.ErrorTmpl, NewResponder().layouts.err)

	// Arrange
	p := template.NewParser(template.WithFS(fstest.MapFS{
		"oops.tmpl": {Data: []byte(`oops: {{ .Contact }}`)},
	}))
	d := NewResponder(
		WithErrTemplate("oops.tmpl"),
		WithContactErrMsg("call us"),
		WithLogger(logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))),
		WithParser(p),
	)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	d.Err(w, r, ErrMissingData)

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "oops: call us", w.Body.String())
}

func TestResponderWithLogger(t *testing.T) {
	expected := logger.New(logger.WithLevel(logger.LogLevelError))
	d := NewResponder(WithLogger(expected))
	require.Equal(t, expected, d.log)
}

func TestResponderWithParser(t *testing.T) {
	// Arrange
	p := template.NewParser(template.WithFS(fstest.MapFS{
		"fns.tmpl": {Data: []byte(`{{ with currentUser }}{{ .Name }}{{ else }}nobody{{ end }}`)},
	}))

	// Act
	d := NewResponder(WithParser(p))
	tmpl, err := d.parser.Parse("fns.tmpl")

	// Assert
	require.Nil(t, err)

	b := new(bytes.Buffer)
	require.Nil(t, tmpl.Execute(b, nil))
	require.Equal(t, "nobody", b.String())
}

func TestResponderWithRootUrl(t *testing.T) {
	tcs := []struct {
		name     string
		url      string
		expected string
	}{
		{"Zero-Value", "", "/"},
		{"Garbage", "not a url", "/"},
		{"Example", "https://example.com", "https://example.com"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			d := NewResponder(WithRootUrl(tc.url))
			require.Equal(t, tc.expected, d.root.String())
		})
	}
}

func TestResponderWithUnauthTemplate(t *testing.T) {
	expected := "test.tmpl"
	d := NewResponder(WithUnauthTemplate(expected))
	require.Equal(t, expected, d.layouts.unauthed)
}
