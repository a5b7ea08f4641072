package req_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/req"
)

func TestParserParseBody(t *testing.T) {
	// Arrange
	parser := req.NewParser()

	var actual req.ValidationErrors

	type test struct {
		A string `json:"a,omitempty" validate:"required"`
		B int64  `json:"b" validate:"gt=10,required"`
		C struct {
			Nested bool `json:"nested" validate:"eq=true"`
		} `json:"c"`
		F string `json:"-"`
	}
	var input, output test

	b := new(bytes.Buffer)
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err := parser.ParseBody(b, struct{}{})

	// Assert
	require.ErrorIs(t, err, trailhead.ErrBadAny)

	// Arrange
	b.Reset()
	b.WriteByte('\x00')

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.ErrorIs(t, err, trailhead.ErrBadFormat)

	// Arrange
	expected := req.ValidationErrors{
		{Field: "a", Got: "", Rule: "required; string", Msg: "A is required."},
		{Field: "b", Got: int64(0), Rule: "gt=10; int64", Msg: "B is not valid."},
		{Field: "c.nested", Got: false, Rule: "eq=true; bool", Msg: "Nested is not valid."},
	}

	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.ErrorIs(t, err, trailhead.ErrNotValid)
	require.Equal(t, input, output)
	require.ErrorAs(t, err, &actual)
	require.Equal(t, expected, actual)

	// Arrange
	input.A = "hello"
	input.B = 20
	input.C.Nested = true
	input.F = "ignore"

	b = new(bytes.Buffer)
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.Nil(t, err)
	require.Equal(t, input.A, output.A)
	require.Equal(t, input.B, output.B)
	require.Equal(t, input.C, output.C)
	require.Equal(t, "", output.F)
}

func TestParserParseQueryParams(t *testing.T) {
	// Arrange
	parser := req.NewParser()
	u := make(url.Values)

	// Act
	err := parser.ParseQueryParams(u, struct{}{})

	// Assert
	require.ErrorIs(t, err, trailhead.ErrBadAny)

	// Act
	err = parser.ParseQueryParams(u, new(struct {
		A string `schema:"a,required"`
	}))

	// Assert
	require.ErrorIs(t, err, trailhead.ErrNotImplemented)

	// Arrange
	type test struct {
		A string   `schema:"a" validate:"required"`
		B int64    `schema:"b" validate:"gt=10,required"`
		C []string `schema:"c" validate:"len=2,required"`
		D string   `schema:"-"`
	}

	u.Set("a", "test")
	u.Set("b", "test")

	var actual req.ValidationErrors

	// Act
	err = parser.ParseQueryParams(u, new(test))

	// Assert
	require.ErrorIs(t, err, trailhead.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Len(t, actual, 1)
	require.Equal(t, "b", actual[0].Field)
	require.Equal(t, "bad value at index 0", actual[0].Got)
	require.Equal(t, "must be int64", actual[0].Rule)

	// Arrange
	u.Set("b", "1")
	u.Add("c", "1")

	// Act
	err = parser.ParseQueryParams(u, new(test))

	// Assert
	require.ErrorIs(t, err, trailhead.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Len(t, actual, 2)
	require.Equal(t, "gt=10; int64", actual[0].Rule)
	require.Equal(t, "len=2; []string", actual[1].Rule)

	// Arrange
	u.Set("b", "20")
	u.Add("c", "2")
	u.Set("d", "ignore")
	actualVal := new(test)

	// Act
	err = parser.ParseQueryParams(u, actualVal)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "test", actualVal.A)
	require.Equal(t, int64(20), actualVal.B)
	require.Equal(t, []string{"1", "2"}, actualVal.C)
	require.Equal(t, "", actualVal.D)
}

type passwordForm struct {
	New     string `schema:"newPassword" label:"Password" validate:"required,password"`
	Confirm string `schema:"confirmPassword" label:"Confirm password" validate:"required,eqfield=New"`
}

func TestParserParseForm(t *testing.T) {
	tcs := []struct {
		name     string
		form     url.Values
		expected map[string]string
	}{
		{
			name:     "Valid",
			form:     url.Values{"newPassword": {"Abcdef1!"}, "confirmPassword": {"Abcdef1!"}},
			expected: nil,
		},
		{
			name: "Missing",
			form: url.Values{},
			expected: map[string]string{
				"newPassword":     "Password is required.",
				"confirmPassword": "Confirm password is required.",
			},
		},
		{
			name: "Mismatch",
			form: url.Values{"newPassword": {"Abcdef1!"}, "confirmPassword": {"Abcdef1?"}},
			expected: map[string]string{
				"confirmPassword": "Passwords don't match.",
			},
		},
		{"Too-Short", url.Values{"newPassword": {"Ab1!"}, "confirmPassword": {"Ab1!"}}, map[string]string{"newPassword": ""}},
		{"Too-Long", url.Values{"newPassword": {"Ab1!" + strings.Repeat("a", 61)}, "confirmPassword": {"Ab1!" + strings.Repeat("a", 61)}}, map[string]string{"newPassword": ""}},
		{"No-Lower", url.Values{"newPassword": {"ABCDEF1!"}, "confirmPassword": {"ABCDEF1!"}}, map[string]string{"newPassword": ""}},
		{"No-Upper", url.Values{"newPassword": {"abcdef1!"}, "confirmPassword": {"abcdef1!"}}, map[string]string{"newPassword": ""}},
		{"No-Digit", url.Values{"newPassword": {"Abcdefg!"}, "confirmPassword": {"Abcdefg!"}}, map[string]string{"newPassword": ""}},
		{"No-Special", url.Values{"newPassword": {"Abcdefg1"}, "confirmPassword": {"Abcdefg1"}}, map[string]string{"newPassword": ""}},
	}

	parser := req.NewParser()
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodPost, "https://example.com/profile/password", strings.NewReader(tc.form.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			actual := new(passwordForm)

			// Act
			err := parser.ParseForm(r, actual)

			// Assert
			if tc.expected == nil {
				require.Nil(t, err)
				require.Equal(t, tc.form.Get("newPassword"), actual.New)
				return
			}

			var verrs req.ValidationErrors
			require.ErrorAs(t, err, &verrs)

			fields := verrs.Fields()
			require.Len(t, fields, len(tc.expected))
			for field, msg := range tc.expected {
				require.Contains(t, fields, field)
				if msg != "" {
					require.Equal(t, msg, fields[field])
				}
			}
		})
	}
}
