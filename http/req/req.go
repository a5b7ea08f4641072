package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"

	v10 "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/xy-planning-network/trailhead"
)

// A Parser fills structs from JSON bodies, forms and query strings, then validates them.
// It is safe for concurrent use.
type Parser struct {
	forms *schema.Decoder
	valid *v10.Validate
}

func NewParser() *Parser {
	forms := schema.NewDecoder()
	forms.IgnoreUnknownKeys(true)

	return &Parser{forms: forms, valid: newValidate()}
}

// ParseBody decodes the JSON in body into structPtr and validates it.
// Failed rules return ValidationErrors, which wrap trailhead.ErrNotValid.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	err := json.NewDecoder(body).Decode(structPtr)

	var notPtr *json.InvalidUnmarshalError
	switch {
	case errors.As(err, &notPtr):
		return fmt.Errorf("%w: ParseBody into %T", trailhead.ErrBadAny, structPtr)
	case err != nil:
		return fmt.Errorf("%w: decoding body: %s", trailhead.ErrBadFormat, err)
	}

	return p.checked(structPtr)
}

// ParseForm decodes the urlencoded form posted in r, ignoring its query string,
// into structPtr and validates it.
func (p *Parser) ParseForm(r *http.Request, structPtr any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: parsing form: %s", trailhead.ErrBadFormat, err)
	}

	return p.parseValues(r.PostForm, structPtr)
}

// ParseQueryParams decodes params into structPtr and validates it.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	return p.parseValues(params, structPtr)
}

func (p *Parser) parseValues(vals url.Values, structPtr any) error {
	if t := reflect.TypeOf(structPtr); t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T is not a pointer to a struct", trailhead.ErrBadAny, structPtr)
	}

	if err := p.forms.Decode(structPtr, vals); err != nil {
		return fromSchema(err)
	}

	return p.checked(structPtr)
}

func (p *Parser) checked(structPtr any) error {
	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("validating %T: %w", structPtr, err)
	}

	return nil
}
