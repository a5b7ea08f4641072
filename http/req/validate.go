package req

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	v10 "github.com/go-playground/validator/v10"
)

// A "password" must run 8 to 64 characters and mix every class in passwordClasses.
const (
	passwordMinLen = 8
	passwordMaxLen = 64
)

var passwordClasses = []*regexp.Regexp{
	regexp.MustCompile(`[a-z]`),
	regexp.MustCompile(`[A-Z]`),
	regexp.MustCompile(`\d`),
	regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`),
}

// newValidate configures v10 to name fields as their payload does and to know "password".
func newValidate() *v10.Validate {
	v := v10.New()
	_ = v.RegisterValidation("password", isPassword)
	v.RegisterTagNameFunc(payloadName)

	return v
}

// payloadName is the field's "json" name, else its "schema" name.
func payloadName(f reflect.StructField) string {
	for _, key := range [...]string{"json", "schema"} {
		if name, _, _ := strings.Cut(f.Tag.Get(key), ","); name != "" && name != "-" {
			return name
		}
	}

	return ""
}

func isPassword(fl v10.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}

	pw := fl.Field().String()
	if n := len([]rune(pw)); n < passwordMinLen || n > passwordMaxLen {
		return false
	}

	for _, class := range passwordClasses {
		if !class.MatchString(pw) {
			return false
		}
	}

	return true
}

// validate runs the "validate" rules of structPtr, reporting failures as ValidationErrors.
func (p *Parser) validate(structPtr any) error {
	var fes v10.ValidationErrors
	if err := p.valid.Struct(structPtr); !errors.As(err, &fes) {
		return err
	}

	verrs := make(ValidationErrors, 0, len(fes))
	for _, fe := range fes {
		// Namespace starts with the struct's own name.
		_, field, found := strings.Cut(fe.Namespace(), ".")
		if !found {
			field = fe.Namespace()
		}

		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}

		verrs = append(verrs, ValidationError{
			Field: field,
			Got:   fe.Value(),
			Rule:  rule + "; " + fe.Type().String(),
			Msg:   message(label(structPtr, fe.StructField()), fe),
		})
	}

	return verrs
}

// label is the "label" struct tag on the named field, or the field's name.
func label(structPtr any, name string) string {
	t := reflect.TypeOf(structPtr)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if f, ok := t.FieldByName(name); ok && f.Tag.Get("label") != "" {
		return f.Tag.Get("label")
	}

	return name
}

// message is what a form shows beside a field failing fe.
func message(label string, fe v10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "eqfield":
		return "Passwords don't match."
	case "password":
		return fmt.Sprintf(
			"%s must be %d to %d characters and include a lowercase letter, an uppercase letter, a number, and a special character.",
			label, passwordMinLen, passwordMaxLen,
		)
	}

	return label + " is not valid."
}
