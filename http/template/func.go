package template

import (
	html "html/template"
	"net/url"

	"github.com/google/uuid"
)

// CurrentUserFn names the function a page calls for the signed in user.
const CurrentUserFn = "currentUser"

// pageFuncs builds the functions every page may call.
func pageFuncs(root *url.URL) html.FuncMap {
	var base string
	if root != nil {
		base = root.String()
	}

	return html.FuncMap{
		CurrentUserFn: func() any { return nil },
		"nonce":       uuid.NewString,
		"rootUrl":     func() string { return base },
	}
}

// WithUser rebinds currentUser on tmpl so it returns u.
func WithUser(tmpl *html.Template, u any) *html.Template {
	return tmpl.Funcs(html.FuncMap{CurrentUserFn: func() any { return u }})
}
