package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/session"
)

// A Fn shapes the Response a Responder method writes.
// Fns apply in the order given; the first to fail stops the response.
type Fn func(*Responder, *Response) error

// A Response collects what Fns decide before a Responder writes it.
type Response struct {
	w      http.ResponseWriter
	r      *http.Request
	code   int
	data   any
	layout string
	pages  []string
	to     *url.URL
	user   *trailhead.User
}

// files lists the templates to parse, the layout first.
func (res *Response) files() []string {
	if res.layout == "" {
		return res.pages
	}

	return append([]string{res.layout}, res.pages...)
}

// Authed renders pages within the signed in layout,
// with currentUser returning the trailhead.User in the request context.
//
// Without a user in the context Authed fails with ErrNoUser.
func Authed() Fn {
	return func(rs *Responder, res *Response) error {
		if rs.layouts.authed == "" {
			return fmt.Errorf("%w: no authed layout", ErrBadConfig)
		}

		u, ok := CurrentUser(res.r.Context())
		if !ok {
			return ErrNoUser
		}

		res.layout, res.user = rs.layouts.authed, &u
		return nil
	}
}

// Unauthed renders pages within the signed out layout.
func Unauthed() Fn {
	return func(rs *Responder, res *Response) error {
		if rs.layouts.unauthed == "" {
			return fmt.Errorf("%w: no unauthed layout", ErrBadConfig)
		}

		res.layout, res.user = rs.layouts.unauthed, nil
		return nil
	}
}

// Code sets the status code.
func Code(c int) Fn {
	return func(_ *Responder, res *Response) error {
		res.code = c
		return nil
	}
}

// Data sets what a page renders as .Data or Json encodes under "data".
func Data(d any) Fn {
	return func(_ *Responder, res *Response) error {
		res.data = d
		return nil
	}
}

// Flash adds flash to the session in the request context,
// shown on the next page rendered for it.
func Flash(flash session.Flash) Fn {
	return func(rs *Responder, res *Response) error {
		s, err := rs.Session(res.r.Context())
		if err != nil {
			return err
		}

		return s.SetFlash(res.w, res.r, flash)
	}
}

// Tmpls adds pages and partials to parse after the layout.
func Tmpls(fps ...string) Fn {
	return func(_ *Responder, res *Response) error {
		res.pages = append(res.pages, fps...)
		return nil
	}
}

// Url sets where Redirect sends the browser.
func Url(u string) Fn {
	return func(_ *Responder, res *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: redirect to %q: %v", ErrInvalid, u, err)
		}

		res.to = parsed
		return nil
	}
}
