package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sync"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/http/template"
	"github.com/xy-planning-network/trailhead/logger"
)

// A Responder writes every response trailhead's handlers make:
//
//	Html     a page within the signed in or signed out layout
//	Json     {"data": ...}
//	Redirect a 3xx to a Url or the root URL
//
// A page that cannot render becomes the error page instead, see Err.
type Responder struct {
	log     logger.Logger
	parser  template.Parser
	bufs    sync.Pool
	contact string
	root    *url.URL

	layouts struct {
		authed   string
		unauthed string
		err      string
	}
}

// NewResponder builds a *Responder. Without WithLogger it logs through logger.New,
// without WithRootUrl it redirects to "/".
func NewResponder(opts ...ResponderOptFn) *Responder {
	rs := &Responder{
		bufs:    sync.Pool{New: func() any { return new(bytes.Buffer) }},
		contact: session.DefaultErrMsg,
		root:    &url.URL{Path: "/"},
	}
	rs.layouts.err = template.ErrorTmpl

	for _, opt := range opts {
		opt(rs)
	}

	if rs.log == nil {
		rs.log = logger.New()
	}

	return rs
}

// CurrentUser retrieves the trailhead.User middleware.Bridge stored in ctx.
func CurrentUser(ctx context.Context) (trailhead.User, bool) {
	u, ok := ctx.Value(trailhead.CurrentUserKey).(trailhead.User)
	return u, ok
}

// Session retrieves the session middleware.InjectSession stored in ctx.
func (rs *Responder) Session(ctx context.Context) (session.TrailheadSessionable, error) {
	val := ctx.Value(trailhead.SessionKey)
	if val == nil {
		return nil, fmt.Errorf("%w: no session under %q", ErrNotFound, trailhead.SessionKey)
	}

	s, ok := val.(session.TrailheadSessionable)
	if !ok {
		return nil, fmt.Errorf("%w: session is %T", ErrInvalid, val)
	}

	return s, nil
}

// Err logs err and shows the error page with a 500.
// Use it when neither a page nor a redirect can answer r.
func (rs *Responder) Err(w http.ResponseWriter, r *http.Request, err error) {
	_ = rs.errPage(w, r, err)
}

// Html parses the layout and pages chosen by Authed, Unauthed and Tmpls,
// then executes the layout with
//
//	.Data    set by Data
//	.Flashes the session's flashes, now consumed
//
// Anything going wrong renders the error page instead; Html returns why.
func (rs *Responder) Html(w http.ResponseWriter, r *http.Request, fns ...Fn) error {
	res, err := rs.build(w, r, fns)
	if err != nil {
		return rs.errPage(w, r, err)
	}

	if rs.parser == nil {
		return rs.errPage(w, r, fmt.Errorf("%w: no template parser", ErrBadConfig))
	}

	files := res.files()
	if len(files) == 0 {
		return rs.errPage(w, r, fmt.Errorf("%w: no templates to render", ErrMissingData))
	}

	tmpl, err := rs.parser.Parse(files...)
	if err != nil {
		return rs.errPage(w, r, err)
	}

	if res.user != nil {
		tmpl = template.WithUser(tmpl, *res.user)
	}

	page := struct {
		Data    any
		Flashes []session.Flash
	}{Data: res.data}

	if s, err := rs.Session(r.Context()); err == nil {
		page.Flashes = s.Flashes(w, r)
	}

	b := rs.buffer()
	defer rs.bufs.Put(b)

	if err := tmpl.ExecuteTemplate(b, path.Base(files[0]), page); err != nil {
		return rs.errPage(w, r, fmt.Errorf("executing %s: %w", files[0], err))
	}

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	if res.code != 0 {
		w.WriteHeader(res.code)
	}

	_, err = b.WriteTo(w)
	return err
}

// Json writes {"data": ...} with the Code given, 200 by default.
func (rs *Responder) Json(w http.ResponseWriter, r *http.Request, fns ...Fn) error {
	res, err := rs.build(w, r, fns)
	if err != nil {
		return err
	}

	b := rs.buffer()
	defer rs.bufs.Put(b)

	if err := json.NewEncoder(b).Encode(struct {
		Data any `json:"data,omitempty"`
	}{res.data}); err != nil {
		rs.Err(w, r, err)
		return err
	}

	if res.code == 0 {
		res.code = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(res.code)
	_, err = b.WriteTo(w)
	return err
}

// Redirect sends the browser to the Url given, or the root URL.
// A Code outside 3xx becomes a 302.
func (rs *Responder) Redirect(w http.ResponseWriter, r *http.Request, fns ...Fn) error {
	res, err := rs.build(w, r, fns)
	if err != nil {
		return err
	}

	to := res.to
	if to == nil {
		to = rs.root
	}

	code := res.code
	if code < http.StatusMultipleChoices || code > http.StatusPermanentRedirect {
		code = http.StatusFound
	}

	http.Redirect(w, r, to.String(), code)
	return nil
}

// build applies fns in order, stopping at the first to fail
// or when the client has gone away.
func (rs *Responder) build(w http.ResponseWriter, r *http.Request, fns []Fn) (*Response, error) {
	if r.Context().Err() != nil {
		return nil, ErrDone
	}

	res := &Response{w: w, r: r}
	for _, fn := range fns {
		if err := fn(rs, res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// errPage logs err then renders the error page with the contact message and a 500,
// falling back to plain text when that page cannot render either.
func (rs *Responder) errPage(w http.ResponseWriter, r *http.Request, err error) error {
	lc := &logger.LogContext{Request: r, Error: err}
	if u, ok := CurrentUser(r.Context()); ok {
		lc.User = u
	}

	if err != nil {
		rs.log.Error(err.Error(), lc)
	}

	if rs.parser == nil || rs.layouts.err == "" {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	b := rs.buffer()
	defer rs.bufs.Put(b)

	tmpl, nested := rs.parser.Parse(rs.layouts.err)
	if nested == nil {
		nested = tmpl.Execute(b, map[string]any{"Contact": rs.contact})
	}

	if nested != nil {
		rs.log.Error(nested.Error(), &logger.LogContext{Request: r, Error: nested})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = b.WriteTo(w)
	return err
}

func (rs *Responder) buffer() *bytes.Buffer {
	b := rs.bufs.Get().(*bytes.Buffer)
	b.Reset()
	return b
}
