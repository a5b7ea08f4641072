package resp

import (
	"net/url"

	"github.com/xy-planning-network/trailhead/http/template"
	"github.com/xy-planning-network/trailhead/logger"
)

// A ResponderOptFn configures a *Responder in NewResponder.
type ResponderOptFn func(*Responder)

// WithAuthTemplate sets the layout Authed pages render within.
func WithAuthTemplate(fp string) ResponderOptFn {
	return func(rs *Responder) { rs.layouts.authed = fp }
}

// WithContactErrMsg sets what the error page tells someone to do next;
// cf. session.ContactUsErr.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(rs *Responder) { rs.contact = msg }
}

// WithErrTemplate replaces template.ErrorTmpl as the page shown when nothing else can render.
func WithErrTemplate(fp string) ResponderOptFn {
	return func(rs *Responder) { rs.layouts.err = fp }
}

func WithLogger(log logger.Logger) ResponderOptFn {
	return func(rs *Responder) { rs.log = log }
}

func WithParser(p template.Parser) ResponderOptFn {
	return func(rs *Responder) { rs.parser = p }
}

// WithRootUrl sets where Redirect goes without a Url.
// A u url.ParseRequestURI rejects leaves the root at "/".
func WithRootUrl(u string) ResponderOptFn {
	return func(rs *Responder) {
		if parsed, err := url.ParseRequestURI(u); err == nil {
			rs.root = parsed
		}
	}
}

// WithUnauthTemplate sets the layout Unauthed pages render within.
func WithUnauthTemplate(fp string) ResponderOptFn {
	return func(rs *Responder) { rs.layouts.unauthed = fp }
}
