// Package handler serves the pages of the account dashboard.
//
// Every page expects the middleware.Bridge earlier in the chain:
// a Handler reads the browser's *auth.Bridge from the request context
// and never builds one itself.
package handler

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/auth"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/req"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/logger"
)

// Templates holds the layouts and pages a Handler renders.
// Pass it to template.WithFS.
//
//go:embed tmpl
var Templates embed.FS

const (
	CallbackPath      = "/auth/callback"
	DashboardPath     = "/dashboard"
	PasswordPath      = "/profile/password"
	ProfileEditPath   = "/profile/edit"
	ProfilePath       = "/profile"
	RevokeSessionPath = "/profile/sessions/{id}/revoke"
	SignInPath        = "/auth/sign-in"
	SignInStartPath   = "/auth/sign-in/start"
	SignOutPath       = "/auth/sign-out"
	SignUpPath        = "/auth/sign-up"
	SignUpStartPath   = "/auth/sign-up/start"
)

const (
	// AuthedTmpl is the layout pages for a signed in user render into.
	AuthedTmpl = "tmpl/layout/authed.tmpl"

	// UnauthedTmpl is the layout pages for everyone else render into.
	UnauthedTmpl = "tmpl/layout/unauthed.tmpl"

	tmplDashboard   = "tmpl/dashboard.tmpl"
	tmplPagination  = "tmpl/partial/pagination.tmpl"
	tmplPassword    = "tmpl/profile/password.tmpl"
	tmplProfile     = "tmpl/profile/index.tmpl"
	tmplProfileEdit = "tmpl/profile/edit.tmpl"
	tmplSignIn      = "tmpl/auth/sign-in.tmpl"
	tmplSignUp      = "tmpl/auth/sign-up.tmpl"
)

// A Handler serves the account dashboard.
type Handler struct {
	*resp.Responder

	idem   middleware.Adapter
	log    logger.Logger
	parser *req.Parser
	svc    *auth.Service
}

// A HandlerOpt configures a *Handler.
type HandlerOpt func(*Handler)

// WithIdempotency guards form submissions with idem,
// typically a middleware.Idempotent.
func WithIdempotency(idem middleware.Adapter) HandlerOpt {
	return func(h *Handler) {
		if idem != nil {
			h.idem = idem
		}
	}
}

// WithLogger sets the logger a Handler reports with.
func WithLogger(l logger.Logger) HandlerOpt {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// New constructs a *Handler.
//
// r must be configured with AuthedTmpl and UnauthedTmpl
// and a template.Parser able to find Templates.
func New(svc *auth.Service, r *resp.Responder, opts ...HandlerOpt) *Handler {
	h := &Handler{
		Responder: r,
		idem:      middleware.NoopAdapter,
		log:       logger.New(),
		parser:    req.NewParser(),
		svc:       svc,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// AuthedRoutes lists the Routes only a signed in user may request.
func (h *Handler) AuthedRoutes() []router.Route {
	return []router.Route{
		{Path: DashboardPath, Method: http.MethodGet, Handler: h.dashboard},
		{Path: PasswordPath, Method: http.MethodGet, Handler: h.password},
		{Path: PasswordPath, Method: http.MethodPost, Handler: h.updatePassword, Middlewares: []middleware.Adapter{h.idem}},
		{Path: ProfileEditPath, Method: http.MethodGet, Handler: h.profileEdit},
		{Path: ProfileEditPath, Method: http.MethodPost, Handler: h.updateProfile, Middlewares: []middleware.Adapter{h.idem}},
		{Path: ProfilePath, Method: http.MethodGet, Handler: h.profile},
		{Path: RevokeSessionPath, Method: http.MethodPost, Handler: h.revokeSession, Middlewares: []middleware.Adapter{h.idem}},
		{Path: SignOutPath, Method: http.MethodPost, Handler: h.signOut},
	}
}

// UnauthedRoutes lists the Routes only a browser nobody is signed in to may request.
func (h *Handler) UnauthedRoutes() []router.Route {
	return []router.Route{
		{Path: SignInPath, Method: http.MethodGet, Handler: h.signIn},
		{Path: SignInStartPath, Method: http.MethodGet, Handler: h.signInStart},
		{Path: SignUpPath, Method: http.MethodGet, Handler: h.signUp},
		{Path: SignUpStartPath, Method: http.MethodGet, Handler: h.signUpStart},
	}
}

// Routes lists the Routes requested regardless of who is signed in.
func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Path: CallbackPath, Method: http.MethodGet, Handler: h.callback},
	}
}

// bridge retrieves the browser's *auth.Bridge, responding with an error when there is none.
func (h *Handler) bridge(w http.ResponseWriter, r *http.Request) (*auth.Bridge, bool) {
	b, ok := auth.FromContext(r.Context())
	if !ok {
		h.Err(w, r, fmt.Errorf("%w: no bridge in request context", trailhead.ErrMissingData))
		return nil, false
	}

	return b, true
}

// signedOut sends the browser on after b signed out,
// telling them why with msg.
func (h *Handler) signedOut(w http.ResponseWriter, r *http.Request, b *auth.Bridge, msg string) {
	to, ok := b.Redirect()
	if !ok {
		to = h.svc.SignIn()
	}

	h.redirect(w, r, to, session.Flash{Type: session.FlashWarning, Msg: msg})
}

// redirect sends the browser to the path to with a 303, flashing flash if it has a message.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, to string, flash session.Flash) {
	opts := []resp.Fn{resp.Url(to)}
	if flash.Msg != "" {
		opts = append(opts, resp.Flash(flash))
	}
	opts = append(opts, resp.Code(http.StatusSeeOther))

	if err := h.Redirect(w, r, opts...); err != nil {
		h.Err(w, r, err)
	}
}
