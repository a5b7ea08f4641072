package handler

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/trailhead/auth"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/idp"
	"github.com/xy-planning-network/trailhead/logger"
)

type authPage struct {
	StartURL  string
	SignInURL string
	SignUpURL string
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	data := authPage{StartURL: SignInStartPath, SignInURL: SignInPath, SignUpURL: SignUpPath}
	if err := h.Html(w, r, resp.Unauthed(), resp.Tmpls(tmplSignIn), resp.Data(data)); err != nil {
		h.log.Error("failed rendering sign in", &logger.LogContext{Error: err, Request: r})
	}
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	data := authPage{StartURL: SignUpStartPath, SignInURL: SignInPath, SignUpURL: SignUpPath}
	if err := h.Html(w, r, resp.Unauthed(), resp.Tmpls(tmplSignUp), resp.Data(data)); err != nil {
		h.log.Error("failed rendering sign up", &logger.LogContext{Error: err, Request: r})
	}
}

func (h *Handler) signInStart(w http.ResponseWriter, r *http.Request) { h.start(w, r, false) }
func (h *Handler) signUpStart(w http.ResponseWriter, r *http.Request) { h.start(w, r, true) }

// start sends the browser to the identity provider's hosted page.
func (h *Handler) start(w http.ResponseWriter, r *http.Request, signUp bool) {
	s, err := h.Session(r.Context())
	if err != nil {
		h.Err(w, r, err)
		return
	}

	to, err := h.svc.Loader().AuthCodeURL(w, r, s, signUp)
	if err != nil {
		h.log.Error("failed building identity provider URL", &logger.LogContext{Error: err, Request: r})
		h.redirect(w, r, h.svc.SignIn(), session.Flash{Type: session.FlashError, Msg: session.AuthFailedMsg})
		return
	}

	if err := h.Redirect(w, r, resp.Url(to), resp.Code(http.StatusFound)); err != nil {
		h.Err(w, r, err)
	}
}

// callback is where the identity provider returns the browser to.
//
// The code exchange already happened while loading the identity provider;
// callback trades its token for an application session.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bridge(w, r)
	if !ok {
		return
	}

	if _, ok := b.Store().Get(); ok {
		h.redirect(w, r, h.svc.Landing(), session.Flash{})
		return
	}

	prov := b.Provider()
	if !prov.IsLoaded() {
		msg := session.AuthFailedMsg
		if errors.Is(b.LoadErr(), idp.ErrDenied) {
			msg = session.SignInDeniedMsg
		}

		h.redirect(w, r, h.svc.SignIn(), session.Flash{Type: session.FlashError, Msg: msg})
		return
	}

	if !prov.IsSignedIn() {
		h.redirect(w, r, h.svc.SignIn(), session.Flash{})
		return
	}

	tok, err := prov.Token(r.Context())
	if err != nil {
		h.log.Warn("identity provider has no token", &logger.LogContext{Error: err, Request: r})
		if err := prov.SignOut(r.Context(), h.svc.SignIn()); err != nil {
			h.log.Error("failed signing out of identity provider", &logger.LogContext{Error: err, Request: r})
		}

		h.redirect(w, r, h.svc.SignIn(), session.Flash{Type: session.FlashError, Msg: session.AuthFailedMsg})
		return
	}

	if err := b.SignInWithToken(r.Context(), tok); err != nil {
		msg := session.AuthFailedMsg
		if errors.Is(err, auth.ErrSignInRejected) {
			msg = session.NoAccessMsg
		}

		h.log.Warn("sign in failed", &logger.LogContext{Error: err, Request: r})
		h.redirect(w, r, h.svc.SignIn(), session.Flash{Type: session.FlashError, Msg: msg})
		return
	}

	h.redirect(w, r, h.svc.Landing(), session.Flash{})
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bridge(w, r)
	if !ok {
		return
	}

	if err := b.SignOut(r.Context()); err != nil {
		h.log.Error("failed signing out", &logger.LogContext{Error: err, Request: r})
	}

	h.redirect(w, r, h.svc.SignIn(), session.Flash{Type: session.FlashInfo, Msg: session.SignedOutMsg})
}
