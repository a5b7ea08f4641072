package handler

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/auth"
	"github.com/xy-planning-network/trailhead/gateway"
	"github.com/xy-planning-network/trailhead/http/req"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/logger"
)

const (
	passwordChangedMsg = "Your password has been changed."
	passwordFailedMsg  = "Failed to update password. Please try again."
	passwordSetMsg     = "Your password has been set."
)

type setPasswordForm struct {
	New     string `schema:"newPassword" label:"Password" validate:"required,password"`
	Confirm string `schema:"confirmPassword" label:"Confirm password" validate:"required,eqfield=New"`
}

type changePasswordForm struct {
	Current string `schema:"currentPassword" label:"Current password" validate:"required"`
	New     string `schema:"newPassword" label:"Password" validate:"required,password"`
	Confirm string `schema:"confirmPassword" label:"Confirm password" validate:"required,eqfield=New"`
}

type passwordPage struct {
	form

	// Change is true when a password is already set and must be given to set another.
	Change bool
}

// passwordStatus fetches whether b's user may use a password.
// When it returns false, the response has been written.
func (h *Handler) passwordStatus(w http.ResponseWriter, r *http.Request, b *auth.Bridge) (trailhead.PasswordStatus, bool) {
	res, err := b.Gateway().PasswordStatus(r.Context())
	if err != nil {
		h.log.Error("failed fetching password status", &logger.LogContext{Error: err, Request: r})
		h.redirect(w, r, ProfilePath, session.Flash{Type: session.FlashError, Msg: session.DefaultErrMsg})
		return trailhead.PasswordStatus{}, false
	}

	if b.Expire(r.Context(), res.Status) {
		h.signedOut(w, r, b, session.SessionEndMsg)
		return trailhead.PasswordStatus{}, false
	}

	if !res.OK || !res.Data.AllowPassword {
		h.redirect(w, r, ProfilePath, session.Flash{})
		return trailhead.PasswordStatus{}, false
	}

	return res.Data, true
}

func (h *Handler) password(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bridge(w, r)
	if !ok {
		return
	}

	status, ok := h.passwordStatus(w, r, b)
	if !ok {
		return
	}

	h.renderPassword(w, r, passwordPage{Change: status.PasswordEnabled}, 0)
}

// updatePassword sets a first password or changes the current one,
// depending on whether one is set.
func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bridge(w, r)
	if !ok {
		return
	}

	status, ok := h.passwordStatus(w, r, b)
	if !ok {
		return
	}

	page := passwordPage{Change: status.PasswordEnabled}

	var (
		res gateway.Response[gateway.Empty]
		err error
		msg string
	)

	if page.Change {
		var f changePasswordForm
		if err := h.parser.ParseForm(r, &f); err != nil {
			h.renderPasswordErr(w, r, page, err)
			return
		}

		res, err = b.Gateway().ChangePassword(r.Context(), f.Current, f.New)
		msg = passwordChangedMsg
	} else {
		var f setPasswordForm
		if err := h.parser.ParseForm(r, &f); err != nil {
			h.renderPasswordErr(w, r, page, err)
			return
		}

		res, err = b.Gateway().SetPassword(r.Context(), f.New)
		msg = passwordSetMsg
	}

	if err != nil {
		h.log.Error("failed updating password", &logger.LogContext{Error: err, Request: r})
		page.Root = passwordFailedMsg
		h.renderPassword(w, r, page, http.StatusBadGateway)
		return
	}

	if b.Expire(r.Context(), res.Status) {
		h.signedOut(w, r, b, session.SessionEndMsg)
		return
	}

	if !res.OK {
		h.log.Warn("backend refused password", &logger.LogContext{Data: map[string]any{"status": res.Status}, Request: r})
		page.Root = res.Message
		if page.Root == "" {
			page.Root = passwordFailedMsg
		}

		h.renderPassword(w, r, page, http.StatusUnprocessableEntity)
		return
	}

	h.redirect(w, r, ProfilePath, session.Flash{Type: session.FlashSuccess, Msg: msg})
}

// renderPasswordErr renders page with the problems err found in the submitted form.
//
// Passwords are never rendered back.
func (h *Handler) renderPasswordErr(w http.ResponseWriter, r *http.Request, page passwordPage, err error) {
	var verrs req.ValidationErrors
	if !errors.As(err, &verrs) {
		h.log.Warn("bad password submission", &logger.LogContext{Error: err, Request: r})
		page.Root = session.BadInputMsg
		h.renderPassword(w, r, page, http.StatusBadRequest)
		return
	}

	page.Fields = verrs.Fields()
	h.renderPassword(w, r, page, http.StatusUnprocessableEntity)
}

func (h *Handler) renderPassword(w http.ResponseWriter, r *http.Request, page passwordPage, code int) {
	opts := []resp.Fn{resp.Authed(), resp.Tmpls(tmplPassword), resp.Data(page)}
	if code != 0 {
		opts = append(opts, resp.Code(code))
	}

	if err := h.Html(w, r, opts...); err != nil {
		h.log.Error("failed rendering password", &logger.LogContext{Error: err, Request: r})
	}
}
