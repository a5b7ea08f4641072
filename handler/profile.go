package handler

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/auth"
	"github.com/xy-planning-network/trailhead/gateway"
	"github.com/xy-planning-network/trailhead/http/req"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/logger"
	"golang.org/x/sync/errgroup"
)

const (
	profileUpdatedMsg   = "Your profile has been updated."
	profileFailedMsg    = "Failed to update profile. Please try again."
	sessionRevokedMsg   = "The session has been signed out."
	sessionRevokeErrMsg = "We couldn't sign that session out. Please try again."
)

// A sessionRow is a trailhead.Session with the device it was started on.
type sessionRow struct {
	trailhead.Session
	Agent agent
}

type profilePage struct {
	Current  *sessionRow
	Others   []sessionRow
	Password trailhead.PasswordStatus
	User     trailhead.User
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bridge(w, r)
	if !ok {
		return
	}

	var (
		sessions gateway.Response[[]trailhead.Session]
		status   gateway.Response[trailhead.PasswordStatus]
		g        errgroup.Group
	)

	ctx := r.Context()
	g.Go(func() (err error) {
		if sessions, err = b.Gateway().Sessions(ctx); err != nil {
			h.log.Error("failed fetching sessions", &logger.LogContext{Error: err, Request: r})
		}
		return err
	})
	g.Go(func() (err error) {
		if status, err = b.Gateway().PasswordStatus(ctx); err != nil {
			h.log.Error("failed fetching password status", &logger.LogContext{Error: err, Request: r})
		}
		return err
	})
	_ = g.Wait()

	if b.Expire(r.Context(), sessions.Status) || b.Expire(r.Context(), status.Status) {
		h.signedOut(w, r, b, session.SessionEndMsg)
		return
	}

	data := profilePage{Password: status.Data}
	if u := b.User(); u != nil {
		data.User = *u
	}

	sid, _ := b.Store().Get()
	for _, s := range sessions.Data {
		row := sessionRow{Session: s, Agent: parseAgent(s.UserAgent)}
		if data.Current == nil && (s.IsCurrentSession || s.ID == sid) {
			data.Current = &row
			continue
		}

		data.Others = append(data.Others, row)
	}

	if err := h.Html(w, r, resp.Authed(), resp.Tmpls(tmplProfile), resp.Data(data)); err != nil {
		h.log.Error("failed rendering profile", &logger.LogContext{Error: err, Request: r})
	}
}

func (h *Handler) revokeSession(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bridge(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		h.redirect(w, r, ProfilePath, session.Flash{Type: session.FlashError, Msg: session.BadInputMsg})
		return
	}

	res, err := b.Gateway().RevokeSession(r.Context(), id)
	if err != nil {
		h.log.Error("failed revoking session", &logger.LogContext{Error: err, Request: r})
		h.redirect(w, r, ProfilePath, session.Flash{Type: session.FlashError, Msg: sessionRevokeErrMsg})
		return
	}

	if b.Expire(r.Context(), res.Status) {
		h.signedOut(w, r, b, session.SessionEndMsg)
		return
	}

	if !res.OK {
		h.log.Warn("backend refused revoking session", &logger.LogContext{Data: map[string]any{"status": res.Status}, Request: r})
		h.redirect(w, r, ProfilePath, session.Flash{Type: session.FlashError, Msg: sessionRevokeErrMsg})
		return
	}

	h.redirect(w, r, ProfilePath, session.Flash{Type: session.FlashSuccess, Msg: sessionRevokedMsg})
}

// A form is what a page with a form renders:
// the values to fill it with, the message of each invalid field,
// and a message about the form as a whole.
type form struct {
	Values any
	Fields map[string]string
	Root   string
}

func (h *Handler) profileEdit(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bridge(w, r)
	if !ok {
		return
	}

	var patch trailhead.UserPatch
	if u := b.User(); u != nil {
		patch.Name = u.Name
	}

	h.renderProfileEdit(w, r, form{Values: patch}, 0)
}

// updateProfile takes a submitted form or, for API clients, a JSON body.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bridge(w, r)
	if !ok {
		return
	}

	asJSON := isJSON(r)

	var patch trailhead.UserPatch
	var err error
	if asJSON {
		err = h.parser.ParseBody(r.Body, &patch)
	} else {
		err = h.parser.ParseForm(r, &patch)
	}

	var verrs req.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		if asJSON {
			h.json(w, r, http.StatusUnprocessableEntity, verrs)
			return
		}

		h.renderProfileEdit(w, r, form{Values: patch, Fields: verrs.Fields()}, http.StatusUnprocessableEntity)
		return
	case err != nil:
		h.log.Warn("bad profile submission", &logger.LogContext{Error: err, Request: r})
		if asJSON {
			h.json(w, r, http.StatusBadRequest, nil)
			return
		}

		h.renderProfileEdit(w, r, form{Values: patch, Root: session.BadInputMsg}, http.StatusBadRequest)
		return
	}

	err = b.UpdateUser(r.Context(), patch)
	switch {
	case errors.Is(err, auth.ErrSessionExpired):
		if asJSON {
			h.json(w, r, http.StatusUnauthorized, nil)
			return
		}

		h.signedOut(w, r, b, session.SessionEndMsg)
		return
	case err != nil:
		h.log.Warn("failed updating profile", &logger.LogContext{Error: err, Request: r})
		if asJSON {
			h.json(w, r, http.StatusBadGateway, nil)
			return
		}

		h.renderProfileEdit(w, r, form{Values: patch, Root: profileFailedMsg}, http.StatusBadGateway)
		return
	}

	if asJSON {
		h.json(w, r, http.StatusOK, b.User())
		return
	}

	h.redirect(w, r, ProfilePath, session.Flash{Type: session.FlashSuccess, Msg: profileUpdatedMsg})
}

func (h *Handler) renderProfileEdit(w http.ResponseWriter, r *http.Request, f form, code int) {
	opts := []resp.Fn{resp.Authed(), resp.Tmpls(tmplProfileEdit), resp.Data(f)}
	if code != 0 {
		opts = append(opts, resp.Code(code))
	}

	if err := h.Html(w, r, opts...); err != nil {
		h.log.Error("failed rendering profile edit", &logger.LogContext{Error: err, Request: r})
	}
}

func (h *Handler) json(w http.ResponseWriter, r *http.Request, code int, data any) {
	opts := []resp.Fn{resp.Code(code)}
	if data != nil {
		opts = append(opts, resp.Data(data))
	}

	if err := h.Json(w, r, opts...); err != nil {
		h.log.Error("failed writing json", &logger.LogContext{Error: err, Request: r})
	}
}

func isJSON(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "application/json"
}

// An agent is the device and browser a session was started from.
type agent struct {
	Browser string
	Device  string
	Mobile  bool
}

// parseAgent recognizes the common devices and browsers in a User-Agent header.
func parseAgent(ua string) agent {
	a := agent{Browser: "Unknown Browser", Device: "Unknown Device"}

	switch {
	case strings.Contains(ua, "iPhone"):
		a.Device, a.Mobile = "iPhone", true
	case strings.Contains(ua, "iPad"):
		a.Device, a.Mobile = "iPad", true
	case strings.Contains(ua, "Android"):
		a.Device, a.Mobile = "Android", true
	case strings.Contains(ua, "Windows"):
		a.Device = "Windows"
	case strings.Contains(ua, "Mac OS"):
		a.Device = "Mac"
	case strings.Contains(ua, "Linux"):
		a.Device = "Linux"
	}

	switch {
	case strings.Contains(ua, "Chrome") && !strings.Contains(ua, "Edg"):
		a.Browser = "Chrome"
	case strings.Contains(ua, "Firefox"):
		a.Browser = "Firefox"
	case strings.Contains(ua, "Safari") && !strings.Contains(ua, "Chrome"):
		a.Browser = "Safari"
	case strings.Contains(ua, "Edg"):
		a.Browser = "Edge"
	case strings.Contains(ua, "Opera") || strings.Contains(ua, "OPR"):
		a.Browser = "Opera"
	}

	return a
}
