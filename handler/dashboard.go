package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/gateway"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/logger"
	"github.com/xy-planning-network/trailhead/pagination"
	"golang.org/x/sync/errgroup"
)

const usersPerPage = 10

type dashboardQuery struct {
	Page int `schema:"page" validate:"omitempty,min=1"`
}

type dashboardPage struct {
	Pager pagination.Pager
	Stats trailhead.UserStats
	Users []trailhead.UserListItem
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	b, ok := h.bridge(w, r)
	if !ok {
		return
	}

	var q dashboardQuery
	if err := h.parser.ParseQueryParams(r.URL.Query(), &q); err != nil {
		h.log.Debug("ignoring bad dashboard query", &logger.LogContext{Error: err, Request: r})
	}
	q.Page = max(1, q.Page)

	var (
		users gateway.Response[trailhead.UserPage]
		stats gateway.Response[trailhead.UserStats]
		g     errgroup.Group
	)

	// NOTE(dlk): a failed fetch must not cancel the other; each degrades on its own.
	ctx := r.Context()
	g.Go(func() (err error) {
		if users, err = b.Gateway().Users(ctx, q.Page, usersPerPage); err != nil {
			h.log.Error("failed fetching users", &logger.LogContext{Error: err, Request: r})
		}
		return err
	})
	g.Go(func() (err error) {
		if stats, err = b.Gateway().UserStats(ctx); err != nil {
			h.log.Error("failed fetching user stats", &logger.LogContext{Error: err, Request: r})
		}
		return err
	})
	_ = g.Wait()

	if b.Expire(ctx, users.Status) || b.Expire(ctx, stats.Status) {
		h.signedOut(w, r, b, session.SessionEndMsg)
		return
	}

	data := dashboardPage{Pager: pagination.New(0, usersPerPage, q.Page)}
	if users.OK {
		data.Users = users.Data.Data
		data.Pager = pagination.New(users.Data.Total, usersPerPage, q.Page)

		if data.Pager.Page < q.Page {
			h.redirect(w, r, pageURL(data.Pager.Page), session.Flash{})
			return
		}
	} else if users.Status != 0 {
		h.log.Warn("backend refused users", &logger.LogContext{Data: map[string]any{"status": users.Status}, Request: r})
	}

	if stats.OK {
		data.Stats = stats.Data
	} else if stats.Status != 0 {
		h.log.Warn("backend refused user stats", &logger.LogContext{Data: map[string]any{"status": stats.Status}, Request: r})
	}

	if err := h.Html(w, r, resp.Authed(), resp.Tmpls(tmplDashboard, tmplPagination), resp.Data(data)); err != nil {
		h.log.Error("failed rendering dashboard", &logger.LogContext{Error: err, Request: r})
	}
}

// pageURL is the dashboard showing page.
func pageURL(page int) string {
	return DashboardPath + "?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
}
