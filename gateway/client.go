package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/logger"
)

const (
	defaultSessionCookie = "sid"
	defaultTimeout       = 10 * time.Second
)

var _ Gateway = (*Conn)(nil)

// A Client holds what every connection to the backend shares.
type Client struct {
	base   *url.URL
	cookie string
	http   *http.Client
	logger logger.Logger
}

// A ClientOpt configures a *Client.
type ClientOpt func(*Client) error

// New constructs a *Client.
//
// Without WithBaseURL, requests go to /api on the zero host,
// which only suits tests driving an *httptest.Server through WithHTTPClient.
func New(opts ...ClientOpt) (*Client, error) {
	c := &Client{
		base:   &url.URL{Path: "/api"},
		cookie: defaultSessionCookie,
		http:   &http.Client{Timeout: defaultTimeout},
		logger: logger.New(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("%w: %s", trailhead.ErrBadConfig, err)
		}
	}

	return c, nil
}

// WithBaseURL sets the URL every request path is joined to.
func WithBaseURL(u *url.URL) ClientOpt {
	return func(c *Client) error {
		if u == nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: base URL %v", trailhead.ErrNotValid, u)
		}
		c.base = u
		return nil
	}
}

// WithHTTPClient replaces the *http.Client requests are sent with.
func WithHTTPClient(h *http.Client) ClientOpt {
	return func(c *Client) error {
		if h == nil {
			return fmt.Errorf("%w: nil *http.Client", trailhead.ErrMissingData)
		}
		c.http = h
		return nil
	}
}

// WithLogger sets the logger calls are recorded with.
func WithLogger(l logger.Logger) ClientOpt {
	return func(c *Client) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger.Logger", trailhead.ErrMissingData)
		}
		c.logger = l
		return nil
	}
}

// WithSessionCookie sets the name of the cookie the application session is sent in.
func WithSessionCookie(name string) ClientOpt {
	return func(c *Client) error {
		if name == "" {
			return fmt.Errorf("%w: session cookie name", trailhead.ErrMissingData)
		}
		c.cookie = name
		return nil
	}
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) ClientOpt {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("%w: timeout %s", trailhead.ErrNotValid, d)
		}
		c.http.Timeout = d
		return nil
	}
}

// With binds the Client to store,
// whose identifier is attached to every call but SignIn.
func (c *Client) With(store SessionStore) *Conn {
	return &Conn{c: c, store: store}
}

// A Conn is a Client bound to one browser's SessionStore.
type Conn struct {
	c     *Client
	store SessionStore
}

// credential decides what a request authenticates with.
type credential struct {
	bearer string
}

func (c *Conn) SignIn(ctx context.Context, token string) (Response[SignInResult], error) {
	return do[SignInResult](ctx, c, http.MethodPost, "/auth/signin", nil, nil, &credential{bearer: token})
}

func (c *Conn) SignOut(ctx context.Context) (Response[Empty], error) {
	return do[Empty](ctx, c, http.MethodPost, "/auth/signout", nil, nil, nil)
}

func (c *Conn) CurrentUser(ctx context.Context) (Response[trailhead.User], error) {
	return do[trailhead.User](ctx, c, http.MethodGet, "/users/me", nil, nil, nil)
}

func (c *Conn) UpdateCurrentUser(ctx context.Context, patch trailhead.UserPatch) (Response[trailhead.User], error) {
	return do[trailhead.User](ctx, c, http.MethodPatch, "/users/me", nil, patch, nil)
}

func (c *Conn) Users(ctx context.Context, page, limit int) (Response[trailhead.UserPage], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return do[trailhead.UserPage](ctx, c, http.MethodGet, "/users", q, nil, nil)
}

func (c *Conn) UserStats(ctx context.Context) (Response[trailhead.UserStats], error) {
	return do[trailhead.UserStats](ctx, c, http.MethodGet, "/users/stats", nil, nil, nil)
}

func (c *Conn) PasswordStatus(ctx context.Context) (Response[trailhead.PasswordStatus], error) {
	return do[trailhead.PasswordStatus](ctx, c, http.MethodGet, "/users/password", nil, nil, nil)
}

func (c *Conn) SetPassword(ctx context.Context, password string) (Response[Empty], error) {
	body := map[string]string{"password": password}
	return do[Empty](ctx, c, http.MethodPost, "/users/password", nil, body, nil)
}

func (c *Conn) ChangePassword(ctx context.Context, current, next string) (Response[Empty], error) {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return do[Empty](ctx, c, http.MethodPut, "/users/password", nil, body, nil)
}

func (c *Conn) Sessions(ctx context.Context) (Response[[]trailhead.Session], error) {
	return do[[]trailhead.Session](ctx, c, http.MethodGet, "/sessions", nil, nil, nil)
}

func (c *Conn) RevokeSession(ctx context.Context, id string) (Response[Empty], error) {
	return do[Empty](ctx, c, http.MethodDelete, "/sessions/"+url.PathEscape(id), nil, nil, nil)
}

// do sends one request and normalizes the answer into a Response.
//
// When cred is nil, the stored application session is attached as a cookie.
func do[T any](
	ctx context.Context,
	c *Conn,
	method, path string,
	query url.Values,
	body any,
	cred *credential,
) (Response[T], error) {
	u := c.c.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Response[T]{}, fmt.Errorf("%w: encoding %s %s body: %s", trailhead.ErrBadFormat, method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return Response[T]{}, fmt.Errorf("%w: building %s %s: %s", trailhead.ErrUnexpected, method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	switch {
	case cred != nil:
		req.Header.Set("Authorization", "Bearer "+cred.bearer)
	case c.store != nil:
		if sid, ok := c.store.Get(); ok {
			req.AddCookie(&http.Cookie{Name: c.c.cookie, Value: sid})
		}
	}

	res, err := c.c.http.Do(req)
	if err != nil {
		return Response[T]{}, fmt.Errorf("%w: %s %s: %s", trailhead.ErrUnexpected, method, path, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return Response[T]{}, fmt.Errorf("%w: reading %s %s: %s", trailhead.ErrUnexpected, method, path, err)
	}

	c.c.logger.Debug("backend call", &logger.LogContext{
		Data: map[string]any{"method": method, "path": path, "status": res.StatusCode},
	})

	return newResponse[T](res.StatusCode, b), nil
}
