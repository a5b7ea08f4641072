package ranger

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/xy-planning-network/trailhead/auth"
	"github.com/xy-planning-network/trailhead/gateway"
	"github.com/xy-planning-network/trailhead/handler"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/http/template"
	"github.com/xy-planning-network/trailhead/idp"
	"github.com/xy-planning-network/trailhead/idp/oauth"
	"github.com/xy-planning-network/trailhead/logger"
)

const (
	// Base URL defaults
	BaseURLEnvVar  = "BASE_URL"
	defaultBaseURL = "http://localhost" + DefaultPort

	// App metadata
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultContactUs = "hello@xyplanningnetwork.com"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"

	// Backend defaults
	backendCookieEnvVar   = "BACKEND_SESSION_COOKIE"
	defaultBackendCookie  = "sid"
	backendTimeoutEnvVar  = "BACKEND_TIMEOUT"
	defaultBackendTimeout = 10 * time.Second
	backendURLEnvVar      = "BACKEND_URL"
	defaultBackendURL     = "http://localhost:8080/api"

	// Identity provider defaults
	googleProvider        = "google"
	idpAuthURLEnvVar      = "IDP_AUTH_URL"
	idpClientIDEnvVar     = "IDP_CLIENT_ID"
	idpClientSecretEnvVar = "IDP_CLIENT_SECRET"
	idpProviderEnvVar     = "IDP_PROVIDER"
	idpScopesEnvVar       = "IDP_SCOPES"
	idpTokenURLEnvVar     = "IDP_TOKEN_URL"

	// Redis defaults
	redisPasswordEnvVar = "REDIS_PASSWORD"
	redisURLEnvVar      = "REDIS_URL"

	// Web server defaults
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 15 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	sessionMaxAgeEnvVar     = "SESSION_MAX_AGE"
	defaultSessionMaxAge    = 3600 * 24
	sessionName             = "trailhead"
)

// defaultLogger constructs the logger.Logger used throughout the app.
// logger.New wraps it for Sentry when SENTRY_DSN is set.
func defaultLogger(cfg Config) logger.Logger {
	l := logger.New(logger.WithEnv(cfg.Env.String()), logger.WithLevel(cfg.LogLevel))
	l.Debug("setting up app logger", nil)

	return l
}

// defaultConnect builds the backend client every browser's Gateway is bound from.
func defaultConnect(cfg Config, l logger.Logger) (auth.Connect, error) {
	opts := []gateway.ClientOpt{
		gateway.WithBaseURL(cfg.Backend.URL),
		gateway.WithLogger(l),
	}
	if cfg.Backend.Cookie != "" {
		opts = append(opts, gateway.WithSessionCookie(cfg.Backend.Cookie))
	}

	if cfg.Backend.Timeout > 0 {
		opts = append(opts, gateway.WithTimeout(cfg.Backend.Timeout))
	}

	c, err := gateway.New(opts...)
	if err != nil {
		return nil, err
	}

	return auth.FromClient(c), nil
}

// defaultLoader configures the identity provider from cfg.IDP,
// Google when its Provider is "google", any OAuth2 provider otherwise.
func defaultLoader(cfg Config, l logger.Logger) (idp.Loader, error) {
	opts := []oauth.ConfigOpt{oauth.WithLogger(l)}
	if cfg.IDP.Provider == googleProvider {
		opts = append(opts, oauth.WithGoogle())
	} else {
		opts = append(opts, oauth.WithEndpoint(cfg.IDP.AuthURL, cfg.IDP.TokenURL))
	}

	if len(cfg.IDP.Scopes) > 0 {
		opts = append(opts, oauth.WithScopes(cfg.IDP.Scopes...))
	}

	return oauth.NewConfig(cfg.IDP.ClientID, cfg.IDP.ClientSecret, cfg.CallbackURL(), opts...)
}

// defaultReplays keeps replayable form submissions in Redis when REDIS_URL is set,
// in memory otherwise.
func defaultReplays(cfg Config, l logger.Logger) middleware.ReplayStore {
	if cfg.Redis.URL == "" {
		return middleware.NewMemoryReplays()
	}

	rr, err := middleware.NewRedisReplays(cfg.Redis.URL, cfg.Redis.Password)
	if err != nil {
		l.Warn("keeping form replays in memory, Redis is unreachable", &logger.LogContext{Error: err})
		return middleware.NewMemoryReplays()
	}

	return rr
}

// defaultParser parses handler's pages for [*resp.Responder.Html].
// Pages may call "currentUser", "nonce" and "rootUrl", the last returning cfg.BaseURL.
func defaultParser(cfg Config) *template.Parse {
	return template.NewParser(
		template.WithFS(handler.Templates),
		template.WithRootURL(cfg.BaseURL),
	)
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(cfg Config, l logger.Logger, p template.Parser) *resp.Responder {
	return resp.NewResponder(
		resp.WithAuthTemplate(handler.AuthedTmpl),
		resp.WithContactErrMsg(fmt.Sprintf(session.ContactUsErr, cfg.ContactUs)),
		resp.WithErrTemplate(template.ErrorTmpl),
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithRootUrl(cfg.BaseURL.String()),
		resp.WithUnauthTemplate(handler.UnauthedTmpl),
	)
}

// defaultRouter constructs a [*router.Router] serving every page of h.
//
// Every request passes through, in order:
// ForceHTTPS, RequestID, InjectIPAddress, LogRequest, RateLimit, InjectSession, and Bridge.
func defaultRouter(
	cfg Config,
	l logger.Logger,
	sessions session.SessionStorer,
	svc *auth.Service,
	h *handler.Handler,
) *router.Router {
	logReq := middleware.LogRequest(l)

	route := router.New(cfg.Env, logReq)
	route.OnEveryRequest(
		middleware.ForceHTTPS(cfg.Env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		logReq,
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.InjectSession(sessions, l),
		middleware.Bridge(svc),
	)

	route.AuthedRoutes(svc.SignIn(), h.AuthedRoutes())
	route.UnauthedRoutes(svc.Landing(), h.UnauthedRoutes())
	route.HandleRoutes(h.Routes())
	route.Redirect("/", svc.Landing())
	route.HandleNotFound(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") == "application/json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		http.Redirect(w, r, svc.Landing(), http.StatusTemporaryRedirect)
	})

	return route
}

// defaultSessionStore constructs a SessionStorer to be used for storing session data,
// in Redis when REDIS_URL is set, in cookies otherwise.
//
// Both KEY env vars must be valid hex encoded values; cf. [encoding/hex].
func defaultSessionStore(cfg Config) (session.SessionStorer, error) {
	sc := session.Config{
		AuthKey:     cfg.Session.AuthKey,
		EncryptKey:  cfg.Session.EncryptKey,
		Env:         cfg.Env,
		SessionName: sessionName,
	}

	store := session.WithCookie()
	if cfg.Redis.URL != "" {
		store = session.WithRedis(cfg.Redis.URL, cfg.Redis.Password)
	}

	opts := []session.ServiceOpt{store}
	if cfg.Session.MaxAge > 0 {
		opts = append([]session.ServiceOpt{session.WithMaxAge(cfg.Session.MaxAge)}, opts...)
	}

	return session.NewStoreService(sc, opts...)
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, cfg ServerConfig) *http.Server {
	srv := &http.Server{
		Addr:         cfg.Addr,
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
