package ranger

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/handler"
	"github.com/xy-planning-network/trailhead/logger"
)

// A Config is everything a trailhead app reads from its environment.
type Config struct {
	BaseURL   *url.URL
	ContactUs string
	Env       trailhead.Environment
	LogLevel  logger.LogLevel

	Backend BackendConfig
	IDP     IDPConfig
	Redis   RedisConfig
	Server  ServerConfig
	Session SessionConfig
}

// A BackendConfig points at the backend API.
type BackendConfig struct {
	// Cookie names the cookie the application session travels in.
	Cookie  string
	Timeout time.Duration
	URL     *url.URL
}

// An IDPConfig identifies trailhead to its identity provider.
//
// Provider "google" needs no URLs; any other value needs AuthURL and TokenURL.
type IDPConfig struct {
	AuthURL      string
	ClientID     string
	ClientSecret string
	Provider     string
	Scopes       []string
	TokenURL     string
}

// A RedisConfig connects to Redis.
// When URL is "", sessions live in cookies and idempotent responses in memory.
type RedisConfig struct {
	Password string
	URL      string
}

type ServerConfig struct {
	Addr         string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// A SessionConfig holds hex-encoded keys for securing sessions; cf. [encoding/hex].
type SessionConfig struct {
	AuthKey    string
	EncryptKey string

	// MaxAge is in seconds.
	MaxAge int
}

// NewConfig reads a Config from the environment.
//
// NewConfig returns ErrBadConfig naming every required variable not set.
func NewConfig() (Config, error) {
	cfg := Config{
		BaseURL:   trailhead.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL),
		ContactUs: trailhead.EnvVarOrString(ContactUsEnvVar, defaultContactUs),
		Env:       trailhead.EnvVarOrEnv(environmentEnvVar, trailhead.Development),
		LogLevel:  envVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo),
		Backend: BackendConfig{
			Cookie:  trailhead.EnvVarOrString(backendCookieEnvVar, defaultBackendCookie),
			Timeout: trailhead.EnvVarOrDuration(backendTimeoutEnvVar, defaultBackendTimeout),
		},
		IDP: IDPConfig{
			AuthURL:      os.Getenv(idpAuthURLEnvVar),
			ClientID:     os.Getenv(idpClientIDEnvVar),
			ClientSecret: os.Getenv(idpClientSecretEnvVar),
			Provider:     strings.ToLower(os.Getenv(idpProviderEnvVar)),
			Scopes:       splitList(os.Getenv(idpScopesEnvVar)),
			TokenURL:     os.Getenv(idpTokenURLEnvVar),
		},
		Redis: RedisConfig{
			Password: os.Getenv(redisPasswordEnvVar),
			URL:      os.Getenv(redisURLEnvVar),
		},
		Server: ServerConfig{
			Addr:         serverAddr(),
			IdleTimeout:  trailhead.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
			ReadTimeout:  trailhead.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
			WriteTimeout: trailhead.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
		},
		Session: SessionConfig{
			AuthKey:    os.Getenv(SessionAuthKeyEnvVar),
			EncryptKey: os.Getenv(SessionEncryptKeyEnvVar),
			MaxAge:     trailhead.EnvVarOrInt(sessionMaxAgeEnvVar, defaultSessionMaxAge),
		},
	}

	var missing []string
	if cfg.BaseURL == nil {
		missing = append(missing, BaseURLEnvVar)
	}

	backend, err := url.Parse(trailhead.EnvVarOrString(backendURLEnvVar, defaultBackendURL))
	if err != nil || backend.Scheme == "" || backend.Host == "" {
		missing = append(missing, backendURLEnvVar)
	}
	cfg.Backend.URL = backend

	if cfg.Session.AuthKey == "" {
		missing = append(missing, SessionAuthKeyEnvVar)
	}

	if cfg.IDP.ClientID == "" {
		missing = append(missing, idpClientIDEnvVar)
	}

	if cfg.IDP.ClientSecret == "" {
		missing = append(missing, idpClientSecretEnvVar)
	}

	if cfg.IDP.Provider != googleProvider {
		if cfg.IDP.AuthURL == "" {
			missing = append(missing, idpAuthURLEnvVar)
		}

		if cfg.IDP.TokenURL == "" {
			missing = append(missing, idpTokenURLEnvVar)
		}
	}

	if len(missing) > 0 {
		return cfg, fmt.Errorf("%w: missing or invalid %s", ErrBadConfig, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// CallbackURL is where the identity provider sends browsers back to.
func (c Config) CallbackURL() string {
	return c.BaseURL.JoinPath(handler.CallbackPath).String()
}

// envVarOrLogLevel gets the environment variable from the provided key,
// creates a logger.LogLevel from the retrieved value,
// or returns the provided default logger.LogLevel
// if the value is an unknown logger.LogLevel.
func envVarOrLogLevel(key string, def logger.LogLevel) logger.LogLevel {
	ll := logger.NewLogLevel(os.Getenv(key))
	if ll == logger.LogLevelUnk {
		return def
	}

	return ll
}

// serverAddr joins HOST and PORT, tolerating a PORT with or without its leading colon.
func serverAddr() string {
	port := trailhead.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	return trailhead.EnvVarOrString(hostEnvVar, "") + port
}

// splitList splits a comma or space separated list.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}
