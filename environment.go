package trailhead

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// An Environment names where a trailhead deployment runs.
// It decides whether cookies require HTTPS and whether panics reach Sentry.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Testing     Environment = "TESTING"
	Staging     Environment = "STAGING"
	Production  Environment = "PRODUCTION"
)

func (e Environment) String() string { return string(e) }

// Valid returns ErrNotValid for anything other than the four known environments.
func (e Environment) Valid() error {
	switch e {
	case Development, Testing, Staging, Production:
		return nil
	}

	return ErrNotValid
}

// IsDevelopment reports whether trailhead runs on a developer's machine.
func (e Environment) IsDevelopment() bool { return e == Development }

// IsTesting reports whether trailhead runs under go test.
func (e Environment) IsTesting() bool { return e == Testing }

// SecureCookies reports whether session cookies may only travel over HTTPS.
func (e Environment) SecureCookies() bool {
	return e != Development && e != Testing
}

// envVarOr parses the value of key, falling back to def when it is unset or parse fails.
func envVarOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}

	val, err := parse(raw)
	if err != nil {
		return def
	}

	return val
}

// EnvVarOrDuration reads key as a [time.Duration], e.g. "10s".
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	return envVarOr(key, def, time.ParseDuration)
}

// EnvVarOrEnv reads key as an [Environment], ignoring case.
// Unknown names yield def.
func EnvVarOrEnv(key string, def Environment) Environment {
	return envVarOr(key, def, func(raw string) (Environment, error) {
		env := Environment(strings.ToUpper(raw))
		return env, env.Valid()
	})
}

// EnvVarOrInt reads key as a base 10 int.
func EnvVarOrInt(key string, def int) int {
	return envVarOr(key, def, strconv.Atoi)
}

// EnvVarOrString reads key verbatim.
func EnvVarOrString(key, def string) string {
	return envVarOr(key, def, func(raw string) (string, error) { return raw, nil })
}

// EnvVarOrURL reads key as an absolute URL.
// The fallback is def with its path reset to "/"; nil when def itself does not parse.
func EnvVarOrURL(key, def string) *url.URL {
	fallback, err := url.ParseRequestURI(def)
	if err != nil {
		return nil
	}
	fallback.Path = "/"

	return envVarOr(key, fallback, url.ParseRequestURI)
}
