package session

import (
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/boj/redistore"
	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/trailhead"
)

// DefaultMaxAge is how long a browser keeps its session cookie without WithMaxAge.
const DefaultMaxAge = 24 * time.Hour

// redisPoolSize caps idle connections redistore keeps to Redis.
const redisPoolSize = 10

// A SessionStorer finds the Session a request's cookie points to.
type SessionStorer interface {
	GetSession(r *http.Request) (Session, error)
}

// A Config names the cookie sessions travel in and the hex encoded keys protecting it.
type Config struct {
	Env         trailhead.Environment
	SessionName string

	// AuthKey signs the cookie. Required.
	AuthKey string

	// EncryptKey encrypts the cookie outside the Testing environment.
	EncryptKey string
}

// A Service stores sessions in a gorilla.Store.
type Service struct {
	name  string
	store gorilla.Store
}

// A ServiceOpt adjusts how NewStoreService builds a Service.
type ServiceOpt func(*build) error

// build collects options; the store is created once all of them applied,
// so WithMaxAge holds wherever it appears.
type build struct {
	env    trailhead.Environment
	keys   [][]byte
	maxAge time.Duration
	redis  *struct{ uri, pass string }
}

// NewStoreService builds a Service keeping sessions in signed, encrypted cookies,
// or in Redis with WithRedis.
func NewStoreService(cfg Config, opts ...ServiceOpt) (Service, error) {
	gob.Register(Flash{})
	gob.Register(ProviderToken{})

	if err := cfg.Env.Valid(); err != nil {
		return Service{}, fmt.Errorf("%w: Env %q", trailhead.ErrBadConfig, cfg.Env)
	}

	if cfg.SessionName == "" {
		return Service{}, fmt.Errorf("%w: no SessionName", trailhead.ErrBadConfig)
	}

	keys, err := keyPair(cfg)
	if err != nil {
		return Service{}, err
	}

	b := &build{env: cfg.Env, keys: keys, maxAge: DefaultMaxAge}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return Service{}, fmt.Errorf("%w: %s", trailhead.ErrBadConfig, err)
		}
	}

	store, err := b.store()
	if err != nil {
		return Service{}, fmt.Errorf("%w: %s", trailhead.ErrBadConfig, err)
	}

	return Service{name: cfg.SessionName, store: store}, nil
}

// keyPair decodes the keys gorilla/securecookie expects.
// The Testing environment signs only, so fixtures can read cookies back.
func keyPair(cfg Config) ([][]byte, error) {
	ak, err := hex.DecodeString(cfg.AuthKey)
	if err != nil || len(ak) == 0 {
		return nil, fmt.Errorf("%w: AuthKey is not hex: %v", trailhead.ErrBadConfig, err)
	}

	ek, err := hex.DecodeString(cfg.EncryptKey)
	if err != nil {
		return nil, fmt.Errorf("%w: EncryptKey is not hex: %v", trailhead.ErrBadConfig, err)
	}

	if len(ek) == 0 || cfg.Env.IsTesting() {
		return [][]byte{ak}, nil
	}

	return [][]byte{ak, ek}, nil
}

func (b *build) store() (gorilla.Store, error) {
	opts := gorilla.Options{
		Path:     "/",
		MaxAge:   int(b.maxAge.Seconds()),
		Secure:   b.env.SecureCookies(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if b.redis == nil {
		c := gorilla.NewCookieStore(b.keys...)
		c.Options = &opts
		c.MaxAge(opts.MaxAge)
		return c, nil
	}

	rs, err := redistore.NewRediStore(redisPoolSize, "tcp", b.redis.uri, b.redis.pass, b.keys...)
	if err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	rs.Options = &opts
	rs.SetMaxAge(opts.MaxAge)
	return rs, nil
}

// GetSession loads the Session for r, or starts one.
// A cookie that no longer decodes, after a key rotation say, yields an empty Session and the error.
func (s Service) GetSession(r *http.Request) (Session, error) {
	gs, err := s.store.Get(r, s.name)
	return Session{s: gs}, err
}

// WithCookie keeps sessions in the cookie itself. It is the default.
func WithCookie() ServiceOpt {
	return func(b *build) error {
		b.redis = nil
		return nil
	}
}

// WithMaxAge sets how long a session lasts, in seconds.
func WithMaxAge(secs int) ServiceOpt {
	return func(b *build) error {
		if secs <= 0 {
			return fmt.Errorf("%w: max age %d", trailhead.ErrNotValid, secs)
		}

		b.maxAge = time.Duration(secs) * time.Second
		return nil
	}
}

// WithRedis keeps sessions in Redis at uri, the cookie holding only their ID.
// pass may be empty.
func WithRedis(uri, pass string) ServiceOpt {
	return func(b *build) error {
		b.redis = &struct{ uri, pass string }{uri, pass}
		return nil
	}
}

// A Stub is a gorilla.Store holding one in-memory session, for tests.
type Stub struct {
	s *gorilla.Session
}

// NewStub builds a *Stub, its session holding the application session ID sid unless empty.
func NewStub(sid string) *Stub {
	st := new(Stub)
	st.s = gorilla.NewSession(st, "stub")
	st.s.Options = &gorilla.Options{Path: "/"}
	if sid != "" {
		st.s.Values[sessionIDKey] = sid
	}

	return st
}

func (st *Stub) GetSession(*http.Request) (Session, error) { return Session{st.s}, nil }

func (st *Stub) Get(*http.Request, string) (*gorilla.Session, error)                { return st.s, nil }
func (st *Stub) New(*http.Request, string) (*gorilla.Session, error)                { return st.s, nil }
func (st *Stub) Save(*http.Request, http.ResponseWriter, *gorilla.Session) error { return nil }
