package session

import (
	"net/http"
	"time"

	gorilla "github.com/gorilla/sessions"
)

// Values trailhead keeps in every browser session.
const (
	sessionIDKey     = "trailhead-sid"
	providerTokenKey = "trailhead-provider"
)

// A Sessionable holds arbitrary values between requests,
// such as the OAuth state of a sign in in flight.
type Sessionable interface {
	Get(key string) any
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
	Save(w http.ResponseWriter, r *http.Request) error
}

// An AppSessionable holds the session ID the backend issued at sign in.
type AppSessionable interface {
	ClearSessionID(w http.ResponseWriter, r *http.Request) error
	SessionID() (string, bool)
	SetSessionID(w http.ResponseWriter, r *http.Request, id string) error
}

// A ProviderSessionable holds the tokens the identity provider issued.
type ProviderSessionable interface {
	ClearProviderToken(w http.ResponseWriter, r *http.Request) error
	ProviderToken() (ProviderToken, error)
	SetProviderToken(w http.ResponseWriter, r *http.Request, tok ProviderToken) error
}

// A TrailheadSessionable is everything a handler may do with a browser's session.
type TrailheadSessionable interface {
	AppSessionable
	FlashSessionable
	ProviderSessionable
	Sessionable
}

// A ProviderToken is what trailhead keeps of the tokens an identity provider issued.
type ProviderToken struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	TokenType    string
	Expiry       time.Time
}

// A Session is a TrailheadSessionable over a gorilla.Session.
// Every mutation saves the session, writing its cookie to w.
type Session struct {
	s *gorilla.Session
}

func (s Session) Get(key string) any { return s.s.Values[key] }

func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Flashes returns and removes the session's flashes.
func (s Session) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	var fs []Flash
	for _, v := range s.s.Flashes() {
		if f, ok := v.(Flash); ok {
			fs = append(fs, f)
		}
	}

	if len(fs) == 0 {
		return []Flash{}
	}

	// NOTE(dlk): reading removes flashes only from memory; the cookie still holds them until saved.
	if err := s.Save(w, r); err != nil {
		return nil
	}

	return fs
}

func (s Session) SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error {
	s.s.AddFlash(flash)
	return s.Save(w, r)
}

// SessionID reports the backend session ID stored at sign in, if any.
func (s Session) SessionID() (string, bool) {
	id, _ := s.s.Values[sessionIDKey].(string)
	return id, id != ""
}

func (s Session) SetSessionID(w http.ResponseWriter, r *http.Request, id string) error {
	return s.Set(w, r, sessionIDKey, id)
}

// ClearSessionID forgets the backend session ID. Without one it only saves.
func (s Session) ClearSessionID(w http.ResponseWriter, r *http.Request) error {
	delete(s.s.Values, sessionIDKey)
	return s.Save(w, r)
}

// ProviderToken returns ErrNoToken when none is stored,
// ErrNotValid when something else is stored in its place.
func (s Session) ProviderToken() (ProviderToken, error) {
	val, ok := s.s.Values[providerTokenKey]
	if !ok {
		return ProviderToken{}, ErrNoToken
	}

	tok, ok := val.(ProviderToken)
	if !ok {
		return ProviderToken{}, ErrNotValid
	}

	return tok, nil
}

func (s Session) SetProviderToken(w http.ResponseWriter, r *http.Request, tok ProviderToken) error {
	return s.Set(w, r, providerTokenKey, tok)
}

func (s Session) ClearProviderToken(w http.ResponseWriter, r *http.Request) error {
	delete(s.s.Values, providerTokenKey)
	return s.Save(w, r)
}

// An IDStore binds an AppSessionable to the request it was loaded for,
// so auth can read, replace and clear the backend session ID without the request.
type IDStore struct {
	s AppSessionable
	w http.ResponseWriter
	r *http.Request
}

func NewIDStore(s AppSessionable, w http.ResponseWriter, r *http.Request) IDStore {
	return IDStore{s: s, w: w, r: r}
}

func (st IDStore) Get() (string, bool) { return st.s.SessionID() }
func (st IDStore) Set(id string) error { return st.s.SetSessionID(st.w, st.r, id) }
func (st IDStore) Clear() error        { return st.s.ClearSessionID(st.w, st.r) }
