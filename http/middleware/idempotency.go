package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"io"
	"mime"
	"net/http"
	"net/url"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	// IdempotencyField carries the key in forms, which cannot set IdempotencyHeader.
	// Every form trailhead renders fills it with a fresh nonce.
	IdempotencyField = "idempotency_key"
)

// A Replay records how trailhead answered one form submission.
// A zero Status marks a submission still being handled.
type Replay struct {
	URI      string   `json:"uri"`
	Digest   [32]byte `json:"digest"`
	Status   int      `json:"status"`
	Location string   `json:"location,omitempty"`
	Body     []byte   `json:"body,omitempty"`
}

func (rp Replay) pending() bool { return rp.Status == 0 }

// matches reports whether r resubmits what rp recorded.
func (rp Replay) matches(uri string, digest [32]byte) bool {
	return rp.URI == uri && rp.Digest == digest
}

// Idempotent answers a resubmitted form, e.g. a double clicked "Save",
// with the response to the first submission instead of handling it again.
//
// Each POST must carry a key in IdempotencyHeader or the IdempotencyField form field; without one it is a 400.
// The first submission under a key is claimed in store and handled as usual, its response saved afterwards.
// A later submission under that key gets
//
//   - 409 while the first is still being handled
//   - 422 when its URI or body differ from the first
//   - the first one's status, Location and body otherwise
//
// Other methods get 405. A nil store keeps replays in a MemoryReplays.
//
// cf. https://tools.ietf.org/id/draft-idempotency-header-01.html
func Idempotent(store ReplayStore) Adapter {
	if store == nil {
		store = NewMemoryReplays()
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := idempotencyKey(r, body)
			if key == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			uri := r.URL.RequestURI()
			digest := sha256.Sum256(body)
			if prior, taken := store.Claim(r.Context(), key, Replay{URI: uri, Digest: digest}); taken {
				replay(w, prior, uri, digest)
				return
			}

			rec := &recorder{ResponseWriter: w, status: http.StatusOK}
			handler.ServeHTTP(rec, r)

			// NOTE(dlk): a browser that gave up waiting must not leave the key pending.
			store.Save(context.WithoutCancel(r.Context()), key, Replay{
				URI:      uri,
				Digest:   digest,
				Status:   rec.status,
				Location: w.Header().Get("Location"),
				Body:     rec.body.Bytes(),
			})
		})
	}
}

func replay(w http.ResponseWriter, prior Replay, uri string, digest [32]byte) {
	switch {
	case prior.pending():
		w.WriteHeader(http.StatusConflict)
	case !prior.matches(uri, digest):
		w.WriteHeader(http.StatusUnprocessableEntity)
	default:
		if prior.Location != "" {
			w.Header().Set("Location", prior.Location)
		}
		w.WriteHeader(prior.Status)
		_, _ = w.Write(prior.Body)
	}
}

// idempotencyKey prefers IdempotencyHeader, then IdempotencyField of an urlencoded body.
func idempotencyKey(r *http.Request, body []byte) string {
	if key := r.Header.Get(IdempotencyHeader); key != "" {
		return key
	}

	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt != "application/x-www-form-urlencoded" {
		return ""
	}

	vals, err := url.ParseQuery(string(body))
	if err != nil {
		return ""
	}

	return vals.Get(IdempotencyField)
}

// recorder copies what a handler writes so it can be saved as a Replay.
type recorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (rec *recorder) WriteHeader(status int) {
	if rec.wroteHeader {
		return
	}

	rec.wroteHeader = true
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *recorder) Write(b []byte) (int, error) {
	if !rec.wroteHeader {
		rec.WriteHeader(http.StatusOK)
	}

	rec.body.Write(b)
	return rec.ResponseWriter.Write(b)
}
