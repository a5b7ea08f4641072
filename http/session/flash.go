package session

import "net/http"

// Flash types, each styled differently by the layouts.
const (
	FlashError   = "error"
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"
)

// Flash messages trailhead shows.
const (
	AuthFailedMsg   = "We couldn't finish signing you in. Please try again."
	BadInputMsg     = "Hmm... check your form, something isn't correct."
	DefaultErrMsg   = "Uh oh! We've run into an issue."
	NoAccessMsg     = "Oops, sending you back somewhere safe."
	SessionEndMsg   = "Your session has ended. Please sign in again."
	SignedOutMsg    = "You have been signed out."
	SignInDeniedMsg = "Sign in was cancelled."
)

// ContactUsErr formats with where to reach support.
var ContactUsErr = DefaultErrMsg + " Please contact us at %s if the issue persists."

// A FlashSessionable carries Flashes to the next page rendered.
type FlashSessionable interface {
	Flashes(w http.ResponseWriter, r *http.Request) []Flash
	SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error
}

// A Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}
