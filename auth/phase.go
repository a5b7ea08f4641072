package auth

// A Phase is where a Bridge is in resolving who is signed in.
type Phase int

const (
	Initializing Phase = iota
	Resolving
	Authenticated
	Unauthenticated
)

func (p Phase) String() string {
	switch p {
	case Initializing:
		return "initializing"
	case Resolving:
		return "resolving"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// The State is what route guards decide on.
//
// *Bridge implements State.
type State interface {
	IsAuthenticated() bool
	Loading() bool
}
