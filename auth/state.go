package auth

// State is where a browser session stands in the sign-in flow.
type State int

const (
	StateUnauthenticated State = iota
	StateAwaitingCode
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAwaitingCode:
		return "awaiting_code"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}
