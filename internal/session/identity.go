package session

// IdentityState classifies the outcome of resolving a request's session
// cookie. The three states are the complete classification space; every
// switch over them handles all three.
type IdentityState int

const (
	// StateAnonymous: no cookie, or the cookie held an expired token.
	// Expiry is a normal, recoverable condition, not tampering.
	StateAnonymous IdentityState = iota
	// StateAuthenticated: cookie present, signature valid, not expired.
	StateAuthenticated
	// StateInvalid: cookie present but the token failed verification for
	// any reason other than expiry (tampered, malformed, wrong key).
	StateInvalid
)

// Identity is the per-request resolution result. Computed once by the
// resolver middleware, read-only afterward. Claims is non-nil only when
// State is StateAuthenticated.
type Identity struct {
	State  IdentityState
	Claims *Claims
}

// Authenticated reports whether the request carries a valid identity.
func (id Identity) Authenticated() bool {
	return id.State == StateAuthenticated
}

// NeedsNewToken reports whether the request has no usable identity and a
// fresh anonymous one must be minted before durable state can be written.
func (id Identity) NeedsNewToken() bool {
	return id.State == StateAnonymous || id.State == StateInvalid
}
