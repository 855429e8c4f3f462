package model

// Session holds the authenticated user's credential and identity.
// A zero Session means unauthenticated.
type Session struct {
	// Token is the opaque bearer credential issued at login.
	Token string

	// Email identifies the logged-in user.
	Email string
}

// Active reports whether a session is established. Components must
// treat an inactive session as a precondition failure for any
// authenticated operation, not as a retryable error.
func (s Session) Active() bool {
	return s.Token != ""
}
