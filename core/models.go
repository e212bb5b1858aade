package core

import "time"

// User represents a registered account.
//
// The ID is generated by the session manager before the record reaches the
// store and never changes afterwards. Email is stored lowercase. JoinedAt is
// set exactly once, at creation.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Name         string    `json:"name,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	JoinedAt     time.Time `json:"joinedAt"`
}

// RegisterInput contains the data needed to register a new user
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput contains the credentials for authentication
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileInput carries the mutable profile fields. Email, password
// hash, and joined-at are not updatable through this flow.
type UpdateProfileInput struct {
	ID       string `json:"-"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}

// AuthResult is returned by Register and Login: the verified identity, the
// signed token, and the cookie instruction the transport should apply.
type AuthResult struct {
	User      *User          `json:"user"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Cookie    *SessionCookie `json:"-"`
}

// ResumeResult is returned by Resume. When the presented token had less than
// half its lifetime left, a fresh token is issued and Refreshed is set; the
// transport should then apply the new cookie.
type ResumeResult struct {
	User      *User          `json:"user"`
	Refreshed bool           `json:"-"`
	Token     string         `json:"-"`
	ExpiresAt time.Time      `json:"-"`
	Cookie    *SessionCookie `json:"-"`
}

// SessionCookie is a transport-agnostic set-cookie instruction. The session
// manager decides the cookie; HTTP adapters only materialize it.
type SessionCookie struct {
	Name     string
	Value    string
	Path     string
	MaxAge   int // seconds; negative clears the cookie
	Secure   bool
	HTTPOnly bool
	SameSite string
}
