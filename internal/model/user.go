// Package model defines the entities exchanged with the shortening backend
// and held in the browser session.
package model

// User is the profile the backend returns on login.
type User struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	PreferredLanguage string `json:"preferred_language,omitempty"`
	IsAdmin           bool   `json:"is_admin"`
	IsActive          bool   `json:"is_active"`
}

// Session is the per-browser authentication state.
// Token and User are always written together; see session.Manager.
type Session struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// Authenticated reports whether a token is present.
// The token is trusted at face value; the backend is the enforcement point.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// IsAdmin reports whether the cached profile carries the admin flag.
func (s *Session) IsAdmin() bool {
	return s != nil && s.User != nil && s.User.IsAdmin
}
