package domain

import "time"

// Session binds a request to a sanitized user. It lives entirely inside the
// signed token; the server keeps no session state.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
