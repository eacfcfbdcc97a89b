package domain

import "time"

// NavigationLog records a client's request to the front end.
type NavigationLog struct {
	ID        string    `json:"id"         db:"id"`
	ClientID  string    `json:"client_id"  db:"client_id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	Method    string    `json:"method"     db:"method"`
	Path      string    `json:"path"       db:"path"`
	Status    int       `json:"status"     db:"status"`
	Outcome   string    `json:"outcome"    db:"outcome"` // allowed, redirected, error
	Details   string    `json:"details"    db:"details"` // JSON blob
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Navigation outcome constants.
const (
	NavigationAllowed    = "allowed"
	NavigationRedirected = "redirected"
	NavigationError      = "error"
)
