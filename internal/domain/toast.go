package domain

import "time"

// ToastLevel is the severity of a transient notification.
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastInfo    ToastLevel = "info"
)

// Toast is a transient notification shown to one client.
type Toast struct {
	ID        string     `json:"id"`
	Level     ToastLevel `json:"type"`
	Message   string     `json:"msg"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}
