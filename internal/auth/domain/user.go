package domain

import "time"

// User is the authenticated identity the task partitions are keyed by. Only
// ID matters to the task core; the remaining fields feed the profile card.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email" gorm:"uniqueIndex"`
	Password      string    `json:"-"` // Never return password in JSON
	Name          string    `json:"name"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	Provider      string    `json:"provider"` // "email" or "google"
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RefreshToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
