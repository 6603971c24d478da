package domain

import "time"

// Session backs the usernameID cookie: the cookie carries a signed JWT, and a
// row keyed by the token's SHA256 hash must exist for the token to be accepted.
type Session struct {
	ID           int       `json:"id" db:"id"`
	UserUniqueID string    `json:"user_unique_id" db:"user_unique_id"`
	TokenHash    string    `json:"-" db:"token_hash"`
	DeviceInfo   *string   `json:"device_info" db:"device_info"`
	IPAddress    *string   `json:"ip_address" db:"ip_address"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// PasswordReset is a one-time token mailed by the forgot-password flow.
type PasswordReset struct {
	TokenHash    string    `db:"token_hash"`
	UserUniqueID string    `db:"user_unique_id"`
	ExpiresAt    time.Time `db:"expires_at"`
}

func (r *PasswordReset) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}
