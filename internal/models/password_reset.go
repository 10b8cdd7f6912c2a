package models

import "time"

// PasswordResetToken is a one-time credential-recovery token. Issuing a new
// token deletes all previous rows for the email; consumption and expiry
// checks delete the row, so a token is never usable twice.
type PasswordResetToken struct {
	BaseModel
	Email     string    `gorm:"not null;index" json:"email"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// Expired reports whether the token is past its window.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
