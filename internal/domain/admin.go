package domain

import "time"

// AdminUser is a dashboard account. Password holds the bcrypt hash, never
// the plaintext.
type AdminUser struct {
	ID        string
	Username  string
	Password  string
	Email     string
	CreatedAt time.Time
}
