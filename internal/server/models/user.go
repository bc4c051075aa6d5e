package models

import "time"

// User is a registered account. PasswordHash holds the bcrypt hash and is
// never rendered to clients.
type User struct {
	ID           string    `db:"id"`
	Number       int64     `db:"user_number"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
