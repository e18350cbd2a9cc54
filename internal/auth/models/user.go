package models

import (
	"time"

	id "rosterd/pkg/domain"
)

// User is a registered identity. Login and contact address are globally
// unique; the secret is stored only as a bcrypt hash. Users are created at
// registration and never mutated or deleted by this core.
type User struct {
	ID         id.UserID
	Login      string
	Contact    string
	SecretHash string
	CreatedAt  time.Time
}

// PublicUser is the client-visible projection of a User. The secret hash
// never crosses the transport boundary.
type PublicUser struct {
	ID        id.UserID `json:"id"`
	Login     string    `json:"login"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the result of a successful registration or login: a bearer
// token plus the public fields of the user it was issued to.
type Session struct {
	Token string
	User  PublicUser
}

// Public strips the secret hash from a User.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Login:     u.Login,
		Contact:   u.Contact,
		CreatedAt: u.CreatedAt,
	}
}
