package handler

import "rosterd/internal/auth/models"

// SessionResponse carries a freshly issued token plus the user's public
// fields. Returned by both register (201) and login (200).
type SessionResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}
