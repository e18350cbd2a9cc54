package handler

// RegisterRequest is the POST /api/register body.
type RegisterRequest struct {
	Login   string `json:"login"`
	Contact string `json:"contact"`
	Secret  string `json:"secret"`
}

// LoginRequest is the POST /api/login body.
type LoginRequest struct {
	Login  string `json:"login"`
	Secret string `json:"secret"`
}
