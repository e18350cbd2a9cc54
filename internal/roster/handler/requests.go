package handler

// RecordRequest is the body of both POST /api/records and
// PUT /api/records/{id}.
type RecordRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}
