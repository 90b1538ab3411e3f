package dto

// ── Class module DTOs ──

// CreateClassRequest adds a class to the roster.
type CreateClassRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	RegNoPrefix string `json:"regNoPrefix" binding:"required,min=1,max=50"`
}

// ClassResponse is one roster class.
type ClassResponse struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	RegNoPrefix string `json:"regNoPrefix"`
}
