package dto

// ── Student module DTOs ──

// CreateStudentRequest adds one student to a class.
type CreateStudentRequest struct {
	RegNoSuffix string `json:"regNoSuffix" binding:"required,min=1,max=50"`
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	ClassID     string `json:"classId"     binding:"required,uuid"`
}

// BulkImportRequest inserts many students at once.
type BulkImportRequest struct {
	Students []CreateStudentRequest `json:"students" binding:"required,min=1,dive"`
}

// BulkImportResponse reports how many students were inserted.
type BulkImportResponse struct {
	Message  string            `json:"message"`
	Students []StudentResponse `json:"students"`
}

// StudentResponse is one student, with the full registration number
// composed from the class prefix and the student suffix.
type StudentResponse struct {
	ID          string `json:"_id"`
	RegNoSuffix string `json:"regNoSuffix"`
	RegNo       string `json:"regNo"`
	Name        string `json:"name"`
	ClassID     string `json:"classId"`
}
