package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	Admin         AdminRepository
	Class         ClassRepository
	Student       StudentRepository
	Session       SessionRepository
	AttendanceLog AttendanceLogRepository
}

// NewRepository builds the aggregate from a live database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Admin:         NewAdminRepo(db),
		Class:         NewClassRepo(db),
		Student:       NewStudentRepo(db),
		Session:       NewSessionRepo(db),
		AttendanceLog: NewAttendanceLogRepo(db),
	}
}
