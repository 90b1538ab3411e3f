package model

// Student belongs to exactly one class. The registration-number suffix
// is unique within the class and keys attendance entries to the student.
type Student struct {
	StudentID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	ClassID     string `gorm:"type:uuid;not null;index:idx_students_class"    json:"class_id"`
	RegNoSuffix string `gorm:"type:varchar(50);not null"                      json:"reg_no_suffix"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel

	Class *Class `gorm:"foreignKey:ClassID;references:ClassID" json:"class,omitempty"`
}

// TableName sets the table name.
func (Student) TableName() string { return "students" }
