package model

// Class is a class roster entry, e.g. "3rd Year CSE-B". Immutable after
// creation; the registration-number prefix is shared by all its students.
type Class struct {
	ClassID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	RegNoPrefix string `gorm:"type:varchar(50);not null"                      json:"reg_no_prefix"`
	BaseModel
}

// TableName sets the table name.
func (Class) TableName() string { return "classes" }
