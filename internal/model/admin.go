package model

// Admin is an administrator account in the shared credential store.
type Admin struct {
	AdminID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"admin_id"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	PasswordHash string `gorm:"type:varchar(100);not null"                     json:"-"`
	BaseModel
}

// TableName sets the table name.
func (Admin) TableName() string { return "admins" }
