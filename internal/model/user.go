package model

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null"                      json:"role"`
	Email        string `gorm:"type:varchar(255);not null;default:''"         json:"email"`
	Introduction string `gorm:"type:text;not null;default:''"                 json:"introduction"`
	Photo        string `gorm:"type:varchar(255);not null;default:''"         json:"photo"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
