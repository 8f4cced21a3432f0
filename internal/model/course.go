package model

// Course 课程表 — 对应 courses
// 创建后不可变（当前版本无改名/转让）
type Course struct {
	CourseID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	ProfessorID string `gorm:"type:uuid;not null"                             json:"professor_id"`
	BaseModel

	// 关联
	Professor *User `gorm:"foreignKey:ProfessorID;references:UserID" json:"professor,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
