package model

// Enrollment 选课表 — 对应 enrollments
// (student_id, course_id) 唯一；只增不删，状态机只向前：
// 未选课 → 已选课无成绩 → 已选课有成绩
type Enrollment struct {
	EnrollmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"              json:"enrollment_id"`
	StudentID    string `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_student_course" json:"student_id"`
	CourseID     string `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_student_course" json:"course_id"`
	BaseModel

	// 关联
	Student *User   `gorm:"foreignKey:StudentID;references:UserID"   json:"student,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID;references:CourseID"  json:"course,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }
