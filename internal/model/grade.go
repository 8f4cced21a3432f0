package model

// 成绩取值范围（法式 0~20 分制）
const (
	GradeMin = 0.0
	GradeMax = 20.0
)

// ValidGradeValue 判断成绩是否在允许区间内
func ValidGradeValue(v float64) bool {
	return v >= GradeMin && v <= GradeMax
}

// Grade 成绩表 — 对应 grades
// enrollment_id 唯一：每条选课记录至多一条成绩，重复录入走 upsert 更新
type Grade struct {
	GradeID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grade_id"`
	EnrollmentID string  `gorm:"type:uuid;not null;uniqueIndex"                 json:"enrollment_id"`
	Value        float64 `gorm:"type:numeric(4,1);not null"                     json:"value"`
	BaseModel
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }
