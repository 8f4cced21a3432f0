package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gestion-cours/backend/internal/model"
)

// RosterRow 课程名册行：已选课学生（左连成绩，成绩可为 NULL）
type RosterRow struct {
	StudentID    string   `gorm:"column:student_id"`
	Username     string   `gorm:"column:username"`
	Grade        *float64 `gorm:"column:grade"`
	EnrollmentID string   `gorm:"column:enrollment_id"`
}

// StudentCourseRow 学生视角的选课行（左连成绩）
type StudentCourseRow struct {
	CourseName        string   `gorm:"column:course_name"`
	ProfessorUsername string   `gorm:"column:professor_username"`
	Grade             *float64 `gorm:"column:grade"`
}

// EnrollmentRepository 选课数据访问接口
type EnrollmentRepository interface {
	// CreateIgnoreConflict 插入选课记录；(student_id, course_id) 已存在时不报错也不重复插入
	// 并发竞争由数据库唯一约束兜底
	CreateIgnoreConflict(ctx context.Context, enrollment *model.Enrollment) error
	GetByID(ctx context.Context, id string) (*model.Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (*model.Enrollment, error)
	ListRoster(ctx context.Context, courseID string) ([]RosterRow, error)
	ListByStudent(ctx context.Context, studentID string) ([]StudentCourseRow, error)
}

// enrollmentRepo EnrollmentRepository 的 GORM 实现
type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) CreateIgnoreConflict(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(enrollment).Error
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", id).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) ListRoster(ctx context.Context, courseID string) ([]RosterRow, error) {
	var rows []RosterRow
	err := r.db.WithContext(ctx).
		Table("enrollments AS e").
		Select("u.user_id AS student_id, u.username, g.value AS grade, e.enrollment_id").
		Joins("JOIN users u ON u.user_id = e.student_id").
		Joins("LEFT JOIN grades g ON g.enrollment_id = e.enrollment_id").
		Where("e.course_id = ?", courseID).
		Order("u.username").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *enrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]StudentCourseRow, error) {
	var rows []StudentCourseRow
	err := r.db.WithContext(ctx).
		Table("enrollments AS e").
		Select("c.name AS course_name, p.username AS professor_username, g.value AS grade").
		Joins("JOIN courses c ON c.course_id = e.course_id").
		Joins("JOIN users p ON p.user_id = c.professor_id").
		Joins("LEFT JOIN grades g ON g.enrollment_id = e.enrollment_id").
		Where("e.student_id = ?", studentID).
		Order("c.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
