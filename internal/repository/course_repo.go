package repository

import (
	"context"

	"gorm.io/gorm"

	"gestion-cours/backend/internal/model"
)

// ReportRow 管理端报表的扁平连接行
// 零选课的课程也会出现一行，学生列为 NULL
type ReportRow struct {
	CourseID      string   `gorm:"column:course_id"`
	CourseName    string   `gorm:"column:course_name"`
	ProfessorName string   `gorm:"column:professor_name"`
	StudentName   *string  `gorm:"column:student_name"`
	Grade         *float64 `gorm:"column:grade"`
}

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	// GetOwned 仅当课程属于该教师时返回，否则 gorm.ErrRecordNotFound
	GetOwned(ctx context.Context, courseID, professorID string) (*model.Course, error)
	ListByProfessor(ctx context.Context, professorID string) ([]model.Course, error)
	// ListReportRows 课程×教师×学生×成绩扁平连接，按课程名、学生用户名排序
	ListReportRows(ctx context.Context) ([]ReportRow, error)
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetOwned(ctx context.Context, courseID, professorID string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND professor_id = ?", courseID, professorID).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) ListByProfessor(ctx context.Context, professorID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("professor_id = ?", professorID).
		Order("name").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) ListReportRows(ctx context.Context) ([]ReportRow, error) {
	var rows []ReportRow
	err := r.db.WithContext(ctx).
		Table("courses AS c").
		Select("c.course_id, c.name AS course_name, p.username AS professor_name, s.username AS student_name, g.value AS grade").
		Joins("JOIN users p ON p.user_id = c.professor_id").
		Joins("LEFT JOIN enrollments e ON e.course_id = c.course_id").
		Joins("LEFT JOIN users s ON s.user_id = e.student_id").
		Joins("LEFT JOIN grades g ON g.enrollment_id = e.enrollment_id").
		Order("c.name, s.username").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
