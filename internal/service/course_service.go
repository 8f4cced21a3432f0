package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gestion-cours/backend/internal/dto"
	"gestion-cours/backend/internal/model"
	"gestion-cours/backend/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNameEmpty    = errors.New("课程名不能为空")
	ErrCourseNotFound     = errors.New("课程不存在或不属于当前教师")
	ErrStudentNotFound    = errors.New("学生不存在")
	ErrNotAStudent        = errors.New("目标用户不是学生")
	ErrEnrollmentNotFound = errors.New("选课记录不存在")
	ErrInvalidGrade       = errors.New("成绩必须在 0-20 之间")
	ErrSubmitInvalid      = errors.New("提交参数无效：选课与改成绩模式互斥")
)

// CourseService 课程/选课/成绩业务接口
type CourseService interface {
	CreateCourse(ctx context.Context, professorID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	ListMyCourses(ctx context.Context, professorID string) ([]dto.CourseResponse, error)
	// GetCourseDetail 课程详情：仅课程属于该教师时返回，否则 ErrCourseNotFound
	GetCourseDetail(ctx context.Context, courseID, professorID string) (*dto.CourseDetailResponse, error)
	// EnrollStudent 幂等选课：已存在的 (student, course) 直接返回现有记录
	EnrollStudent(ctx context.Context, courseID, studentID string) (*model.Enrollment, error)
	// SetGrade 录入或更新成绩（upsert），每条选课记录只保留一行成绩
	SetGrade(ctx context.Context, enrollmentID string, value float64) error
	// SubmitCourseDetail 课程详情页双模式提交（见 dto.SubmitCourseDetailRequest）
	SubmitCourseDetail(ctx context.Context, courseID, professorID string, req *dto.SubmitCourseDetailRequest) error
	// ListStudentEnrollments 学生视角的选课与成绩，未录入成绩为 null
	ListStudentEnrollments(ctx context.Context, studentID string) ([]dto.StudentEnrollmentResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── CreateCourse ──────────────────────

func (s *courseService) CreateCourse(ctx context.Context, professorID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCourseNameEmpty
	}

	course := &model.Course{
		Name:        name,
		ProfessorID: professorID,
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.String("professor_id", professorID), zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

// ────────────────────── ListMyCourses ──────────────────────

func (s *courseService) ListMyCourses(ctx context.Context, professorID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByProfessor(ctx, professorID)
	if err != nil {
		s.logger.Error("列出课程失败", zap.String("professor_id", professorID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── GetCourseDetail ──────────────────────

func (s *courseService) GetCourseDetail(ctx context.Context, courseID, professorID string) (*dto.CourseDetailResponse, error) {
	course, err := s.repo.Course.GetOwned(ctx, courseID, professorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	roster, err := s.repo.Enrollment.ListRoster(ctx, courseID)
	if err != nil {
		s.logger.Error("查询课程名册失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	candidates, err := s.repo.User.ListStudentsNotInCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("查询可选学生失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	resp := &dto.CourseDetailResponse{
		Course:     *toCourseResponse(course),
		Students:   make([]dto.RosterEntry, 0, len(roster)),
		Candidates: make([]dto.CandidateEntry, 0, len(candidates)),
	}
	for _, row := range roster {
		resp.Students = append(resp.Students, dto.RosterEntry{
			StudentID:    row.StudentID,
			Username:     row.Username,
			Grade:        row.Grade,
			EnrollmentID: row.EnrollmentID,
		})
	}
	for _, u := range candidates {
		resp.Candidates = append(resp.Candidates, dto.CandidateEntry{
			StudentID: u.UserID,
			Username:  u.Username,
		})
	}
	return resp, nil
}

// ────────────────────── EnrollStudent ──────────────────────

func (s *courseService) EnrollStudent(ctx context.Context, courseID, studentID string) (*model.Enrollment, error) {
	return s.enrollStudent(ctx, s.repo, courseID, studentID)
}

// enrollStudent 在给定 Repository（可能绑定事务）上执行幂等选课
func (s *courseService) enrollStudent(ctx context.Context, repo *repository.Repository, courseID, studentID string) (*model.Enrollment, error) {
	student, err := repo.User.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if student.Role != model.RoleStudent {
		return nil, ErrNotAStudent
	}

	// 插入时 ON CONFLICT DO NOTHING，再回读拿到记录
	// 并发下重复选课落在唯一约束上，回读结果对双方一致
	enrollment := &model.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}
	if err := repo.Enrollment.CreateIgnoreConflict(ctx, enrollment); err != nil {
		s.logger.Error("插入选课记录失败",
			zap.String("course_id", courseID),
			zap.String("student_id", studentID),
			zap.Error(err))
		return nil, err
	}

	existing, err := repo.Enrollment.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		s.logger.Error("回读选课记录失败",
			zap.String("course_id", courseID),
			zap.String("student_id", studentID),
			zap.Error(err))
		return nil, err
	}
	return existing, nil
}

// ────────────────────── SetGrade ──────────────────────

func (s *courseService) SetGrade(ctx context.Context, enrollmentID string, value float64) error {
	return s.setGrade(ctx, s.repo, enrollmentID, value)
}

func (s *courseService) setGrade(ctx context.Context, repo *repository.Repository, enrollmentID string, value float64) error {
	if !model.ValidGradeValue(value) {
		return ErrInvalidGrade
	}

	grade := &model.Grade{
		EnrollmentID: enrollmentID,
		Value:        value,
	}
	if err := repo.Grade.Upsert(ctx, grade); err != nil {
		s.logger.Error("录入成绩失败", zap.String("enrollment_id", enrollmentID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── SubmitCourseDetail ──────────────────────

func (s *courseService) SubmitCourseDetail(ctx context.Context, courseID, professorID string, req *dto.SubmitCourseDetailRequest) error {
	// 归属校验先行：课程不属于该教师时所有提交都拒绝
	if _, err := s.repo.Course.GetOwned(ctx, courseID, professorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", courseID), zap.Error(err))
		return err
	}

	enrollMode := req.StudentID != ""
	updateMode := req.EnrollmentID != "" && req.Value != nil

	switch {
	case enrollMode && updateMode:
		return ErrSubmitInvalid
	case enrollMode:
		return s.submitEnroll(ctx, courseID, req)
	case updateMode:
		return s.submitGradeUpdate(ctx, courseID, req)
	default:
		return ErrSubmitInvalid
	}
}

// submitEnroll 选课模式：幂等选课，成绩存在时顺带录入
// 选课与录成绩在同一事务中，避免选课成功而成绩丢失
func (s *courseService) submitEnroll(ctx context.Context, courseID string, req *dto.SubmitCourseDetailRequest) error {
	if req.Grade != nil && !model.ValidGradeValue(*req.Grade) {
		return ErrInvalidGrade
	}

	return s.repo.Transact(ctx, func(txRepo *repository.Repository) error {
		enrollment, err := s.enrollStudent(ctx, txRepo, courseID, req.StudentID)
		if err != nil {
			return err
		}

		if req.Grade != nil {
			if err := s.setGrade(ctx, txRepo, enrollment.EnrollmentID, *req.Grade); err != nil {
				return err
			}
		}
		return nil
	})
}

// submitGradeUpdate 改成绩模式：跳过选课，直接更新给定选课记录的成绩
func (s *courseService) submitGradeUpdate(ctx context.Context, courseID string, req *dto.SubmitCourseDetailRequest) error {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, req.EnrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		s.logger.Error("查询选课记录失败", zap.String("enrollment_id", req.EnrollmentID), zap.Error(err))
		return err
	}

	// 选课记录必须属于该课程，防止跨课程改成绩
	if enrollment.CourseID != courseID {
		return ErrEnrollmentNotFound
	}

	return s.setGrade(ctx, s.repo, enrollment.EnrollmentID, *req.Value)
}

// ────────────────────── ListStudentEnrollments ──────────────────────

func (s *courseService) ListStudentEnrollments(ctx context.Context, studentID string) ([]dto.StudentEnrollmentResponse, error) {
	rows, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生选课失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentEnrollmentResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.StudentEnrollmentResponse{
			CourseName:        row.CourseName,
			ProfessorUsername: row.ProfessorUsername,
			Grade:             row.Grade,
		})
	}
	return result, nil
}

// ── 内部辅助方法 ──

func toCourseResponse(course *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:          course.CourseID,
		Name:        course.Name,
		ProfessorID: course.ProfessorID,
	}
}
