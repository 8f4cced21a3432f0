package service

// 内存版 Repository 桩实现，行为对齐 GORM 实现：
// 未命中返回 gorm.ErrRecordNotFound，唯一约束语义在内存中复刻。

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gestion-cours/backend/internal/model"
	"gestion-cours/backend/internal/repository"
)

type mockStore struct {
	users       map[string]*model.User       // key: user_id
	courses     map[string]*model.Course     // key: course_id
	enrollments map[string]*model.Enrollment // key: enrollment_id
	grades      map[string]*model.Grade      // key: enrollment_id（唯一约束）
}

func newMockStore() *mockStore {
	return &mockStore{
		users:       make(map[string]*model.User),
		courses:     make(map[string]*model.Course),
		enrollments: make(map[string]*model.Enrollment),
		grades:      make(map[string]*model.Grade),
	}
}

// repo 以接口桩装配 Repository；Transact 在未绑定连接时直接执行
func (st *mockStore) repo() *repository.Repository {
	return &repository.Repository{
		User:       &mockUserRepo{st: st},
		Course:     &mockCourseRepo{st: st},
		Enrollment: &mockEnrollmentRepo{st: st},
		Grade:      &mockGradeRepo{st: st},
	}
}

// ── 造数辅助 ──

func (st *mockStore) addUser(username, role string) *model.User {
	u := &model.User{
		UserID:   uuid.NewString(),
		Username: username,
		Role:     role,
	}
	st.users[u.UserID] = u
	return u
}

func (st *mockStore) addCourse(name, professorID string) *model.Course {
	c := &model.Course{
		CourseID:    uuid.NewString(),
		Name:        name,
		ProfessorID: professorID,
	}
	st.courses[c.CourseID] = c
	return c
}

func (st *mockStore) addEnrollment(studentID, courseID string) *model.Enrollment {
	e := &model.Enrollment{
		EnrollmentID: uuid.NewString(),
		StudentID:    studentID,
		CourseID:     courseID,
	}
	st.enrollments[e.EnrollmentID] = e
	return e
}

// ── UserRepository 桩 ──

type mockUserRepo struct {
	st *mockStore
}

func (r *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.st.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	r.st.users[user.UserID] = user
	return nil
}

// GetByID 返回副本，对齐 GORM 每次查询产出独立对象的行为
func (r *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.st.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) Update(_ context.Context, user *model.User) error {
	r.st.users[user.UserID] = user
	return nil
}

func (r *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(r.st.users))
	for _, u := range r.st.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *mockUserRepo) ListStudentsNotInCourse(_ context.Context, courseID string) ([]model.User, error) {
	enrolled := make(map[string]bool)
	for _, e := range r.st.enrollments {
		if e.CourseID == courseID {
			enrolled[e.StudentID] = true
		}
	}

	var users []model.User
	for _, u := range r.st.users {
		if u.Role == model.RoleStudent && !enrolled[u.UserID] {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// ── CourseRepository 桩 ──

type mockCourseRepo struct {
	st *mockStore
}

func (r *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		course.CourseID = uuid.NewString()
	}
	r.st.courses[course.CourseID] = course
	return nil
}

func (r *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	c, ok := r.st.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *mockCourseRepo) GetOwned(_ context.Context, courseID, professorID string) (*model.Course, error) {
	c, ok := r.st.courses[courseID]
	if !ok || c.ProfessorID != professorID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *mockCourseRepo) ListByProfessor(_ context.Context, professorID string) ([]model.Course, error) {
	var courses []model.Course
	for _, c := range r.st.courses {
		if c.ProfessorID == professorID {
			courses = append(courses, *c)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Name < courses[j].Name })
	return courses, nil
}

func (r *mockCourseRepo) ListReportRows(_ context.Context) ([]repository.ReportRow, error) {
	courses := make([]*model.Course, 0, len(r.st.courses))
	for _, c := range r.st.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Name < courses[j].Name })

	var rows []repository.ReportRow
	for _, c := range courses {
		professor := r.st.users[c.ProfessorID]

		var enrollments []*model.Enrollment
		for _, e := range r.st.enrollments {
			if e.CourseID == c.CourseID {
				enrollments = append(enrollments, e)
			}
		}
		sort.Slice(enrollments, func(i, j int) bool {
			return r.st.users[enrollments[i].StudentID].Username < r.st.users[enrollments[j].StudentID].Username
		})

		if len(enrollments) == 0 {
			// LEFT JOIN：零选课课程保留一行，学生列为 NULL
			rows = append(rows, repository.ReportRow{
				CourseID:      c.CourseID,
				CourseName:    c.Name,
				ProfessorName: professor.Username,
			})
			continue
		}
		for _, e := range enrollments {
			student := r.st.users[e.StudentID]
			row := repository.ReportRow{
				CourseID:      c.CourseID,
				CourseName:    c.Name,
				ProfessorName: professor.Username,
				StudentName:   &student.Username,
			}
			if g, ok := r.st.grades[e.EnrollmentID]; ok {
				v := g.Value
				row.Grade = &v
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ── EnrollmentRepository 桩 ──

type mockEnrollmentRepo struct {
	st *mockStore
}

func (r *mockEnrollmentRepo) CreateIgnoreConflict(_ context.Context, enrollment *model.Enrollment) error {
	for _, e := range r.st.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return nil // ON CONFLICT DO NOTHING
		}
	}
	if enrollment.EnrollmentID == "" {
		enrollment.EnrollmentID = uuid.NewString()
	}
	r.st.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

func (r *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	e, ok := r.st.enrollments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *mockEnrollmentRepo) GetByStudentAndCourse(_ context.Context, studentID, courseID string) (*model.Enrollment, error) {
	for _, e := range r.st.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockEnrollmentRepo) ListRoster(_ context.Context, courseID string) ([]repository.RosterRow, error) {
	var rows []repository.RosterRow
	for _, e := range r.st.enrollments {
		if e.CourseID != courseID {
			continue
		}
		row := repository.RosterRow{
			StudentID:    e.StudentID,
			Username:     r.st.users[e.StudentID].Username,
			EnrollmentID: e.EnrollmentID,
		}
		if g, ok := r.st.grades[e.EnrollmentID]; ok {
			v := g.Value
			row.Grade = &v
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Username < rows[j].Username })
	return rows, nil
}

func (r *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]repository.StudentCourseRow, error) {
	var rows []repository.StudentCourseRow
	for _, e := range r.st.enrollments {
		if e.StudentID != studentID {
			continue
		}
		course := r.st.courses[e.CourseID]
		row := repository.StudentCourseRow{
			CourseName:        course.Name,
			ProfessorUsername: r.st.users[course.ProfessorID].Username,
		}
		if g, ok := r.st.grades[e.EnrollmentID]; ok {
			v := g.Value
			row.Grade = &v
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CourseName < rows[j].CourseName })
	return rows, nil
}

// ── GradeRepository 桩 ──

type mockGradeRepo struct {
	st *mockStore
}

func (r *mockGradeRepo) Upsert(_ context.Context, grade *model.Grade) error {
	if existing, ok := r.st.grades[grade.EnrollmentID]; ok {
		existing.Value = grade.Value // ON CONFLICT DO UPDATE
		return nil
	}
	if grade.GradeID == "" {
		grade.GradeID = uuid.NewString()
	}
	r.st.grades[grade.EnrollmentID] = grade
	return nil
}

func (r *mockGradeRepo) GetByEnrollment(_ context.Context, enrollmentID string) (*model.Grade, error) {
	g, ok := r.st.grades[enrollmentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}
