package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"gestion-cours/backend/internal/dto"
	"gestion-cours/backend/internal/service"
	"gestion-cours/backend/pkg/response"
)

// CourseHandler 教师端课程管理 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListMyCourses 教师查看自己的课程列表
// GET /api/v1/professor/courses
func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	courses, err := h.courseSvc.ListMyCourses(c.Request.Context(), professorID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, courses)
}

// CreateCourse 教师创建课程
// POST /api/v1/professor/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	course, err := h.courseSvc.CreateCourse(c.Request.Context(), professorID, &req)
	if err != nil {
		if errors.Is(err, service.ErrCourseNameEmpty) {
			response.BadRequest(c, 30001, "课程名不能为空")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, course)
}

// GetCourseDetail 课程详情：名册 + 可选学生
// GET /api/v1/professor/courses/:id
func (h *CourseHandler) GetCourseDetail(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	detail, err := h.courseSvc.GetCourseDetail(c.Request.Context(), c.Param("id"), professorID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 30002, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, detail)
}

// SubmitCourseDetail 课程详情页提交：选课（可带成绩）或改成绩
// POST /api/v1/professor/courses/:id
func (h *CourseHandler) SubmitCourseDetail(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitCourseDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	err := h.courseSvc.SubmitCourseDetail(c.Request.Context(), c.Param("id"), professorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 30002, "课程不存在")
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 30003, "学生不存在")
		case errors.Is(err, service.ErrNotAStudent):
			response.BadRequest(c, 30004, "目标用户不是学生")
		case errors.Is(err, service.ErrEnrollmentNotFound):
			response.NotFound(c, 30005, "选课记录不存在")
		case errors.Is(err, service.ErrInvalidGrade):
			response.BadRequest(c, 30006, "成绩必须在 0-20 之间")
		case errors.Is(err, service.ErrSubmitInvalid):
			response.BadRequest(c, 30007, "提交参数无效")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
