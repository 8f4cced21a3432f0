package handler

import (
	"github.com/gin-gonic/gin"

	"gestion-cours/backend/internal/service"
	"gestion-cours/backend/pkg/response"
)

// StudentHandler 学生端 HTTP 处理器
type StudentHandler struct {
	courseSvc service.CourseService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(courseSvc service.CourseService) *StudentHandler {
	return &StudentHandler{courseSvc: courseSvc}
}

// ListEnrollments 学生查看自己的选课与成绩
// GET /api/v1/student/enrollments
func (h *StudentHandler) ListEnrollments(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	enrollments, err := h.courseSvc.ListStudentEnrollments(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, enrollments)
}
