package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gestion-cours/backend/internal/service"
	"gestion-cours/backend/pkg/response"
)

// ReportHandler 管理端报表 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// ListCourses 管理员查看全部课程及选课成绩
// GET /api/v1/admin/courses
func (h *ReportHandler) ListCourses(c *gin.Context) {
	groups, err := h.reportSvc.AggregateCourses(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, groups)
}

// ExportCourses 导出全部课程成绩为 Excel
// GET /api/v1/admin/courses/export
func (h *ReportHandler) ExportCourses(c *gin.Context) {
	buf, filename, err := h.reportSvc.ExportCourses(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
