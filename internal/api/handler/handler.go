package handler

import (
	"gestion-cours/backend/config"
	"gestion-cours/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Course  *CourseHandler
	Student *StudentHandler
	Report  *ReportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		User:    NewUserHandler(cfg, svc.User),
		Course:  NewCourseHandler(svc.Course),
		Student: NewStudentHandler(svc.Course),
		Report:  NewReportHandler(svc.Report),
	}
}
