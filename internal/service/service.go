package service

import (
	"go.uber.org/zap"

	"gestion-cours/backend/config"
	"gestion-cours/backend/internal/repository"
	"gestion-cours/backend/pkg/jwt"
	"gestion-cours/backend/pkg/redis"
	"gestion-cours/backend/pkg/storage"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth   AuthService
	User   UserService
	Course CourseService
	Report ReportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	photos *storage.PhotoStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:   NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:   NewUserService(cfg, repo, photos, logger),
		Course: NewCourseService(repo, logger),
		Report: NewReportService(repo, logger),
	}
}
