package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gestion-cours/backend/config"
	"gestion-cours/backend/internal/dto"
	"gestion-cours/backend/internal/model"
	"gestion-cours/backend/internal/repository"
	"gestion-cours/backend/pkg/storage"
)

// ── 用户模块业务错误 ──

var (
	ErrUsernameExists    = errors.New("用户名已存在")
	ErrInvalidRole       = errors.New("无效的角色")
	ErrPhotoExtension    = errors.New("不支持的图片格式")
	ErrUserCreateFailed  = errors.New("创建用户失败")
	ErrProfileSaveFailed = errors.New("保存个人资料失败")
)

// PhotoUpload 待保存的头像文件
type PhotoUpload struct {
	Filename string
	Reader   io.Reader
}

// UserService 用户业务接口
type UserService interface {
	// CreateUser 管理员创建任意角色的账户
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	// UpdateProfile 更新简介，photo 非 nil 时同时保存头像
	// 头像扩展名不在白名单内时整体拒绝（ErrPhotoExtension）
	UpdateProfile(ctx context.Context, userID, introduction string, photo *PhotoUpload) (*dto.ProfileResponse, error)
}

type userService struct {
	cfg    *config.Config
	repo   *repository.Repository
	photos *storage.PhotoStore
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(cfg *config.Config, repo *repository.Repository, photos *storage.PhotoStore, logger *zap.Logger) UserService {
	return &userService{cfg: cfg, repo: repo, photos: photos, logger: logger}
}

// ────────────────────── CreateUser ──────────────────────

func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	// 检查用户名唯一性（数据库唯一约束兜底并发）
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, ErrUserCreateFailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, ErrUserCreateFailed
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		Email:        req.Email,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// 唯一约束冲突与其余存储错误统一报创建失败，不透出底层错误
		s.logger.Error("创建用户失败", zap.String("username", req.Username), zap.Error(err))
		return nil, ErrUserCreateFailed
	}

	return &dto.UserResponse{
		ID:       user.UserID,
		Username: user.Username,
		Role:     user.Role,
		Email:    user.Email,
	}, nil
}

// ────────────────────── ListUsers ──────────────────────

func (s *userService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, dto.UserResponse{
			ID:       u.UserID,
			Username: u.Username,
			Role:     u.Role,
			Email:    u.Email,
		})
	}
	return result, nil
}

// ────────────────────── GetProfile ──────────────────────

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	return s.toProfileResponse(user), nil
}

// ────────────────────── UpdateProfile ──────────────────────

func (s *userService) UpdateProfile(ctx context.Context, userID, introduction string, photo *PhotoUpload) (*dto.ProfileResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	user.Introduction = introduction

	if photo != nil {
		ext := photoExt(photo.Filename)
		if !s.cfg.Upload.AllowedExt(ext) {
			return nil, ErrPhotoExtension
		}

		filename, err := s.photos.Save(user.Username, ext, photo.Reader)
		if err != nil {
			s.logger.Error("保存头像失败", zap.String("username", user.Username), zap.Error(err))
			return nil, ErrProfileSaveFailed
		}
		user.Photo = filename
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新个人资料失败", zap.String("id", userID), zap.Error(err))
		return nil, ErrProfileSaveFailed
	}

	return s.toProfileResponse(user), nil
}

// ── 内部辅助方法 ──

func (s *userService) toProfileResponse(user *model.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		Username:     user.Username,
		Email:        user.Email,
		Introduction: user.Introduction,
		Photo:        user.Photo,
	}
}

// photoExt 取文件名最后一个点之后的小写扩展名，无扩展名返回空串
func photoExt(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
