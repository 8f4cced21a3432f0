package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"gestion-cours/backend/config"
	"gestion-cours/backend/internal/dto"
	"gestion-cours/backend/internal/service"
	"gestion-cours/backend/pkg/response"
)

// UserHandler 用户管理与个人资料 HTTP 处理器
type UserHandler struct {
	cfg     *config.Config
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(cfg *config.Config, userSvc service.UserService) *UserHandler {
	return &UserHandler{cfg: cfg, userSvc: userSvc}
}

// ListUsers 管理员查看全部用户
// GET /api/v1/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.ListUsers(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, users)
}

// CreateUser 管理员创建用户
// POST /api/v1/admin/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.CreateUser(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.Conflict(c, 20002, "用户名已存在")
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, 20003, "无效的角色")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, user)
}

// GetProfile 查看当前用户个人资料
// GET /api/v1/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, profile)
}

// UpdateProfile 更新个人资料（multipart 表单，照片可选）
// PUT /api/v1/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	var photo *service.PhotoUpload
	if fh, err := c.FormFile("photo"); err == nil && fh != nil {
		if fh.Size > h.cfg.Upload.MaxSizeBytes {
			response.BadRequest(c, 20004, "图片大小超过限制")
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.InternalError(c)
			return
		}
		defer f.Close()
		photo = &service.PhotoUpload{Filename: fh.Filename, Reader: f}
	}

	profile, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, req.Introduction, photo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhotoExtension):
			response.BadRequest(c, 20005, "不支持的图片格式")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20001, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, profile)
}
