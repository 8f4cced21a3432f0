package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（脱敏，不含密码哈希）
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Role     string `json:"role"     binding:"required,oneof=admin professor student"`
	Email    string `json:"email"    binding:"omitempty,email"`
}

// ProfileResponse 个人资料响应
type ProfileResponse struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Introduction string `json:"introduction"`
	Photo        string `json:"photo"`
}

// UpdateProfileRequest 更新个人资料请求（multipart 表单）
// 照片为可选文件字段，由 Handler 层单独提取
type UpdateProfileRequest struct {
	Introduction string `form:"introduction" binding:"max=2000"`
}
