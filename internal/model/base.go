package model

import "time"

// 角色为封闭枚举，鉴权时严格相等匹配（admin 不隐含 professor 权限）
const (
	RoleAdmin     = "admin"
	RoleProfessor = "professor"
	RoleStudent   = "student"
)

// ValidRole 判断角色是否为已知枚举值
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleProfessor, RoleStudent:
		return true
	}
	return false
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
