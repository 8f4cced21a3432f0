package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gestion-cours/backend/internal/model"
)

// GradeRepository 成绩数据访问接口
type GradeRepository interface {
	// Upsert 录入成绩：enrollment_id 不存在则插入，存在则更新分值
	// 并发重复录入由唯一约束 + ON CONFLICT 兜底，永远只保留一行
	Upsert(ctx context.Context, grade *model.Grade) error
	GetByEnrollment(ctx context.Context, enrollmentID string) (*model.Grade, error)
}

// gradeRepo GradeRepository 的 GORM 实现
type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) Upsert(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "enrollment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(grade).Error
}

func (r *gradeRepo) GetByEnrollment(ctx context.Context, enrollmentID string) (*model.Grade, error) {
	var grade model.Grade
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}
