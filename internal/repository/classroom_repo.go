package repository

import (
	"context"

	"gorm.io/gorm"

	"teachove/backend/internal/model"
)

// ClassroomRepository 班级名册数据访问接口
type ClassroomRepository interface {
	List(ctx context.Context, schoolID, academicYear string) ([]model.Classroom, error)
	Create(ctx context.Context, classroom *model.Classroom) error
}

type classroomRepo struct {
	db *gorm.DB
}

// NewClassroomRepo 创建 ClassroomRepository 实例
func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

func (r *classroomRepo) List(ctx context.Context, schoolID, academicYear string) ([]model.Classroom, error) {
	var classes []model.Classroom
	q := r.db.WithContext(ctx).Where("school_id = ?", schoolID)
	if academicYear != "" {
		q = q.Where("academic_year = ?", academicYear)
	}
	err := q.Order("class_name ASC, section ASC").Find(&classes).Error
	return classes, err
}

func (r *classroomRepo) Create(ctx context.Context, classroom *model.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}
