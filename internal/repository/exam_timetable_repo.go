package repository

import (
	"context"

	"gorm.io/gorm"

	"teachove/backend/internal/model"
)

// ExamTimetableRepository 考试时间表数据访问接口
// 所有查询都带出 Subjects（按 position 排序）
type ExamTimetableRepository interface {
	ListBySchool(ctx context.Context, schoolID, academicYear string) ([]model.ExamTimetable, error)
	ListByClass(ctx context.Context, schoolID, classID string) ([]model.ExamTimetable, error)
	GetByID(ctx context.Context, schoolID, timetableID string) (*model.ExamTimetable, error)
	// Create 在事务中写入表头与全部科目
	Create(ctx context.Context, timetable *model.ExamTimetable) error
	// Replace 在事务中更新表头并全量替换科目
	Replace(ctx context.Context, timetable *model.ExamTimetable) error
	// Delete 删除时间表及其科目；不存在时返回 gorm.ErrRecordNotFound
	Delete(ctx context.Context, schoolID, timetableID string) error
	// DeleteSubject 删除单个科目；不存在时返回 gorm.ErrRecordNotFound
	DeleteSubject(ctx context.Context, timetableID, subjectID string) error
}

type examTimetableRepo struct {
	db *gorm.DB
}

// NewExamTimetableRepo 创建 ExamTimetableRepository 实例
func NewExamTimetableRepo(db *gorm.DB) ExamTimetableRepository {
	return &examTimetableRepo{db: db}
}

func preloadSubjects(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *examTimetableRepo) ListBySchool(ctx context.Context, schoolID, academicYear string) ([]model.ExamTimetable, error) {
	var timetables []model.ExamTimetable
	q := r.db.WithContext(ctx).
		Preload("Subjects", preloadSubjects).
		Where("school_id = ?", schoolID)
	if academicYear != "" {
		q = q.Where("academic_year = ?", academicYear)
	}
	err := q.Order("exam_start_date ASC, created_at ASC").Find(&timetables).Error
	return timetables, err
}

func (r *examTimetableRepo) ListByClass(ctx context.Context, schoolID, classID string) ([]model.ExamTimetable, error) {
	var timetables []model.ExamTimetable
	err := r.db.WithContext(ctx).
		Preload("Subjects", preloadSubjects).
		Where("school_id = ? AND class_id = ?", schoolID, classID).
		Order("exam_start_date ASC, created_at ASC").
		Find(&timetables).Error
	return timetables, err
}

func (r *examTimetableRepo) GetByID(ctx context.Context, schoolID, timetableID string) (*model.ExamTimetable, error) {
	var timetable model.ExamTimetable
	err := r.db.WithContext(ctx).
		Preload("Subjects", preloadSubjects).
		Where("school_id = ? AND timetable_id = ?", schoolID, timetableID).
		First(&timetable).Error
	if err != nil {
		return nil, err
	}
	return &timetable, nil
}

func (r *examTimetableRepo) Create(ctx context.Context, timetable *model.ExamTimetable) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subjects := timetable.Subjects
		if err := tx.Omit("Subjects").Create(timetable).Error; err != nil {
			return err
		}
		for i := range subjects {
			subjects[i].TimetableID = timetable.TimetableID
		}
		if len(subjects) > 0 {
			if err := tx.Create(&subjects).Error; err != nil {
				return err
			}
		}
		timetable.Subjects = subjects
		return nil
	})
}

func (r *examTimetableRepo) Replace(ctx context.Context, timetable *model.ExamTimetable) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ExamTimetable{}).
			Where("school_id = ? AND timetable_id = ?", timetable.SchoolID, timetable.TimetableID).
			Updates(map[string]interface{}{
				"academic_year":   timetable.AcademicYear,
				"class_id":        timetable.ClassID,
				"class_name":      timetable.ClassName,
				"exam_name":       timetable.ExamName,
				"exam_start_date": timetable.ExamStartDate,
				"exam_end_date":   timetable.ExamEndDate,
				"updated_at":      gorm.Expr("NOW()"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// 科目整表替换，硬删除
		if err := tx.Where("timetable_id = ?", timetable.TimetableID).
			Delete(&model.ExamSubject{}).Error; err != nil {
			return err
		}
		for i := range timetable.Subjects {
			timetable.Subjects[i].TimetableID = timetable.TimetableID
		}
		if len(timetable.Subjects) > 0 {
			if err := tx.Create(&timetable.Subjects).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *examTimetableRepo) Delete(ctx context.Context, schoolID, timetableID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("school_id = ? AND timetable_id = ?", schoolID, timetableID).
			Delete(&model.ExamTimetable{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// 外键已级联；显式删除以兼容未建外键的库
		return tx.Where("timetable_id = ?", timetableID).Delete(&model.ExamSubject{}).Error
	})
}

func (r *examTimetableRepo) DeleteSubject(ctx context.Context, timetableID, subjectID string) error {
	res := r.db.WithContext(ctx).
		Where("timetable_id = ? AND subject_id = ?", timetableID, subjectID).
		Delete(&model.ExamSubject{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
