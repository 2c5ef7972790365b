package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"teachove/backend/internal/dto"
	"teachove/backend/internal/model"
	"teachove/backend/internal/repository"
)

// ── 参考实现业务错误 ──

var (
	ErrExamTimetableNotFound = errors.New("exam timetable not found")
	ErrExamSubjectNotFound   = errors.New("subject not found")
	ErrDuplicateSubjectID    = errors.New("duplicate subject id")
	ErrInvalidExamWindow     = errors.New("exam end date is before start date")
	ErrInvalidTimetableField = errors.New("invalid date or time")
	ErrAcademicYearRequired  = errors.New("academic_year is required")
	ErrClassroomExists       = errors.New("class already exists")
)

// ExamTimetableService 考试时间表存储服务（参考实现）
//
// 时间表按学校隔离；更新为整表替换，科目标识在表内唯一
type ExamTimetableService interface {
	List(ctx context.Context, schoolID, academicYear string) ([]dto.Timetable, error)
	ListByClass(ctx context.Context, schoolID, classID string) ([]dto.Timetable, error)
	Create(ctx context.Context, schoolID, academicYear string, req *dto.TimetablePayload) (*dto.Timetable, error)
	Update(ctx context.Context, schoolID, academicYear, timetableID string, req *dto.TimetablePayload) (*dto.Timetable, error)
	Delete(ctx context.Context, schoolID, timetableID string) error
	DeleteSubject(ctx context.Context, schoolID, timetableID, subjectID string) error
}

type examTimetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExamTimetableService 创建 ExamTimetableService 实例
func NewExamTimetableService(repo *repository.Repository, logger *zap.Logger) ExamTimetableService {
	return &examTimetableService{repo: repo, logger: logger}
}

func (s *examTimetableService) List(ctx context.Context, schoolID, academicYear string) ([]dto.Timetable, error) {
	rows, err := s.repo.ExamTimetable.ListBySchool(ctx, schoolID, academicYear)
	if err != nil {
		s.logger.Error("查询考试时间表失败", zap.String("school_id", schoolID), zap.Error(err))
		return nil, err
	}
	return toTimetableDTOs(rows), nil
}

func (s *examTimetableService) ListByClass(ctx context.Context, schoolID, classID string) ([]dto.Timetable, error) {
	rows, err := s.repo.ExamTimetable.ListByClass(ctx, schoolID, classID)
	if err != nil {
		s.logger.Error("查询班级考试时间表失败", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}
	return toTimetableDTOs(rows), nil
}

func (s *examTimetableService) Create(ctx context.Context, schoolID, academicYear string, req *dto.TimetablePayload) (*dto.Timetable, error) {
	if academicYear == "" {
		return nil, ErrAcademicYearRequired
	}
	m, err := toTimetableModel(schoolID, academicYear, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ExamTimetable.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSubjectID
		}
		s.logger.Error("创建考试时间表失败", zap.String("school_id", schoolID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("考试时间表已创建",
		zap.String("timetable_id", m.TimetableID),
		zap.String("class_id", m.ClassID),
		zap.Int("subjects", len(m.Subjects)),
	)
	out := toTimetableDTO(m)
	return &out, nil
}

// ════════════════════════════════════════════════════════════
// Update 整表替换
// ════════════════════════════════════════════════════════════
//
// 未提供学年时沿用原值

func (s *examTimetableService) Update(ctx context.Context, schoolID, academicYear, timetableID string, req *dto.TimetablePayload) (*dto.Timetable, error) {
	existing, err := s.repo.ExamTimetable.GetByID(ctx, schoolID, timetableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamTimetableNotFound
		}
		s.logger.Error("查询考试时间表失败", zap.String("timetable_id", timetableID), zap.Error(err))
		return nil, err
	}
	if academicYear == "" {
		academicYear = existing.AcademicYear
	}

	m, err := toTimetableModel(schoolID, academicYear, req)
	if err != nil {
		return nil, err
	}
	m.TimetableID = existing.TimetableID
	m.CreatedAt = existing.CreatedAt

	if err := s.repo.ExamTimetable.Replace(ctx, m); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrExamTimetableNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrDuplicateSubjectID
		}
		s.logger.Error("更新考试时间表失败", zap.String("timetable_id", timetableID), zap.Error(err))
		return nil, err
	}

	out := toTimetableDTO(m)
	return &out, nil
}

func (s *examTimetableService) Delete(ctx context.Context, schoolID, timetableID string) error {
	if err := s.repo.ExamTimetable.Delete(ctx, schoolID, timetableID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamTimetableNotFound
		}
		s.logger.Error("删除考试时间表失败", zap.String("timetable_id", timetableID), zap.Error(err))
		return err
	}
	s.logger.Info("考试时间表已删除", zap.String("timetable_id", timetableID))
	return nil
}

func (s *examTimetableService) DeleteSubject(ctx context.Context, schoolID, timetableID, subjectID string) error {
	// 先确认时间表属于该学校
	if _, err := s.repo.ExamTimetable.GetByID(ctx, schoolID, timetableID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamTimetableNotFound
		}
		s.logger.Error("查询考试时间表失败", zap.String("timetable_id", timetableID), zap.Error(err))
		return err
	}
	if err := s.repo.ExamTimetable.DeleteSubject(ctx, timetableID, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamSubjectNotFound
		}
		s.logger.Error("删除科目失败",
			zap.String("timetable_id", timetableID),
			zap.String("subject_id", subjectID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func toTimetableDTOs(rows []model.ExamTimetable) []dto.Timetable {
	out := make([]dto.Timetable, 0, len(rows))
	for i := range rows {
		out = append(out, toTimetableDTO(&rows[i]))
	}
	return out
}

// ── ClassroomService ──

// ClassroomService 班级名册服务（参考实现）
type ClassroomService interface {
	List(ctx context.Context, schoolID, academicYear string) ([]dto.Classroom, error)
	Create(ctx context.Context, schoolID, academicYear string, req *dto.CreateClassroomRequest) (*dto.Classroom, error)
}

type classroomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassroomService 创建 ClassroomService 实例
func NewClassroomService(repo *repository.Repository, logger *zap.Logger) ClassroomService {
	return &classroomService{repo: repo, logger: logger}
}

func (s *classroomService) List(ctx context.Context, schoolID, academicYear string) ([]dto.Classroom, error) {
	rows, err := s.repo.Classroom.List(ctx, schoolID, academicYear)
	if err != nil {
		s.logger.Error("查询班级名册失败", zap.String("school_id", schoolID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.Classroom, 0, len(rows))
	for i := range rows {
		out = append(out, toClassroomDTO(&rows[i]))
	}
	return out, nil
}

func (s *classroomService) Create(ctx context.Context, schoolID, academicYear string, req *dto.CreateClassroomRequest) (*dto.Classroom, error) {
	if academicYear == "" {
		return nil, ErrAcademicYearRequired
	}
	subjects := make([]model.ClassSubject, 0, len(req.Subjects))
	for _, sub := range req.Subjects {
		subjects = append(subjects, model.ClassSubject{SubjectName: sub.SubjectName, TeacherID: sub.TeacherID})
	}
	m := &model.Classroom{
		ClassID:      req.ClassID,
		SchoolID:     schoolID,
		AcademicYear: academicYear,
		ClassName:    req.ClassName,
		Section:      req.Section,
		Subjects:     datatypes.NewJSONSlice(subjects),
	}
	if err := s.repo.Classroom.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrClassroomExists
		}
		s.logger.Error("创建班级失败", zap.String("class_id", req.ClassID), zap.Error(err))
		return nil, err
	}
	out := toClassroomDTO(m)
	return &out, nil
}
