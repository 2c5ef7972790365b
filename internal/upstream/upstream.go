// Package upstream 访问远端考试时间表 API 与班级名册。
//
// 所有失败（传输错误、非 2xx、响应体无法识别）统一包装为 errors.ErrOperationFailed，
// 调用方不区分具体原因；详细信息仅保留在错误链中供日志使用。
package upstream

import (
	"context"

	"teachove/backend/internal/dto"
)

// TimetableRepository 考试时间表远端仓储
type TimetableRepository interface {
	ListTimetables(ctx context.Context, schoolID, academicYear string) ([]dto.Timetable, error)
	ListTimetablesByClass(ctx context.Context, schoolID, classID string) ([]dto.Timetable, error)
	CreateTimetable(ctx context.Context, schoolID, academicYear string, payload *dto.TimetablePayload) (*dto.Timetable, error)
	UpdateTimetable(ctx context.Context, schoolID, academicYear, timetableID string, payload *dto.TimetablePayload) (*dto.Timetable, error)
	DeleteTimetable(ctx context.Context, schoolID, academicYear, timetableID string) error
	DeleteSubject(ctx context.Context, schoolID, academicYear, timetableID, subjectID string) error
}

// RosterProvider 班级名册
type RosterProvider interface {
	ListClasses(ctx context.Context, schoolID, academicYear string) ([]dto.Classroom, error)
}
