package service

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"teachove/backend/internal/dto"
	"teachove/backend/internal/model"
	"teachove/backend/internal/timefmt"
)

// ── 持久化模型 ↔ 接口表示 ──

func toTimetableDTO(m *model.ExamTimetable) dto.Timetable {
	subjects := make([]dto.Subject, 0, len(m.Subjects))
	for _, s := range m.Subjects {
		subjects = append(subjects, dto.Subject{
			SubjectID:   s.SubjectID,
			SubjectName: s.SubjectName,
			ExamDate:    formatDate(s.ExamDate),
			StartTime:   formatTime(s.StartTime),
			EndTime:     formatTime(s.EndTime),
		})
	}
	return dto.Timetable{
		TimetableID:   m.TimetableID,
		ClassID:       m.ClassID,
		ClassName:     m.ClassName,
		ExamName:      m.ExamName,
		ExamStartDate: formatDate(m.ExamStartDate),
		ExamEndDate:   formatDate(m.ExamEndDate),
		Subjects:      subjects,
	}
}

func toTimetableModel(schoolID, academicYear string, req *dto.TimetablePayload) (*model.ExamTimetable, error) {
	start, err := parseDate("examStartDate", req.ExamStartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("examEndDate", req.ExamEndDate)
	if err != nil {
		return nil, err
	}
	if time.Time(end).Before(time.Time(start)) {
		return nil, ErrInvalidExamWindow
	}

	seen := make(map[string]bool, len(req.Subjects))
	subjects := make([]model.ExamSubject, 0, len(req.Subjects))
	for i, s := range req.Subjects {
		if seen[s.SubjectID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSubjectID, s.SubjectID)
		}
		seen[s.SubjectID] = true

		examDate, err := parseDate("examDate", s.ExamDate)
		if err != nil {
			return nil, err
		}
		startTime, err := parseTime("startTime", s.StartTime)
		if err != nil {
			return nil, err
		}
		endTime, err := parseTime("endTime", s.EndTime)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, model.ExamSubject{
			SubjectID:   s.SubjectID,
			SubjectName: s.SubjectName,
			ExamDate:    examDate,
			StartTime:   startTime,
			EndTime:     endTime,
			Position:    i,
		})
	}

	return &model.ExamTimetable{
		SchoolID:      schoolID,
		AcademicYear:  academicYear,
		ClassID:       req.ClassID,
		ClassName:     req.ClassName,
		ExamName:      req.ExamName,
		ExamStartDate: start,
		ExamEndDate:   end,
		Subjects:      subjects,
	}, nil
}

func toClassroomDTO(m *model.Classroom) dto.Classroom {
	subjects := make([]dto.ClassSubject, 0, len(m.Subjects))
	for _, s := range m.Subjects {
		subjects = append(subjects, dto.ClassSubject{SubjectName: s.SubjectName, TeacherID: s.TeacherID})
	}
	return dto.Classroom{
		ClassID:   m.ClassID,
		ClassName: m.ClassName,
		Section:   m.Section,
		Subjects:  subjects,
	}
}

// ── 辅助函数 ──

func parseDate(field, s string) (datatypes.Date, error) {
	t, err := timefmt.ParseAPIDate(s)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("%w: %s", ErrInvalidTimetableField, field)
	}
	return datatypes.Date(t), nil
}

func parseTime(field, s string) (datatypes.Time, error) {
	h, m, err := timefmt.ParseAPITime(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTimetableField, field)
	}
	return datatypes.NewTime(h, m, 0, 0), nil
}

func formatDate(d datatypes.Date) string {
	return timefmt.FormatAPIDate(time.Time(d))
}

func formatTime(t datatypes.Time) string {
	d := time.Duration(t)
	return timefmt.FormatAPITime(int(d/time.Hour), int(d%time.Hour/time.Minute))
}
