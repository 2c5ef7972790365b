package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"teachove/backend/internal/dto"
	"teachove/backend/internal/editor"
	"teachove/backend/internal/timefmt"
	"teachove/backend/internal/upstream"
)

// ── 班级考试安排业务错误 ──

var (
	ErrClassRequired       = errors.New("no class selected")
	ErrUpstreamUnavailable = errors.New("timetable service unavailable")
)

// ClassTimetableService 教师/学生的只读班级考试安排
type ClassTimetableService interface {
	// ListForClass 班级的考试安排（界面格式）
	ListForClass(ctx context.Context, schoolID, classID string) ([]dto.TimetableView, error)
	// Calendar 班级考试安排的 iCalendar 文本，每场考试一个 VEVENT
	Calendar(ctx context.Context, schoolID, classID string) ([]byte, error)
}

type classTimetableService struct {
	timetables upstream.TimetableRepository
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

// NewClassTimetableService 创建 ClassTimetableService 实例；timezone 为考试所在时区
func NewClassTimetableService(timetables upstream.TimetableRepository, timezone string, logger *zap.Logger) (ClassTimetableService, error) {
	loc := time.UTC
	if timezone != "" {
		var err error
		if loc, err = time.LoadLocation(timezone); err != nil {
			return nil, fmt.Errorf("加载时区失败: %w", err)
		}
	}
	return &classTimetableService{timetables: timetables, loc: loc, now: time.Now, logger: logger}, nil
}

func (s *classTimetableService) fetch(ctx context.Context, schoolID, classID string) ([]dto.Timetable, error) {
	if classID == "" {
		return nil, ErrClassRequired
	}
	list, err := s.timetables.ListTimetablesByClass(ctx, schoolID, classID)
	if err != nil {
		s.logger.Error("查询班级考试安排失败", zap.String("class_id", classID), zap.Error(err))
		return nil, ErrUpstreamUnavailable
	}
	return list, nil
}

func (s *classTimetableService) ListForClass(ctx context.Context, schoolID, classID string) ([]dto.TimetableView, error) {
	list, err := s.fetch(ctx, schoolID, classID)
	if err != nil {
		return nil, err
	}
	sortByStartDate(list)
	views := make([]dto.TimetableView, 0, len(list))
	for _, t := range list {
		views = append(views, editor.ToView(t))
	}
	return views, nil
}

// sortByStartDate 按开考日期升序；日期无法解析的排在最后
func sortByStartDate(list []dto.Timetable) {
	sort.SliceStable(list, func(i, j int) bool {
		a, errA := timefmt.ParseAPIDate(list[i].ExamStartDate)
		b, errB := timefmt.ParseAPIDate(list[j].ExamStartDate)
		switch {
		case errA != nil:
			return false
		case errB != nil:
			return true
		}
		return a.Before(b)
	})
}

// ════════════════════════════════════════════════════════════
// Calendar 导出 iCalendar
// ════════════════════════════════════════════════════════════

func (s *classTimetableService) Calendar(ctx context.Context, schoolID, classID string) ([]byte, error) {
	list, err := s.fetch(ctx, schoolID, classID)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//teachove//exam timetables//EN")
	cal.SetXWRCalName(fmt.Sprintf("Exams %s", classID))
	cal.SetXWRTimezone(s.loc.String())

	stamp := s.now()
	for _, t := range list {
		for _, sub := range t.Subjects {
			start, end, ok := s.examWindow(sub)
			if !ok {
				s.logger.Warn("跳过无法解析的考试时间",
					zap.String("timetable_id", t.TimetableID),
					zap.String("subject_id", sub.SubjectID),
				)
				continue
			}
			evt := cal.AddEvent(fmt.Sprintf("%s-%s@teachove", t.TimetableID, sub.SubjectID))
			evt.SetDtStampTime(stamp)
			evt.SetStartAt(start)
			evt.SetEndAt(end)
			evt.SetSummary(fmt.Sprintf("%s: %s", t.ExamName, sub.SubjectName))
			evt.SetDescription(fmt.Sprintf("Class %s", t.ClassName))
		}
	}

	return []byte(cal.Serialize()), nil
}

// examWindow 考试起止时刻（考试所在时区）
func (s *classTimetableService) examWindow(sub dto.Subject) (time.Time, time.Time, bool) {
	day, err := timefmt.ParseAPIDate(sub.ExamDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	sh, sm, err := timefmt.ParseAPITime(sub.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	eh, em, err := timefmt.ParseAPITime(sub.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	y, m, d := day.Date()
	start := time.Date(y, m, d, sh, sm, 0, 0, s.loc)
	end := time.Date(y, m, d, eh, em, 0, 0, s.loc)
	return start, end, true
}
