package editor

import (
	"teachove/backend/internal/dto"
	"teachove/backend/internal/subjectid"
	"teachove/backend/internal/timefmt"
)

// toPayload 草稿 → 接口表示；缺失的科目标识按名称生成
func toPayload(d Dialog, deriver subjectid.Deriver) *dto.TimetablePayload {
	subjects := make([]dto.Subject, 0, len(d.Rows))
	for _, r := range d.Rows {
		id := r.SubjectID
		if id == "" {
			id = deriver.Derive(r.SubjectName)
		}
		start, end := timefmt.ToAPITimes(r.StartTime, r.EndTime)
		subjects = append(subjects, dto.Subject{
			SubjectID:   id,
			SubjectName: r.SubjectName,
			ExamDate:    timefmt.ToAPIDate(r.ExamDate),
			StartTime:   start,
			EndTime:     end,
		})
	}
	return &dto.TimetablePayload{
		ClassID:       d.Header.ClassID,
		ClassName:     d.Header.ClassName,
		ExamName:      d.Header.ExamName,
		ExamStartDate: timefmt.ToAPIDate(d.Header.StartDate),
		ExamEndDate:   timefmt.ToAPIDate(d.Header.EndDate),
		Subjects:      subjects,
	}
}

// toDraft 接口表示 → 编辑草稿
func toDraft(t dto.Timetable) Dialog {
	rows := make([]dto.SubjectRow, 0, len(t.Subjects))
	for _, s := range t.Subjects {
		rows = append(rows, toRow(s))
	}
	return Dialog{
		Open:        true,
		TimetableID: t.TimetableID,
		Header: dto.DraftHeader{
			ExamName:  t.ExamName,
			ClassName: t.ClassName,
			ClassID:   t.ClassID,
			StartDate: timefmt.ToUIDate(t.ExamStartDate),
			EndDate:   timefmt.ToUIDate(t.ExamEndDate),
		},
		Rows: rows,
	}
}

func toRow(s dto.Subject) dto.SubjectRow {
	start, end := timefmt.ToUITimes(s.StartTime, s.EndTime)
	return dto.SubjectRow{
		SubjectID:   s.SubjectID,
		SubjectName: s.SubjectName,
		ExamDate:    timefmt.ToUIDate(s.ExamDate),
		StartTime:   start,
		EndTime:     end,
	}
}

// ToView 接口表示 → 只读视图（界面格式）
func ToView(t dto.Timetable) dto.TimetableView {
	rows := make([]dto.SubjectRow, 0, len(t.Subjects))
	for _, s := range t.Subjects {
		rows = append(rows, toRow(s))
	}
	return dto.TimetableView{
		TimetableID: t.TimetableID,
		ExamName:    t.ExamName,
		ClassID:     t.ClassID,
		ClassName:   t.ClassName,
		StartDate:   timefmt.ToUIDate(t.ExamStartDate),
		EndDate:     timefmt.ToUIDate(t.ExamEndDate),
		Subjects:    rows,
	}
}

// draftSubjectIDs 草稿中各行最终会提交的科目标识（退化分支除外）
func draftSubjectIDs(rows []dto.SubjectRow) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		id := r.SubjectID
		if id == "" {
			id = subjectid.Slug(r.SubjectName)
		}
		ids = append(ids, id)
	}
	return ids
}
