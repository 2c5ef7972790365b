package editor

import (
	"teachove/backend/internal/dto"
	"teachove/backend/internal/subjectid"
)

// Snapshot 当前状态的深拷贝
func (e *Editor) Snapshot() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	timetables := make([]dto.Timetable, len(e.st.Timetables))
	for i, t := range e.st.Timetables {
		t.Subjects = append([]dto.Subject(nil), t.Subjects...)
		timetables[i] = t
	}
	classes := make([]dto.Classroom, len(e.st.Classes))
	copy(classes, e.st.Classes)

	snap := &Snapshot{
		Phase:                e.st.Phase,
		LoadError:            e.st.LoadError,
		Timetables:           timetables,
		Classes:              classes,
		CreateDialog:         e.dialogView(e.st.Create, e.st.Adding),
		EditDialog:           e.dialogView(e.st.Edit, e.st.Updating),
		DeletingTimetableIDs: e.st.InFlight.deletingTimetables(),
		DeletingSubjects:     e.st.InFlight.deletingSubjects(),
		Adding:               e.st.Adding,
		Updating:             e.st.Updating,
	}
	if e.st.Pending != nil {
		p := *e.st.Pending
		snap.Pending = &p
	}
	if e.st.Notice != nil {
		n := *e.st.Notice
		snap.Notification = &n
	}
	return snap
}

// dialogView 调用方持锁
func (e *Editor) dialogView(d Dialog, submitting bool) DialogView {
	d.Rows = append([]dto.SubjectRow{}, d.Rows...)
	v := DialogView{
		Dialog:             d,
		Submitting:         submitting,
		SubjectSuggestions: e.suggestions(d.Header.ClassID),
	}
	if !d.Open {
		return v
	}
	if err := dto.ValidateDraft(d.Header, d.Rows); err != nil {
		v.ValidationMessage = err.Error()
	} else {
		v.CanSubmit = !submitting
	}
	v.DuplicateSubjectIDs = subjectid.Duplicates(draftSubjectIDs(d.Rows))
	return v
}

// suggestions 所选班级名册中的科目名称
func (e *Editor) suggestions(classID string) []string {
	names := make([]string, 0)
	if classID == "" {
		return names
	}
	for _, c := range e.st.Classes {
		if c.ClassID != classID {
			continue
		}
		for _, s := range c.Subjects {
			names = append(names, s.SubjectName)
		}
	}
	return names
}
