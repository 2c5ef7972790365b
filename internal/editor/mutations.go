package editor

import (
	"context"

	"go.uber.org/zap"

	"teachove/backend/internal/dto"
)

// ═══════════════════════════════════════════════════════════
// 提交（创建 / 更新）
// ═══════════════════════════════════════════════════════════

// Submit 校验并提交草稿
// 校验失败与远端失败都以错误提示呈现，草稿保持不变；返回的 error 仅表示调用不合法
func (e *Editor) Submit(ctx context.Context, kind DialogKind) error {
	e.mu.Lock()
	d, busy, err := e.dialog(kind)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if !d.Open {
		e.mu.Unlock()
		return ErrDialogClosed
	}
	if busy {
		e.mu.Unlock()
		return ErrInFlight
	}
	if err := dto.ValidateDraft(d.Header, d.Rows); err != nil {
		e.notify(NoticeError, err.Error())
		e.mu.Unlock()
		return nil
	}

	payload := toPayload(*d, e.deriver)
	timetableID := d.TimetableID
	if kind == DialogEdit {
		if !e.st.InFlight.Begin(timetableKey(timetableID), OpUpdate) {
			e.mu.Unlock()
			return ErrInFlight
		}
		e.st.Updating = true
	} else {
		e.st.Adding = true
	}
	e.mu.Unlock()

	var result *dto.Timetable
	if kind == DialogEdit {
		result, err = e.repo.UpdateTimetable(ctx, e.scope.SchoolID, e.scope.AcademicYear, timetableID, payload)
	} else {
		result, err = e.repo.CreateTimetable(ctx, e.scope.SchoolID, e.scope.AcademicYear, payload)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if kind == DialogEdit {
		e.st.InFlight.End(timetableKey(timetableID))
		e.st.Updating = false
		if err != nil {
			e.logger.Error("更新考试时间表失败", zap.String("timetable_id", timetableID), zap.Error(err))
			e.notify(NoticeError, msgUpdateFailed)
			return nil
		}
		if idx := e.indexOf(timetableID); idx >= 0 {
			e.st.Timetables[idx] = *result
		}
		e.st.Edit = Dialog{}
		e.notify(NoticeSuccess, msgUpdated)
		return nil
	}

	e.st.Adding = false
	if err != nil {
		e.logger.Error("创建考试时间表失败", zap.String("exam_name", payload.ExamName), zap.Error(err))
		e.notify(NoticeError, msgCreateFailed)
		return nil
	}
	e.st.Timetables = append(e.st.Timetables, *result)
	e.st.Create = Dialog{}
	e.notify(NoticeSuccess, msgCreated)
	return nil
}

// ═══════════════════════════════════════════════════════════
// 删除（需确认）
// ═══════════════════════════════════════════════════════════

// RequestDeleteTimetable 请求删除时间表，等待确认
func (e *Editor) RequestDeleteTimetable(timetableID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.Phase != PhaseReady {
		return ErrNotReady
	}
	idx := e.indexOf(timetableID)
	if idx < 0 {
		return ErrTimetableNotFound
	}
	if e.st.InFlight.Has(timetableKey(timetableID)) {
		return ErrInFlight
	}
	e.st.Pending = &Pending{
		Kind:        PendingDeleteTimetable,
		TimetableID: timetableID,
		Label:       e.st.Timetables[idx].ExamName,
	}
	return nil
}

// RequestDeleteSubject 请求删除单个科目，等待确认
func (e *Editor) RequestDeleteSubject(timetableID, subjectID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.Phase != PhaseReady {
		return ErrNotReady
	}
	idx := e.indexOf(timetableID)
	if idx < 0 {
		return ErrTimetableNotFound
	}
	s, ok := e.st.Timetables[idx].FindSubject(subjectID)
	if !ok {
		return ErrSubjectNotFound
	}
	if e.st.InFlight.Has(subjectKey(timetableID, subjectID)) {
		return ErrInFlight
	}
	e.st.Pending = &Pending{
		Kind:        PendingDeleteSubject,
		TimetableID: timetableID,
		SubjectID:   subjectID,
		Label:       s.SubjectName,
	}
	return nil
}

// CancelPending 取消待确认操作；不发起任何请求
func (e *Editor) CancelPending() {
	e.mu.Lock()
	e.st.Pending = nil
	e.mu.Unlock()
}

// ConfirmPending 确认并执行删除；只有远端成功后才从本地移除
func (e *Editor) ConfirmPending(ctx context.Context) error {
	e.mu.Lock()
	p := e.st.Pending
	if p == nil {
		e.mu.Unlock()
		return ErrNothingPending
	}
	e.st.Pending = nil
	key := p.key()
	if !e.st.InFlight.Begin(key, OpDelete) {
		e.mu.Unlock()
		return ErrInFlight
	}
	e.mu.Unlock()

	var err error
	if p.Kind == PendingDeleteSubject {
		err = e.repo.DeleteSubject(ctx, e.scope.SchoolID, e.scope.AcademicYear, p.TimetableID, p.SubjectID)
	} else {
		err = e.repo.DeleteTimetable(ctx, e.scope.SchoolID, e.scope.AcademicYear, p.TimetableID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.InFlight.End(key)

	if p.Kind == PendingDeleteSubject {
		if err != nil {
			e.logger.Error("删除科目失败",
				zap.String("timetable_id", p.TimetableID),
				zap.String("subject_id", p.SubjectID),
				zap.Error(err),
			)
			e.notify(NoticeError, msgSubjectFailed)
			return nil
		}
		if idx := e.indexOf(p.TimetableID); idx >= 0 {
			e.st.Timetables[idx] = e.st.Timetables[idx].WithoutSubject(p.SubjectID)
		}
		if e.st.Edit.Open && e.st.Edit.TimetableID == p.TimetableID {
			e.st.Edit.Rows = removeRowByID(e.st.Edit.Rows, p.SubjectID)
		}
		e.notify(NoticeSuccess, msgSubjectDeleted)
		return nil
	}

	if err != nil {
		e.logger.Error("删除考试时间表失败", zap.String("timetable_id", p.TimetableID), zap.Error(err))
		e.notify(NoticeError, msgTimetableFailed)
		return nil
	}
	if idx := e.indexOf(p.TimetableID); idx >= 0 {
		e.st.Timetables = append(e.st.Timetables[:idx], e.st.Timetables[idx+1:]...)
	}
	if e.st.Edit.TimetableID == p.TimetableID {
		e.st.Edit = Dialog{}
	}
	e.notify(NoticeSuccess, msgTimetableDeleted)
	return nil
}

func removeRowByID(rows []dto.SubjectRow, subjectID string) []dto.SubjectRow {
	out := rows[:0]
	for _, r := range rows {
		if r.SubjectID != subjectID {
			out = append(out, r)
		}
	}
	return out
}
