package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"teachove/backend/internal/dto"
	"teachove/backend/internal/subjectid"
)

var testScope = Scope{SchoolID: "school-1", AcademicYear: "2025-2026"}

func newTestEditor(repo *mockRepo, roster *mockRoster) *Editor {
	fixed := subjectid.Deriver{Now: func() time.Time { return time.UnixMilli(1735689600000) }}
	return New(repo, roster, testScope, zap.NewNop(), WithDeriver(fixed))
}

func mountedEditor(t *testing.T, repo *mockRepo, roster *mockRoster) *Editor {
	t.Helper()
	ed := newTestEditor(repo, roster)
	if err := ed.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if got := ed.Snapshot().Phase; got != PhaseReady {
		t.Fatalf("期望 ready，得到 %s", got)
	}
	return ed
}

func midTermDraft() (dto.DraftHeader, dto.SubjectRow) {
	return dto.DraftHeader{
			ExamName:  "Mid Term",
			ClassName: "7",
			ClassID:   "c7",
			StartDate: "2025-03-01",
			EndDate:   "2025-03-10",
		}, dto.SubjectRow{
			SubjectName: "Maths",
			ExamDate:    "2025-03-02",
			StartTime:   "09:00",
			EndTime:     "11:00",
		}
}

// ── 加载 ──

func TestMount_Success(t *testing.T) {
	ed := mountedEditor(t, newMockRepo(sampleTimetable()), sampleRoster())

	snap := ed.Snapshot()
	if len(snap.Timetables) != 1 || snap.Timetables[0].TimetableID != "tt-1" {
		t.Errorf("时间表不符: %+v", snap.Timetables)
	}
	if len(snap.Classes) != 2 {
		t.Errorf("期望 2 个班级，得到 %d", len(snap.Classes))
	}
	if err := ed.Mount(context.Background()); !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("重复 Mount 期望 ErrAlreadyMounted，得到 %v", err)
	}
}

func TestMount_RosterFailureStillReady(t *testing.T) {
	ed := mountedEditor(t, newMockRepo(sampleTimetable()), &mockRoster{err: errUpstream})

	snap := ed.Snapshot()
	if len(snap.Classes) != 0 {
		t.Errorf("名册失败时班级应为空，得到 %d", len(snap.Classes))
	}
	if snap.Notification != nil {
		t.Errorf("名册失败不应产生提示: %+v", snap.Notification)
	}
}

func TestMount_ListFailureThenRetry(t *testing.T) {
	repo := newMockRepo(sampleTimetable())
	repo.listErr = errUpstream
	ed := newTestEditor(repo, sampleRoster())

	if err := ed.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	snap := ed.Snapshot()
	if snap.Phase != PhaseLoadError || snap.LoadError != msgLoadFailed {
		t.Fatalf("期望 load_error，得到 %s %q", snap.Phase, snap.LoadError)
	}
	if err := ed.OpenCreate(); !errors.Is(err, ErrNotReady) {
		t.Errorf("未就绪时打开对话框期望 ErrNotReady，得到 %v", err)
	}

	repo.mu.Lock()
	repo.listErr = nil
	repo.mu.Unlock()

	if err := ed.Retry(context.Background()); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	snap = ed.Snapshot()
	if snap.Phase != PhaseReady || snap.LoadError != "" || len(snap.Timetables) != 1 {
		t.Errorf("重试后状态不符: %+v", snap)
	}
	if err := ed.Retry(context.Background()); !errors.Is(err, ErrNothingToRetry) {
		t.Errorf("就绪后重试期望 ErrNothingToRetry，得到 %v", err)
	}
}

func TestMount_EmptyListIsNotNil(t *testing.T) {
	ed := mountedEditor(t, newMockRepo(), sampleRoster())
	if snap := ed.Snapshot(); snap.Timetables == nil {
		t.Error("空列表应序列化为 []")
	}
}

// ── 创建 ──

func TestOpenCreate_SeedsRowAndKeepsDraft(t *testing.T) {
	ed := mountedEditor(t, newMockRepo(), sampleRoster())

	if err := ed.OpenCreate(); err != nil {
		t.Fatalf("OpenCreate: %v", err)
	}
	snap := ed.Snapshot()
	if !snap.CreateDialog.Open || len(snap.CreateDialog.Rows) != 1 {
		t.Fatalf("期望打开且有 1 个空行: %+v", snap.CreateDialog)
	}

	header, _ := midTermDraft()
	if err := ed.SetHeader(DialogCreate, header); err != nil {
		t.Fatalf("SetHeader: %v", err)
	}
	if err := ed.CloseDialog(DialogCreate); err != nil {
		t.Fatalf("CloseDialog: %v", err)
	}
	if err := ed.SetHeader(DialogCreate, header); !errors.Is(err, ErrDialogClosed) {
		t.Errorf("关闭后修改期望 ErrDialogClosed，得到 %v", err)
	}
	if err := ed.OpenCreate(); err != nil {
		t.Fatalf("OpenCreate: %v", err)
	}
	snap = ed.Snapshot()
	if snap.CreateDialog.Header.ExamName != "Mid Term" || len(snap.CreateDialog.Rows) != 1 {
		t.Errorf("重新打开应保留草稿: %+v", snap.CreateDialog)
	}
}

func TestSubmitCreate_ConvertsToAPIFormat(t *testing.T) {
	repo := newMockRepo()
	ed := mountedEditor(t, repo, sampleRoster())
	_ = ed.OpenCreate()

	header, row := midTermDraft()
	_ = ed.SetHeader(DialogCreate, header)
	_ = ed.UpdateRow(DialogCreate, 0, row)

	if got := ed.Snapshot().CreateDialog; !got.CanSubmit {
		t.Fatalf("完整草稿应可提交: %q", got.ValidationMessage)
	}
	if err := ed.Submit(context.Background(), DialogCreate); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("期望 1 次创建，得到 %d", len(repo.created))
	}
	p := repo.created[0]
	if p.ExamStartDate != "01-03-2025" || p.ExamEndDate != "10-03-2025" {
		t.Errorf("日期转换错误: %s %s", p.ExamStartDate, p.ExamEndDate)
	}
	if len(p.Subjects) != 1 {
		t.Fatalf("期望 1 个科目，得到 %d", len(p.Subjects))
	}
	s := p.Subjects[0]
	if s.SubjectID != "maths" || s.ExamDate != "02-03-2025" || s.StartTime != "9:00 AM" || s.EndTime != "11:00 AM" {
		t.Errorf("科目转换错误: %+v", s)
	}

	snap := ed.Snapshot()
	if len(snap.Timetables) != 1 || snap.Timetables[0].ExamName != "Mid Term" {
		t.Errorf("创建结果应追加到列表: %+v", snap.Timetables)
	}
	if snap.CreateDialog.Open || snap.CreateDialog.Header.ExamName != "" || len(snap.CreateDialog.Rows) != 0 {
		t.Errorf("成功后草稿应清空并关闭: %+v", snap.CreateDialog)
	}
	if snap.Notification == nil || snap.Notification.Kind != NoticeSuccess || snap.Notification.Message != msgCreated {
		t.Errorf("期望成功提示，得到 %+v", snap.Notification)
	}
}

func TestSubmitCreate_ValidationFailure(t *testing.T) {
	repo := newMockRepo()
	ed := mountedEditor(t, repo, sampleRoster())
	_ = ed.OpenCreate()

	tests := []struct {
		name  string
		setup func()
		want  string
	}{
		{"空表头", func() {}, "Please fill all timetable fields"},
		{"科目不完整", func() {
			header, _ := midTermDraft()
			_ = ed.SetHeader(DialogCreate, header)
			_ = ed.UpdateRow(DialogCreate, 0, dto.SubjectRow{SubjectName: "Maths"})
		}, "Please fill all subject fields"},
		{"无科目", func() { _ = ed.RemoveRow(DialogCreate, 0) }, "Add at least one subject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			if err := ed.Submit(context.Background(), DialogCreate); err != nil {
				t.Fatalf("Submit: %v", err)
			}
			snap := ed.Snapshot()
			if snap.Notification == nil || snap.Notification.Kind != NoticeError || snap.Notification.Message != tt.want {
				t.Errorf("期望错误提示 %q，得到 %+v", tt.want, snap.Notification)
			}
			if !snap.CreateDialog.Open || snap.CreateDialog.CanSubmit {
				t.Errorf("校验失败应保持对话框且不可提交: %+v", snap.CreateDialog)
			}
		})
	}
	if repo.count("create") != 0 {
		t.Errorf("校验失败不应发起请求，得到 %d 次", repo.count("create"))
	}
}

func TestSubmitCreate_UpstreamFailureKeepsDraft(t *testing.T) {
	repo := newMockRepo()
	repo.createErr = errUpstream
	ed := mountedEditor(t, repo, sampleRoster())
	_ = ed.OpenCreate()

	header, row := midTermDraft()
	_ = ed.SetHeader(DialogCreate, header)
	_ = ed.UpdateRow(DialogCreate, 0, row)
	_ = ed.Submit(context.Background(), DialogCreate)

	snap := ed.Snapshot()
	if len(snap.Timetables) != 0 {
		t.Errorf("失败后列表应不变: %+v", snap.Timetables)
	}
	if !snap.CreateDialog.Open || snap.CreateDialog.Header.ExamName != "Mid Term" || snap.Adding {
		t.Errorf("失败后应保留草稿: %+v", snap.CreateDialog)
	}
	if snap.Notification == nil || snap.Notification.Message != msgCreateFailed {
		t.Errorf("期望失败提示，得到 %+v", snap.Notification)
	}
}

func TestSelectClass_FillsClassName(t *testing.T) {
	ed := mountedEditor(t, newMockRepo(), sampleRoster())
	_ = ed.OpenCreate()

	if err := ed.SelectClass(DialogCreate, "c7"); err != nil {
		t.Fatalf("SelectClass: %v", err)
	}
	snap := ed.Snapshot()
	if snap.CreateDialog.Header.ClassName != "7" || snap.CreateDialog.Header.ClassID != "c7" {
		t.Errorf("表头不符: %+v", snap.CreateDialog.Header)
	}
	if got := snap.CreateDialog.SubjectSuggestions; len(got) != 2 || got[0] != "Maths" {
		t.Errorf("科目候选不符: %v", got)
	}
	if err := ed.SelectClass(DialogCreate, "nope"); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("期望 ErrClassNotFound，得到 %v", err)
	}
}

func TestRowIndexOutOfRange(t *testing.T) {
	ed := mountedEditor(t, newMockRepo(), sampleRoster())
	_ = ed.OpenCreate()

	if err := ed.UpdateRow(DialogCreate, 3, dto.SubjectRow{}); !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("期望 ErrRowOutOfRange，得到 %v", err)
	}
	if err := ed.RemoveRow(DialogCreate, -1); !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("期望 ErrRowOutOfRange，得到 %v", err)
	}
	if err := ed.AddRow("bogus"); !errors.Is(err, ErrUnknownDialog) {
		t.Errorf("期望 ErrUnknownDialog，得到 %v", err)
	}
}

func TestSnapshot_FlagsDuplicateSubjectIDs(t *testing.T) {
	ed := mountedEditor(t, newMockRepo(), sampleRoster())
	_ = ed.OpenCreate()

	header, row := midTermDraft()
	_ = ed.SetHeader(DialogCreate, header)
	_ = ed.UpdateRow(DialogCreate, 0, row)
	_ = ed.AddRow(DialogCreate)
	row.SubjectName = " maths "
	_ = ed.UpdateRow(DialogCreate, 1, row)

	got := ed.Snapshot().CreateDialog.DuplicateSubjectIDs
	if len(got) != 1 || got[0] != "maths" {
		t.Errorf("期望重复 [maths]，得到 %v", got)
	}
}

// ── 编辑 ──

func TestOpenEdit_PrefillsUIFormat(t *testing.T) {
	ed := mountedEditor(t, newMockRepo(sampleTimetable()), sampleRoster())

	if err := ed.OpenEdit("tt-1"); err != nil {
		t.Fatalf("OpenEdit: %v", err)
	}
	d := ed.Snapshot().EditDialog
	if !d.Open || d.TimetableID != "tt-1" {
		t.Fatalf("编辑对话框未打开: %+v", d)
	}
	if d.Header.StartDate != "2025-03-03" || d.Header.EndDate != "2025-03-07" {
		t.Errorf("表头日期不符: %+v", d.Header)
	}
	r := d.Rows[0]
	if r.ExamDate != "2025-03-05" || r.StartTime != "14:30" || r.EndTime != "16:00" {
		t.Errorf("科目行不符: %+v", r)
	}
	if err := ed.OpenEdit("missing"); !errors.Is(err, ErrTimetableNotFound) {
		t.Errorf("期望 ErrTimetableNotFound，得到 %v", err)
	}
}

func TestSubmitEdit_ReplacesInPlace(t *testing.T) {
	other := sampleTimetable()
	other.TimetableID = "tt-2"
	other.ExamName = "Finals"
	repo := newMockRepo(sampleTimetable(), other)
	ed := mountedEditor(t, repo, sampleRoster())

	_ = ed.OpenEdit("tt-1")
	d := ed.Snapshot().EditDialog
	d.Header.ExamName = "Unit Test 2"
	_ = ed.SetHeader(DialogEdit, d.Header)

	if err := ed.Submit(context.Background(), DialogEdit); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	p := repo.updated["tt-1"]
	if p == nil {
		t.Fatal("未发起更新请求")
	}
	if p.Subjects[0].SubjectID != "maths" || p.Subjects[0].StartTime != "2:30 PM" {
		t.Errorf("已有科目应保持标识与时间: %+v", p.Subjects[0])
	}

	snap := ed.Snapshot()
	if snap.Timetables[0].ExamName != "Unit Test 2" || snap.Timetables[1].ExamName != "Finals" {
		t.Errorf("应原位替换: %+v", snap.Timetables)
	}
	if snap.EditDialog.Open || snap.Updating {
		t.Errorf("成功后编辑对话框应关闭: %+v", snap.EditDialog)
	}
	if snap.Notification == nil || snap.Notification.Message != msgUpdated {
		t.Errorf("期望成功提示，得到 %+v", snap.Notification)
	}
}

func TestSubmitEdit_UpstreamFailure(t *testing.T) {
	repo := newMockRepo(sampleTimetable())
	repo.updateErr = errUpstream
	ed := mountedEditor(t, repo, sampleRoster())

	_ = ed.OpenEdit("tt-1")
	_ = ed.Submit(context.Background(), DialogEdit)

	snap := ed.Snapshot()
	if !snap.EditDialog.Open || snap.Updating {
		t.Errorf("失败后编辑对话框应保持打开: %+v", snap.EditDialog)
	}
	if snap.Notification == nil || snap.Notification.Kind != NoticeError || snap.Notification.Message != msgUpdateFailed {
		t.Errorf("期望失败提示，得到 %+v", snap.Notification)
	}
	if snap.Timetables[0].ExamName != "Unit Test" {
		t.Errorf("失败后列表应不变: %+v", snap.Timetables[0])
	}
}

func TestCloseEdit_DiscardsDraft(t *testing.T) {
	ed := mountedEditor(t, newMockRepo(sampleTimetable()), sampleRoster())
	_ = ed.OpenEdit("tt-1")
	_ = ed.CloseDialog(DialogEdit)

	if d := ed.Snapshot().EditDialog; d.Open || d.TimetableID != "" || len(d.Rows) != 0 {
		t.Errorf("关闭编辑对话框应清空草稿: %+v", d)
	}
	if err := ed.Submit(context.Background(), DialogEdit); !errors.Is(err, ErrDialogClosed) {
		t.Errorf("期望 ErrDialogClosed，得到 %v", err)
	}
}

// ── 删除 ──

func TestDeleteSubject_FailureKeepsSubject(t *testing.T) {
	repo := newMockRepo(sampleTimetable())
	repo.subjectErr = errUpstream
	ed := mountedEditor(t, repo, sampleRoster())

	if err := ed.RequestDeleteSubject("tt-1", "maths"); err != nil {
		t.Fatalf("RequestDeleteSubject: %v", err)
	}
	if p := ed.Snapshot().Pending; p == nil || p.Kind != PendingDeleteSubject || p.Label != "Maths" {
		t.Fatalf("期望待确认删除科目，得到 %+v", p)
	}
	if err := ed.ConfirmPending(context.Background()); err != nil {
		t.Fatalf("ConfirmPending: %v", err)
	}

	snap := ed.Snapshot()
	if len(snap.Timetables[0].Subjects) != 2 {
		t.Errorf("失败后科目应保留: %+v", snap.Timetables[0].Subjects)
	}
	if len(snap.DeletingSubjects) != 0 {
		t.Errorf("失败后删除标记应清除: %+v", snap.DeletingSubjects)
	}
	if snap.Notification == nil || snap.Notification.Message != msgSubjectFailed {
		t.Errorf("期望失败提示，得到 %+v", snap.Notification)
	}
}

func TestDeleteSubject_Success(t *testing.T) {
	ed := mountedEditor(t, newMockRepo(sampleTimetable()), sampleRoster())
	_ = ed.OpenEdit("tt-1")

	_ = ed.RequestDeleteSubject("tt-1", "maths")
	_ = ed.ConfirmPending(context.Background())

	snap := ed.Snapshot()
	subjects := snap.Timetables[0].Subjects
	if len(subjects) != 1 || subjects[0].SubjectID != "english" {
		t.Errorf("应仅移除 maths: %+v", subjects)
	}
	if rows := snap.EditDialog.Rows; len(rows) != 1 || rows[0].SubjectID != "english" {
		t.Errorf("编辑草稿应同步移除: %+v", rows)
	}
	if err := ed.RequestDeleteSubject("tt-1", "maths"); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("期望 ErrSubjectNotFound，得到 %v", err)
	}
}

func TestCancelPending_NoRequest(t *testing.T) {
	repo := newMockRepo(sampleTimetable())
	ed := mountedEditor(t, repo, sampleRoster())

	_ = ed.RequestDeleteTimetable("tt-1")
	ed.CancelPending()

	if ed.Snapshot().Pending != nil {
		t.Error("取消后不应有待确认操作")
	}
	if err := ed.ConfirmPending(context.Background()); !errors.Is(err, ErrNothingPending) {
		t.Errorf("期望 ErrNothingPending，得到 %v", err)
	}
	if repo.count("delete") != 0 {
		t.Errorf("取消不应发起请求，得到 %d 次", repo.count("delete"))
	}
}

func TestDeleteTimetable_InFlightGuard(t *testing.T) {
	repo := newMockRepo(sampleTimetable())
	repo.entered = make(chan struct{})
	repo.release = make(chan struct{})
	ed := mountedEditor(t, repo, sampleRoster())
	_ = ed.OpenEdit("tt-1")

	_ = ed.RequestDeleteTimetable("tt-1")
	done := make(chan error, 1)
	go func() { done <- ed.ConfirmPending(context.Background()) }()
	<-repo.entered

	snap := ed.Snapshot()
	if len(snap.DeletingTimetableIDs) != 1 || snap.DeletingTimetableIDs[0] != "tt-1" {
		t.Errorf("请求进行中应标记删除: %v", snap.DeletingTimetableIDs)
	}
	if len(snap.Timetables) != 1 {
		t.Error("远端确认前不应移除")
	}
	if err := ed.RequestDeleteTimetable("tt-1"); !errors.Is(err, ErrInFlight) {
		t.Errorf("重复删除期望 ErrInFlight，得到 %v", err)
	}
	if err := ed.Submit(context.Background(), DialogEdit); !errors.Is(err, ErrInFlight) {
		t.Errorf("删除进行中提交更新期望 ErrInFlight，得到 %v", err)
	}

	close(repo.release)
	if err := <-done; err != nil {
		t.Fatalf("ConfirmPending: %v", err)
	}

	snap = ed.Snapshot()
	if len(snap.Timetables) != 0 || len(snap.DeletingTimetableIDs) != 0 {
		t.Errorf("删除后状态不符: %+v", snap)
	}
	if snap.EditDialog.Open {
		t.Error("被删除时间表的编辑对话框应关闭")
	}
	if snap.Notification == nil || snap.Notification.Message != msgTimetableDeleted {
		t.Errorf("期望成功提示，得到 %+v", snap.Notification)
	}
	if repo.count("delete") != 1 || repo.count("update") != 0 {
		t.Errorf("请求次数不符: delete=%d update=%d", repo.count("delete"), repo.count("update"))
	}
}

func TestDeleteTimetable_Failure(t *testing.T) {
	repo := newMockRepo(sampleTimetable())
	repo.deleteErr = errUpstream
	ed := mountedEditor(t, repo, sampleRoster())

	_ = ed.RequestDeleteTimetable("tt-1")
	_ = ed.ConfirmPending(context.Background())

	snap := ed.Snapshot()
	if len(snap.Timetables) != 1 || len(snap.DeletingTimetableIDs) != 0 {
		t.Errorf("失败后应保留且清除标记: %+v", snap)
	}
	if snap.Notification == nil || snap.Notification.Message != msgTimetableFailed {
		t.Errorf("期望失败提示，得到 %+v", snap.Notification)
	}
	ed.DismissNotification()
	if ed.Snapshot().Notification != nil {
		t.Error("关闭后不应有提示")
	}
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	ed := mountedEditor(t, newMockRepo(sampleTimetable()), sampleRoster())

	snap := ed.Snapshot()
	snap.Timetables[0].Subjects[0].SubjectName = "changed"
	if got := ed.Snapshot().Timetables[0].Subjects[0].SubjectName; got != "Maths" {
		t.Errorf("快照修改不应影响状态，得到 %q", got)
	}
}

func TestDeleteSubjects_ConcurrentOutOfOrder(t *testing.T) {
	repo := newMockRepo(sampleTimetable())
	repo.subjectGates = map[string]chan struct{}{
		"maths":   make(chan struct{}),
		"english": make(chan struct{}),
	}
	repo.subjectEntered = make(chan string)
	ed := mountedEditor(t, repo, sampleRoster())

	confirm := func(subjectID string) chan error {
		if err := ed.RequestDeleteSubject("tt-1", subjectID); err != nil {
			t.Fatalf("RequestDeleteSubject(%s): %v", subjectID, err)
		}
		done := make(chan error, 1)
		go func() { done <- ed.ConfirmPending(context.Background()) }()
		if got := <-repo.subjectEntered; got != subjectID {
			t.Fatalf("期望 %s 的删除请求到达，得到 %s", subjectID, got)
		}
		return done
	}
	mathsDone := confirm("maths")
	englishDone := confirm("english")

	if got := ed.Snapshot().DeletingSubjects; len(got) != 2 {
		t.Fatalf("两个删除应同时进行中: %+v", got)
	}

	// 后发起的先完成
	close(repo.subjectGates["english"])
	if err := <-englishDone; err != nil {
		t.Fatalf("ConfirmPending(english): %v", err)
	}
	snap := ed.Snapshot()
	if subs := snap.Timetables[0].Subjects; len(subs) != 1 || subs[0].SubjectID != "maths" {
		t.Errorf("只应移除 english: %+v", subs)
	}
	if got := snap.DeletingSubjects; len(got) != 1 || got[0] != (SubjectRef{TimetableID: "tt-1", SubjectID: "maths"}) {
		t.Errorf("maths 应仍在删除中: %+v", got)
	}

	close(repo.subjectGates["maths"])
	if err := <-mathsDone; err != nil {
		t.Fatalf("ConfirmPending(maths): %v", err)
	}
	snap = ed.Snapshot()
	if len(snap.Timetables[0].Subjects) != 0 {
		t.Errorf("两个科目都应被移除: %+v", snap.Timetables[0].Subjects)
	}
	if len(snap.DeletingSubjects) != 0 || ed.st.InFlight.Len() != 0 {
		t.Errorf("进行中标记应全部清除: %+v", snap.DeletingSubjects)
	}
	if repo.count("delete_subject") != 2 {
		t.Errorf("期望 2 次删除请求，得到 %d", repo.count("delete_subject"))
	}
}
