package editor

import (
	"errors"

	"teachove/backend/internal/dto"
)

// Phase 页面加载阶段：idle → loading → ready | load_error
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhaseReady     Phase = "ready"
	PhaseLoadError Phase = "load_error"
)

// DialogKind 对话框类型
type DialogKind string

const (
	DialogCreate DialogKind = "create"
	DialogEdit   DialogKind = "edit"
)

// ParseDialogKind 解析路由中的对话框参数
func ParseDialogKind(s string) (DialogKind, error) {
	switch DialogKind(s) {
	case DialogCreate, DialogEdit:
		return DialogKind(s), nil
	}
	return "", ErrUnknownDialog
}

// NoticeKind 提示类型
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notification 展示给用户的提示（模态）
type Notification struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// PendingKind 待确认的破坏性操作
type PendingKind string

const (
	PendingDeleteTimetable PendingKind = "delete_timetable"
	PendingDeleteSubject   PendingKind = "delete_subject"
)

// Pending 等待用户确认的删除操作
type Pending struct {
	Kind        PendingKind `json:"kind"`
	TimetableID string      `json:"timetableId"`
	SubjectID   string      `json:"subjectId,omitempty"`
	Label       string      `json:"label"`
}

func (p *Pending) key() entityKey {
	if p.Kind == PendingDeleteSubject {
		return subjectKey(p.TimetableID, p.SubjectID)
	}
	return timetableKey(p.TimetableID)
}

// Dialog 创建或编辑对话框及其草稿
type Dialog struct {
	Open        bool             `json:"open"`
	TimetableID string           `json:"timetableId,omitempty"` // 仅编辑
	Header      dto.DraftHeader  `json:"header"`
	Rows        []dto.SubjectRow `json:"subjects"`
}

// Scope 页面所属学校与学年
type Scope struct {
	SchoolID     string
	AcademicYear string
}

// State 编辑页面的全部状态，由 Editor 独占
type State struct {
	Phase      Phase
	LoadError  string
	Timetables []dto.Timetable
	Classes    []dto.Classroom
	Create     Dialog
	Edit       Dialog
	Pending    *Pending
	Notice     *Notification
	Adding     bool
	Updating   bool
	InFlight   *InFlight
}

// NewState 初始状态
func NewState() *State {
	return &State{Phase: PhaseIdle, InFlight: NewInFlight()}
}

// ── 快照 ──

// SubjectRef 科目引用
type SubjectRef struct {
	TimetableID string `json:"timetableId"`
	SubjectID   string `json:"subjectId"`
}

// DialogView 对话框快照，附带校验结果与科目候选
type DialogView struct {
	Dialog
	CanSubmit           bool     `json:"canSubmit"`
	ValidationMessage   string   `json:"validationMessage,omitempty"`
	DuplicateSubjectIDs []string `json:"duplicateSubjectIds,omitempty"`
	SubjectSuggestions  []string `json:"subjectSuggestions"`
	Submitting          bool     `json:"submitting"`
}

// Snapshot 对外只读视图
type Snapshot struct {
	Phase                Phase           `json:"phase"`
	LoadError            string          `json:"loadError,omitempty"`
	Timetables           []dto.Timetable `json:"timetables"`
	Classes              []dto.Classroom `json:"classes"`
	CreateDialog         DialogView      `json:"createDialog"`
	EditDialog           DialogView      `json:"editDialog"`
	DeletingTimetableIDs []string        `json:"deletingTimetableIds"`
	DeletingSubjects     []SubjectRef    `json:"deletingSubjects"`
	Adding               bool            `json:"adding"`
	Updating             bool            `json:"updating"`
	Pending              *Pending        `json:"pendingConfirmation,omitempty"`
	Notification         *Notification   `json:"notification,omitempty"`
}

// ── 错误 ──

var (
	ErrNotReady          = errors.New("timetables are not loaded")
	ErrAlreadyMounted    = errors.New("screen already mounted")
	ErrNothingToRetry    = errors.New("nothing to retry")
	ErrUnknownDialog     = errors.New("unknown dialog")
	ErrDialogClosed      = errors.New("dialog is not open")
	ErrTimetableNotFound = errors.New("timetable not found")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrClassNotFound     = errors.New("class not found")
	ErrRowOutOfRange     = errors.New("subject row out of range")
	ErrInFlight          = errors.New("operation already in progress")
	ErrNothingPending    = errors.New("nothing to confirm")
)

// 提示文案
const (
	msgLoadFailed       = "Failed to load timetables"
	msgCreated          = "Timetable created successfully"
	msgCreateFailed     = "Failed to create timetable"
	msgUpdated          = "Timetable updated successfully"
	msgUpdateFailed     = "Failed to update timetable"
	msgTimetableDeleted = "Timetable deleted successfully"
	msgTimetableFailed  = "Failed to delete timetable"
	msgSubjectDeleted   = "Subject deleted successfully"
	msgSubjectFailed    = "Failed to delete subject"
)
