package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"teachove/backend/internal/dto"
	"teachove/backend/internal/editor"
	"teachove/backend/internal/service"
	"teachove/backend/pkg/response"
)

// ScreenHandler 考试时间表编辑页面 HTTP 处理器
// 除 Discard 外，所有接口成功时都返回页面快照
type ScreenHandler struct {
	screenSvc service.ScreenService
}

// NewScreenHandler 创建 ScreenHandler
func NewScreenHandler(screenSvc service.ScreenService) *ScreenHandler {
	return &ScreenHandler{screenSvc: screenSvc}
}

// ── 页面生命周期 ──

// Mount 进入页面并加载
// POST /api/v1/timetable-screen
func (h *ScreenHandler) Mount(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	ed, err := h.screenSvc.Open(detached(c), id)
	if err != nil {
		h.handleScreenError(c, err)
		return
	}
	response.OK(c, ed.Snapshot())
}

// Snapshot 当前页面状态
// GET /api/v1/timetable-screen
func (h *ScreenHandler) Snapshot(c *gin.Context) {
	h.withScreen(c, nil)
}

// Discard 离开页面
// DELETE /api/v1/timetable-screen
func (h *ScreenHandler) Discard(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	if err := h.screenSvc.Close(id.UserID); err != nil {
		h.handleScreenError(c, err)
		return
	}
	response.OK(c, nil)
}

// Retry 加载失败后重试
// POST /api/v1/timetable-screen/retry
func (h *ScreenHandler) Retry(c *gin.Context) {
	h.withScreen(c, func(ed *editor.Editor) error {
		return ed.Retry(detached(c))
	})
}

// ── 对话框 ──

// OpenCreateDialog POST /api/v1/timetable-screen/create-dialog
func (h *ScreenHandler) OpenCreateDialog(c *gin.Context) {
	h.withScreen(c, func(ed *editor.Editor) error {
		return ed.OpenCreate()
	})
}

// OpenEditDialog POST /api/v1/timetable-screen/timetables/:id/edit-dialog
func (h *ScreenHandler) OpenEditDialog(c *gin.Context) {
	h.withScreen(c, func(ed *editor.Editor) error {
		return ed.OpenEdit(c.Param("id"))
	})
}

// CloseDialog DELETE /api/v1/timetable-screen/drafts/:dialog
func (h *ScreenHandler) CloseDialog(c *gin.Context) {
	h.withDialog(c, func(ed *editor.Editor, kind editor.DialogKind) error {
		return ed.CloseDialog(kind)
	})
}

// ── 草稿 ──

// SetHeader PUT /api/v1/timetable-screen/drafts/:dialog/header
func (h *ScreenHandler) SetHeader(c *gin.Context) {
	var req dto.DraftHeader
	if !bindJSON(c, &req, 20013) {
		return
	}
	h.withDialog(c, func(ed *editor.Editor, kind editor.DialogKind) error {
		return ed.SetHeader(kind, req)
	})
}

// SelectClass PUT /api/v1/timetable-screen/drafts/:dialog/class
func (h *ScreenHandler) SelectClass(c *gin.Context) {
	var req dto.SelectClassRequest
	if !bindJSON(c, &req, 20013) {
		return
	}
	h.withDialog(c, func(ed *editor.Editor, kind editor.DialogKind) error {
		return ed.SelectClass(kind, req.ClassID)
	})
}

// AddRow POST /api/v1/timetable-screen/drafts/:dialog/subjects
func (h *ScreenHandler) AddRow(c *gin.Context) {
	h.withDialog(c, func(ed *editor.Editor, kind editor.DialogKind) error {
		return ed.AddRow(kind)
	})
}

// UpdateRow PUT /api/v1/timetable-screen/drafts/:dialog/subjects/:index
func (h *ScreenHandler) UpdateRow(c *gin.Context) {
	index, ok := rowIndex(c)
	if !ok {
		return
	}
	var req dto.SubjectRow
	if !bindJSON(c, &req, 20013) {
		return
	}
	h.withDialog(c, func(ed *editor.Editor, kind editor.DialogKind) error {
		return ed.UpdateRow(kind, index, req)
	})
}

// RemoveRow DELETE /api/v1/timetable-screen/drafts/:dialog/subjects/:index
func (h *ScreenHandler) RemoveRow(c *gin.Context) {
	index, ok := rowIndex(c)
	if !ok {
		return
	}
	h.withDialog(c, func(ed *editor.Editor, kind editor.DialogKind) error {
		return ed.RemoveRow(kind, index)
	})
}

// Submit 提交草稿；校验或远端失败体现在快照的 notification 中
// POST /api/v1/timetable-screen/drafts/:dialog/submit
func (h *ScreenHandler) Submit(c *gin.Context) {
	h.withDialog(c, func(ed *editor.Editor, kind editor.DialogKind) error {
		return ed.Submit(detached(c), kind)
	})
}

// ── 删除确认 ──

// RequestDeleteTimetable POST /api/v1/timetable-screen/timetables/:id/delete-request
func (h *ScreenHandler) RequestDeleteTimetable(c *gin.Context) {
	h.withScreen(c, func(ed *editor.Editor) error {
		return ed.RequestDeleteTimetable(c.Param("id"))
	})
}

// RequestDeleteSubject POST /api/v1/timetable-screen/timetables/:id/subjects/:subjectId/delete-request
func (h *ScreenHandler) RequestDeleteSubject(c *gin.Context) {
	h.withScreen(c, func(ed *editor.Editor) error {
		return ed.RequestDeleteSubject(c.Param("id"), c.Param("subjectId"))
	})
}

// ConfirmPending POST /api/v1/timetable-screen/confirmation
func (h *ScreenHandler) ConfirmPending(c *gin.Context) {
	h.withScreen(c, func(ed *editor.Editor) error {
		return ed.ConfirmPending(detached(c))
	})
}

// CancelPending DELETE /api/v1/timetable-screen/confirmation
func (h *ScreenHandler) CancelPending(c *gin.Context) {
	h.withScreen(c, func(ed *editor.Editor) error {
		ed.CancelPending()
		return nil
	})
}

// DismissNotification DELETE /api/v1/timetable-screen/notification
func (h *ScreenHandler) DismissNotification(c *gin.Context) {
	h.withScreen(c, func(ed *editor.Editor) error {
		ed.DismissNotification()
		return nil
	})
}

// ── 辅助函数 ──

func (h *ScreenHandler) withScreen(c *gin.Context, fn func(ed *editor.Editor) error) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	ed, err := h.screenSvc.Get(id.UserID)
	if err != nil {
		h.handleScreenError(c, err)
		return
	}
	if fn != nil {
		if err := fn(ed); err != nil {
			h.handleScreenError(c, err)
			return
		}
	}
	response.OK(c, ed.Snapshot())
}

func (h *ScreenHandler) withDialog(c *gin.Context, fn func(ed *editor.Editor, kind editor.DialogKind) error) {
	kind, err := editor.ParseDialogKind(c.Param("dialog"))
	if err != nil {
		h.handleScreenError(c, err)
		return
	}
	h.withScreen(c, func(ed *editor.Editor) error {
		return fn(ed, kind)
	})
}

func rowIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, 20010, "invalid subject row index")
		return 0, false
	}
	return index, true
}

func (h *ScreenHandler) handleScreenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScreenNotOpen):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, service.ErrSchoolRequired):
		response.Forbidden(c, 20002, err.Error())
	case errors.Is(err, editor.ErrNotReady):
		response.Conflict(c, 20003, err.Error())
	case errors.Is(err, editor.ErrNothingToRetry), errors.Is(err, editor.ErrAlreadyMounted):
		response.Conflict(c, 20004, err.Error())
	case errors.Is(err, editor.ErrUnknownDialog):
		response.NotFound(c, 20005, err.Error())
	case errors.Is(err, editor.ErrDialogClosed):
		response.Conflict(c, 20006, err.Error())
	case errors.Is(err, editor.ErrTimetableNotFound):
		response.NotFound(c, 20007, err.Error())
	case errors.Is(err, editor.ErrSubjectNotFound):
		response.NotFound(c, 20008, err.Error())
	case errors.Is(err, editor.ErrClassNotFound):
		response.NotFound(c, 20009, err.Error())
	case errors.Is(err, editor.ErrRowOutOfRange):
		response.BadRequest(c, 20010, err.Error())
	case errors.Is(err, editor.ErrInFlight):
		response.Conflict(c, 20011, err.Error())
	case errors.Is(err, editor.ErrNothingPending):
		response.Conflict(c, 20012, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
