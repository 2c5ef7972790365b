package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"teachove/backend/internal/service"
	"teachove/backend/pkg/jwt"
	"teachove/backend/pkg/response"
)

// ClassTimetableHandler 班级考试安排（只读）HTTP 处理器
type ClassTimetableHandler struct {
	classSvc service.ClassTimetableService
}

// NewClassTimetableHandler 创建 ClassTimetableHandler
func NewClassTimetableHandler(classSvc service.ClassTimetableService) *ClassTimetableHandler {
	return &ClassTimetableHandler{classSvc: classSvc}
}

// List 班级考试安排
// GET /api/v1/class-timetables[?class_id=xxx]
func (h *ClassTimetableHandler) List(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	views, err := h.classSvc.ListForClass(c.Request.Context(), id.SchoolID, classFor(c, id))
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OK(c, views)
}

// Calendar 导出 iCalendar
// GET /api/v1/class-timetables/calendar.ics[?class_id=xxx]
func (h *ClassTimetableHandler) Calendar(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	classID := classFor(c, id)
	body, err := h.classSvc.Calendar(c.Request.Context(), id.SchoolID, classID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.Attachment(c, "text/calendar; charset=utf-8", fmt.Sprintf("exams_%s.ics", classID), body)
}

// classFor 教师/学生只能查看会话中的班级；管理员通过 class_id 指定
func classFor(c *gin.Context, id jwt.Identity) string {
	if id.Role == jwt.RoleSchoolAdmin {
		return c.Query("class_id")
	}
	return id.ClassID
}

func (h *ClassTimetableHandler) handleClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassRequired):
		response.BadRequest(c, 21001, err.Error())
	case errors.Is(err, service.ErrUpstreamUnavailable):
		response.BadGateway(c, 21002, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
