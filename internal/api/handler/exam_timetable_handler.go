package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teachove/backend/internal/dto"
	"teachove/backend/internal/service"
	"teachove/backend/pkg/response"
)

// ExamTimetableHandler 参考实现：考试时间表 HTTP 处理器
type ExamTimetableHandler struct {
	timetableSvc service.ExamTimetableService
}

// NewExamTimetableHandler 创建 ExamTimetableHandler
func NewExamTimetableHandler(timetableSvc service.ExamTimetableService) *ExamTimetableHandler {
	return &ExamTimetableHandler{timetableSvc: timetableSvc}
}

// List GET /api/v1/schools/:schoolId/exam-timetables?academic_year=xxx
func (h *ExamTimetableHandler) List(c *gin.Context) {
	list, err := h.timetableSvc.List(c.Request.Context(), c.Param("schoolId"), c.Query("academic_year"))
	if err != nil {
		handleRegistryError(c, err)
		return
	}
	response.OK(c, list)
}

// ListByClass GET /api/v1/schools/:schoolId/classes/:classId/exam-timetables
func (h *ExamTimetableHandler) ListByClass(c *gin.Context) {
	list, err := h.timetableSvc.ListByClass(c.Request.Context(), c.Param("schoolId"), c.Param("classId"))
	if err != nil {
		handleRegistryError(c, err)
		return
	}
	response.OK(c, list)
}

// Create POST /api/v1/schools/:schoolId/exam-timetables?academic_year=xxx
func (h *ExamTimetableHandler) Create(c *gin.Context) {
	var req dto.TimetablePayload
	if !bindJSON(c, &req, 30001) {
		return
	}
	t, err := h.timetableSvc.Create(c.Request.Context(), c.Param("schoolId"), c.Query("academic_year"), &req)
	if err != nil {
		handleRegistryError(c, err)
		return
	}
	response.Created(c, t)
}

// Update PUT /api/v1/schools/:schoolId/exam-timetables/:timetableId
func (h *ExamTimetableHandler) Update(c *gin.Context) {
	var req dto.TimetablePayload
	if !bindJSON(c, &req, 30001) {
		return
	}
	t, err := h.timetableSvc.Update(c.Request.Context(), c.Param("schoolId"), c.Query("academic_year"), c.Param("timetableId"), &req)
	if err != nil {
		handleRegistryError(c, err)
		return
	}
	response.OK(c, t)
}

// Delete DELETE /api/v1/schools/:schoolId/exam-timetables/:timetableId
func (h *ExamTimetableHandler) Delete(c *gin.Context) {
	if err := h.timetableSvc.Delete(c.Request.Context(), c.Param("schoolId"), c.Param("timetableId")); err != nil {
		handleRegistryError(c, err)
		return
	}
	response.OK(c, nil)
}

// DeleteSubject DELETE /api/v1/schools/:schoolId/exam-timetables/:timetableId/subjects/:subjectId
func (h *ExamTimetableHandler) DeleteSubject(c *gin.Context) {
	err := h.timetableSvc.DeleteSubject(c.Request.Context(), c.Param("schoolId"), c.Param("timetableId"), c.Param("subjectId"))
	if err != nil {
		handleRegistryError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── ClassroomHandler ──

// ClassroomHandler 参考实现：班级名册 HTTP 处理器
type ClassroomHandler struct {
	classroomSvc service.ClassroomService
}

// NewClassroomHandler 创建 ClassroomHandler
func NewClassroomHandler(classroomSvc service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomSvc: classroomSvc}
}

// List GET /api/v1/schools/:schoolId/classes?academic_year=xxx
func (h *ClassroomHandler) List(c *gin.Context) {
	list, err := h.classroomSvc.List(c.Request.Context(), c.Param("schoolId"), c.Query("academic_year"))
	if err != nil {
		handleRegistryError(c, err)
		return
	}
	response.OK(c, list)
}

// Create POST /api/v1/schools/:schoolId/classes?academic_year=xxx
func (h *ClassroomHandler) Create(c *gin.Context) {
	var req dto.CreateClassroomRequest
	if !bindJSON(c, &req, 30001) {
		return
	}
	class, err := h.classroomSvc.Create(c.Request.Context(), c.Param("schoolId"), c.Query("academic_year"), &req)
	if err != nil {
		handleRegistryError(c, err)
		return
	}
	response.Created(c, class)
}

func handleRegistryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamTimetableNotFound):
		response.NotFound(c, 30002, err.Error())
	case errors.Is(err, service.ErrExamSubjectNotFound):
		response.NotFound(c, 30003, err.Error())
	case errors.Is(err, service.ErrDuplicateSubjectID):
		response.ErrorWithDetails(c, http.StatusBadRequest, 30004, service.ErrDuplicateSubjectID.Error(), err.Error())
	case errors.Is(err, service.ErrInvalidExamWindow), errors.Is(err, service.ErrInvalidTimetableField):
		response.BadRequest(c, 30005, err.Error())
	case errors.Is(err, service.ErrAcademicYearRequired):
		response.BadRequest(c, 30006, err.Error())
	case errors.Is(err, service.ErrClassroomExists):
		response.Conflict(c, 30007, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
