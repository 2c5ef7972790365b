package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"teachove/backend/internal/service"
	"teachove/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	defaultYear string
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, defaultYear string) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, defaultYear: defaultYear}
}

// ExportTimetables 导出本校考试时间表
// GET /api/v1/exports/timetables.xlsx[?academic_year=2025-2026]
func (h *ExportHandler) ExportTimetables(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	year := c.Query("academic_year")
	if year == "" {
		year = id.AcademicYear
	}
	if year == "" {
		year = h.defaultYear
	}

	buf, filename, err := h.exportSvc.ExportTimetables(c.Request.Context(), id.SchoolID, year)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	response.Attachment(c, xlsxContentType, filename, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoTimetables):
		response.NotFound(c, 21101, err.Error())
	case errors.Is(err, service.ErrUpstreamUnavailable):
		response.BadGateway(c, 21002, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
