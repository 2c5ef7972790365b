package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"teachove/backend/internal/dto"
	"teachove/backend/internal/upstream"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTimetables = errors.New("no exam timetables to export")
	ErrExportGenerateFail = errors.New("failed to generate spreadsheet")
)

// ExportService 导出业务接口
//
// 每张考试时间表一个 Sheet；导出以 bytes.Buffer 返回，由 Handler 层写入响应
type ExportService interface {
	ExportTimetables(ctx context.Context, schoolID, academicYear string) (*bytes.Buffer, string, error)
}

type exportService struct {
	timetables upstream.TimetableRepository
	logger     *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(timetables upstream.TimetableRepository, logger *zap.Logger) ExportService {
	return &exportService{timetables: timetables, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportTimetables 导出考试时间表为 Excel
// ═══════════════════════════════════════════════════════════
//
// Sheet 布局：
//   - 第 1 行：考试名称 · 班级（合并单元格）
//   - 第 2 行：考试起止日期
//   - 第 4 行起：科目标识 / 科目 / 日期 / 开始 / 结束

var exportHeaders = []string{"Subject ID", "Subject", "Date", "Start", "End"}

func (s *exportService) ExportTimetables(ctx context.Context, schoolID, academicYear string) (*bytes.Buffer, string, error) {
	list, err := s.timetables.ListTimetables(ctx, schoolID, academicYear)
	if err != nil {
		s.logger.Error("查询考试时间表失败", zap.String("school_id", schoolID), zap.Error(err))
		return nil, "", ErrUpstreamUnavailable
	}
	if len(list) == 0 {
		return nil, "", ErrExportNoTimetables
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})

	used := make(map[string]bool, len(list))
	for i, t := range list {
		name := sheetName(t, used)
		if i == 0 {
			// 复用默认 Sheet1
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, "", s.generateFailed(err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, "", s.generateFailed(err)
		}
		if err := writeTimetableSheet(f, name, t, headerStyle, titleStyle); err != nil {
			return nil, "", s.generateFailed(err)
		}
	}
	f.SetActiveSheet(0)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.generateFailed(err)
	}

	filename := fmt.Sprintf("exam_timetables_%s.xlsx", academicYear)
	return buf, filename, nil
}

func (s *exportService) generateFailed(err error) error {
	s.logger.Error("生成 Excel 失败", zap.Error(err))
	return ErrExportGenerateFail
}

func writeTimetableSheet(f *excelize.File, sheet string, t dto.Timetable, headerStyle, titleStyle int) error {
	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "B", 24)
	f.SetColWidth(sheet, "C", "E", 14)

	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("%s · Class %s", t.ExamName, t.ClassName)); err != nil {
		return err
	}
	f.MergeCell(sheet, "A1", "E1")
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("%s to %s", t.ExamStartDate, t.ExamEndDate))

	for i, h := range exportHeaders {
		f.SetCellValue(sheet, cell(colName(i), 4), h)
	}
	f.SetCellStyle(sheet, "A4", "E4", headerStyle)

	row := 5
	for _, sub := range t.Subjects {
		f.SetCellValue(sheet, cell("A", row), sub.SubjectID)
		f.SetCellValue(sheet, cell("B", row), sub.SubjectName)
		f.SetCellValue(sheet, cell("C", row), sub.ExamDate)
		f.SetCellValue(sheet, cell("D", row), sub.StartTime)
		f.SetCellValue(sheet, cell("E", row), sub.EndTime)
		row++
	}
	return nil
}

// ── 辅助函数 ──

// sheetName 去除非法字符，最长 31 字符，重名追加序号
func sheetName(t dto.Timetable, used map[string]bool) string {
	base := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, fmt.Sprintf("%s %s", t.ExamName, t.ClassName))
	base = strings.TrimSpace(base)
	if base == "" {
		base = "Timetable"
	}
	base = truncateRunes(base, 31)

	// Sheet 名称不区分大小写
	name := base
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncateRunes(base, 31-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
