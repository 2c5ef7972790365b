package dto

import "errors"

// ── 草稿（界面表示：YYYY-MM-DD 日期，HH:MM 时间） ──

// DraftHeader 时间表表头字段
type DraftHeader struct {
	ExamName  string `json:"examName"`
	ClassName string `json:"className"`
	ClassID   string `json:"classId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SubjectRow 草稿中的一行科目
type SubjectRow struct {
	SubjectID   string `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	ExamDate    string `json:"examDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// SelectClassRequest 从名册选择班级
type SelectClassRequest struct {
	ClassID string `json:"classId" binding:"required"`
}

// 草稿校验错误，Error() 即提示文案
var (
	ErrDraftHeaderIncomplete  = errors.New("Please fill all timetable fields")
	ErrDraftNoSubjects        = errors.New("Add at least one subject")
	ErrDraftSubjectIncomplete = errors.New("Please fill all subject fields")
)

// ValidateDraft 判断草稿是否可提交；创建与编辑共用同一规则
// 科目标识不要求填写，提交时会按名称生成
func ValidateDraft(header DraftHeader, rows []SubjectRow) error {
	if header.ExamName == "" || header.ClassName == "" || header.ClassID == "" ||
		header.StartDate == "" || header.EndDate == "" {
		return ErrDraftHeaderIncomplete
	}
	if len(rows) == 0 {
		return ErrDraftNoSubjects
	}
	for _, r := range rows {
		if r.SubjectName == "" || r.ExamDate == "" || r.StartTime == "" || r.EndTime == "" {
			return ErrDraftSubjectIncomplete
		}
	}
	return nil
}
