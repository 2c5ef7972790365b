package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"teachove/backend/internal/dto"
	pkgerrors "teachove/backend/pkg/errors"
)

// ── 响应归一化 ──────────────────────────────────────────────
//
// 远端响应形态不固定：列表可能是裸数组、{"data": [...]}、{"data": {"timetables": [...]}}
// 或 {"timetables": [...]}；单个实体可能是裸对象、{"data": {...}} 或 {"timetable": {...}}。
// 在边界处统一解析为 dto 类型，并校验标识非空，解析失败立即返回错误。
// ─────────────────────────────────────────────────────────────

var errMalformed = errors.New("响应格式无法识别")

// unwrap 逐层剥离 data / key 包装，直到遇到数组或不含包装键的对象
func unwrap(raw []byte, key string) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	for depth := 0; depth < 4; depth++ {
		if len(raw) == 0 || raw[0] != '{' {
			return raw, nil
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
		next, ok := obj[key]
		if !ok {
			next, ok = obj["data"]
		}
		if !ok {
			return raw, nil
		}
		raw = bytes.TrimSpace(next)
	}
	return raw, nil
}

// decodeList 将（可能被包装的）数组拆为元素
func decodeList(raw []byte, key string) ([]json.RawMessage, error) {
	payload, err := unwrap(raw, key)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil, nil
	}
	if payload[0] != '[' {
		return nil, fmt.Errorf("%w: 期望数组", errMalformed)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func failed(what string, err error) error {
	return fmt.Errorf("%w: 解析%s失败: %v", pkgerrors.ErrOperationFailed, what, err)
}

// ── 时间表 ──

type wireSubject struct {
	SubjectID   string `json:"subjectId"`
	ID          string `json:"id"`
	SubjectName string `json:"subjectName"`
	ExamDate    string `json:"examDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

type wireTimetable struct {
	TimetableID   string        `json:"timetableId"`
	ID            string        `json:"id"`
	ObjectID      string        `json:"_id"`
	ClassID       string        `json:"classId"`
	ClassName     string        `json:"className"`
	ExamName      string        `json:"examName"`
	ExamStartDate string        `json:"examStartDate"`
	ExamEndDate   string        `json:"examEndDate"`
	Subjects      []wireSubject `json:"subjects"`
}

func (w *wireTimetable) toDTO() (dto.Timetable, error) {
	id := firstNonEmpty(w.TimetableID, w.ID, w.ObjectID)
	if id == "" {
		return dto.Timetable{}, fmt.Errorf("%w: 缺少 timetableId", errMalformed)
	}
	subjects := make([]dto.Subject, 0, len(w.Subjects))
	for i, s := range w.Subjects {
		sid := firstNonEmpty(s.SubjectID, s.ID)
		if sid == "" {
			return dto.Timetable{}, fmt.Errorf("%w: 时间表 %s 第 %d 个科目缺少 subjectId", errMalformed, id, i)
		}
		subjects = append(subjects, dto.Subject{
			SubjectID:   sid,
			SubjectName: s.SubjectName,
			ExamDate:    s.ExamDate,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
		})
	}
	return dto.Timetable{
		TimetableID:   id,
		ClassID:       w.ClassID,
		ClassName:     w.ClassName,
		ExamName:      w.ExamName,
		ExamStartDate: w.ExamStartDate,
		ExamEndDate:   w.ExamEndDate,
		Subjects:      subjects,
	}, nil
}

func decodeTimetableList(raw []byte) ([]dto.Timetable, error) {
	items, err := decodeList(raw, "timetables")
	if err != nil {
		return nil, failed("时间表列表", err)
	}
	out := make([]dto.Timetable, 0, len(items))
	for i, item := range items {
		var w wireTimetable
		if err := json.Unmarshal(item, &w); err != nil {
			return nil, failed("时间表列表", fmt.Errorf("第 %d 项: %w", i, err))
		}
		t, err := w.toDTO()
		if err != nil {
			return nil, failed("时间表列表", err)
		}
		out = append(out, t)
	}
	return out, nil
}

func decodeTimetable(raw []byte) (*dto.Timetable, error) {
	payload, err := unwrap(raw, "timetable")
	if err != nil {
		return nil, failed("时间表", err)
	}
	if len(payload) == 0 || payload[0] != '{' {
		return nil, failed("时间表", fmt.Errorf("%w: 期望对象", errMalformed))
	}
	var w wireTimetable
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, failed("时间表", err)
	}
	t, err := w.toDTO()
	if err != nil {
		return nil, failed("时间表", err)
	}
	return &t, nil
}

// ── 班级名册 ──

type wireClassroom struct {
	ClassID   string            `json:"classId"`
	ID        string            `json:"id"`
	ObjectID  string            `json:"_id"`
	ClassName string            `json:"className"`
	Section   string            `json:"section"`
	Subjects  []json.RawMessage `json:"subjects"`
}

// decodeClassSubject 科目项可能是对象，也可能只是名称字符串
func decodeClassSubject(raw json.RawMessage) (dto.ClassSubject, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return dto.ClassSubject{}, err
		}
		return dto.ClassSubject{SubjectName: name}, nil
	}
	var s dto.ClassSubject
	err := json.Unmarshal(raw, &s)
	return s, err
}

func decodeClassroomList(raw []byte) ([]dto.Classroom, error) {
	items, err := decodeList(raw, "classes")
	if err != nil {
		return nil, failed("班级名册", err)
	}
	out := make([]dto.Classroom, 0, len(items))
	for i, item := range items {
		var w wireClassroom
		if err := json.Unmarshal(item, &w); err != nil {
			return nil, failed("班级名册", fmt.Errorf("第 %d 项: %w", i, err))
		}
		id := firstNonEmpty(w.ClassID, w.ID, w.ObjectID)
		if id == "" {
			return nil, failed("班级名册", fmt.Errorf("%w: 第 %d 项缺少 classId", errMalformed, i))
		}
		subjects := make([]dto.ClassSubject, 0, len(w.Subjects))
		for _, rs := range w.Subjects {
			s, err := decodeClassSubject(rs)
			if err != nil {
				return nil, failed("班级名册", err)
			}
			if s.SubjectName != "" {
				subjects = append(subjects, s)
			}
		}
		out = append(out, dto.Classroom{
			ClassID:   id,
			ClassName: w.ClassName,
			Section:   w.Section,
			Subjects:  subjects,
		})
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
