package dto

// ── 接口表示（DD-MM-YYYY 日期，h:mm AM/PM 时间） ──

// Timetable 考试时间表
type Timetable struct {
	TimetableID   string    `json:"timetableId"`
	ClassID       string    `json:"classId"`
	ClassName     string    `json:"className"`
	ExamName      string    `json:"examName"`
	ExamStartDate string    `json:"examStartDate"`
	ExamEndDate   string    `json:"examEndDate"`
	Subjects      []Subject `json:"subjects"`
}

// Subject 时间表中的一场考试
type Subject struct {
	SubjectID   string `json:"subjectId"   binding:"required,max=64"`
	SubjectName string `json:"subjectName" binding:"required,max=100"`
	ExamDate    string `json:"examDate"    binding:"required,apidate"`
	StartTime   string `json:"startTime"   binding:"required,apitime"`
	EndTime     string `json:"endTime"     binding:"required,apitime"`
}

// TimetablePayload 创建/更新时间表请求体（整表替换）
type TimetablePayload struct {
	ClassID       string    `json:"classId"       binding:"required,max=64"`
	ClassName     string    `json:"className"     binding:"required,max=100"`
	ExamName      string    `json:"examName"      binding:"required,max=100"`
	ExamStartDate string    `json:"examStartDate" binding:"required,apidate"`
	ExamEndDate   string    `json:"examEndDate"   binding:"required,apidate"`
	Subjects      []Subject `json:"subjects"      binding:"omitempty,dive"`
}

// FindSubject 按标识查找科目
func (t *Timetable) FindSubject(subjectID string) (Subject, bool) {
	for _, s := range t.Subjects {
		if s.SubjectID == subjectID {
			return s, true
		}
	}
	return Subject{}, false
}

// WithoutSubject 返回移除指定科目后的副本
func (t Timetable) WithoutSubject(subjectID string) Timetable {
	kept := make([]Subject, 0, len(t.Subjects))
	for _, s := range t.Subjects {
		if s.SubjectID != subjectID {
			kept = append(kept, s)
		}
	}
	t.Subjects = kept
	return t
}

// ── 班级名册 ──

// Classroom 班级及其任课科目
type Classroom struct {
	ClassID   string         `json:"classId"`
	ClassName string         `json:"className"`
	Section   string         `json:"section"`
	Subjects  []ClassSubject `json:"subjects"`
}

// ClassSubject 班级任课科目（仅用于科目名称候选）
type ClassSubject struct {
	SubjectName string `json:"subjectName" binding:"required,max=100"`
	TeacherID   string `json:"teacherId"   binding:"omitempty,max=64"`
}

// CreateClassroomRequest 新建班级请求（参考实现）
type CreateClassroomRequest struct {
	ClassID   string         `json:"classId"   binding:"required,max=64"`
	ClassName string         `json:"className" binding:"required,max=100"`
	Section   string         `json:"section"   binding:"omitempty,max=20"`
	Subjects  []ClassSubject `json:"subjects"  binding:"omitempty,dive"`
}

// ── 教师/学生只读视图（界面表示） ──

// TimetableView 班级考试安排
type TimetableView struct {
	TimetableID string       `json:"timetableId"`
	ExamName    string       `json:"examName"`
	ClassID     string       `json:"classId"`
	ClassName   string       `json:"className"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	Subjects    []SubjectRow `json:"subjects"`
}
