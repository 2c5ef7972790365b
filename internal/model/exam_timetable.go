package model

import "gorm.io/datatypes"

// ExamTimetable 考试时间表，对应 exam_timetables
type ExamTimetable struct {
	TimetableID   string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"timetable_id"`
	SchoolID      string         `gorm:"type:varchar(64);not null"                      json:"school_id"`
	AcademicYear  string         `gorm:"type:varchar(20);not null"                      json:"academic_year"`
	ClassID       string         `gorm:"type:varchar(64);not null"                      json:"class_id"`
	ClassName     string         `gorm:"type:varchar(100);not null"                     json:"class_name"`
	ExamName      string         `gorm:"type:varchar(100);not null"                     json:"exam_name"`
	ExamStartDate datatypes.Date `gorm:"not null"                                       json:"exam_start_date"`
	ExamEndDate   datatypes.Date `gorm:"not null"                                       json:"exam_end_date"`
	BaseModel

	// 关联
	Subjects []ExamSubject `gorm:"foreignKey:TimetableID;references:TimetableID;constraint:OnDelete:CASCADE" json:"subjects,omitempty"`
}

// TableName 指定表名
func (ExamTimetable) TableName() string { return "exam_timetables" }

// ExamSubject 时间表中的一场考试，对应 exam_subjects
// (timetable_id, subject_id) 联合主键保证同表内科目标识唯一
type ExamSubject struct {
	TimetableID string         `gorm:"type:uuid;primaryKey"        json:"timetable_id"`
	SubjectID   string         `gorm:"type:varchar(64);primaryKey" json:"subject_id"`
	SubjectName string         `gorm:"type:varchar(100);not null"  json:"subject_name"`
	ExamDate    datatypes.Date `gorm:"not null"                    json:"exam_date"`
	StartTime   datatypes.Time `gorm:"not null"                    json:"start_time"`
	EndTime     datatypes.Time `gorm:"not null"                    json:"end_time"`
	Position    int            `gorm:"type:smallint;not null"      json:"position"` // 表内顺序
}

// TableName 指定表名
func (ExamSubject) TableName() string { return "exam_subjects" }

// [自证通过] internal/model/exam_timetable.go
