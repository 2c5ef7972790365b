package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"teachove/backend/internal/dto"
	"teachove/backend/internal/model"
	"teachove/backend/internal/repository"
)

// ── Mock ExamTimetableRepository ──

type mockExamTimetableRepo struct {
	timetables map[string]*model.ExamTimetable
	seq        int
	err        error
}

func newMockExamTimetableRepo() *mockExamTimetableRepo {
	return &mockExamTimetableRepo{timetables: make(map[string]*model.ExamTimetable)}
}

func (m *mockExamTimetableRepo) sorted(filter func(*model.ExamTimetable) bool) []model.ExamTimetable {
	var out []model.ExamTimetable
	for _, t := range m.timetables {
		if filter(t) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimetableID < out[j].TimetableID })
	return out
}

func (m *mockExamTimetableRepo) ListBySchool(_ context.Context, schoolID, academicYear string) ([]model.ExamTimetable, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(t *model.ExamTimetable) bool {
		return t.SchoolID == schoolID && (academicYear == "" || t.AcademicYear == academicYear)
	}), nil
}

func (m *mockExamTimetableRepo) ListByClass(_ context.Context, schoolID, classID string) ([]model.ExamTimetable, error) {
	return m.sorted(func(t *model.ExamTimetable) bool {
		return t.SchoolID == schoolID && t.ClassID == classID
	}), nil
}

func (m *mockExamTimetableRepo) GetByID(_ context.Context, schoolID, timetableID string) (*model.ExamTimetable, error) {
	if t, ok := m.timetables[timetableID]; ok && t.SchoolID == schoolID {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamTimetableRepo) Create(_ context.Context, t *model.ExamTimetable) error {
	if m.err != nil {
		return m.err
	}
	m.seq++
	t.TimetableID = fmt.Sprintf("tt-%d", m.seq)
	for i := range t.Subjects {
		t.Subjects[i].TimetableID = t.TimetableID
	}
	cp := *t
	m.timetables[t.TimetableID] = &cp
	return nil
}

func (m *mockExamTimetableRepo) Replace(_ context.Context, t *model.ExamTimetable) error {
	existing, ok := m.timetables[t.TimetableID]
	if !ok || existing.SchoolID != t.SchoolID {
		return gorm.ErrRecordNotFound
	}
	cp := *t
	m.timetables[t.TimetableID] = &cp
	return nil
}

func (m *mockExamTimetableRepo) Delete(_ context.Context, schoolID, timetableID string) error {
	t, ok := m.timetables[timetableID]
	if !ok || t.SchoolID != schoolID {
		return gorm.ErrRecordNotFound
	}
	delete(m.timetables, timetableID)
	return nil
}

func (m *mockExamTimetableRepo) DeleteSubject(_ context.Context, timetableID, subjectID string) error {
	t, ok := m.timetables[timetableID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i, s := range t.Subjects {
		if s.SubjectID == subjectID {
			t.Subjects = append(t.Subjects[:i], t.Subjects[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ClassroomRepository ──

type mockClassroomRepo struct {
	classes map[string]*model.Classroom
}

func newMockClassroomRepo() *mockClassroomRepo {
	return &mockClassroomRepo{classes: make(map[string]*model.Classroom)}
}

func (m *mockClassroomRepo) List(_ context.Context, schoolID, academicYear string) ([]model.Classroom, error) {
	var out []model.Classroom
	for _, c := range m.classes {
		if c.SchoolID == schoolID && (academicYear == "" || c.AcademicYear == academicYear) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClassID < out[j].ClassID })
	return out, nil
}

func (m *mockClassroomRepo) Create(_ context.Context, c *model.Classroom) error {
	if _, ok := m.classes[c.ClassID]; ok {
		return gorm.ErrDuplicatedKey
	}
	cp := *c
	m.classes[c.ClassID] = &cp
	return nil
}

func newMockRepository() (*repository.Repository, *mockExamTimetableRepo, *mockClassroomRepo) {
	tt := newMockExamTimetableRepo()
	cr := newMockClassroomRepo()
	return &repository.Repository{ExamTimetable: tt, Classroom: cr}, tt, cr
}

// ── Mock upstream（控制台侧） ──

type mockUpstream struct {
	timetables []dto.Timetable
	classes    []dto.Classroom
	err        error

	lastYear string
}

func (m *mockUpstream) ListTimetables(_ context.Context, _, academicYear string) ([]dto.Timetable, error) {
	m.lastYear = academicYear
	if m.err != nil {
		return nil, m.err
	}
	return m.timetables, nil
}

func (m *mockUpstream) ListTimetablesByClass(_ context.Context, _, classID string) ([]dto.Timetable, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []dto.Timetable
	for _, t := range m.timetables {
		if t.ClassID == classID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockUpstream) CreateTimetable(_ context.Context, _, _ string, _ *dto.TimetablePayload) (*dto.Timetable, error) {
	return nil, m.err
}

func (m *mockUpstream) UpdateTimetable(_ context.Context, _, _, _ string, _ *dto.TimetablePayload) (*dto.Timetable, error) {
	return nil, m.err
}

func (m *mockUpstream) DeleteTimetable(_ context.Context, _, _, _ string) error { return m.err }

func (m *mockUpstream) DeleteSubject(_ context.Context, _, _, _, _ string) error { return m.err }

// ListClasses 与 ListTimetables 并发调用，不记录学年
func (m *mockUpstream) ListClasses(_ context.Context, _, _ string) ([]dto.Classroom, error) {
	return m.classes, nil
}

func sampleTimetables() []dto.Timetable {
	return []dto.Timetable{
		{
			TimetableID: "tt-1", ClassID: "c7", ClassName: "7", ExamName: "Unit Test",
			ExamStartDate: "03-03-2025", ExamEndDate: "07-03-2025",
			Subjects: []dto.Subject{
				{SubjectID: "maths", SubjectName: "Maths", ExamDate: "05-03-2025", StartTime: "2:30 PM", EndTime: "4:00 PM"},
				{SubjectID: "english", SubjectName: "English", ExamDate: "06-03-2025", StartTime: "9:00 AM", EndTime: "10:30 AM"},
			},
		},
		{
			TimetableID: "tt-2", ClassID: "c8", ClassName: "8", ExamName: "Unit Test",
			ExamStartDate: "03-03-2025", ExamEndDate: "07-03-2025",
		},
	}
}
