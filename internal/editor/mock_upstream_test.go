package editor

import (
	"context"
	"fmt"
	"sync"

	"teachove/backend/internal/dto"
	pkgerrors "teachove/backend/pkg/errors"
)

// ── Mock TimetableRepository ──

type mockRepo struct {
	mu sync.Mutex

	timetables []dto.Timetable
	listErr    error
	createErr  error
	updateErr  error
	deleteErr  error
	subjectErr error

	created []*dto.TimetablePayload
	updated map[string]*dto.TimetablePayload
	calls   map[string]int

	// 非空时删除请求在 entered 上报到达，并阻塞至 release 关闭
	entered chan struct{}
	release chan struct{}

	// 按科目分别放行：请求到达时向 subjectEntered 上报科目标识，并阻塞至对应 gate 关闭
	subjectGates   map[string]chan struct{}
	subjectEntered chan string
}

func newMockRepo(timetables ...dto.Timetable) *mockRepo {
	return &mockRepo{
		timetables: timetables,
		updated:    make(map[string]*dto.TimetablePayload),
		calls:      make(map[string]int),
	}
}

func (m *mockRepo) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *mockRepo) record(op string) {
	m.mu.Lock()
	m.calls[op]++
	m.mu.Unlock()
}

func (m *mockRepo) block() {
	if m.entered == nil {
		return
	}
	m.entered <- struct{}{}
	<-m.release
}

func (m *mockRepo) ListTimetables(_ context.Context, _, _ string) ([]dto.Timetable, error) {
	m.record("list")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]dto.Timetable(nil), m.timetables...), nil
}

func (m *mockRepo) ListTimetablesByClass(_ context.Context, _, classID string) ([]dto.Timetable, error) {
	m.record("list_by_class")
	var out []dto.Timetable
	for _, t := range m.timetables {
		if t.ClassID == classID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockRepo) CreateTimetable(_ context.Context, _, _ string, payload *dto.TimetablePayload) (*dto.Timetable, error) {
	m.record("create")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, payload)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &dto.Timetable{
		TimetableID:   fmt.Sprintf("tt-new-%d", len(m.created)),
		ClassID:       payload.ClassID,
		ClassName:     payload.ClassName,
		ExamName:      payload.ExamName,
		ExamStartDate: payload.ExamStartDate,
		ExamEndDate:   payload.ExamEndDate,
		Subjects:      payload.Subjects,
	}, nil
}

func (m *mockRepo) UpdateTimetable(_ context.Context, _, _, timetableID string, payload *dto.TimetablePayload) (*dto.Timetable, error) {
	m.record("update")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated[timetableID] = payload
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &dto.Timetable{
		TimetableID:   timetableID,
		ClassID:       payload.ClassID,
		ClassName:     payload.ClassName,
		ExamName:      payload.ExamName,
		ExamStartDate: payload.ExamStartDate,
		ExamEndDate:   payload.ExamEndDate,
		Subjects:      payload.Subjects,
	}, nil
}

func (m *mockRepo) DeleteTimetable(_ context.Context, _, _, _ string) error {
	m.record("delete")
	m.block()
	return m.deleteErr
}

func (m *mockRepo) DeleteSubject(_ context.Context, _, _, _, subjectID string) error {
	m.record("delete_subject")
	if gate, ok := m.subjectGates[subjectID]; ok {
		m.subjectEntered <- subjectID
		<-gate
		return m.subjectErr
	}
	m.block()
	return m.subjectErr
}

// ── Mock RosterProvider ──

type mockRoster struct {
	classes []dto.Classroom
	err     error
}

func (m *mockRoster) ListClasses(_ context.Context, _, _ string) ([]dto.Classroom, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.classes, nil
}

var errUpstream = fmt.Errorf("%w: status 500", pkgerrors.ErrOperationFailed)

// ── 固定数据 ──

func sampleTimetable() dto.Timetable {
	return dto.Timetable{
		TimetableID:   "tt-1",
		ClassID:       "c7",
		ClassName:     "7",
		ExamName:      "Unit Test",
		ExamStartDate: "03-03-2025",
		ExamEndDate:   "07-03-2025",
		Subjects: []dto.Subject{
			{SubjectID: "maths", SubjectName: "Maths", ExamDate: "05-03-2025", StartTime: "2:30 PM", EndTime: "4:00 PM"},
			{SubjectID: "english", SubjectName: "English", ExamDate: "06-03-2025", StartTime: "9:00 AM", EndTime: "10:30 AM"},
		},
	}
}

func sampleRoster() *mockRoster {
	return &mockRoster{classes: []dto.Classroom{
		{ClassID: "c7", ClassName: "7", Section: "A", Subjects: []dto.ClassSubject{{SubjectName: "Maths"}, {SubjectName: "Science"}}},
		{ClassID: "c8", ClassName: "8", Section: "B"},
	}}
}
