package editor

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"teachove/backend/internal/dto"
	"teachove/backend/internal/subjectid"
	"teachove/backend/internal/upstream"
)

// Editor 考试时间表编辑页面的状态机
// 状态由内部锁保护；远端调用期间释放锁，完成后重新加锁落账
type Editor struct {
	mu      sync.Mutex
	st      *State
	repo    upstream.TimetableRepository
	roster  upstream.RosterProvider
	scope   Scope
	deriver subjectid.Deriver
	logger  *zap.Logger
}

// Option 构造选项
type Option func(*Editor)

// WithDeriver 替换科目标识生成器（测试固定时钟用）
func WithDeriver(d subjectid.Deriver) Option {
	return func(e *Editor) { e.deriver = d }
}

// WithState 注入初始状态
func WithState(st *State) Option {
	return func(e *Editor) {
		if st.InFlight == nil {
			st.InFlight = NewInFlight()
		}
		e.st = st
	}
}

// New 创建编辑器，初始阶段 idle
func New(repo upstream.TimetableRepository, roster upstream.RosterProvider, scope Scope, logger *zap.Logger, opts ...Option) *Editor {
	e := &Editor{
		st:     NewState(),
		repo:   repo,
		roster: roster,
		scope:  scope,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scope 页面所属学校与学年
func (e *Editor) Scope() Scope { return e.scope }

// ═══════════════════════════════════════════════════════════
// 加载
// ═══════════════════════════════════════════════════════════

// Mount 首次进入页面：并发拉取时间表列表与班级名册
func (e *Editor) Mount(ctx context.Context) error {
	e.mu.Lock()
	if e.st.Phase != PhaseIdle {
		e.mu.Unlock()
		return ErrAlreadyMounted
	}
	e.st.Phase = PhaseLoading
	e.mu.Unlock()

	e.load(ctx)
	return nil
}

// Retry 加载失败后重试
func (e *Editor) Retry(ctx context.Context) error {
	e.mu.Lock()
	if e.st.Phase != PhaseLoadError {
		e.mu.Unlock()
		return ErrNothingToRetry
	}
	e.st.Phase = PhaseLoading
	e.st.LoadError = ""
	e.mu.Unlock()

	e.load(ctx)
	return nil
}

func (e *Editor) load(ctx context.Context) {
	var (
		timetables []dto.Timetable
		classes    []dto.Classroom
		listErr    error
		rosterErr  error
	)

	// 两个请求互不影响，错误各自收集
	var g errgroup.Group
	g.Go(func() error {
		timetables, listErr = e.repo.ListTimetables(ctx, e.scope.SchoolID, e.scope.AcademicYear)
		return nil
	})
	g.Go(func() error {
		classes, rosterErr = e.roster.ListClasses(ctx, e.scope.SchoolID, e.scope.AcademicYear)
		return nil
	})
	_ = g.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()

	// 名册失败不影响页面，仅缺少班级与科目候选
	if rosterErr != nil {
		e.logger.Warn("加载班级名册失败", zap.String("school_id", e.scope.SchoolID), zap.Error(rosterErr))
	} else {
		e.st.Classes = classes
	}

	if listErr != nil {
		e.logger.Error("加载考试时间表失败", zap.String("school_id", e.scope.SchoolID), zap.Error(listErr))
		e.st.Phase = PhaseLoadError
		e.st.LoadError = msgLoadFailed
		return
	}
	if timetables == nil {
		timetables = []dto.Timetable{}
	}
	e.st.Timetables = timetables
	e.st.Phase = PhaseReady
}

// ═══════════════════════════════════════════════════════════
// 对话框
// ═══════════════════════════════════════════════════════════

// OpenCreate 打开创建对话框；保留上次未提交的草稿
func (e *Editor) OpenCreate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.Phase != PhaseReady {
		return ErrNotReady
	}
	e.st.Create.Open = true
	if len(e.st.Create.Rows) == 0 {
		e.st.Create.Rows = []dto.SubjectRow{{}}
	}
	return nil
}

// OpenEdit 打开编辑对话框，用目标时间表预填草稿
func (e *Editor) OpenEdit(timetableID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.Phase != PhaseReady {
		return ErrNotReady
	}
	if e.st.Updating {
		return ErrInFlight
	}
	idx := e.indexOf(timetableID)
	if idx < 0 {
		return ErrTimetableNotFound
	}
	e.st.Edit = toDraft(e.st.Timetables[idx])
	return nil
}

// CloseDialog 关闭对话框；创建草稿保留，编辑草稿丢弃
func (e *Editor) CloseDialog(kind DialogKind) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch kind {
	case DialogCreate:
		if e.st.Adding {
			return ErrInFlight
		}
		e.st.Create.Open = false
	case DialogEdit:
		if e.st.Updating {
			return ErrInFlight
		}
		e.st.Edit = Dialog{}
	default:
		return ErrUnknownDialog
	}
	return nil
}

// ── 草稿编辑 ──

// SetHeader 更新草稿表头
func (e *Editor) SetHeader(kind DialogKind, header dto.DraftHeader) error {
	return e.mutateDraft(kind, func(d *Dialog) error {
		d.Header = header
		return nil
	})
}

// SelectClass 从名册选择班级，同步填入班级名称
func (e *Editor) SelectClass(kind DialogKind, classID string) error {
	return e.mutateDraft(kind, func(d *Dialog) error {
		for _, c := range e.st.Classes {
			if c.ClassID == classID {
				d.Header.ClassID = c.ClassID
				d.Header.ClassName = c.ClassName
				return nil
			}
		}
		return ErrClassNotFound
	})
}

// AddRow 追加空白科目行
func (e *Editor) AddRow(kind DialogKind) error {
	return e.mutateDraft(kind, func(d *Dialog) error {
		d.Rows = append(d.Rows, dto.SubjectRow{})
		return nil
	})
}

// UpdateRow 替换指定科目行
func (e *Editor) UpdateRow(kind DialogKind, index int, row dto.SubjectRow) error {
	return e.mutateDraft(kind, func(d *Dialog) error {
		if index < 0 || index >= len(d.Rows) {
			return ErrRowOutOfRange
		}
		d.Rows[index] = row
		return nil
	})
}

// RemoveRow 删除指定科目行
func (e *Editor) RemoveRow(kind DialogKind, index int) error {
	return e.mutateDraft(kind, func(d *Dialog) error {
		if index < 0 || index >= len(d.Rows) {
			return ErrRowOutOfRange
		}
		d.Rows = append(d.Rows[:index], d.Rows[index+1:]...)
		return nil
	})
}

// mutateDraft 在锁内修改已打开且未提交中的草稿
func (e *Editor) mutateDraft(kind DialogKind, fn func(d *Dialog) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, busy, err := e.dialog(kind)
	if err != nil {
		return err
	}
	if !d.Open {
		return ErrDialogClosed
	}
	if busy {
		return ErrInFlight
	}
	return fn(d)
}

// dialog 返回对话框指针及其提交是否进行中，调用方持锁
func (e *Editor) dialog(kind DialogKind) (*Dialog, bool, error) {
	switch kind {
	case DialogCreate:
		return &e.st.Create, e.st.Adding, nil
	case DialogEdit:
		return &e.st.Edit, e.st.Updating, nil
	}
	return nil, false, ErrUnknownDialog
}

// ── 提示 ──

// DismissNotification 关闭当前提示
func (e *Editor) DismissNotification() {
	e.mu.Lock()
	e.st.Notice = nil
	e.mu.Unlock()
}

func (e *Editor) notify(kind NoticeKind, msg string) {
	e.st.Notice = &Notification{Kind: kind, Message: msg}
}

// indexOf 时间表下标，调用方持锁
func (e *Editor) indexOf(timetableID string) int {
	for i := range e.st.Timetables {
		if e.st.Timetables[i].TimetableID == timetableID {
			return i
		}
	}
	return -1
}
