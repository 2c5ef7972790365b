package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"teachove/backend/internal/editor"
	"teachove/backend/internal/upstream"
	"teachove/backend/pkg/jwt"
)

// ── 编辑页面业务错误 ──

var (
	ErrScreenNotOpen  = errors.New("timetable screen is not open")
	ErrSchoolRequired = errors.New("session has no school")
)

// ScreenService 管理员考试时间表编辑页面
//
// 每个管理员至多一个页面实例；重新进入页面即重新加载
type ScreenService interface {
	// Open 创建页面并完成首次加载
	Open(ctx context.Context, id jwt.Identity) (*editor.Editor, error)
	// Get 取出已打开的页面
	Get(userID string) (*editor.Editor, error)
	// Close 离开页面
	Close(userID string) error
}

type screenService struct {
	timetables  upstream.TimetableRepository
	roster      upstream.RosterProvider
	store       *editor.Store
	defaultYear string
	logger      *zap.Logger
}

// NewScreenService 创建 ScreenService 实例
func NewScreenService(timetables upstream.TimetableRepository, roster upstream.RosterProvider, store *editor.Store, defaultYear string, logger *zap.Logger) ScreenService {
	return &screenService{
		timetables:  timetables,
		roster:      roster,
		store:       store,
		defaultYear: defaultYear,
		logger:      logger,
	}
}

func (s *screenService) Open(ctx context.Context, id jwt.Identity) (*editor.Editor, error) {
	if id.SchoolID == "" {
		return nil, ErrSchoolRequired
	}
	year := id.AcademicYear
	if year == "" {
		year = s.defaultYear
	}

	ed := editor.New(s.timetables, s.roster,
		editor.Scope{SchoolID: id.SchoolID, AcademicYear: year},
		s.logger.With(zap.String("user_id", id.UserID), zap.String("school_id", id.SchoolID)),
	)
	s.store.Put(id.UserID, ed)

	if err := ed.Mount(ctx); err != nil {
		return nil, err
	}
	return ed, nil
}

func (s *screenService) Get(userID string) (*editor.Editor, error) {
	ed, ok := s.store.Get(userID)
	if !ok {
		return nil, ErrScreenNotOpen
	}
	return ed, nil
}

func (s *screenService) Close(userID string) error {
	if !s.store.Discard(userID) {
		return ErrScreenNotOpen
	}
	return nil
}
