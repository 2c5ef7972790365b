package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"teachove/backend/internal/editor"
	"teachove/backend/pkg/jwt"
)

func setupTestScreenService(up *mockUpstream) (ScreenService, *editor.Store) {
	store := editor.NewStore(time.Minute)
	return NewScreenService(up, up, store, "2025-2026", zap.NewNop()), store
}

func TestScreenService_OpenUsesDefaultYear(t *testing.T) {
	up := &mockUpstream{timetables: sampleTimetables()}
	svc, store := setupTestScreenService(up)

	ed, err := svc.Open(context.Background(), jwt.Identity{UserID: "u1", Role: jwt.RoleSchoolAdmin, SchoolID: "s1"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if ed.Scope().AcademicYear != "2025-2026" || up.lastYear != "2025-2026" {
		t.Errorf("会话无学年时应使用默认值: %+v / %q", ed.Scope(), up.lastYear)
	}
	if snap := ed.Snapshot(); snap.Phase != editor.PhaseReady || len(snap.Timetables) != 2 {
		t.Errorf("打开后应已加载: %+v", snap)
	}
	if store.Len() != 1 {
		t.Errorf("期望 1 个页面，得到 %d", store.Len())
	}

	got, err := svc.Get("u1")
	if err != nil || got != ed {
		t.Errorf("Get 应返回同一实例: %v", err)
	}
}

func TestScreenService_OpenReplacesPrevious(t *testing.T) {
	up := &mockUpstream{}
	svc, _ := setupTestScreenService(up)
	id := jwt.Identity{UserID: "u1", SchoolID: "s1", AcademicYear: "2024-2025"}

	first, _ := svc.Open(context.Background(), id)
	second, _ := svc.Open(context.Background(), id)
	if first == second {
		t.Error("重新进入页面应创建新实例")
	}
	if up.lastYear != "2024-2025" {
		t.Errorf("应使用会话学年，得到 %q", up.lastYear)
	}
	if got, _ := svc.Get("u1"); got != second {
		t.Error("应保留最新实例")
	}
}

func TestScreenService_Errors(t *testing.T) {
	svc, _ := setupTestScreenService(&mockUpstream{})

	if _, err := svc.Open(context.Background(), jwt.Identity{UserID: "u1"}); !errors.Is(err, ErrSchoolRequired) {
		t.Errorf("期望 ErrSchoolRequired，得到 %v", err)
	}
	if _, err := svc.Get("u1"); !errors.Is(err, ErrScreenNotOpen) {
		t.Errorf("期望 ErrScreenNotOpen，得到 %v", err)
	}
	if err := svc.Close("u1"); !errors.Is(err, ErrScreenNotOpen) {
		t.Errorf("期望 ErrScreenNotOpen，得到 %v", err)
	}
}
