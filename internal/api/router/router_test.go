package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"teachove/backend/config"
	"teachove/backend/internal/api/handler"
	"teachove/backend/internal/dto"
	"teachove/backend/internal/editor"
	"teachove/backend/internal/service"
	"teachove/backend/pkg/jwt"
)

type emptyUpstream struct{}

func (emptyUpstream) ListTimetables(context.Context, string, string) ([]dto.Timetable, error) {
	return nil, nil
}
func (emptyUpstream) ListTimetablesByClass(context.Context, string, string) ([]dto.Timetable, error) {
	return nil, nil
}
func (emptyUpstream) CreateTimetable(context.Context, string, string, *dto.TimetablePayload) (*dto.Timetable, error) {
	return nil, errors.New("not implemented")
}
func (emptyUpstream) UpdateTimetable(context.Context, string, string, string, *dto.TimetablePayload) (*dto.Timetable, error) {
	return nil, errors.New("not implemented")
}
func (emptyUpstream) DeleteTimetable(context.Context, string, string, string) error { return nil }
func (emptyUpstream) DeleteSubject(context.Context, string, string, string, string) error {
	return nil
}
func (emptyUpstream) ListClasses(context.Context, string, string) ([]dto.Classroom, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth:   config.AuthConfig{JWTSecret: "0123456789abcdef", AccessTokenTTL: time.Hour},
		School: config.SchoolConfig{AcademicYear: "2025-2026", Timezone: "UTC"},
	}
}

func setupConsole(t *testing.T) (http.Handler, *jwt.Manager) {
	t.Helper()
	cfg := testConfig()
	svc, err := service.NewService(cfg, emptyUpstream{}, emptyUpstream{}, editor.NewStore(0), zap.NewNop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	mgr := jwt.NewManager(&cfg.Auth)
	// Redis 不可用时传入 nil
	r, err := Setup(cfg, handler.NewHandler(svc, cfg.School.AcademicYear), mgr, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return r, mgr
}

func request(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetup_Health(t *testing.T) {
	r, _ := setupConsole(t)
	if w := request(r, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSetup_RequiresToken(t *testing.T) {
	r, _ := setupConsole(t)
	if w := request(r, http.MethodGet, "/api/v1/timetable-screen", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestSetup_ScreenIsAdminOnly(t *testing.T) {
	r, mgr := setupConsole(t)
	token, err := mgr.GenerateAccessToken(jwt.Identity{UserID: "t-1", Role: jwt.RoleTeacher, SchoolID: "s1", ClassID: "c7"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if w := request(r, http.MethodPost, "/api/v1/timetable-screen", token); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for teacher, got %d", w.Code)
	}
	// 教师可以查看本班考试安排
	if w := request(r, http.MethodGet, "/api/v1/class-timetables", token); w.Code != http.StatusOK {
		t.Errorf("expected 200 for class view, got %d", w.Code)
	}
}

func TestSetup_AdminMountsScreen(t *testing.T) {
	r, mgr := setupConsole(t)
	token, _ := mgr.GenerateAccessToken(jwt.Identity{UserID: "a-1", Role: jwt.RoleSchoolAdmin, SchoolID: "s1"})

	if w := request(r, http.MethodPost, "/api/v1/timetable-screen", token); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if w := request(r, http.MethodPost, "/api/v1/timetable-screen/create-dialog", token); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
