package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"teachove/backend/config"
	"teachove/backend/internal/dto"
	pkgerrors "teachove/backend/pkg/errors"
)

const (
	maxResponseSize = 4 << 20 // 4MB
	apiKeyHeader    = "X-API-Key"
)

// Client 基于 HTTP 的远端客户端，同时实现 TimetableRepository 与 RosterProvider
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

var (
	_ TimetableRepository = (*Client)(nil)
	_ RosterProvider      = (*Client)(nil)
)

// NewClient 创建远端客户端；超时由 http.Client 负责
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// ════════════════════════════════════════════════════════════
// 时间表
// ════════════════════════════════════════════════════════════

func (c *Client) ListTimetables(ctx context.Context, schoolID, academicYear string) ([]dto.Timetable, error) {
	raw, err := c.do(ctx, http.MethodGet, timetablesPath(schoolID), yearQuery(academicYear), nil)
	if err != nil {
		return nil, err
	}
	return decodeTimetableList(raw)
}

func (c *Client) ListTimetablesByClass(ctx context.Context, schoolID, classID string) ([]dto.Timetable, error) {
	path := fmt.Sprintf("/schools/%s/classes/%s/exam-timetables", url.PathEscape(schoolID), url.PathEscape(classID))
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeTimetableList(raw)
}

func (c *Client) CreateTimetable(ctx context.Context, schoolID, academicYear string, payload *dto.TimetablePayload) (*dto.Timetable, error) {
	raw, err := c.do(ctx, http.MethodPost, timetablesPath(schoolID), yearQuery(academicYear), payload)
	if err != nil {
		return nil, err
	}
	return decodeTimetable(raw)
}

func (c *Client) UpdateTimetable(ctx context.Context, schoolID, academicYear, timetableID string, payload *dto.TimetablePayload) (*dto.Timetable, error) {
	path := timetablesPath(schoolID) + "/" + url.PathEscape(timetableID)
	raw, err := c.do(ctx, http.MethodPut, path, yearQuery(academicYear), payload)
	if err != nil {
		return nil, err
	}
	return decodeTimetable(raw)
}

func (c *Client) DeleteTimetable(ctx context.Context, schoolID, academicYear, timetableID string) error {
	path := timetablesPath(schoolID) + "/" + url.PathEscape(timetableID)
	_, err := c.do(ctx, http.MethodDelete, path, yearQuery(academicYear), nil)
	return err
}

func (c *Client) DeleteSubject(ctx context.Context, schoolID, academicYear, timetableID, subjectID string) error {
	path := fmt.Sprintf("%s/%s/subjects/%s", timetablesPath(schoolID), url.PathEscape(timetableID), url.PathEscape(subjectID))
	_, err := c.do(ctx, http.MethodDelete, path, yearQuery(academicYear), nil)
	return err
}

// ════════════════════════════════════════════════════════════
// 班级名册
// ════════════════════════════════════════════════════════════

func (c *Client) ListClasses(ctx context.Context, schoolID, academicYear string) ([]dto.Classroom, error) {
	path := fmt.Sprintf("/schools/%s/classes", url.PathEscape(schoolID))
	raw, err := c.do(ctx, http.MethodGet, path, yearQuery(academicYear), nil)
	if err != nil {
		return nil, err
	}
	return decodeClassroomList(raw)
}

// ── 传输 ──

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: 编码请求体失败: %v", pkgerrors.ErrOperationFailed, err)
		}
		reader = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: 构造请求失败: %v", pkgerrors.ErrOperationFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", pkgerrors.ErrOperationFailed, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: 读取响应失败: %v", pkgerrors.ErrOperationFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("远端返回非成功状态",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: %s %s: HTTP %d", pkgerrors.ErrOperationFailed, method, path, resp.StatusCode)
	}

	return raw, nil
}

func timetablesPath(schoolID string) string {
	return "/schools/" + url.PathEscape(schoolID) + "/exam-timetables"
}

func yearQuery(academicYear string) url.Values {
	if academicYear == "" {
		return nil
	}
	return url.Values{"academic_year": []string{academicYear}}
}
