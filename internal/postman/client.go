// Package postman is a minimal client for the Postman REST API: it resolves
// the user behind an API key and lists workspaces and collections.
package postman

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hbjs97/pmctl/internal/logging"
)

// DefaultBaseURL은 Postman API 기본 주소다.
const DefaultBaseURL = "https://api.getpostman.com"

// ErrUnauthorized는 API 키가 거부되었을 때(401/403) 반환된다.
var ErrUnauthorized = errors.New("API 키가 거부되었습니다")

// APIError는 2xx가 아닌 응답이다.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("postman API 오류: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("postman API 오류: HTTP %d: %s", e.StatusCode, e.Message)
}

// User는 API 키 소유자 정보다.
type User struct {
	ID       int64  `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	FullName string `json:"fullName" yaml:"full_name"`
	Email    string `json:"email" yaml:"email"`
}

// Workspace는 워크스페이스 요약이다.
type Workspace struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Collection은 컬렉션 요약이다.
type Collection struct {
	ID   string `json:"id" yaml:"id"`
	UID  string `json:"uid" yaml:"uid"`
	Name string `json:"name" yaml:"name"`
}

// Client는 Postman REST API 클라이언트다.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option은 Client 생성 옵션이다.
type Option func(*Client)

// WithHTTPClient는 사용할 http.Client를 지정한다.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger는 logger를 지정한다.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient는 새 Client를 생성한다. baseURL이 비어있으면 DefaultBaseURL을 사용한다.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Me는 API 키 소유자 정보를 조회한다. 키 검증에 사용한다.
func (c *Client) Me(ctx context.Context, apiKey string) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, apiKey, "/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("postman.Me: %w", err)
	}
	return &resp.User, nil
}

// Validate는 API 키가 원격에서 유효한지 반환한다.
// 네트워크 오류도 유효하지 않은 것으로 취급한다.
func (c *Client) Validate(ctx context.Context, apiKey string) bool {
	_, err := c.Me(ctx, apiKey)
	return err == nil
}

// UserInfo는 사용자 정보를 반환한다. 실패하면 nil이다.
func (c *Client) UserInfo(ctx context.Context, apiKey string) *User {
	u, err := c.Me(ctx, apiKey)
	if err != nil {
		return nil
	}
	return u
}

// Workspaces는 접근 가능한 워크스페이스 목록을 조회한다.
func (c *Client) Workspaces(ctx context.Context, apiKey string) ([]Workspace, error) {
	var resp struct {
		Workspaces []Workspace `json:"workspaces"`
	}
	if err := c.get(ctx, apiKey, "/workspaces", nil, &resp); err != nil {
		return nil, fmt.Errorf("postman.Workspaces: %w", err)
	}
	return resp.Workspaces, nil
}

// Collections는 컬렉션 목록을 조회한다. workspaceID가 비어있으면 전체를 조회한다.
func (c *Client) Collections(ctx context.Context, apiKey, workspaceID string) ([]Collection, error) {
	query := url.Values{}
	if workspaceID != "" {
		query.Set("workspace", workspaceID)
	}
	var resp struct {
		Collections []Collection `json:"collections"`
	}
	if err := c.get(ctx, apiKey, "/collections", query, &resp); err != nil {
		return nil, fmt.Errorf("postman.Collections: %w", err)
	}
	return resp.Collections, nil
}

func (c *Client) get(ctx context.Context, apiKey, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", apiKey)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("postman 요청 실패", "path", path, "error", err)
		return err
	}
	defer resp.Body.Close()
	c.logger.Debug("postman 요청", "path", path, "status", resp.StatusCode, "elapsed", time.Since(started))

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("JSON 파싱 실패: %w", err)
	}
	return nil
}

// errorMessage는 {"error":{"name","message"}} 형태의 오류 본문에서 메시지를 꺼낸다.
func errorMessage(body []byte) string {
	var resp struct {
		Error struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Error.Message
}
