package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hbjs97/pmctl/internal/postman"
)

// Cache는 API 키별 워크스페이스 목록 캐시다.
type Cache struct {
	Version int              `json:"version"`
	Entries map[string]Entry `json:"entries"`
}

// Entry는 하나의 캐시 항목이다.
type Entry struct {
	Workspaces []postman.Workspace `json:"workspaces"`
	FetchedAt  string              `json:"fetched_at"`
	BaseURL    string              `json:"base_url"`
}

// New는 빈 캐시를 생성한다.
func New() *Cache {
	return &Cache{Version: 1, Entries: make(map[string]Entry)}
}

// DefaultPath는 ~/.cache/pmctl/workspaces.json이다.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cache.DefaultPath: %w", err)
	}
	return filepath.Join(dir, "pmctl", "workspaces.json"), nil
}

// Key는 API 키를 그대로 저장하지 않도록 해시한 캐시 키다.
func Key(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:8])
}

// Load는 캐시 파일을 파싱한다. 파일 없음/파싱 실패 시 빈 캐시 반환 (graceful).
func Load(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache.Load: %w", err)
	}
	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return New(), nil
	}
	if c.Entries == nil {
		c.Entries = make(map[string]Entry)
	}
	return &c, nil
}

// Lookup은 API 키로 캐시를 조회한다. TTL 안이고 baseURL이 같아야 hit.
// ttl이 0이면 항상 miss다.
func (c *Cache) Lookup(apiKey, baseURL string, ttl time.Duration) ([]postman.Workspace, bool) {
	e, ok := c.Entries[Key(apiKey)]
	if !ok || e.BaseURL != baseURL {
		return nil, false
	}
	fetched, err := time.Parse(time.RFC3339, e.FetchedAt)
	if err != nil {
		return nil, false
	}
	if time.Since(fetched) >= ttl {
		return nil, false
	}
	return e.Workspaces, true
}

// Set은 워크스페이스 목록을 현재 시각으로 저장한다.
func (c *Cache) Set(apiKey, baseURL string, workspaces []postman.Workspace) {
	c.Entries[Key(apiKey)] = Entry{
		Workspaces: workspaces,
		FetchedAt:  time.Now().UTC().Format(time.RFC3339),
		BaseURL:    baseURL,
	}
}

// Invalidate는 API 키의 항목을 제거한다.
func (c *Cache) Invalidate(apiKey string) {
	delete(c.Entries, Key(apiKey))
}

// Save는 캐시를 JSON 파일로 저장한다 (0600 권한).
func (c *Cache) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("cache.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cache.Save: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("cache.Save: %w", err)
	}
	return nil
}
