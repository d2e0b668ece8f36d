package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hbjs97/pmctl/internal/shell"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("설정 파일 오류")

// EnvAPIURL은 API 주소를 덮어쓰는 환경변수다.
const EnvAPIURL = "PMCTL_API_URL"

const (
	defaultTimeoutSeconds  = 15
	defaultCacheTTLMinutes = 10
)

// Template은 pmctl config init이 생성하는 기본 config.toml 내용이다.
const Template = `# pmctl configuration file

version = 1
# api_base_url = "https://api.getpostman.com"
# timeout_seconds = 15
# cache_ttl_minutes = 10

# 셸 자동 감지를 덮어쓴다 (bash, zsh, fish, powershell)
# shell = "zsh"
`

// Config는 pmctl 설정 파일의 최상위 구조체다.
type Config struct {
	Version         int    `toml:"version"`
	APIBaseURL      string `toml:"api_base_url"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	Shell           string `toml:"shell,omitempty"`
	CacheTTLMinutes int    `toml:"cache_ttl_minutes"`
}

// Default는 기본값으로 채운 Config를 반환한다.
func Default() *Config {
	cfg := &Config{Version: 1}
	cfg.applyDefaults()
	return cfg
}

// Load는 config.toml을 파싱하여 Config를 반환한다.
// 파일이 없으면 기본값을 사용한다. PMCTL_API_URL이 설정되어 있으면 API 주소를 덮어쓴다.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
		}
		cfg = Config{Version: 1}
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save는 Config를 TOML로 저장한다 (0600 권한).
func Save(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// WriteTemplate은 주석이 포함된 기본 설정 파일을 생성한다. 이미 있으면 오류다.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config.WriteTemplate: 설정 파일이 이미 존재합니다: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config.WriteTemplate: 디렉토리 생성 실패: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0600); err != nil {
		return fmt.Errorf("config.WriteTemplate: 설정 파일 생성 실패: %w", err)
	}
	return nil
}

// Timeout은 API 요청 타임아웃이다.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL은 워크스페이스 목록 캐시 유효 기간이다.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// ShellOverride는 설정된 셸을 반환한다. 설정되지 않았으면 false다.
func (c *Config) ShellOverride() (shell.Kind, bool) {
	if c.Shell == "" {
		return "", false
	}
	return shell.ParseKind(c.Shell), true
}

// ValidateFilePermissions는 파일 권한이 0600보다 넓으면 에러를 반환한다.
func ValidateFilePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("config.ValidateFilePermissions: %w", err)
	}
	perm := info.Mode().Perm()
	if perm&0077 != 0 {
		return fmt.Errorf("config.ValidateFilePermissions: %s 권한이 %o (0600 필요)", path, perm)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.CacheTTLMinutes == 0 {
		c.CacheTTLMinutes = defaultCacheTTLMinutes
	}
}

func (c *Config) validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config.Load: %w: timeout_seconds는 0 이상이어야 합니다", ErrConfig)
	}
	if c.CacheTTLMinutes < 0 {
		return fmt.Errorf("config.Load: %w: cache_ttl_minutes는 0 이상이어야 합니다", ErrConfig)
	}
	if c.APIBaseURL != "" {
		u, err := url.Parse(c.APIBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config.Load: %w: api_base_url이 올바른 URL이 아닙니다: %s", ErrConfig, c.APIBaseURL)
		}
	}
	if kind, ok := c.ShellOverride(); ok && kind == shell.Unknown {
		return fmt.Errorf("config.Load: %w: 지원하지 않는 shell: %s", ErrConfig, c.Shell)
	}
	return nil
}
