// Package credential is the typed facade over the shell config store for the
// two values pmctl persists: the Postman API key and the current workspace id.
package credential

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hbjs97/pmctl/internal/rcfile"
)

const (
	// APIKeyVar는 API 키를 저장하는 환경변수 이름이다.
	APIKeyVar = "POSTMAN_API_KEY"
	// WorkspaceVar는 현재 워크스페이스 ID를 저장하는 환경변수 이름이다.
	WorkspaceVar = "POSTMAN_WORKSPACE_ID"

	// APIKeyPrefix는 Postman API 키의 고정 접두어다.
	APIKeyPrefix = "PMAK-"
	// MinAPIKeyLength는 접두어를 포함한 최소 키 길이다.
	MinAPIKeyLength = 20
)

var (
	// ErrInvalidAPIKey는 API 키 형식이 잘못되었을 때 반환된다.
	ErrInvalidAPIKey = errors.New("API 키 형식이 올바르지 않습니다 (PMAK-로 시작해야 함)")
	// ErrInvalidWorkspaceID는 워크스페이스 ID가 UUID 형식이 아닐 때 반환된다.
	ErrInvalidWorkspaceID = errors.New("워크스페이스 ID 형식이 올바르지 않습니다 (UUID 필요)")
)

// VarStore는 Credential Store가 사용하는 변수 저장소다.
// 프로덕션에서는 *rcfile.Store를 사용한다.
type VarStore interface {
	Read(name string) (string, bool)
	Write(name, value string, opts rcfile.WriteOptions) error
	Remove(name string) (bool, error)
}

var _ VarStore = (*rcfile.Store)(nil)

// Credentials는 저장된 두 값을 합친 읽기 전용 뷰다. 빈 문자열은 미설정이다.
type Credentials struct {
	APIKey      string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty" yaml:"workspace_id,omitempty"`
}

// Authenticated는 API 키가 저장되어 있는지 반환한다.
func (c Credentials) Authenticated() bool {
	return c.APIKey != ""
}

// ValidAPIKey는 API 키 형식을 확인한다.
func ValidAPIKey(s string) bool {
	return strings.HasPrefix(s, APIKeyPrefix) && len(s) >= MinAPIKeyLength && !strings.ContainsAny(s, " \t\r\n")
}

// ValidWorkspaceID는 워크스페이스 ID가 표준 36자 UUID인지 확인한다.
func ValidWorkspaceID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Store는 API 키와 워크스페이스 ID를 저장한다.
type Store struct {
	vars VarStore
}

// NewStore는 새 Credential Store를 생성한다.
func NewStore(vars VarStore) *Store {
	return &Store{vars: vars}
}

// StoreAPIKey는 형식 검증 후 API 키를 저장한다. 검증 실패 시 파일을 건드리지 않는다.
func (s *Store) StoreAPIKey(key string) error {
	if !ValidAPIKey(key) {
		return fmt.Errorf("credential.StoreAPIKey: %w", ErrInvalidAPIKey)
	}
	if err := s.vars.Write(APIKeyVar, key, rcfile.WriteOptions{Comment: "Postman API key"}); err != nil {
		return fmt.Errorf("credential.StoreAPIKey: %w", err)
	}
	return nil
}

// RestoreAPIKey는 이전에 저장되어 있던 값을 형식 검증 없이 되돌려 쓴다.
// 현재 형식 규칙에 맞지 않는 예전 키도 그대로 복원해야 하기 때문이다.
func (s *Store) RestoreAPIKey(previous string) error {
	if err := s.vars.Write(APIKeyVar, previous, rcfile.WriteOptions{Comment: "Postman API key"}); err != nil {
		return fmt.Errorf("credential.RestoreAPIKey: %w", err)
	}
	return nil
}

// StoreWorkspaceID는 형식 검증 후 워크스페이스 ID를 저장한다.
func (s *Store) StoreWorkspaceID(id string) error {
	if !ValidWorkspaceID(id) {
		return fmt.Errorf("credential.StoreWorkspaceID: %w", ErrInvalidWorkspaceID)
	}
	if err := s.vars.Write(WorkspaceVar, id, rcfile.WriteOptions{Comment: "Postman workspace"}); err != nil {
		return fmt.Errorf("credential.StoreWorkspaceID: %w", err)
	}
	return nil
}

// APIKey는 저장된 API 키를 반환한다.
func (s *Store) APIKey() (string, bool) {
	return s.vars.Read(APIKeyVar)
}

// WorkspaceID는 저장된 워크스페이스 ID를 반환한다.
func (s *Store) WorkspaceID() (string, bool) {
	return s.vars.Read(WorkspaceVar)
}

// RemoveAPIKey는 API 키만 제거한다.
func (s *Store) RemoveAPIKey() (bool, error) {
	removed, err := s.vars.Remove(APIKeyVar)
	if err != nil {
		return false, fmt.Errorf("credential.RemoveAPIKey: %w", err)
	}
	return removed, nil
}

// Clear는 두 값을 모두 제거한다.
// 하나라도 실제로 제거되었으면 true, 둘 다 없었으면 false다.
func (s *Store) Clear() (bool, error) {
	var errs []error
	cleared := false
	for _, name := range []string{APIKeyVar, WorkspaceVar} {
		removed, err := s.vars.Remove(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cleared = cleared || removed
	}
	if err := errors.Join(errs...); err != nil {
		return cleared, fmt.Errorf("credential.Clear: %w", err)
	}
	return cleared, nil
}

// All은 저장된 값을 모두 읽는다. 미설정 값은 빈 문자열이다.
func (s *Store) All() Credentials {
	key, _ := s.APIKey()
	ws, _ := s.WorkspaceID()
	return Credentials{APIKey: key, WorkspaceID: ws}
}
