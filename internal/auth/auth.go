// Package auth coordinates credential storage with remote validation.
// A key that the remote service rejects is never left in the shell config.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hbjs97/pmctl/internal/credential"
	"github.com/hbjs97/pmctl/internal/logging"
	"github.com/hbjs97/pmctl/internal/postman"
	"github.com/hbjs97/pmctl/internal/shell"
)

var (
	// ErrRemoteValidation은 원격 서비스가 API 키를 거부했거나 연결할 수 없을 때 반환된다.
	ErrRemoteValidation = errors.New("API 키 원격 검증 실패")
	// ErrNotAuthenticated는 저장된 API 키가 없을 때 반환된다.
	ErrNotAuthenticated = errors.New("로그인되어 있지 않습니다. 'pmctl login'을 실행하세요")
	// ErrWorkspaceNotFound는 워크스페이스가 계정에 없을 때 반환된다.
	ErrWorkspaceNotFound = errors.New("워크스페이스를 찾을 수 없습니다")
	// ErrNoWorkspace는 현재 워크스페이스가 선택되지 않았을 때 반환된다.
	ErrNoWorkspace = errors.New("워크스페이스가 선택되지 않았습니다. 'pmctl workspace switch'를 실행하세요")
)

// Remote는 원격 검증 서비스다. 프로덕션에서는 *postman.Client를 사용한다.
type Remote interface {
	Me(ctx context.Context, apiKey string) (*postman.User, error)
	Workspaces(ctx context.Context, apiKey string) ([]postman.Workspace, error)
}

// Location은 자격 증명이 저장되는 셸과 파일 위치를 알려준다.
type Location interface {
	Shell() shell.Kind
	Path() (string, error)
}

// Status는 현재 인증 상태다. API 키는 가려진 값이다.
type Status struct {
	Authenticated bool          `json:"authenticated" yaml:"authenticated"`
	APIKey        string        `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	WorkspaceID   string        `json:"workspace_id,omitempty" yaml:"workspace_id,omitempty"`
	Shell         shell.Kind    `json:"shell" yaml:"shell"`
	ConfigPath    string        `json:"config_path,omitempty" yaml:"config_path,omitempty"`
	User          *postman.User `json:"user,omitempty" yaml:"user,omitempty"`
}

// Coordinator는 인증/비인증 상태 전이를 담당한다.
type Coordinator struct {
	creds    *credential.Store
	location Location
	remote   Remote
	logger   *slog.Logger
}

// NewCoordinator는 새 Coordinator를 생성한다. logger가 nil이면 출력하지 않는다.
func NewCoordinator(creds *credential.Store, location Location, remote Remote, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Coordinator{creds: creds, location: location, remote: remote, logger: logger}
}

// Authenticate는 API 키를 저장한 뒤 원격 검증한다.
// 검증에 실패하면 이전 키를 복원하거나(있었던 경우) 새 키를 제거한다.
func (c *Coordinator) Authenticate(ctx context.Context, key string) (*postman.User, error) {
	previous, hadPrevious := c.creds.APIKey()
	if err := c.creds.StoreAPIKey(key); err != nil {
		return nil, fmt.Errorf("auth.Authenticate: %w", err)
	}

	user, err := c.remote.Me(ctx, key)
	if err != nil {
		c.logger.Warn("원격 검증 실패, 저장한 키를 되돌립니다", "error", err)
		if rbErr := c.rollback(previous, hadPrevious && previous != key); rbErr != nil {
			return nil, fmt.Errorf("auth.Authenticate: %w: %w (rollback: %w)", ErrRemoteValidation, err, rbErr)
		}
		return nil, fmt.Errorf("auth.Authenticate: %w: %w", ErrRemoteValidation, err)
	}
	c.logger.Debug("인증 성공", "user", user.Username)
	return user, nil
}

// rollback은 거부된 키가 남지 않게 한다. 복원에 실패하면 키를 지운다.
func (c *Coordinator) rollback(previous string, restore bool) error {
	if restore {
		restoreErr := c.creds.RestoreAPIKey(previous)
		if restoreErr == nil {
			return nil
		}
		c.logger.Warn("이전 키 복원 실패, 키를 제거합니다", "error", restoreErr)
		if _, err := c.creds.RemoveAPIKey(); err != nil {
			return errors.Join(restoreErr, err)
		}
		return restoreErr
	}
	_, err := c.creds.RemoveAPIKey()
	return err
}

// Logout은 저장된 자격 증명을 지운다. 원격 호출은 없다.
// 실제로 지운 값이 있으면 true다. 이미 로그아웃 상태여도 오류가 아니다.
func (c *Coordinator) Logout() (bool, error) {
	cleared, err := c.creds.Clear()
	if err != nil {
		return cleared, fmt.Errorf("auth.Logout: %w", err)
	}
	return cleared, nil
}

// Status는 저장된 값으로 현재 상태를 계산한다.
func (c *Coordinator) Status() Status {
	creds := c.creds.All()
	st := Status{
		Authenticated: creds.Authenticated(),
		WorkspaceID:   creds.WorkspaceID,
	}
	if creds.Authenticated() {
		st.APIKey = MaskAPIKey(creds.APIKey)
	}
	if c.location != nil {
		st.Shell = c.location.Shell()
		if p, err := c.location.Path(); err == nil {
			st.ConfigPath = p
		}
	}
	return st
}

// APIKey는 저장된 API 키를 반환한다. 없으면 ErrNotAuthenticated다.
func (c *Coordinator) APIKey() (string, error) {
	key, ok := c.creds.APIKey()
	if !ok || key == "" {
		return "", ErrNotAuthenticated
	}
	return key, nil
}

// WorkspaceID는 현재 워크스페이스 ID를 반환한다.
func (c *Coordinator) WorkspaceID() (string, error) {
	id, ok := c.creds.WorkspaceID()
	if !ok || id == "" {
		return "", ErrNoWorkspace
	}
	return id, nil
}

// Verify는 저장된 키로 사용자 정보를 조회한다.
func (c *Coordinator) Verify(ctx context.Context) (*postman.User, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, fmt.Errorf("auth.Verify: %w", err)
	}
	user, err := c.remote.Me(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("auth.Verify: %w: %w", ErrRemoteValidation, err)
	}
	return user, nil
}

// Workspaces는 저장된 키로 워크스페이스 목록을 조회한다.
func (c *Coordinator) Workspaces(ctx context.Context) ([]postman.Workspace, error) {
	key, err := c.APIKey()
	if err != nil {
		return nil, fmt.Errorf("auth.Workspaces: %w", err)
	}
	ws, err := c.remote.Workspaces(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("auth.Workspaces: %w", err)
	}
	return ws, nil
}

// SelectWorkspace는 워크스페이스가 계정에 존재하는지 확인한 뒤 현재 워크스페이스로 저장한다.
// known이 비어있지 않으면 원격 조회 대신 그 목록에서 찾는다.
func (c *Coordinator) SelectWorkspace(ctx context.Context, id string, known []postman.Workspace) (*postman.Workspace, error) {
	if _, err := c.APIKey(); err != nil {
		return nil, fmt.Errorf("auth.SelectWorkspace: %w", err)
	}
	if !credential.ValidWorkspaceID(id) {
		return nil, fmt.Errorf("auth.SelectWorkspace: %w", credential.ErrInvalidWorkspaceID)
	}
	workspaces := known
	if len(workspaces) == 0 {
		var err error
		workspaces, err = c.Workspaces(ctx)
		if err != nil {
			return nil, fmt.Errorf("auth.SelectWorkspace: %w", err)
		}
	}
	for i := range workspaces {
		if workspaces[i].ID == id {
			if err := c.creds.StoreWorkspaceID(id); err != nil {
				return nil, fmt.Errorf("auth.SelectWorkspace: %w", err)
			}
			return &workspaces[i], nil
		}
	}
	return nil, fmt.Errorf("auth.SelectWorkspace: %w: %s", ErrWorkspaceNotFound, id)
}
