package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/hbjs97/pmctl/internal/cache"
	"github.com/hbjs97/pmctl/internal/postman"
	"github.com/hbjs97/pmctl/internal/prompt"
	"github.com/hbjs97/pmctl/internal/rcfile"
	"github.com/hbjs97/pmctl/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) newLoginCmd() *cobra.Command {
	var apiKey, workspaceID string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "API 키를 검증하고 셸 설정 파일에 저장한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLogin(cmd.Context(), cmd, apiKey, workspaceID)
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Postman API 키 (없으면 입력 프롬프트)")
	cmd.Flags().StringVar(&workspaceID, "workspace", "", "로그인 후 선택할 워크스페이스 ID")
	return cmd
}

func (a *App) runLogin(ctx context.Context, cmd *cobra.Command, apiKey, workspaceID string) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	if !shell.SupportsPersistence(s.kind) {
		return fmt.Errorf("cli.login: %w: %s", rcfile.ErrUnsupportedShell, s.kind)
	}

	p := a.prompter()
	if apiKey == "" {
		if apiKey, err = p.APIKey(); err != nil {
			return fmt.Errorf("cli.login: %w", err)
		}
	}

	var user *postman.User
	err = p.Spin(ctx, "API 키 검증 중...", func(ctx context.Context) error {
		var authErr error
		user, authErr = s.auth.Authenticate(ctx, apiKey)
		return authErr
	})
	if err != nil {
		return err
	}

	w := out(cmd)
	st := newStyles(w)
	st.success(w, "로그인 성공: %s (%s)", displayName(user), user.Email)
	path, _ := s.store.Path() // Authenticate가 성공했으면 경로는 이미 확인됨
	st.hint(w, "저장 위치: %s", path)

	if err := a.chooseWorkspaceAfterLogin(ctx, s, cmd, apiKey, workspaceID); err != nil {
		return err
	}
	st.hint(w, "새 셸에서 적용됩니다. 현재 셸에 바로 적용하려면: %s", sourceHint(s.kind, path))
	return nil
}

// chooseWorkspaceAfterLogin은 --workspace가 있으면 그 값을, 없으면 선택 프롬프트 결과를 저장한다.
// 목록 조회 실패나 비대화형 환경은 로그인을 실패시키지 않는다.
func (a *App) chooseWorkspaceAfterLogin(ctx context.Context, s *session, cmd *cobra.Command, apiKey, workspaceID string) error {
	w := out(cmd)
	st := newStyles(w)

	if workspaceID != "" {
		ws, err := s.auth.SelectWorkspace(ctx, workspaceID, nil)
		if err != nil {
			return err
		}
		st.success(w, "워크스페이스: %s", ws.Name)
		return nil
	}

	workspaces, err := s.auth.Workspaces(ctx)
	if err != nil {
		s.logger.Warn("워크스페이스 목록 조회 실패", "error", err)
		st.warning(w, "워크스페이스 목록을 가져오지 못했습니다. 나중에 'pmctl workspace switch'를 실행하세요")
		return nil
	}
	a.storeWorkspaceCache(s, apiKey, workspaces)
	if len(workspaces) == 0 {
		return nil
	}

	current, _ := s.creds.WorkspaceID()
	selected, err := a.prompter().SelectWorkspace(workspaces, current, true)
	if errors.Is(err, prompt.ErrNotInteractive) {
		st.hint(w, "워크스페이스 선택: pmctl workspace switch <ID>")
		return nil
	}
	if err != nil {
		return fmt.Errorf("cli.login: %w", err)
	}
	if selected == prompt.SkipWorkspace {
		return nil
	}
	ws, err := s.auth.SelectWorkspace(ctx, selected, workspaces)
	if err != nil {
		return err
	}
	st.success(w, "워크스페이스: %s", ws.Name)
	return nil
}

func (a *App) storeWorkspaceCache(s *session, apiKey string, workspaces []postman.Workspace) {
	path := a.cachePath()
	if path == "" {
		return
	}
	c, err := cache.Load(path)
	if err != nil {
		s.logger.Debug("캐시 로드 실패", "error", err)
		return
	}
	c.Set(apiKey, s.baseURL(), workspaces)
	if err := c.Save(path); err != nil {
		s.logger.Debug("캐시 저장 실패", "error", err) // 캐시 저장 실패는 치명적이지 않음
	}
}

func displayName(u *postman.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func sourceHint(kind shell.Kind, path string) string {
	if kind == shell.PowerShell {
		return ". " + path
	}
	return "source " + path
}
