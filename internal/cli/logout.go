package cli

import (
	"fmt"

	"github.com/hbjs97/pmctl/internal/cache"
	"github.com/spf13/cobra"
)

func (a *App) newLogoutCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "저장된 API 키와 워크스페이스를 셸 설정 파일에서 제거한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLogout(cmd, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "확인 없이 삭제")
	return cmd
}

func (a *App) runLogout(cmd *cobra.Command, yes bool) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	w := out(cmd)
	st := newStyles(w)

	creds := s.creds.All()
	if creds.APIKey == "" && creds.WorkspaceID == "" {
		st.hint(w, "삭제할 자격 증명이 없습니다")
		return nil
	}

	if !yes {
		ok, err := a.prompter().Confirm("저장된 Postman 자격 증명을 삭제할까요?")
		if err != nil {
			return fmt.Errorf("cli.logout: %w", err)
		}
		if !ok {
			st.hint(w, "취소했습니다")
			return nil
		}
	}

	cleared, err := s.auth.Logout()
	if err != nil {
		return err
	}
	if creds.APIKey != "" {
		a.dropWorkspaceCache(s, creds.APIKey)
	}
	if !cleared {
		st.hint(w, "삭제할 자격 증명이 없습니다")
		return nil
	}
	path, _ := s.store.Path() // Logout이 파일을 변경했으면 경로는 유효함
	st.success(w, "로그아웃 완료 (%s)", path)
	return nil
}

func (a *App) dropWorkspaceCache(s *session, apiKey string) {
	path := a.cachePath()
	if path == "" {
		return
	}
	c, err := cache.Load(path)
	if err != nil {
		return
	}
	c.Invalidate(apiKey)
	if err := c.Save(path); err != nil {
		s.logger.Debug("캐시 저장 실패", "error", err)
	}
}
