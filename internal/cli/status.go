package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hbjs97/pmctl/internal/auth"
	"github.com/hbjs97/pmctl/internal/git"
	"github.com/spf13/cobra"
)

// statusView는 인증 상태에 현재 디렉토리의 저장소 연결 정보를 더한 출력이다.
type statusView struct {
	auth.Status       `yaml:",inline"`
	Repo              string `json:"repo,omitempty" yaml:"repo,omitempty"`
	LinkedWorkspaceID string `json:"linked_workspace_id,omitempty" yaml:"linked_workspace_id,omitempty"`
	WorkspaceMismatch bool   `json:"workspace_mismatch,omitempty" yaml:"workspace_mismatch,omitempty"`
}

func (a *App) newStatusCmd() *cobra.Command {
	var output string
	var verify bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "저장된 자격 증명 상태를 표시한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd.Context(), cmd, output, verify)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "출력 형식 (text, json, yaml)")
	cmd.Flags().BoolVar(&verify, "verify", false, "API 키를 원격으로 검증")
	return cmd
}

func (a *App) runStatus(ctx context.Context, cmd *cobra.Command, output string, verify bool) error {
	if err := validateOutput(output); err != nil {
		return err
	}
	s, err := a.open()
	if err != nil {
		return err
	}

	status := s.auth.Status()
	if verify && status.Authenticated {
		user, err := s.auth.Verify(ctx)
		if err != nil {
			return err
		}
		status.User = user
	}

	view := statusView{Status: status}
	view.Repo, view.LinkedWorkspaceID = a.linkedWorkspace(ctx, ".", s.logger)
	view.WorkspaceMismatch = view.LinkedWorkspaceID != "" && view.LinkedWorkspaceID != status.WorkspaceID

	w := out(cmd)
	if done, err := writeStructured(w, output, view); done {
		return err
	}

	st := newStyles(w)
	if !status.Authenticated {
		st.warning(w, "로그인되어 있지 않음")
	} else {
		st.success(w, "로그인됨")
	}
	fmt.Fprintf(w, "  셸:          %s\n", status.Shell)
	if status.ConfigPath != "" {
		fmt.Fprintf(w, "  설정 파일:   %s\n", status.ConfigPath)
	}
	if status.APIKey != "" {
		fmt.Fprintf(w, "  API 키:      %s\n", status.APIKey)
	}
	if status.WorkspaceID != "" {
		fmt.Fprintf(w, "  워크스페이스: %s\n", status.WorkspaceID)
	}
	if status.User != nil {
		fmt.Fprintf(w, "  사용자:      %s (%s)\n", displayName(status.User), status.User.Email)
	}
	if view.LinkedWorkspaceID != "" {
		fmt.Fprintf(w, "  저장소:      %s → %s\n", view.Repo, view.LinkedWorkspaceID)
	}
	if !status.Authenticated {
		st.hint(w, "'pmctl login'으로 로그인하세요")
	}
	if view.WorkspaceMismatch {
		st.warning(w, "저장소에 연결된 워크스페이스가 현재 워크스페이스와 다릅니다")
		st.hint(w, "'pmctl workspace switch %s'로 전환하세요", view.LinkedWorkspaceID)
	}
	return nil
}

// linkedWorkspace는 path가 속한 저장소와 'git add'로 연결된 워크스페이스 ID를 찾는다.
// git이 없거나 저장소 밖이거나 연결이 없으면 빈 값이다.
func (a *App) linkedWorkspace(ctx context.Context, path string, logger *slog.Logger) (string, string) {
	adapter := git.NewAdapter(a.commander())
	if _, err := adapter.Available(); err != nil {
		return "", ""
	}
	root, err := adapter.RepoRoot(ctx, path)
	if err != nil {
		return "", ""
	}
	gitDir, err := adapter.GitDir(ctx, root)
	if err != nil {
		logger.Debug("git 디렉토리 조회 실패", "repo", root, "error", err)
		return "", ""
	}
	id, err := git.ReadWorkspaceLink(gitDir)
	if err != nil {
		logger.Debug("워크스페이스 연결 읽기 실패", "repo", root, "error", err)
		return "", ""
	}
	if id == "" {
		return "", ""
	}
	repo := root
	if remote, err := adapter.GetRemoteURL(ctx, root, "origin"); err == nil {
		if ref, err := git.ParseRepoURL(remote); err == nil {
			repo = ref.Display()
		}
	}
	return repo, id
}
