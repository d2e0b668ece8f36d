package cli

import (
	"context"
	"fmt"

	"github.com/hbjs97/pmctl/internal/git"
	"github.com/spf13/cobra"
)

func (a *App) newGitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git",
		Short: "git 저장소와 워크스페이스를 연결한다",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add [path]",
		Short: "저장소에 현재 워크스페이스를 연결한다 (.git/pmctl-workspace)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return a.runGitAdd(cmd.Context(), cmd, path)
		},
	})
	return cmd
}

func (a *App) runGitAdd(ctx context.Context, cmd *cobra.Command, path string) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	if _, err := s.auth.APIKey(); err != nil {
		return fmt.Errorf("cli.git: %w", err)
	}
	workspaceID, err := s.auth.WorkspaceID()
	if err != nil {
		return fmt.Errorf("cli.git: %w", err)
	}

	adapter := git.NewAdapter(a.commander())
	root, err := adapter.RepoRoot(ctx, path)
	if err != nil {
		return err
	}
	gitDir, err := adapter.GitDir(ctx, root)
	if err != nil {
		return err
	}

	name := root
	if remote, err := adapter.GetRemoteURL(ctx, root, "origin"); err == nil {
		if ref, err := git.ParseRepoURL(remote); err == nil {
			name = ref.Display()
		}
	} else {
		s.logger.Debug("origin remote 없음", "repo", root, "error", err)
	}

	if err := git.WriteWorkspaceLink(gitDir, workspaceID); err != nil {
		return err
	}
	w := out(cmd)
	newStyles(w).success(w, "연결 완료: %s → 워크스페이스 %s", name, workspaceID)
	return nil
}
