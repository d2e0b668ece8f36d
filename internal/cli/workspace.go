package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/hbjs97/pmctl/internal/auth"
	"github.com/hbjs97/pmctl/internal/cache"
	"github.com/hbjs97/pmctl/internal/postman"
	"github.com/spf13/cobra"
)

func (a *App) newWorkspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Postman 워크스페이스를 조회하고 선택한다",
	}
	cmd.AddCommand(a.newWorkspaceListCmd(), a.newWorkspaceSwitchCmd())
	return cmd
}

func (a *App) newWorkspaceListCmd() *cobra.Command {
	var output string
	var refresh bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "접근 가능한 워크스페이스 목록을 표시한다",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWorkspaceList(cmd.Context(), cmd, output, refresh)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "출력 형식 (text, json, yaml)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "캐시를 무시하고 다시 조회")
	return cmd
}

func (a *App) newWorkspaceSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch [ID]",
		Short: "현재 워크스페이스를 변경한다",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return a.runWorkspaceSwitch(cmd.Context(), cmd, id)
		},
	}
}

// workspaces는 캐시가 유효하면 캐시를, 아니면 원격 목록을 반환하고 캐시를 갱신한다.
func (a *App) workspaces(ctx context.Context, s *session, refresh bool) ([]postman.Workspace, error) {
	key, err := s.auth.APIKey()
	if err != nil {
		return nil, fmt.Errorf("cli.workspaces: %w", err)
	}
	if path := a.cachePath(); path != "" && !refresh {
		if c, err := cache.Load(path); err == nil {
			if ws, ok := c.Lookup(key, s.baseURL(), s.cfg.CacheTTL()); ok {
				s.logger.Debug("워크스페이스 캐시 사용", "count", len(ws))
				return ws, nil
			}
		}
	}
	ws, err := s.auth.Workspaces(ctx)
	if err != nil {
		return nil, err
	}
	a.storeWorkspaceCache(s, key, ws)
	return ws, nil
}

func (a *App) runWorkspaceList(ctx context.Context, cmd *cobra.Command, output string, refresh bool) error {
	if err := validateOutput(output); err != nil {
		return err
	}
	s, err := a.open()
	if err != nil {
		return err
	}
	list, err := a.workspaces(ctx, s, refresh)
	if err != nil {
		return err
	}

	w := out(cmd)
	if done, err := writeStructured(w, output, list); done {
		return err
	}
	if len(list) == 0 {
		newStyles(w).hint(w, "워크스페이스가 없습니다")
		return nil
	}

	current, _ := s.creds.WorkspaceID()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tTYPE")
	for _, ws := range list {
		mark := ""
		if ws.ID == current {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, ws.ID, ws.Name, ws.Type)
	}
	return tw.Flush()
}

func (a *App) runWorkspaceSwitch(ctx context.Context, cmd *cobra.Command, id string) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	list, err := a.workspaces(ctx, s, false)
	if err != nil {
		return err
	}

	if id == "" {
		if len(list) == 0 {
			return fmt.Errorf("cli.workspace: 선택할 워크스페이스가 없습니다")
		}
		current, _ := s.creds.WorkspaceID()
		if id, err = a.prompter().SelectWorkspace(list, current, false); err != nil {
			return fmt.Errorf("cli.workspace: %w", err)
		}
	}

	ws, err := s.auth.SelectWorkspace(ctx, id, list)
	if errors.Is(err, auth.ErrWorkspaceNotFound) {
		// 캐시 이후에 생긴 워크스페이스일 수 있으므로 원격 목록으로 한 번 더 찾는다.
		s.logger.Debug("캐시에 없는 워크스페이스, 원격 목록으로 재시도", "id", id)
		if list, err = a.workspaces(ctx, s, true); err != nil {
			return err
		}
		ws, err = s.auth.SelectWorkspace(ctx, id, list)
	}
	if err != nil {
		return err
	}
	w := out(cmd)
	newStyles(w).success(w, "워크스페이스 변경: %s (%s)", ws.Name, ws.ID)
	return nil
}
