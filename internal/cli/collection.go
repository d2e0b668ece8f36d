package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *App) newCollectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"col"},
		Short:   "Postman 컬렉션을 조회한다",
	}

	var output, workspaceID string
	ls := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "워크스페이스의 컬렉션 목록을 표시한다",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCollectionList(cmd.Context(), cmd, workspaceID, output)
		},
	}
	ls.Flags().StringVarP(&workspaceID, "workspace", "w", "", "워크스페이스 ID (기본: 현재 워크스페이스)")
	ls.Flags().StringVarP(&output, "output", "o", outputText, "출력 형식 (text, json, yaml)")

	cmd.AddCommand(ls)
	return cmd
}

func (a *App) runCollectionList(ctx context.Context, cmd *cobra.Command, workspaceID, output string) error {
	if err := validateOutput(output); err != nil {
		return err
	}
	s, err := a.open()
	if err != nil {
		return err
	}
	key, err := s.auth.APIKey()
	if err != nil {
		return fmt.Errorf("cli.collection: %w", err)
	}
	if workspaceID == "" {
		workspaceID, _ = s.creds.WorkspaceID() // 비어 있으면 전체 컬렉션
	}

	collections, err := s.client.Collections(ctx, key, workspaceID)
	if err != nil {
		return fmt.Errorf("cli.collection: %w", err)
	}

	w := out(cmd)
	if done, err := writeStructured(w, output, collections); done {
		return err
	}
	if len(collections) == 0 {
		newStyles(w).hint(w, "컬렉션이 없습니다")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UID\tNAME")
	for _, c := range collections {
		fmt.Fprintf(tw, "%s\t%s\n", c.UID, c.Name)
	}
	return tw.Flush()
}
