package cli

import (
	"github.com/hbjs97/pmctl/internal/config"
	"github.com/spf13/cobra"
)

func (a *App) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "pmctl 설정 파일을 관리한다",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "기본 설정 파일을 생성한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(a.CfgPath); err != nil {
				return err
			}
			w := out(cmd)
			newStyles(w).success(w, "설정 파일 생성: %s", a.CfgPath)
			return nil
		},
	})
	return cmd
}
