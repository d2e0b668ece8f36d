package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/hbjs97/pmctl/internal/doctor"
	"github.com/spf13/cobra"
)

func (a *App) newDoctorCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "환경 설정을 진단한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.Context(), cmd, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "출력 형식 (text, json, yaml)")
	return cmd
}

func (a *App) runDoctor(ctx context.Context, cmd *cobra.Command, output string) error {
	if err := validateOutput(output); err != nil {
		return err
	}
	w := out(cmd)

	s, err := a.open()
	if err != nil {
		st := newStyles(w)
		fmt.Fprintf(w, "  [%s] config: %v\n", st.fail.Render("FAIL"), err)
		fmt.Fprintln(w, "      Fix: pmctl config init 실행 또는 설정 파일 확인")
		return nil
	}

	results := doctor.RunAll(ctx, doctor.Input{
		Shell:       s.kind,
		Location:    s.store,
		Credentials: s.creds.All(),
		ConfigPath:  a.CfgPath,
		Remote:      s.client,
		Commander:   a.commander(),
	})
	if done, err := writeStructured(w, output, results); done {
		return err
	}
	printDiagResults(w, results)
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(w io.Writer, results []doctor.DiagResult) {
	st := newStyles(w)
	for _, r := range results {
		fmt.Fprintf(w, "  [%s] %s: %s\n", st.statusIcon(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(w, "      Fix: %s\n", r.Fix)
		}
	}
}

func (s styles) statusIcon(status doctor.Status) string {
	switch status {
	case doctor.StatusOK:
		return s.ok.Render("OK")
	case doctor.StatusWarn:
		return s.warn.Render("!!")
	case doctor.StatusFail:
		return s.fail.Render("FAIL")
	default:
		return "??"
	}
}
