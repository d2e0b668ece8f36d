package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hbjs97/pmctl/internal/cmdexec"
	"github.com/hbjs97/pmctl/internal/logging"
	"github.com/hbjs97/pmctl/internal/prompt"
	"github.com/hbjs97/pmctl/internal/rcfile"
	"github.com/hbjs97/pmctl/internal/shell"
	"github.com/spf13/cobra"
)

// App은 CLI 명령이 공유하는 의존성이다. 테스트에서는 필드를 직접 주입한다.
type App struct {
	Commander cmdexec.Commander
	Prompter  prompt.Prompter
	Detector  *shell.Detector
	Logger    *slog.Logger

	CfgPath   string
	CachePath string
	Verbose   bool

	// RCOptions는 셸 설정 파일 Store 생성 시 추가로 전달된다.
	RCOptions []rcfile.Option
}

// NewApp은 실제 환경을 사용하는 App을 생성한다.
func NewApp() *App {
	return &App{
		Commander: &cmdexec.RealCommander{},
		Prompter:  prompt.NewHuhPrompter(),
		Detector:  shell.NewDetector(),
	}
}

// NewRootCmd는 실제 환경으로 pmctl 루트 명령을 생성한다.
func NewRootCmd() *cobra.Command {
	return NewApp().NewRootCmd()
}

// NewRootCmd는 pmctl CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pmctl",
		Short:         "Postman API 자격 증명 관리 CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.Logger == nil {
				a.Logger = logging.New(a.Verbose)
			}
		},
	}

	defaultCfg := a.CfgPath
	if defaultCfg == "" {
		defaultCfg = filepath.Join(homeDir(), ".config", "pmctl", "config.toml")
	}
	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", defaultCfg, "설정 파일 경로")
	cmd.PersistentFlags().BoolVarP(&a.Verbose, "verbose", "v", false, "상세 로그 출력")

	cmd.AddCommand(
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newStatusCmd(),
		a.newWorkspaceCmd(),
		a.newCollectionCmd(),
		a.newGitCmd(),
		a.newDoctorCmd(),
		a.newConfigCmd(),
	)
	return cmd
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "경고: 홈 디렉토리 확인 실패: %v\n", err)
		return "."
	}
	return home
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return logging.Discard()
	}
	return a.Logger
}

func (a *App) prompter() prompt.Prompter {
	if a.Prompter == nil {
		a.Prompter = prompt.NewHuhPrompter()
	}
	return a.Prompter
}

func (a *App) commander() cmdexec.Commander {
	if a.Commander == nil {
		a.Commander = &cmdexec.RealCommander{}
	}
	return a.Commander
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
