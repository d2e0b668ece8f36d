package shell

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Kind는 감지된 셸 종류다.
type Kind string

const (
	Bash       Kind = "bash"
	Zsh        Kind = "zsh"
	Fish       Kind = "fish"
	PowerShell Kind = "powershell"
	// Cmd는 Windows 레거시 명령 셸이다. 영속 설정 파일 규약이 없다.
	Cmd Kind = "cmd"
	// Unknown은 인식하지 못한 셸이다. bash 계열 구문으로 ~/.profile에 기록한다.
	Unknown Kind = "unknown"
)

// Detector는 환경 정보로부터 셸과 설정 파일 경로를 결정한다.
// 모든 입력은 테스트에서 주입할 수 있다.
type Detector struct {
	Home   string
	GOOS   string
	Getenv func(string) string
}

// NewDetector는 현재 프로세스 환경을 사용하는 Detector를 생성한다.
func NewDetector() *Detector {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "." // 홈 디렉토리 조회 실패 시 현재 디렉토리 기준
	}
	return &Detector{Home: home, GOOS: runtime.GOOS, Getenv: os.Getenv}
}

func (d *Detector) getenv(key string) string {
	if d.Getenv == nil {
		return os.Getenv(key)
	}
	return d.Getenv(key)
}

// Detect는 현재 셸을 감지한다. 실패하지 않는다.
// $SHELL이 없으면 OS별 기본값을 사용한다.
func (d *Detector) Detect() Kind {
	if sh := d.getenv("SHELL"); sh != "" {
		return ParseKind(sh)
	}
	switch d.GOOS {
	case "windows":
		if d.getenv("PSModulePath") == "" && d.getenv("ComSpec") != "" {
			return Cmd
		}
		return PowerShell
	case "darwin":
		return Zsh
	default:
		return Bash
	}
}

// ParseKind는 셸 경로 또는 이름을 Kind로 변환한다.
func ParseKind(s string) Kind {
	if i := strings.LastIndexAny(s, `/\`); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".exe")
	switch s {
	case "bash":
		return Bash
	case "zsh":
		return Zsh
	case "fish":
		return Fish
	case "pwsh", "powershell":
		return PowerShell
	case "cmd":
		return Cmd
	default:
		return Unknown
	}
}

// ConfigPaths는 셸별 설정 파일 후보 경로를 우선순위 순으로 반환한다.
// 파일 존재 여부는 확인하지 않는다.
func (d *Detector) ConfigPaths(kind Kind) []string {
	home := d.Home
	switch kind {
	case Bash:
		return []string{
			filepath.Join(home, ".bashrc"),
			filepath.Join(home, ".bash_profile"),
			filepath.Join(home, ".profile"),
		}
	case Zsh:
		return []string{
			filepath.Join(home, ".zshrc"),
			filepath.Join(home, ".zprofile"),
		}
	case Fish:
		return []string{filepath.Join(home, ".config", "fish", "config.fish")}
	case PowerShell:
		if d.GOOS == "windows" {
			return []string{
				filepath.Join(home, "Documents", "PowerShell", "Microsoft.PowerShell_profile.ps1"),
				filepath.Join(home, "Documents", "WindowsPowerShell", "Microsoft.PowerShell_profile.ps1"),
			}
		}
		return []string{filepath.Join(home, ".config", "powershell", "Microsoft.PowerShell_profile.ps1")}
	case Cmd:
		return nil
	default:
		return []string{filepath.Join(home, ".profile")}
	}
}

// SupportsPersistence는 셸에 영속 설정 파일 규약이 있는지 반환한다.
func SupportsPersistence(kind Kind) bool {
	return kind != Cmd
}

// SyntaxFor는 셸이 사용하는 export 구문을 반환한다.
func SyntaxFor(kind Kind) Syntax {
	switch kind {
	case Fish:
		return SyntaxFish
	case PowerShell:
		return SyntaxPowerShell
	default:
		return SyntaxPOSIX
	}
}
