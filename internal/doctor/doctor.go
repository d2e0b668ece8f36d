package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/pmctl/internal/auth"
	"github.com/hbjs97/pmctl/internal/cmdexec"
	"github.com/hbjs97/pmctl/internal/config"
	"github.com/hbjs97/pmctl/internal/credential"
	"github.com/hbjs97/pmctl/internal/git"
	"github.com/hbjs97/pmctl/internal/shell"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string `json:"name" yaml:"name"`
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
	Fix     string `json:"fix,omitempty" yaml:"fix,omitempty"`
}

// Input은 RunAll이 진단할 대상이다.
type Input struct {
	Shell       shell.Kind
	Location    auth.Location
	Credentials credential.Credentials
	ConfigPath  string
	Remote      auth.Remote
	Commander   cmdexec.Commander
}

// CheckShell은 감지된 셸이 자격 증명 저장을 지원하는지 확인한다.
func CheckShell(kind shell.Kind) DiagResult {
	switch {
	case !shell.SupportsPersistence(kind):
		return DiagResult{
			Name:    "shell",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 셸은 설정 파일 저장을 지원하지 않음", kind),
			Fix:     "PowerShell을 사용하거나 config.toml에 shell을 지정",
		}
	case kind == shell.Unknown:
		return DiagResult{
			Name:    "shell",
			Status:  StatusWarn,
			Message: "셸을 인식하지 못함, ~/.profile에 기록",
			Fix:     "config.toml에 shell = \"bash\" 등으로 지정",
		}
	}
	return DiagResult{Name: "shell", Status: StatusOK, Message: fmt.Sprintf("%s 감지됨", kind)}
}

// CheckConfigFile은 셸 설정 파일이 쓰기 가능한지 확인한다. 파일을 변경하지 않는다.
func CheckConfigFile(loc auth.Location) DiagResult {
	path, err := loc.Path()
	if err != nil {
		return DiagResult{Name: "shell_config", Status: StatusFail, Message: err.Error()}
	}
	if f, err := os.OpenFile(path, os.O_WRONLY, 0); err == nil {
		f.Close()
		return DiagResult{Name: "shell_config", Status: StatusOK, Message: path}
	} else if !errors.Is(err, os.ErrNotExist) {
		return DiagResult{
			Name:    "shell_config",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 쓰기 불가: %v", path, err),
			Fix:     fmt.Sprintf("chmod u+w %s", path),
		}
	}
	if !dirWritable(filepath.Dir(path)) {
		return DiagResult{
			Name:    "shell_config",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 없음, 상위 디렉토리에 쓸 수 없을 수 있음", path),
		}
	}
	return DiagResult{Name: "shell_config", Status: StatusOK, Message: fmt.Sprintf("%s (login 시 생성)", path)}
}

// dirWritable은 dir 또는 가장 가까운 존재하는 상위 디렉토리에 임시 파일을 만들 수 있는지 본다.
func dirWritable(dir string) bool {
	for {
		if _, err := os.Stat(dir); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
	f, err := os.CreateTemp(dir, ".pmctl-doctor-*")
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(f.Name())
	return true
}

// CheckCredentials는 저장된 값의 형식을 확인한다.
func CheckCredentials(creds credential.Credentials) []DiagResult {
	var results []DiagResult
	switch {
	case creds.APIKey == "":
		results = append(results, DiagResult{
			Name: "api_key", Status: StatusWarn, Message: "API 키 없음", Fix: "pmctl login",
		})
	case !credential.ValidAPIKey(creds.APIKey):
		results = append(results, DiagResult{
			Name:    "api_key",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 형식이 올바르지 않음", credential.APIKeyVar),
			Fix:     "pmctl login으로 다시 저장",
		})
	default:
		results = append(results, DiagResult{Name: "api_key", Status: StatusOK, Message: auth.MaskAPIKey(creds.APIKey)})
	}

	switch {
	case creds.WorkspaceID == "":
		results = append(results, DiagResult{
			Name: "workspace", Status: StatusWarn, Message: "워크스페이스 미선택", Fix: "pmctl workspace switch",
		})
	case !credential.ValidWorkspaceID(creds.WorkspaceID):
		results = append(results, DiagResult{
			Name:    "workspace",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 형식이 올바르지 않음", credential.WorkspaceVar),
			Fix:     "pmctl workspace switch",
		})
	default:
		results = append(results, DiagResult{Name: "workspace", Status: StatusOK, Message: creds.WorkspaceID})
	}
	return results
}

// CheckConfigPermissions는 pmctl config.toml 권한을 확인한다. 파일이 없으면 기본값 사용.
func CheckConfigPermissions(path string) DiagResult {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DiagResult{Name: "config", Status: StatusOK, Message: "config.toml 없음, 기본값 사용"}
	}
	if err := config.ValidateFilePermissions(path); err != nil {
		return DiagResult{
			Name:    "config",
			Status:  StatusWarn,
			Message: err.Error(),
			Fix:     fmt.Sprintf("chmod 600 %s", path),
		}
	}
	return DiagResult{Name: "config", Status: StatusOK, Message: path}
}

// CheckAPI는 저장된 키로 원격 서비스에 접근 가능한지 확인한다.
func CheckAPI(ctx context.Context, remote auth.Remote, apiKey string) DiagResult {
	if !credential.ValidAPIKey(apiKey) {
		return DiagResult{Name: "api", Status: StatusWarn, Message: "유효한 API 키가 없어 건너뜀"}
	}
	user, err := remote.Me(ctx, apiKey)
	if err != nil {
		return DiagResult{
			Name:    "api",
			Status:  StatusFail,
			Message: fmt.Sprintf("API 호출 실패: %v", err),
			Fix:     "네트워크 또는 api_base_url 확인, 필요하면 pmctl login",
		}
	}
	return DiagResult{Name: "api", Status: StatusOK, Message: fmt.Sprintf("%s 로 인증됨", user.Username)}
}

// CheckGit은 git 바이너리 존재 여부를 확인한다. git add 명령에만 필요하다.
func CheckGit(ctx context.Context, cmd cmdexec.Commander) DiagResult {
	missing := DiagResult{
		Name:    "git",
		Status:  StatusWarn,
		Message: "git 없음 (pmctl git add 사용 불가)",
		Fix:     "설치: https://git-scm.com/downloads",
	}
	path, err := git.NewAdapter(cmd).Available()
	if err != nil {
		return missing
	}
	out, err := cmd.Run(ctx, "git", "--version")
	if err != nil {
		missing.Message = fmt.Sprintf("%s 실행 실패: %v", path, err)
		return missing
	}
	return DiagResult{Name: "git", Status: StatusOK, Message: strings.TrimSpace(string(out))}
}

// RunAll은 모든 진단을 실행한다.
func RunAll(ctx context.Context, in Input) []DiagResult {
	results := []DiagResult{CheckShell(in.Shell)}
	if shell.SupportsPersistence(in.Shell) && in.Location != nil {
		results = append(results, CheckConfigFile(in.Location))
	}
	results = append(results, CheckCredentials(in.Credentials)...)
	results = append(results, CheckConfigPermissions(in.ConfigPath))
	if in.Remote != nil {
		results = append(results, CheckAPI(ctx, in.Remote, in.Credentials.APIKey))
	}
	if in.Commander != nil {
		results = append(results, CheckGit(ctx, in.Commander))
	}
	return results
}

// HasFailure는 결과 중 FAIL이 있는지 확인한다.
func HasFailure(results []DiagResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
