package git

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/pmctl/internal/cmdexec"
)

// LinkFile은 저장소와 워크스페이스를 연결하는 .git 내부 파일 이름이다.
const LinkFile = "pmctl-workspace"

// ErrNotRepository는 경로가 git 저장소가 아닐 때 반환된다.
var ErrNotRepository = errors.New("git 저장소가 아닙니다")

// RepoRef는 파싱된 리포지토리 참조다.
type RepoRef struct {
	Owner string
	Repo  string
	Host  string
}

// Slug는 owner/repo 형식 문자열이다.
func (r RepoRef) Slug() string {
	return r.Owner + "/" + r.Repo
}

// Display는 호스트를 알면 host/owner/repo, 모르면 Slug다.
func (r RepoRef) Display() string {
	if r.Host == "" {
		return r.Slug()
	}
	return r.Host + "/" + r.Slug()
}

// ParseRepoURL은 SSH/HTTPS/shorthand 형식의 리포 URL을 파싱한다.
func ParseRepoURL(raw string) (RepoRef, error) {
	if raw == "" {
		return RepoRef{}, fmt.Errorf("git.ParseRepoURL: 빈 입력")
	}
	if strings.HasPrefix(raw, "git@") {
		return parseSSH(raw)
	}
	if strings.HasPrefix(raw, "https://") || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "ssh://") {
		return parseURL(raw)
	}
	owner, repo, err := splitOwnerRepo(raw)
	if err != nil {
		return RepoRef{}, err
	}
	return RepoRef{Owner: owner, Repo: repo}, nil
}

func parseSSH(raw string) (RepoRef, error) {
	host, path, ok := strings.Cut(strings.TrimPrefix(raw, "git@"), ":")
	if !ok {
		return RepoRef{}, fmt.Errorf("git.ParseRepoURL: 잘못된 SSH URL: %s", raw)
	}
	owner, repo, err := splitOwnerRepo(strings.TrimSuffix(path, ".git"))
	if err != nil {
		return RepoRef{}, err
	}
	return RepoRef{Owner: owner, Repo: repo, Host: host}, nil
}

func parseURL(raw string) (RepoRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return RepoRef{}, fmt.Errorf("git.ParseRepoURL: %w", err)
	}
	owner, repo, err := splitOwnerRepo(strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git"))
	if err != nil {
		return RepoRef{}, err
	}
	return RepoRef{Owner: owner, Repo: repo, Host: u.Hostname()}, nil
}

func splitOwnerRepo(s string) (string, string, error) {
	owner, repo, ok := strings.Cut(s, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("git.ParseRepoURL: owner/repo 형식 아님: %s", s)
	}
	return owner, repo, nil
}

// Adapter는 git CLI를 Commander를 통해 실행한다.
type Adapter struct {
	cmd cmdexec.Commander
}

// NewAdapter는 새 Git Adapter를 생성한다.
func NewAdapter(cmd cmdexec.Commander) *Adapter {
	return &Adapter{cmd: cmd}
}

// Available은 git 실행 파일 경로를 반환한다.
func (a *Adapter) Available() (string, error) {
	path, err := a.cmd.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("git.Available: %w", err)
	}
	return path, nil
}

// RepoRoot는 path가 속한 저장소의 최상위 디렉토리를 반환한다.
func (a *Adapter) RepoRoot(ctx context.Context, path string) (string, error) {
	out, err := a.cmd.Run(ctx, "git", "-C", path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("git.RepoRoot: %s: %w", path, ErrNotRepository)
	}
	return strings.TrimSpace(string(out)), nil
}

// GitDir은 저장소의 .git 디렉토리 절대 경로다. worktree에서도 올바른 경로를 준다.
func (a *Adapter) GitDir(ctx context.Context, repoDir string) (string, error) {
	out, err := a.cmd.Run(ctx, "git", "-C", repoDir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("git.GitDir: %s: %w", repoDir, ErrNotRepository)
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRemoteURL은 remote URL을 반환한다.
func (a *Adapter) GetRemoteURL(ctx context.Context, repoDir, remoteName string) (string, error) {
	out, err := a.cmd.Run(ctx, "git", "-C", repoDir, "remote", "get-url", remoteName)
	if err != nil {
		return "", fmt.Errorf("git.GetRemoteURL: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// WriteWorkspaceLink는 gitDir/pmctl-workspace에 워크스페이스 ID를 기록한다.
func WriteWorkspaceLink(gitDir, workspaceID string) error {
	path := filepath.Join(gitDir, LinkFile)
	if err := os.WriteFile(path, []byte(workspaceID+"\n"), 0600); err != nil {
		return fmt.Errorf("git.WriteWorkspaceLink: %w", err)
	}
	return nil
}

// ReadWorkspaceLink는 연결된 워크스페이스 ID를 읽는다. 파일이 없으면 ("", nil).
func ReadWorkspaceLink(gitDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(gitDir, LinkFile))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("git.ReadWorkspaceLink: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
