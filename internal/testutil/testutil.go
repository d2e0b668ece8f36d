// Package testutil provides shared helpers for pmctl tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// TempGitRepo는 임시 git 저장소를 만들고 경로를 반환한다.
func TempGitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.name", "test-user")
	runGit(t, dir, "config", "user.email", "test@example.com")
	return dir
}

// TempGitRepoWithRemote는 origin 리모트가 설정된 임시 git 저장소를 만든다.
func TempGitRepoWithRemote(t *testing.T, remoteURL string) string {
	t.Helper()

	dir := TempGitRepo(t)
	runGit(t, dir, "remote", "add", "origin", remoteURL)
	return dir
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

// TempConfigFile은 주어진 내용으로 임시 config.toml을 만들고 경로를 반환한다.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()
	return writeTemp(t, "config.toml", content)
}

// TempCacheFile은 주어진 내용으로 임시 cache.json을 만든다.
func TempCacheFile(t *testing.T, content string) string {
	t.Helper()
	return writeTemp(t, "cache.json", content)
}

// TempHome은 임시 홈 디렉토리를 만들고 rel 경로에 content를 쓴다.
// 반환값은 홈 디렉토리다. rel이 비어 있으면 파일을 만들지 않는다.
func TempHome(t *testing.T, rel, content string) string {
	t.Helper()

	home := t.TempDir()
	if rel == "" {
		return home
	}
	path := filepath.Join(home, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("TempHome: mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("TempHome: write failed: %v", err)
	}
	return home
}

// ReadFile은 파일 내용을 문자열로 읽는다. 없으면 빈 문자열이다.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

// WriteWorkspaceLink는 저장소의 .git/pmctl-workspace 파일을 쓴다.
func WriteWorkspaceLink(t *testing.T, repoDir, workspaceID string) {
	t.Helper()

	path := filepath.Join(repoDir, ".git", "pmctl-workspace")
	if err := os.WriteFile(path, []byte(workspaceID+"\n"), 0600); err != nil {
		t.Fatalf("WriteWorkspaceLink: write failed: %v", err)
	}
}

// ReadWorkspaceLink는 저장소의 .git/pmctl-workspace 파일을 읽는다.
func ReadWorkspaceLink(t *testing.T, repoDir string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(repoDir, ".git", "pmctl-workspace"))
	if err != nil {
		t.Fatalf("ReadWorkspaceLink: read failed: %v", err)
	}
	return string(data)
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writeTemp %s: %v", name, err)
	}
	return path
}
