package doctor_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hbjs97/pmctl/internal/credential"
	"github.com/hbjs97/pmctl/internal/doctor"
	"github.com/hbjs97/pmctl/internal/postman"
	"github.com/hbjs97/pmctl/internal/rcfile"
	"github.com/hbjs97/pmctl/internal/shell"
	"github.com/hbjs97/pmctl/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validKey = "PMAK-0123456789abcdef-0123"
	validWS  = "11111111-2222-3333-4444-555555555555"
)

func noEnv(string) (string, bool) { return "", false }

func bashStore(home string) *rcfile.Store {
	d := &shell.Detector{Home: home, GOOS: "linux"}
	return rcfile.New(shell.Bash, d.ConfigPaths(shell.Bash), rcfile.WithLookupEnv(noEnv))
}

func TestCheckShell(t *testing.T) {
	tests := []struct {
		kind shell.Kind
		want doctor.Status
	}{
		{shell.Zsh, doctor.StatusOK},
		{shell.PowerShell, doctor.StatusOK},
		{shell.Unknown, doctor.StatusWarn},
		{shell.Cmd, doctor.StatusFail},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, doctor.CheckShell(tt.kind).Status)
		})
	}
}

func TestCheckConfigFile_ExistingWritable(t *testing.T) {
	home := testutil.TempHome(t, ".bashrc", "alias ll='ls -l'\n")

	result := doctor.CheckConfigFile(bashStore(home))
	assert.Equal(t, doctor.StatusOK, result.Status)
	assert.Equal(t, filepath.Join(home, ".bashrc"), result.Message)
	assert.Equal(t, "alias ll='ls -l'\n", testutil.ReadFile(t, filepath.Join(home, ".bashrc")), "파일을 변경하지 않는다")
}

func TestCheckConfigFile_MissingWillBeCreated(t *testing.T) {
	home := testutil.TempHome(t, "", "")

	result := doctor.CheckConfigFile(bashStore(home))
	assert.Equal(t, doctor.StatusOK, result.Status)
	assert.Contains(t, result.Message, "생성")

	entries, err := os.ReadDir(home)
	require.NoError(t, err)
	assert.Empty(t, entries, "임시 파일을 남기지 않는다")
}

func TestCheckConfigFile_ReadOnly(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	home := testutil.TempHome(t, ".bashrc", "")
	require.NoError(t, os.Chmod(filepath.Join(home, ".bashrc"), 0444))

	result := doctor.CheckConfigFile(bashStore(home))
	assert.Equal(t, doctor.StatusFail, result.Status)
	assert.Contains(t, result.Fix, "chmod")
}

func TestCheckCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds credential.Credentials
		want  []doctor.Status
	}{
		{"empty", credential.Credentials{}, []doctor.Status{doctor.StatusWarn, doctor.StatusWarn}},
		{"valid", credential.Credentials{APIKey: validKey, WorkspaceID: validWS}, []doctor.Status{doctor.StatusOK, doctor.StatusOK}},
		{"malformed", credential.Credentials{APIKey: "abc", WorkspaceID: "not-a-uuid"}, []doctor.Status{doctor.StatusFail, doctor.StatusFail}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := doctor.CheckCredentials(tt.creds)
			require.Len(t, results, 2)
			assert.Equal(t, tt.want, []doctor.Status{results[0].Status, results[1].Status})
		})
	}
}

func TestCheckCredentials_MasksKey(t *testing.T) {
	results := doctor.CheckCredentials(credential.Credentials{APIKey: validKey})
	assert.NotContains(t, results[0].Message, validKey)
}

func TestCheckConfigPermissions(t *testing.T) {
	assert.Equal(t, doctor.StatusOK, doctor.CheckConfigPermissions("/nonexistent/config.toml").Status)

	path := testutil.TempConfigFile(t, "version = 1\n")
	assert.Equal(t, doctor.StatusOK, doctor.CheckConfigPermissions(path).Status)

	require.NoError(t, os.Chmod(path, 0644))
	result := doctor.CheckConfigPermissions(path)
	assert.Equal(t, doctor.StatusWarn, result.Status)
	assert.Contains(t, result.Fix, "chmod 600")
}

func TestCheckAPI(t *testing.T) {
	url := testutil.MockAPIServer(t, testutil.NewFakePostman(validKey))
	client := postman.NewClient(url, 5*time.Second)

	ok := doctor.CheckAPI(context.Background(), client, validKey)
	assert.Equal(t, doctor.StatusOK, ok.Status)
	assert.Contains(t, ok.Message, "tester")

	rejected := doctor.CheckAPI(context.Background(), client, "PMAK-ffffffffffffffff-ffff")
	assert.Equal(t, doctor.StatusFail, rejected.Status)

	skipped := doctor.CheckAPI(context.Background(), client, "")
	assert.Equal(t, doctor.StatusWarn, skipped.Status)
}

func TestCheckGit(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("which git", "/usr/bin/git\n", nil)
	fake.Register("git --version", "git version 2.44.0\n", nil)
	result := doctor.CheckGit(context.Background(), fake)
	assert.Equal(t, doctor.StatusOK, result.Status)
	assert.Equal(t, "git version 2.44.0", result.Message)

	broken := testutil.NewFakeCommander()
	broken.Register("which git", "/usr/bin/git\n", nil)
	broken.Register("git --version", "", fmt.Errorf("exit status 1"))
	result = doctor.CheckGit(context.Background(), broken)
	assert.Equal(t, doctor.StatusWarn, result.Status)
	assert.Contains(t, result.Message, "/usr/bin/git")
}

func TestCheckGit_NotOnPath(t *testing.T) {
	missing := testutil.NewFakeCommander()
	// PATH에 없으면 실행을 시도하지 않는다
	missing.DefaultResponse = &testutil.Response{Output: []byte("git version 2.44.0")}

	result := doctor.CheckGit(context.Background(), missing)
	assert.Equal(t, doctor.StatusWarn, result.Status)
	assert.NotEmpty(t, result.Fix)
	assert.Empty(t, missing.Calls)
}

func TestRunAll(t *testing.T) {
	home := testutil.TempHome(t, ".bashrc", "")
	fake := testutil.NewFakeCommander()
	fake.DefaultResponse = &testutil.Response{Output: []byte("git version 2.44.0")}
	fake.Register("which git", "/usr/bin/git", nil)
	url := testutil.MockAPIServer(t, testutil.NewFakePostman(validKey))

	results := doctor.RunAll(context.Background(), doctor.Input{
		Shell:       shell.Bash,
		Location:    bashStore(home),
		Credentials: credential.Credentials{APIKey: validKey, WorkspaceID: validWS},
		ConfigPath:  filepath.Join(home, ".config", "pmctl", "config.toml"),
		Remote:      postman.NewClient(url, 5*time.Second),
		Commander:   fake,
	})

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
		assert.Equal(t, doctor.StatusOK, r.Status, "%s: %s", r.Name, r.Message)
	}
	assert.Equal(t, []string{"shell", "shell_config", "api_key", "workspace", "config", "api", "git"}, names)
	assert.False(t, doctor.HasFailure(results))
}

func TestRunAll_CmdShellSkipsFileCheck(t *testing.T) {
	results := doctor.RunAll(context.Background(), doctor.Input{Shell: shell.Cmd, ConfigPath: "/nonexistent"})
	assert.True(t, doctor.HasFailure(results))
	for _, r := range results {
		assert.NotEqual(t, "shell_config", r.Name)
	}
}
