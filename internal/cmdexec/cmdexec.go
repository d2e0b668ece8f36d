// Package cmdexec abstracts running external commands.
// Production code depends on Commander; tests inject testutil.FakeCommander.
package cmdexec

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Commander는 외부 명령 실행 인터페이스다.
type Commander interface {
	// Run은 명령을 실행하고 stdout+stderr를 합친 출력을 반환한다.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// RunIn은 dir을 작업 디렉토리로 하여 명령을 실행한다. dir이 비어 있으면 현재 디렉토리다.
	RunIn(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

	// LookPath는 PATH에서 실행 파일을 찾는다.
	LookPath(name string) (string, error)
}

// RealCommander는 os/exec로 실제 명령을 실행한다.
type RealCommander struct{}

var _ Commander = (*RealCommander)(nil)

func (c *RealCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return c.RunIn(ctx, "", name, args...)
}

func (c *RealCommander) RunIn(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

func (c *RealCommander) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
