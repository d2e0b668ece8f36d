// Package prompt abstracts interactive input.
// The huh-based Prompter is used in production and testutil.FakePrompter in tests.
package prompt

import (
	"context"
	"errors"

	"github.com/hbjs97/pmctl/internal/postman"
)

// ErrNotInteractive는 터미널이 아니어서 입력을 받을 수 없을 때 반환된다.
var ErrNotInteractive = errors.New("대화형 터미널이 아닙니다")

// SkipWorkspace는 워크스페이스 선택을 건너뛸 때 SelectWorkspace가 반환하는 값이다.
const SkipWorkspace = ""

// Prompter는 대화형 입력 인터페이스다.
type Prompter interface {
	// APIKey는 API 키를 마스킹된 입력으로 받는다.
	APIKey() (string, error)

	// SelectWorkspace는 워크스페이스 목록에서 하나를 고른다.
	// allowSkip이면 "건너뛰기" 항목이 추가되고 선택 시 SkipWorkspace를 반환한다.
	SelectWorkspace(workspaces []postman.Workspace, current string, allowSkip bool) (string, error)

	// Confirm은 예/아니오 확인을 받는다.
	Confirm(message string) (bool, error)

	// Spin은 action이 끝날 때까지 스피너를 표시한다.
	Spin(ctx context.Context, title string, action func(context.Context) error) error
}
