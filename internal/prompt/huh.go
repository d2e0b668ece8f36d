package prompt

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/hbjs97/pmctl/internal/credential"
	"github.com/hbjs97/pmctl/internal/postman"
	"golang.org/x/term"
)

// HuhPrompter는 charmbracelet/huh 기반의 Prompter 구현이다.
type HuhPrompter struct {
	// Interactive가 false면 입력이 필요한 메서드는 ErrNotInteractive를 반환한다.
	Interactive bool
}

var _ Prompter = (*HuhPrompter)(nil)

// NewHuhPrompter는 stdin이 터미널인지 확인하여 HuhPrompter를 만든다.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{Interactive: term.IsTerminal(int(os.Stdin.Fd()))}
}

// APIKey는 API 키 입력 폼을 실행한다.
func (h *HuhPrompter) APIKey() (string, error) {
	if !h.Interactive {
		return "", fmt.Errorf("prompt.APIKey: %w (--api-key를 사용하세요)", ErrNotInteractive)
	}
	var key string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Postman API 키").
			Description("https://postman.co/settings/me/api-keys 에서 발급").
			EchoMode(huh.EchoModePassword).
			Value(&key).
			Validate(func(s string) error {
				if !credential.ValidAPIKey(strings.TrimSpace(s)) {
					return fmt.Errorf("%s로 시작하는 %d자 이상의 키를 입력하세요", credential.APIKeyPrefix, credential.MinAPIKeyLength)
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt.APIKey: %w", err)
	}
	return strings.TrimSpace(key), nil
}

// SelectWorkspace는 워크스페이스 선택 UI를 표시한다.
func (h *HuhPrompter) SelectWorkspace(workspaces []postman.Workspace, current string, allowSkip bool) (string, error) {
	if !h.Interactive {
		return "", fmt.Errorf("prompt.SelectWorkspace: %w", ErrNotInteractive)
	}
	options := make([]huh.Option[string], 0, len(workspaces)+1)
	for _, ws := range workspaces {
		label := fmt.Sprintf("%s (%s)", ws.Name, ws.Type)
		options = append(options, huh.NewOption(label, ws.ID).Selected(ws.ID == current))
	}
	if allowSkip {
		options = append(options, huh.NewOption("건너뛰기", SkipWorkspace))
	}

	selected := current
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("워크스페이스를 선택하세요").
			Options(options...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt.SelectWorkspace: %w", err)
	}
	return selected, nil
}

// Confirm은 확인 프롬프트를 표시한다.
func (h *HuhPrompter) Confirm(message string) (bool, error) {
	if !h.Interactive {
		return false, fmt.Errorf("prompt.Confirm: %w (--yes를 사용하세요)", ErrNotInteractive)
	}
	var confirm bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(message).Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt.Confirm: %w", err)
	}
	return confirm, nil
}

// Spin은 터미널이면 스피너를 띄우고, 아니면 action만 실행한다.
func (h *HuhPrompter) Spin(ctx context.Context, title string, action func(context.Context) error) error {
	if !h.Interactive {
		return action(ctx)
	}
	var actionErr error
	err := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() { actionErr = action(ctx) }).
		Run()
	if err != nil {
		return fmt.Errorf("prompt.Spin: %w", err)
	}
	return actionErr
}
