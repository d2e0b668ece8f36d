package testutil

import (
	"context"
	"errors"

	"github.com/hbjs97/pmctl/internal/postman"
)

// FakePrompter는 미리 정한 답을 돌려주는 prompt.Prompter 구현이다.
type FakePrompter struct {
	Key        string
	KeyErr     error
	Workspace  string
	SelectErr  error
	ConfirmAns bool
	ConfirmErr error
	Confirms   []string
	Offered    [][]postman.Workspace
	SpinTitles []string
}

// APIKey는 Key를 반환한다. Key가 비어 있고 KeyErr도 없으면 에러다.
func (f *FakePrompter) APIKey() (string, error) {
	if f.KeyErr != nil {
		return "", f.KeyErr
	}
	if f.Key == "" {
		return "", errors.New("FakePrompter: APIKey not scripted")
	}
	return f.Key, nil
}

// SelectWorkspace는 제시된 목록을 기록하고 Workspace를 반환한다.
func (f *FakePrompter) SelectWorkspace(workspaces []postman.Workspace, _ string, _ bool) (string, error) {
	f.Offered = append(f.Offered, workspaces)
	if f.SelectErr != nil {
		return "", f.SelectErr
	}
	return f.Workspace, nil
}

// Confirm은 메시지를 기록하고 ConfirmAns를 반환한다.
func (f *FakePrompter) Confirm(message string) (bool, error) {
	f.Confirms = append(f.Confirms, message)
	return f.ConfirmAns, f.ConfirmErr
}

// Spin은 제목을 기록하고 action을 그대로 실행한다.
func (f *FakePrompter) Spin(ctx context.Context, title string, action func(context.Context) error) error {
	f.SpinTitles = append(f.SpinTitles, title)
	return action(ctx)
}
