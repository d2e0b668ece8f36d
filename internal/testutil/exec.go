package testutil

import (
	"context"
	"fmt"
	"strings"
)

// Response는 FakeCommander가 돌려줄 미리 정한 응답이다.
type Response struct {
	Output []byte
	Err    error
}

// FakeCommander는 등록된 응답을 반환하는 테스트용 Commander다.
// 키는 "name arg1 arg2" 형식이며 정확히 일치하는 키가 없으면 가장 긴 prefix 키를 사용한다.
type FakeCommander struct {
	Responses map[string]Response

	// Calls는 실행된 명령을 순서대로 기록한다.
	Calls []string

	// Dirs는 Run에 전달된 작업 디렉토리를 Calls와 같은 순서로 기록한다.
	Dirs []string

	// DefaultResponse가 nil이면 등록되지 않은 명령은 에러다.
	DefaultResponse *Response
}

// NewFakeCommander는 빈 응답 맵을 가진 FakeCommander를 만든다.
func NewFakeCommander() *FakeCommander {
	return &FakeCommander{Responses: make(map[string]Response)}
}

// Register는 명령 키에 대한 응답을 등록한다.
func (c *FakeCommander) Register(key string, output string, err error) {
	c.Responses[key] = Response{Output: []byte(output), Err: err}
}

// Run은 dir 없이 RunIn을 호출한다.
func (c *FakeCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return c.RunIn(ctx, "", name, args...)
}

// RunIn은 명령을 기록하고 등록된 응답을 찾는다.
func (c *FakeCommander) RunIn(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	fullCmd := strings.TrimSpace(name + " " + strings.Join(args, " "))
	c.Calls = append(c.Calls, fullCmd)
	c.Dirs = append(c.Dirs, dir)

	if resp, ok := c.Responses[fullCmd]; ok {
		return resp.Output, resp.Err
	}

	bestKey := ""
	for key := range c.Responses {
		if strings.HasPrefix(fullCmd, key) && len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey != "" {
		resp := c.Responses[bestKey]
		return resp.Output, resp.Err
	}

	if c.DefaultResponse != nil {
		return c.DefaultResponse.Output, c.DefaultResponse.Err
	}
	return nil, fmt.Errorf("FakeCommander: no response registered for %q", fullCmd)
}

// LookPath는 "which <name>" 응답이 등록되어 있으면 그 출력을 경로로 돌려준다.
func (c *FakeCommander) LookPath(name string) (string, error) {
	if resp, ok := c.Responses["which "+name]; ok {
		if resp.Err != nil {
			return "", resp.Err
		}
		return strings.TrimSpace(string(resp.Output)), nil
	}
	return "", fmt.Errorf("FakeCommander: %s not found", name)
}

// Called는 prefix로 시작하는 명령이 실행됐는지 확인한다.
func (c *FakeCommander) Called(prefix string) bool {
	return c.CallCount(prefix) > 0
}

// CallCount는 prefix로 시작하는 명령의 실행 횟수다.
func (c *FakeCommander) CallCount(prefix string) int {
	count := 0
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			count++
		}
	}
	return count
}
