// Package logging builds the structured logger shared by pmctl commands.
package logging

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// New는 CLI 명령용 slog.Logger를 생성한다.
// stderr가 터미널이면 TextHandler, 파이프/리다이렉트면 JSONHandler를 사용한다.
// verbose가 아니면 경고 이상만 출력한다.
func New(verbose bool) *slog.Logger {
	return NewWithWriter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), verbose)
}

// NewWithWriter는 출력 대상과 핸들러 종류를 직접 지정한다.
func NewWithWriter(w io.Writer, text bool, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// Discard는 아무것도 출력하지 않는 logger다. 테스트와 기본값에 사용한다.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
