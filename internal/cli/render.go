package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ErrInvalidOutput는 지원하지 않는 --output 값이다.
var ErrInvalidOutput = errors.New("지원하지 않는 출력 형식 (text, json, yaml)")

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("cli: %w: %s", ErrInvalidOutput, format)
}

// writeStructured는 v를 json 또는 yaml로 출력한다. text면 false를 반환한다.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(v)
	}
	return false, nil
}

// styles는 출력 대상 터미널에 맞춘 lipgloss 스타일이다. 터미널이 아니면 색이 빠진다.
type styles struct {
	ok    lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	faint lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("3")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")),
		faint: r.NewStyle().Faint(true),
	}
}

func (s styles) success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, s.ok.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (s styles) warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, s.warn.Render("! "+fmt.Sprintf(format, args...)))
}

func (s styles) hint(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, s.faint.Render(fmt.Sprintf(format, args...)))
}
