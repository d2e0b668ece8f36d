package rcfile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/hbjs97/pmctl/internal/logging"
	"github.com/hbjs97/pmctl/internal/shell"
)

// markerPrefix는 pmctl이 변수 줄 위에 남기는 주석의 접두어다.
const markerPrefix = "# pmctl:"

var blankRun = regexp.MustCompile(`\n{3,}`)

// WriteOptions는 Write 동작을 조정한다.
type WriteOptions struct {
	// Comment는 변수 줄 위에 기록할 설명이다. 비어있으면 변수 이름을 쓴다.
	Comment string
	// KeepExisting이 true면 이미 정의된 변수를 덮어쓰지 않는다.
	KeepExisting bool
}

type cacheEntry struct {
	value   string
	present bool
}

// Store는 셸 설정 파일 하나를 key-value 저장소로 다룬다.
// 쓰기/삭제 결과는 인스턴스 캐시에 반영되어 같은 프로세스 안에서는
// 파일을 다시 읽지 않고 최신 값을 돌려준다.
type Store struct {
	kind      shell.Kind
	syntax    shell.Syntax
	paths     []string
	lookupEnv func(string) (string, bool)
	logger    *slog.Logger
	cache     map[string]cacheEntry
}

// Option은 Store 생성 옵션이다.
type Option func(*Store)

// WithLogger는 logger를 지정한다.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithLookupEnv는 파일보다 먼저 조회할 환경변수 조회 함수를 지정한다.
// nil이면 프로세스 환경을 조회하지 않는다.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(s *Store) { s.lookupEnv = fn }
}

// New는 셸 종류와 후보 경로로 Store를 생성한다.
// 기본적으로 프로세스 환경(os.LookupEnv)을 먼저 조회한다.
func New(kind shell.Kind, paths []string, opts ...Option) *Store {
	s := &Store{
		kind:      kind,
		syntax:    shell.SyntaxFor(kind),
		paths:     paths,
		lookupEnv: os.LookupEnv,
		logger:    logging.Discard(),
		cache:     make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shell은 Store가 사용하는 셸 종류를 반환한다.
func (s *Store) Shell() shell.Kind {
	return s.kind
}

// Path는 쓰기 대상 경로를 반환한다.
// 존재하는 첫 후보 파일, 없으면 첫 후보 경로다.
func (s *Store) Path() (string, error) {
	if !shell.SupportsPersistence(s.kind) || len(s.paths) == 0 {
		return "", fmt.Errorf("rcfile.Path: %w: %s", ErrUnsupportedShell, s.kind)
	}
	for _, p := range s.paths {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}
	return s.paths[0], nil
}

// Read는 변수 값을 조회한다. 캐시, 프로세스 환경, 후보 파일 순으로 찾는다.
// 찾지 못하면 ("", false)이며 오류로 취급하지 않는다.
func (s *Store) Read(name string) (string, bool) {
	if e, ok := s.cache[name]; ok {
		return e.value, e.present
	}
	if !shell.ValidName(name) {
		return "", false
	}
	if s.lookupEnv != nil {
		if v, ok := s.lookupEnv(name); ok && v != "" {
			return v, true
		}
	}
	pattern := s.syntax.Pattern(name)
	for _, p := range s.paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("셸 설정 파일 읽기 실패", "path", p, "error", err)
			}
			continue
		}
		if v, ok := s.find(string(data), pattern); ok {
			s.logger.Debug("변수 조회", "name", name, "path", p)
			return v, true
		}
	}
	return "", false
}

// Exists는 변수가 정의되어 있는지 반환한다.
func (s *Store) Exists(name string) bool {
	_, ok := s.Read(name)
	return ok
}

// Write는 변수를 설정 파일에 기록한다.
// 기존 정의는 제거하고 파일 끝에 주석과 함께 새 줄을 추가한다.
func (s *Store) Write(name, value string, opts WriteOptions) error {
	if !shell.ValidName(name) {
		return fmt.Errorf("rcfile.Write: %w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("rcfile.Write: %w: %s 값에 개행 문자가 있다", ErrInvalidValue, name)
	}
	path, err := s.Path()
	if err != nil {
		return err
	}
	text, err := readText(path)
	if err != nil {
		return s.fail("Write", path, err)
	}

	pattern := s.syntax.Pattern(name)
	if existing, ok := s.find(text, pattern); ok && opts.KeepExisting {
		s.cache[name] = cacheEntry{value: existing, present: true}
		s.logger.Debug("기존 값 유지", "name", name, "path", path)
		return nil
	}

	text, _ = stripVariable(text, pattern)
	comment := opts.Comment
	if comment == "" {
		comment = name
	}
	text = appendBlock(text, comment, s.syntax.Line(name, value))

	if err := writeFileAtomic(path, []byte(text)); err != nil {
		return s.fail("Write", path, err)
	}
	s.cache[name] = cacheEntry{value: value, present: true}
	s.logger.Debug("변수 기록", "name", name, "path", path)
	return nil
}

// Remove는 변수 정의를 설정 파일에서 제거한다.
// 실제로 줄이 제거되었으면 true다. 파일이 없으면 (false, nil)이다.
func (s *Store) Remove(name string) (bool, error) {
	if !shell.ValidName(name) {
		return false, fmt.Errorf("rcfile.Remove: %w: %q", ErrInvalidName, name)
	}
	path, err := s.Path()
	if err != nil {
		return false, err
	}
	text, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.cache[name] = cacheEntry{}
		return false, nil
	}
	if err != nil {
		return false, s.fail("Remove", path, err)
	}

	stripped, removed := stripVariable(string(text), s.syntax.Pattern(name))
	if removed {
		if err := writeFileAtomic(path, []byte(stripped)); err != nil {
			return false, s.fail("Remove", path, err)
		}
		s.logger.Debug("변수 제거", "name", name, "path", path)
	}
	s.cache[name] = cacheEntry{}
	return removed, nil
}

func (s *Store) find(text string, pattern *regexp.Regexp) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		if m := pattern.FindStringSubmatch(line); m != nil {
			return s.syntax.ParseValue(m[1]), true
		}
	}
	return "", false
}

func (s *Store) fail(op, path string, err error) error {
	s.logger.Error("셸 설정 파일 저장 실패", "op", op, "path", path, "error", err)
	return &StorageError{Op: op, Path: path, Err: err}
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// stripVariable은 pattern에 매칭되는 모든 줄과 바로 위 pmctl 주석을 제거한다.
// 제거 후 3개 이상 연속된 개행은 빈 줄 하나로 줄인다.
func stripVariable(text string, pattern *regexp.Regexp) (string, bool) {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	removed := false
	lastCut := 0
	for _, line := range lines {
		if !pattern.MatchString(line) {
			out = append(out, line)
			continue
		}
		removed = true
		if n := len(out); n > 0 && strings.HasPrefix(strings.TrimSpace(out[n-1]), markerPrefix) {
			out = out[:n-1]
		}
		lastCut = len(out)
	}
	if !removed {
		return text, false
	}
	joined := blankRun.ReplaceAllString(strings.Join(out, "\n"), "\n\n")
	if atTail(out[lastCut:]) {
		// 끝에 붙였던 블록이면 appendBlock이 넣은 구분 빈 줄도 되돌린다.
		joined = strings.TrimRight(joined, "\n")
		if joined != "" {
			joined += "\n"
		}
	}
	return joined, true
}

func atTail(rest []string) bool {
	for _, line := range rest {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// appendBlock은 빈 줄, 주석, 변수 줄 순서로 파일 끝에 추가한다.
func appendBlock(text, comment, line string) string {
	var b strings.Builder
	b.WriteString(text)
	if text != "" {
		if !strings.HasSuffix(text, "\n") {
			b.WriteString("\n")
		}
		if !strings.HasSuffix(text, "\n\n") {
			b.WriteString("\n")
		}
	}
	comment = strings.ReplaceAll(strings.ReplaceAll(comment, "\r", " "), "\n", " ")
	b.WriteString(markerPrefix + " " + comment + "\n")
	b.WriteString(line + "\n")
	return b.String()
}
