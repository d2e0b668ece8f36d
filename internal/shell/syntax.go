package shell

import (
	"fmt"
	"regexp"
	"strings"
)

// Syntax는 환경변수 export 구문 종류다.
type Syntax string

const (
	SyntaxPOSIX      Syntax = "posix"
	SyntaxFish       Syntax = "fish"
	SyntaxPowerShell Syntax = "powershell"
)

// format은 구문 하나의 직렬화 템플릿과 위치 패턴이다.
type format struct {
	template string // 이름, 이스케이프된 값 순서
	keyword  string // 이름 앞 정규식
	boundary string // 이름 뒤 토큰 경계 정규식
	escChar  byte   // 큰따옴표 안의 이스케이프 문자
	escape   *strings.Replacer
	unescape *strings.Replacer
}

var formats = map[Syntax]format{
	SyntaxPOSIX: {
		template: `export %s="%s"`,
		keyword:  `export[ \t]+`,
		boundary: `=`,
		escChar:  '\\',
		escape:   strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`"),
		unescape: strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\$`, `$`, "\\`", "`"),
	},
	SyntaxFish: {
		template: `set -gx %s "%s"`,
		keyword:  `set[ \t]+(?:-gx|-xg)[ \t]+`,
		boundary: `[ \t]+`,
		escChar:  '\\',
		escape:   strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`),
		unescape: strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\$`, `$`),
	},
	SyntaxPowerShell: {
		template: `$env:%s = "%s"`,
		keyword:  `\$env:`,
		boundary: `[ \t]*=[ \t]*`,
		escChar:  '`',
		escape:   strings.NewReplacer("`", "``", `"`, "`\"", `$`, "`$"),
		unescape: strings.NewReplacer("``", "`", "`\"", `"`, "`$", `$`),
	},
}

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidName은 환경변수 이름으로 쓸 수 있는지 확인한다.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

func (s Syntax) format() format {
	if f, ok := formats[s]; ok {
		return f
	}
	return formats[SyntaxPOSIX]
}

// Line은 name=value를 구문에 맞는 한 줄로 직렬화한다.
func (s Syntax) Line(name, value string) string {
	f := s.format()
	return fmt.Sprintf(f.template, name, f.escape.Replace(value))
}

// Pattern은 name을 정의하는 한 줄에 매칭되는 정규식을 반환한다.
// 1번 그룹은 따옴표를 포함한 원시 값이다. 이름 뒤 토큰 경계를 요구하므로
// API_KEY 패턴은 API_KEY_SECONDARY 줄에 매칭되지 않는다.
func (s Syntax) Pattern(name string) *regexp.Regexp {
	f := s.format()
	return regexp.MustCompile(`^[ \t]*` + f.keyword + regexp.QuoteMeta(name) + f.boundary + `(.*)$`)
}

// ParseValue는 Pattern이 캡처한 원시 값에서 실제 값을 꺼낸다.
// 큰따옴표, 작은따옴표, 따옴표 없는 값을 모두 허용한다.
func (s Syntax) ParseValue(raw string) string {
	f := s.format()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	switch raw[0] {
	case '"':
		for i := 1; i < len(raw); i++ {
			switch raw[i] {
			case f.escChar:
				i++
			case '"':
				return f.unescape.Replace(raw[1:i])
			}
		}
		return f.unescape.Replace(raw[1:]) // 닫는 따옴표 없음
	case '\'':
		if j := strings.IndexByte(raw[1:], '\''); j >= 0 {
			return raw[1 : 1+j]
		}
		return raw[1:]
	default:
		if i := strings.IndexAny(raw, " \t;"); i >= 0 {
			return raw[:i]
		}
		return raw
	}
}
