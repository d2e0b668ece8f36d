package cli

import (
	"regexp"

	"github.com/hbjs97/pmctl/internal/auth"
)

var tokenPattern = regexp.MustCompile(`PMAK-[A-Za-z0-9-]+`)

// MaskTokens는 문자열에 포함된 Postman API 키를 가린다.
func MaskTokens(s string) string {
	return tokenPattern.ReplaceAllStringFunc(s, auth.MaskAPIKey)
}
