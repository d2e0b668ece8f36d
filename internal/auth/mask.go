package auth

import "strings"

// shortMask는 너무 짧아 부분 노출할 수 없는 키의 표시값이다.
const shortMask = "****"

// MaskAPIKey는 표시용으로 API 키를 가린다.
// 12자 이상이면 앞 8자와 뒤 4자를 남기고 사이의 문자를 각각 '*'로 바꾼다.
func MaskAPIKey(key string) string {
	if len(key) < 12 {
		return shortMask
	}
	return key[:8] + strings.Repeat("*", len(key)-12) + key[len(key)-4:]
}
