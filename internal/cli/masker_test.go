package cli_test

import (
	"testing"

	"github.com/hbjs97/pmctl/internal/cli"
	"github.com/stretchr/testify/assert"
)

func TestMaskTokens(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"api key", "key: PMAK-0123456789abcdefghij", "key: PMAK-012*************ghij"},
		{"inside error", "auth: PMAK-0123456789abcdefghij rejected", "auth: PMAK-012*************ghij rejected"},
		{"short key", "PMAK-ab", "****"},
		{"no token", "hello world", "hello world"},
		{"multiple", "PMAK-aaaaaaaaaaaa and PMAK-bbbbbbbbbbbb", "PMAK-aaa*****aaaa and PMAK-bbb*****bbbb"},
		{"empty string", "", ""},
		{"prefix only", "PMAK- next", "PMAK- next"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.MaskTokens(tt.input))
		})
	}
}
