package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeJoinCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Lowercase", "abc123", "ABC123"},
		{"MixedCase", "aBc123", "ABC123"},
		{"SurroundingWhitespace", "  ABC123\t", "ABC123"},
		{"AlreadyNormalized", "XYZ789", "XYZ789"},
		{"Empty", "", ""},
		{"WhitespaceOnly", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeJoinCode(tt.input))
		})
	}
}

func TestJoinCodePattern(t *testing.T) {
	valid := []string{"ABC123", "ABCDEF", "123456", "ABCDEFGHIJ"}
	for _, code := range valid {
		assert.True(t, joinCodePattern.MatchString(code), code)
	}
	invalid := []string{"", "ABC", "ABC12", "ABCDEFGHIJK", "abc123", "ABC-12", "ABC 12"}
	for _, code := range invalid {
		assert.False(t, joinCodePattern.MatchString(code), code)
	}
}

func TestGenerateJoinCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := generateJoinCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
		seen[code] = true
	}
	// 50 draws from a 36^6 space colliding down to a handful would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 40)
}
