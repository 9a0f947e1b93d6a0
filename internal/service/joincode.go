package service

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

const (
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	joinCodeLength   = 6
)

// Supplied codes must match this after normalization.
var joinCodePattern = regexp.MustCompile(`^[A-Z0-9]{6,10}$`)

// normalizeJoinCode trims and uppercases raw user input. Codes are compared
// case-insensitively everywhere; normalization happens here, not in callers.
func normalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// generateJoinCode returns a random 6-character uppercase alphanumeric code.
func generateJoinCode() (string, error) {
	buf := make([]byte, joinCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate join code: %w", err)
	}
	for i, b := range buf {
		buf[i] = joinCodeAlphabet[int(b)%len(joinCodeAlphabet)]
	}
	return string(buf), nil
}
