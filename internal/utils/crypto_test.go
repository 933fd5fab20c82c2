// internal/utils/crypto_test.go
package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTrackingIDFormat(t *testing.T) {
	id, err := GenerateTrackingID()

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "welo_"))
	assert.Len(t, id, len("welo_")+24)

	for _, r := range strings.TrimPrefix(id, "welo_") {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, isAlnum, "unexpected character %q", r)
	}
}

func TestGenerateTrackingIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateTrackingID()
		assert.NoError(t, err)
		assert.False(t, seen[id], "duplicate tracking id %s", id)
		seen[id] = true
	}
}

func TestGenerateRandomStringLength(t *testing.T) {
	s, err := GenerateRandomString(32)
	assert.NoError(t, err)
	assert.Len(t, s, 32)
}

func TestHashStringDeterministic(t *testing.T) {
	a := HashString("203.0.113.7")
	b := HashString("203.0.113.7")
	c := HashString("203.0.113.8")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	// sha256 hex
	assert.Len(t, a, 64)
	assert.NotContains(t, a, "203.0.113.7")
}
