package util

import (
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStateToken(t *testing.T) {
	t.Run("is URL-safe", func(t *testing.T) {
		token, err := GenerateStateToken()
		require.NoError(t, err)
		assert.Equal(t, token, url.QueryEscape(token), "token should survive URL encoding unchanged")
	})

	t.Run("encodes 32 bytes of entropy", func(t *testing.T) {
		token, err := GenerateStateToken()
		require.NoError(t, err)
		// base64 without padding: ceil(32*8/6) characters
		assert.Len(t, token, 43)
	})

	t.Run("generates unique tokens", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			token, err := GenerateStateToken()
			require.NoError(t, err)
			assert.False(t, seen[token], "duplicate token generated: %s", token)
			seen[token] = true
		}
	})
}

func TestTruncate(t *testing.T) {
	t.Run("returns short strings unchanged", func(t *testing.T) {
		assert.Equal(t, "hello", Truncate("hello", 10))
	})

	t.Run("truncates long strings with ellipsis", func(t *testing.T) {
		assert.Equal(t, "hel...", Truncate("hello world", 3))
	})

	t.Run("keeps strings at exactly max", func(t *testing.T) {
		assert.Equal(t, "hello", Truncate("hello", 5))
	})

	t.Run("never splits a multi-byte character", func(t *testing.T) {
		caption := strings.Repeat("a", 199) + "🎬 and more"
		got := Truncate(caption, 200)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, strings.Repeat("a", 199)+"🎬...", got)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		assert.Equal(t, "héllo", Truncate("héllo", 5))
	})
}
