package coupon

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	code, err := Generate()
	require.NoError(t, err)

	parts := strings.Split(code, "-")
	require.Len(t, parts, 3, "code %q", code)
	assert.Equal(t, Prefix, parts[0])
	assert.Len(t, parts[2], suffixLen)
	assert.Equal(t, strings.ToUpper(code), code)

	for _, part := range parts[1:] {
		for _, r := range part {
			assert.Contains(t, base36Chars, string(r), "code %q", code)
		}
	}
}

func TestGenerateAt_TimestampSegment(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	code, err := generateAt(now)
	require.NoError(t, err)

	parts := strings.Split(code, "-")
	require.Len(t, parts, 3)

	ts, err := strconv.ParseInt(strings.ToLower(parts[1]), 36, 64)
	require.NoError(t, err)
	assert.Equal(t, now.Unix(), ts)
}

func TestGenerate_SuffixVaries(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := generateAt(now)
		require.NoError(t, err)
		seen[code] = true
	}
	// With a fixed timestamp only the random suffix varies; 50 draws from
	// 36^4 possibilities should practically never all coincide.
	assert.Greater(t, len(seen), 1)
}
