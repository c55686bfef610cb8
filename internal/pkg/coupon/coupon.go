// Package coupon generates human-presentable redemption codes.
package coupon

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Prefix is the fixed lead of every redemption code.
const Prefix = "RDM"

const base36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// suffixLen is the number of random base-36 characters appended to the code.
const suffixLen = 4

// Generate returns a code of the form RDM-<base36 timestamp>-<4 base36 chars>,
// uppercased. Codes are intended to be unique but are not collision-free: two
// calls in the same second can collide on the random suffix, so callers must
// treat a unique-constraint failure on insert as retryable.
func Generate() (string, error) {
	return generateAt(time.Now())
}

func generateAt(now time.Time) (string, error) {
	ts := strings.ToUpper(strconv.FormatInt(now.Unix(), 36))

	suffix := make([]byte, suffixLen)
	max := big.NewInt(int64(len(base36Chars)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate redemption code: %w", err)
		}
		suffix[i] = base36Chars[n.Int64()]
	}

	return fmt.Sprintf("%s-%s-%s", Prefix, ts, string(suffix)), nil
}
