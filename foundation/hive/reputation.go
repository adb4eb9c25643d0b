package hive

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatReputation converts a raw reputation integer to the conventional
// human-facing scale. The formula matches the network convention exactly:
// log base 10, shift by 9, scale by 9, offset 25, floor. A raw value of 0
// maps to 25, the score of a fresh account.
func FormatReputation(raw int64) int {
	rep := math.Log10(math.Abs(float64(raw)))
	rep = math.Max(rep-9, 0)

	if raw < 0 {
		rep = -rep
	}

	return int(math.Floor(rep*9 + 25))
}

// FormatReputationString parses a numeric string, as returned by some node
// versions, and formats it. Non-numeric input is an error.
func FormatReputationString(s string) (int, error) {
	raw, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed reputation %q: %w", s, err)
	}

	return FormatReputation(raw), nil
}
