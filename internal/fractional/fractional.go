// Package fractional converts US Treasury prices between their fractional
// text form and decimal doubles. The grammar is "<handle>-<32nds><8th>",
// where the final character is a digit 0-7 counting 1/256ths or '+' for 4/256
// (a half of a 32nd). Example: "100-16+" = 100 + 16/32 + 4/256 = 100.515625.
package fractional

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrMalformed = errors.New("malformed fractional price")

// Parse converts a fractional price string into a decimal price.
func Parse(s string) (float64, error) {
	dash := strings.IndexByte(s, '-')
	if dash <= 0 || len(s) != dash+4 {
		return 0, ErrMalformed
	}

	handle, err := strconv.Atoi(s[:dash])
	if err != nil || handle < 0 {
		return 0, ErrMalformed
	}

	thirtySeconds, err := strconv.Atoi(s[dash+1 : dash+3])
	if err != nil || thirtySeconds < 0 || thirtySeconds > 31 {
		return 0, ErrMalformed
	}

	var eighths int
	switch last := s[dash+3]; {
	case last == '+':
		eighths = 4
	case last >= '0' && last <= '7':
		eighths = int(last - '0')
	default:
		return 0, ErrMalformed
	}

	return float64(handle) + float64(thirtySeconds)/32.0 + float64(eighths)/256.0, nil
}

// Format converts a decimal price into its fractional text form, flooring to
// the nearest 1/256.
func Format(price float64) string {
	handle := int(math.Floor(price))
	ticks := int(math.Floor((price - float64(handle)) * 256.0))
	thirtySeconds := ticks / 8
	eighths := ticks % 8

	var b strings.Builder
	b.WriteString(strconv.Itoa(handle))
	b.WriteByte('-')
	if thirtySeconds < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(thirtySeconds))
	if eighths == 4 {
		b.WriteByte('+')
	} else {
		b.WriteString(strconv.Itoa(eighths))
	}
	return b.String()
}
