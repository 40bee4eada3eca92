// Package extract provides the line-pattern recognizers screens apply to
// engine log output. Every function is a pure function of the input line:
// a partial or failed match reports !ok and commits nothing, so callers
// keep their previous field values.
package extract

import (
	"strconv"
	"strings"
)

// macRowMinLen is a full MAC prefix (17 chars) plus the comma after it.
const macRowMinLen = 18

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// MACRow recognizes a network CSV row by its MAC-address prefix: six
// 2-hex-digit groups at fixed offsets separated by colons, followed by a
// comma. On a match it returns the comma-separated fields of the whole
// line (field 0 is the MAC itself); missing trailing fields simply yield
// a shorter slice.
func MACRow(line string) ([]string, bool) {
	if len(line) < macRowMinLen {
		return nil, false
	}

	for i := 0; i < 17; i++ {
		switch i % 3 {
		case 2:
			if line[i] != ':' {
				return nil, false
			}
		default:
			if !isHexDigit(line[i]) {
				return nil, false
			}
		}
	}

	if line[17] != ',' {
		return nil, false
	}

	return strings.Split(line, ","), true
}

// Labeled extracts the value after marker, terminated by the next space.
// A marker with no terminating space is a partial match and reports !ok.
func Labeled(line, marker string) (string, bool) {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return "", false
	}

	rest := line[idx+len(marker):]
	end := strings.IndexByte(rest, ' ')
	if end <= 0 {
		return "", false
	}

	return rest[:end], true
}

// LabeledLast extracts the value after marker using the numeric character
// class instead of a space terminator: digits, an optional leading '-',
// and at most one '.'. This is how the final field on a line is parsed,
// where no trailing space exists; a trailing period therefore does not
// leak into the value.
func LabeledLast(line, marker string) (string, bool) {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return "", false
	}

	rest := line[idx+len(marker):]
	end := 0
	sawDot := false
	for end < len(rest) {
		c := rest[end]
		if c == '-' && end == 0 {
			end++
			continue
		}
		if c == '.' && !sawDot {
			sawDot = true
			end++
			continue
		}
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		break
	}

	// A bare sign or dot is not a value
	val := rest[:end]
	if val == "" || val == "-" || val == "." || val == "-." {
		return "", false
	}

	return val, true
}

// Countdown parses a "(N/M seconds)" marker anywhere in the line and
// returns the two integers. Absent or malformed parentheses report !ok.
func Countdown(line string) (elapsed, total int, ok bool) {
	for start := 0; start < len(line); start++ {
		open := strings.IndexByte(line[start:], '(')
		if open < 0 {
			return 0, 0, false
		}
		open += start

		e, t, matched := scanCountdown(line[open+1:])
		if matched {
			return e, t, true
		}
		start = open
	}
	return 0, 0, false
}

// scanCountdown matches "N/M seconds)" at the start of s.
func scanCountdown(s string) (int, int, bool) {
	e, rest, ok := leadingInt(s)
	if !ok || len(rest) == 0 || rest[0] != '/' {
		return 0, 0, false
	}

	t, rest, ok := leadingInt(rest[1:])
	if !ok || !strings.HasPrefix(rest, " seconds)") {
		return 0, 0, false
	}

	return e, t, true
}

// leadingInt parses the digit run at the start of s.
func leadingInt(s string) (int, string, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, s, false
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, s, false
	}
	return v, s[end:], true
}

// FirstInt skips to the first digit run in the line and parses it as a
// positive integer. Used as the fallback when a response carries no
// label; the call site supplies the positional meaning.
func FirstInt(line string) (int, bool) {
	start := 0
	for start < len(line) && (line[start] < '0' || line[start] > '9') {
		start++
	}
	if start == len(line) {
		return 0, false
	}

	v, _, ok := leadingInt(line[start:])
	return v, ok
}
