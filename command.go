package nonplanar

import (
	"strings"

	"github.com/spf13/cast"
)

const commentMarker = ';'

type MoveType byte

const (
	RapidMove               MoveType = iota // G0
	LinearMove                              // G1
	ClockwiseArcMove                        // G2
	CounterClockwiseArcMove                 // G3
)

// Command holds the fields of one linear move. A nil field was not given on
// the line and keeps its modal value.
type Command struct {
	Type MoveType
	X    *float64
	Y    *float64
	Z    *float64
	E    *float64
	F    *float64
}

func (cmd Command) HasXY() bool {
	return cmd.X != nil && cmd.Y != nil
}

type ModeSwitch byte

const (
	NoModeSwitch ModeSwitch = iota
	SwitchAbsolute          // G90
	SwitchRelative          // G91
)

// ParseCommand reads a G0..G3 move from line. It returns false for anything
// else; such lines are passed through and are not an error.
//
// Fields are read in order up to the first word that is not X, Y, Z, E or F
// with a signed decimal value, so trailing comments and unknown words are
// ignored. A repeated field keeps the last value.
func ParseCommand(line string) (Command, bool) {
	words := tokenize(line)
	if len(words) == 0 {
		return Command{}, false
	}
	typ, ok := parseMoveType(words[0])
	if !ok {
		return Command{}, false
	}

	cmd := Command{Type: typ}
fields:
	for _, w := range words[1:] {
		num, ok := parseNumber(w[1:])
		if !ok {
			break
		}
		switch w[0] {
		case 'X', 'x':
			cmd.X = &num
		case 'Y', 'y':
			cmd.Y = &num
		case 'Z', 'z':
			cmd.Z = &num
		case 'E', 'e':
			cmd.E = &num
		case 'F', 'f':
			cmd.F = &num
		default:
			break fields
		}
	}
	return cmd, true
}

// ParseModeSwitch reports whether line starts with G90 or G91.
func ParseModeSwitch(line string) ModeSwitch {
	words := tokenize(line)
	if len(words) == 0 {
		return NoModeSwitch
	}
	switch strings.ToUpper(words[0]) {
	case "G90":
		return SwitchAbsolute
	case "G91":
		return SwitchRelative
	}
	return NoModeSwitch
}

func IsComment(line string) bool {
	return len(line) > 0 && line[0] == commentMarker
}

// tokenize splits line into whitespace separated words, stopping at a comment.
func tokenize(line string) []string {
	if i := strings.IndexByte(line, commentMarker); i >= 0 {
		line = line[:i]
	}
	return strings.Fields(line)
}

func parseMoveType(w string) (MoveType, bool) {
	if len(w) < 2 || (w[0] != 'G' && w[0] != 'g') {
		return 0, false
	}
	for _, b := range []byte(w[1:]) {
		if b < '0' || b > '9' {
			return 0, false
		}
	}
	n := strings.TrimLeft(w[1:], "0")
	switch {
	case n == "":
		return RapidMove, true
	case len(n) == 1 && n[0] <= '0'+byte(CounterClockwiseArcMove):
		return MoveType(n[0] - '0'), true
	}
	return 0, false
}

// parseNumber accepts an optional sign followed by digits with at most one
// decimal point.
func parseNumber(s string) (float64, bool) {
	digits := s
	if len(digits) > 0 && (digits[0] == '-' || digits[0] == '+') {
		digits = digits[1:]
	}
	var cnt, dots int
	for _, b := range []byte(digits) {
		switch {
		case b >= '0' && b <= '9':
			cnt++
		case b == '.':
			dots++
		default:
			return 0, false
		}
	}
	if cnt == 0 || dots > 1 {
		return 0, false
	}
	num, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, false
	}
	return num, true
}
