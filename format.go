package nonplanar

import (
	"io"
	"strconv"
	"strings"
)

const (
	planarPrecision    = 5
	heightPrecision    = 3
	extrusionPrecision = 5
)

// FloatToSmallestString formats f rounded to precision decimals with
// trailing zeros and the leading zero of fractions removed.
func FloatToSmallestString(f float64, precision int) string {
	s := strconv.FormatFloat(f, 'f', precision, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if strings.HasPrefix(s, "0.") {
		s = s[1:]
	}
	if s == "0" || s == "" {
		return "0"
	}
	if neg {
		return "-" + s
	}
	return s
}

// writeMove writes one rewritten move: designator, X, Y, Z, then E and F
// when present.
func writeMove(writer io.Writer, typ MoveType, x, y, z float64, e, f *float64) error {
	var sb strings.Builder
	sb.WriteString("G")
	sb.WriteString(strconv.Itoa(int(typ)))
	sb.WriteString(" X")
	sb.WriteString(FloatToSmallestString(x, planarPrecision))
	sb.WriteString(" Y")
	sb.WriteString(FloatToSmallestString(y, planarPrecision))
	sb.WriteString(" Z")
	sb.WriteString(FloatToSmallestString(z, heightPrecision))
	if e != nil {
		sb.WriteString(" E")
		sb.WriteString(FloatToSmallestString(*e, extrusionPrecision))
	}
	if f != nil {
		sb.WriteString(" F")
		sb.WriteString(strconv.Itoa(int(*f)))
	}
	sb.WriteString("\n")
	_, err := io.WriteString(writer, sb.String())
	return err
}

// writeVerticalMove writes dz as a relative Z move bracketed by G91/G90.
func writeVerticalMove(writer io.Writer, dz float64, f *float64) error {
	var sb strings.Builder
	sb.WriteString("G91\nG1 Z")
	sb.WriteString(FloatToSmallestString(dz, planarPrecision))
	if f != nil {
		sb.WriteString(" F")
		sb.WriteString(strconv.FormatFloat(*f, 'f', -1, 64))
	}
	sb.WriteString("\nG90\n")
	_, err := io.WriteString(writer, sb.String())
	return err
}
