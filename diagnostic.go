package nonplanar

import (
	"fmt"
	"math"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
)

type DiagnosticKind int

const (
	BelowPlatform DiagnosticKind = iota
	ImplausibleMove
	SelfIntersection
	SteepAngle
	RangeExceeded
)

var diagnosticNames = [...]string{
	BelowPlatform:    "below-platform",
	ImplausibleMove:  "implausible-move",
	SelfIntersection: "self-intersection",
	SteepAngle:       "steep-angle",
	RangeExceeded:    "range-exceeded",
}

func (k DiagnosticKind) String() string {
	if k < 0 || int(k) >= len(diagnosticNames) {
		return fmt.Sprintf("diagnostic(%d)", int(k))
	}
	return diagnosticNames[k]
}

// IsError reports whether the kind points at a defect in the curve rather
// than a questionable move.
func (k DiagnosticKind) IsError() bool {
	return k == SelfIntersection || k == RangeExceeded
}

// Diagnostic is a non-fatal finding about one input line. Height is the
// physical height of the move; Angle is in radians and only set for
// SteepAngle.
type Diagnostic struct {
	Kind   DiagnosticKind
	Line   int
	Height float64
	Angle  float64
	Err    error
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case BelowPlatform:
		return "movement below build platform, check your spline"
	case ImplausibleMove:
		return fmt.Sprintf("possibly implausible move detected on height %g mm", d.Height)
	case SelfIntersection:
		return fmt.Sprintf("self intersection on height %g mm, check your spline", d.Height)
	case SteepAngle:
		return fmt.Sprintf("spline angle is %g at height %g mm, check your spline", degrees(d.Angle), d.Height)
	case RangeExceeded:
		return fmt.Sprintf("height %g mm is beyond the spline: %v", d.Height, d.Err)
	}
	return d.Kind.String()
}

func (d Diagnostic) log(logger l.Wrapper) {
	logger = logger.WithFields(
		l.StringField("kind", d.Kind.String()),
		l.IntField("line", d.Line),
		l.StringField("height", cast.ToString(d.Height)),
	)
	if d.Kind == SteepAngle {
		logger = logger.WithFields(l.StringField("angle", cast.ToString(degrees(d.Angle))))
	}
	if d.Err != nil {
		logger = logger.WithFields(l.ErrorField(d.Err))
	}

	if d.Kind.IsError() {
		logger.Error(d.String())
	} else {
		logger.Warn(d.String())
	}
}

// Report summarises one run over a program.
type Report struct {
	Lines         int
	Transformed   int
	PassedThrough int
	VerticalMoves int
	Diagnostics   []Diagnostic
}

func (r *Report) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
