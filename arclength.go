package nonplanar

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sgostarter/i/commerr"
)

// lookupTolerance absorbs the error accumulated by summing the table, so a
// length that lies on the grid maps back onto it.
const lookupTolerance = 1e-9

var ErrCurveRangeExceeded = errors.New("curve not defined high enough")

// CurveRangeExceededError is returned when an arc length lies beyond the
// end of the table.
type CurveRangeExceededError struct {
	ArcLength    float64
	MaxArcLength float64
}

func (e *CurveRangeExceededError) Error() string {
	return fmt.Sprintf("%s: arc length %g exceeds %g", ErrCurveRangeExceeded, e.ArcLength, e.MaxArcLength)
}

func (e *CurveRangeExceededError) Is(target error) bool {
	return target == ErrCurveRangeExceeded || target == commerr.ErrOutOfRange
}

// ArcLengthTable maps cumulative arc length along a CurveModel back to curve
// height. Entry i is the arc length from height 0 to i*discretizationLength.
type ArcLengthTable struct {
	discretizationLength float64
	lengths              []float64
}

func NewArcLengthTable(c *CurveModel, discretizationLength float64) (*ArcLengthTable, error) {
	if !(discretizationLength > 0) || math.IsInf(discretizationLength, 0) {
		return nil, fmt.Errorf("%w: discretization length must be positive, got %g",
			commerr.ErrInvalidArgument, discretizationLength)
	}

	steps := int(math.Ceil((c.MaxHeight() - discretizationLength) / discretizationLength))
	if steps < 0 {
		steps = 0
	}

	lengths := make([]float64, 1, steps+1)
	for i := 1; i <= steps; i++ {
		height := discretizationLength * float64(i)
		seg := mgl64.Vec2{
			c.ValueAt(height) - c.ValueAt(height-discretizationLength),
			discretizationLength,
		}
		lengths = append(lengths, lengths[i-1]+seg.Len())
	}

	return &ArcLengthTable{
		discretizationLength: discretizationLength,
		lengths:              lengths,
	}, nil
}

// HeightForArcLength returns the height of the first entry whose arc length
// is at least length.
func (t *ArcLengthTable) HeightForArcLength(length float64) (float64, error) {
	i := sort.SearchFloat64s(t.lengths, length-lookupTolerance)
	if i == len(t.lengths) {
		return 0, &CurveRangeExceededError{ArcLength: length, MaxArcLength: t.MaxArcLength()}
	}
	return float64(i) * t.discretizationLength, nil
}

func (t *ArcLengthTable) Len() int {
	return len(t.lengths)
}

func (t *ArcLengthTable) MaxArcLength() float64 {
	return t.lengths[len(t.lengths)-1]
}

func (t *ArcLengthTable) DiscretizationLength() float64 {
	return t.discretizationLength
}

func (t *ArcLengthTable) Entries() []float64 {
	return append([]float64(nil), t.lengths...)
}
