package nonplanar

import (
	"fmt"
	"math"

	"github.com/sgostarter/i/commerr"
)

// InvalidCurveError reports control points a CurveModel cannot be built from.
type InvalidCurveError struct {
	Reason string
}

func (e *InvalidCurveError) Error() string {
	return "invalid curve: " + e.Reason
}

func (e *InvalidCurveError) Unwrap() error {
	return commerr.ErrInvalidArgument
}

func invalidCurve(format string, args ...interface{}) error {
	return &InvalidCurveError{Reason: fmt.Sprintf(format, args...)}
}

// CurveModel is a cubic spline mapping print height to horizontal offset,
// clamped by a first derivative at each end.
//
// Outside the control range the first and last pieces are extended, so the
// caller must place the last control height at or above the print height.
type CurveModel struct {
	heights    []float64
	offsets    []float64
	startSlope float64
	endSlope   float64

	// second derivative at each control point
	m []float64
}

// CubicBezier is one spline piece in Bézier form, in (height, offset) space.
type CubicBezier struct {
	P0, P1, P2, P3 Point2D
}

func NewCurveModel(heights, offsets []float64, startSlope, endSlope float64) (*CurveModel, error) {
	if len(heights) < 2 {
		return nil, invalidCurve("need at least 2 control points, got %d", len(heights))
	}
	if len(heights) != len(offsets) {
		return nil, invalidCurve("%d heights but %d offsets", len(heights), len(offsets))
	}
	for i, h := range heights {
		if math.IsNaN(h) || math.IsInf(h, 0) || math.IsNaN(offsets[i]) || math.IsInf(offsets[i], 0) {
			return nil, invalidCurve("control point %d is not finite", i)
		}
		if h < 0 {
			return nil, invalidCurve("control height %g is negative", h)
		}
		if i > 0 && h <= heights[i-1] {
			return nil, invalidCurve("control heights must be increasing: %g after %g", h, heights[i-1])
		}
	}

	c := &CurveModel{
		heights:    append([]float64(nil), heights...),
		offsets:    append([]float64(nil), offsets...),
		startSlope: startSlope,
		endSlope:   endSlope,
	}
	c.m = c.solve()
	return c, nil
}

// solve computes the second derivatives at the knots with the Thomas
// algorithm over the clamped tridiagonal system.
func (c *CurveModel) solve() []float64 {
	n := len(c.heights)
	x, y := c.heights, c.offsets

	sub := make([]float64, n)
	diag := make([]float64, n)
	sup := make([]float64, n)
	rhs := make([]float64, n)

	h0 := x[1] - x[0]
	diag[0] = 2 * h0
	sup[0] = h0
	rhs[0] = 6 * ((y[1]-y[0])/h0 - c.startSlope)

	for i := 1; i < n-1; i++ {
		hl := x[i] - x[i-1]
		hr := x[i+1] - x[i]
		sub[i] = hl
		diag[i] = 2 * (hl + hr)
		sup[i] = hr
		rhs[i] = 6 * ((y[i+1]-y[i])/hr - (y[i]-y[i-1])/hl)
	}

	hn := x[n-1] - x[n-2]
	sub[n-1] = hn
	diag[n-1] = 2 * hn
	rhs[n-1] = 6 * (c.endSlope - (y[n-1]-y[n-2])/hn)

	for i := 1; i < n; i++ {
		w := sub[i] / diag[i-1]
		diag[i] -= w * sup[i-1]
		rhs[i] -= w * rhs[i-1]
	}

	m := make([]float64, n)
	m[n-1] = rhs[n-1] / diag[n-1]
	for i := n - 2; i >= 0; i-- {
		m[i] = (rhs[i] - sup[i]*m[i+1]) / diag[i]
	}
	return m
}

// segment returns the index of the piece used to evaluate height.
func (c *CurveModel) segment(height float64) int {
	last := len(c.heights) - 2
	for i := 0; i < last; i++ {
		if height < c.heights[i+1] {
			return i
		}
	}
	return last
}

// coefficients returns b, c, d of y_i + b*t + c*t^2 + d*t^3 for piece i.
func (c *CurveModel) coefficients(i int) (float64, float64, float64) {
	h := c.heights[i+1] - c.heights[i]
	b := (c.offsets[i+1]-c.offsets[i])/h - h*(2*c.m[i]+c.m[i+1])/6
	return b, c.m[i] / 2, (c.m[i+1] - c.m[i]) / (6 * h)
}

// ValueAt returns the horizontal offset of the curve at height.
func (c *CurveModel) ValueAt(height float64) float64 {
	i := c.segment(height)
	b, cc, d := c.coefficients(i)
	t := height - c.heights[i]
	return c.offsets[i] + t*(b+t*(cc+t*d))
}

// DerivativeAt returns d(offset)/d(height) at height.
func (c *CurveModel) DerivativeAt(height float64) float64 {
	i := c.segment(height)
	b, cc, d := c.coefficients(i)
	t := height - c.heights[i]
	return b + t*(2*cc+t*3*d)
}

func (c *CurveModel) Heights() []float64 {
	return append([]float64(nil), c.heights...)
}

func (c *CurveModel) Offsets() []float64 {
	return append([]float64(nil), c.offsets...)
}

// MaxHeight is the last control height.
func (c *CurveModel) MaxHeight() float64 {
	return c.heights[len(c.heights)-1]
}

// OriginOffset is the offset of the first control point, the x position the
// curve is bent around.
func (c *CurveModel) OriginOffset() float64 {
	return c.offsets[0]
}

// Beziers returns every spline piece as a cubic Bézier in (height, offset)
// space. This is exact: the control points sit at thirds of each interval.
func (c *CurveModel) Beziers() []CubicBezier {
	res := make([]CubicBezier, 0, len(c.heights)-1)
	for i := 0; i < len(c.heights)-1; i++ {
		h := c.heights[i+1] - c.heights[i]
		x0, x1 := c.heights[i], c.heights[i+1]
		y0, y1 := c.offsets[i], c.offsets[i+1]
		d0 := c.DerivativeAt(x0)
		d1 := c.slopeAtEnd(i)
		res = append(res, CubicBezier{
			P0: Pt(x0, y0),
			P1: Pt(x0+h/3, y0+d0*h/3),
			P2: Pt(x1-h/3, y1-d1*h/3),
			P3: Pt(x1, y1),
		})
	}
	return res
}

// slopeAtEnd is the derivative of piece i at its right end. DerivativeAt
// would pick the next piece there, which is equal but not bit-identical.
func (c *CurveModel) slopeAtEnd(i int) float64 {
	b, cc, d := c.coefficients(i)
	t := c.heights[i+1] - c.heights[i]
	return b + t*(2*cc+t*3*d)
}
