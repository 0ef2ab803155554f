package nonplanar

import (
	"math"
)

// DefaultImplausibleDelta is how far, in mm, a transformed height may move
// away from the planar height before the move is rejected.
const DefaultImplausibleDelta = 50.0

// Transformer maps planar (x, z) moves onto a CurveModel.
type Transformer struct {
	curve            *CurveModel
	table            *ArcLengthTable
	layerHeight      float64
	maxAngle         float64 // radians
	implausibleDelta float64
}

func NewTransformer(curve *CurveModel, table *ArcLengthTable, layerHeight, maxAngleDegrees, implausibleDelta float64) *Transformer {
	return &Transformer{
		curve:            curve,
		table:            table,
		layerHeight:      layerHeight,
		maxAngle:         radians(maxAngleDegrees),
		implausibleDelta: implausibleDelta,
	}
}

// Transformed is the result of bending one move.
//
// Point.X is the new height and Point.Y the new horizontal offset, so the
// pair replaces the planar (Z, X) of the move.
type Transformed struct {
	Point           Point2D
	CorrectedHeight float64
	Angle           float64
	HeightDelta     float64
	ExtrusionScale  float64

	// Implausible moves must be emitted untransformed.
	Implausible bool
	Diagnostics []Diagnostic
}

func (t *Transformer) Curve() *CurveModel {
	return t.curve
}

func (t *Transformer) Table() *ArcLengthTable {
	return t.table
}

func (t *Transformer) LayerHeight() float64 {
	return t.layerHeight
}

// Transform bends the move to x at physical height z, coming from lastX.
// The only error is a height beyond the end of the curve.
func (t *Transformer) Transform(z, x, lastX float64) (Transformed, error) {
	corrected, err := t.table.HeightForArcLength(z)
	if err != nil {
		return Transformed{}, err
	}

	origin := t.curve.OriginOffset()
	midpointX := lastX + (x-lastX)/2
	distToSpline := midpointX - origin

	derivative := t.curve.DerivativeAt(corrected)
	angleThisLayer := math.Atan(derivative)
	angleLastLayer := math.Atan(t.curve.DerivativeAt(corrected - t.layerHeight))
	heightDelta := -math.Sin(angleThisLayer-angleLastLayer) * distToSpline

	onCurve := Pt(corrected, t.curve.ValueAt(corrected))

	res := Transformed{
		Point:           onCurve.NormalPoint(derivative, x-origin),
		CorrectedHeight: corrected,
		Angle:           angleThisLayer,
		HeightDelta:     heightDelta,
		ExtrusionScale:  (t.layerHeight + heightDelta) / t.layerHeight,
	}

	if res.Point.X <= 0 {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: BelowPlatform, Height: z})
	}
	if res.Point.X < 0 || math.Abs(res.Point.X-z) > t.implausibleDelta {
		res.Implausible = true
		res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: ImplausibleMove, Height: z})
		return res, nil
	}
	if t.layerHeight+heightDelta < 0 {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: SelfIntersection, Height: z})
	}
	if math.Abs(angleThisLayer) > t.maxAngle {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: SteepAngle, Height: z, Angle: angleThisLayer})
	}
	return res, nil
}
