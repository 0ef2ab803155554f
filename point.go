package nonplanar

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var threshold = 0.0001

// Point2D is a planar coordinate. It is used both for toolpath positions
// (x, y) and for curve-space pairs (height, offset).
type Point2D struct {
	X, Y float64
}

func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

func fromVec(v mgl64.Vec2) Point2D {
	return Point2D{X: v.X(), Y: v.Y()}
}

func (p Point2D) Vec() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (p Point2D) ApproxEqual(o Point2D) bool {
	return p.Vec().Sub(o.Vec()).Len() < threshold
}

// NormalPoint moves p by distance along the normal of a curve whose slope
// at p is derivative. Positive distances go to the left of the tangent.
func (p Point2D) NormalPoint(derivative, distance float64) Point2D {
	angle := math.Atan(derivative) + math.Pi/2
	dir := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
	return fromVec(p.Vec().Add(dir.Mul(distance)))
}
