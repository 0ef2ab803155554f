package nonplanar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointNormalPoint(t *testing.T) {
	p := Pt(1, 2)
	assert.True(t, p.NormalPoint(0, 5).ApproxEqual(Pt(1, 7)))
	assert.True(t, p.NormalPoint(0, -5).ApproxEqual(Pt(1, -3)))
	assert.True(t, p.NormalPoint(1, math.Sqrt2).ApproxEqual(Pt(0, 3)))
	assert.True(t, p.NormalPoint(-1, math.Sqrt2).ApproxEqual(Pt(2, 3)))
	assert.Equal(t, p, p.NormalPoint(123, 0))
}

func TestPointApproxEqual(t *testing.T) {
	assert.True(t, Pt(1, 1).ApproxEqual(Pt(1.00001, 1)))
	assert.False(t, Pt(1, 1).ApproxEqual(Pt(1.001, 1)))
	assert.Equal(t, "(1.5, -2)", Pt(1.5, -2).String())
}
