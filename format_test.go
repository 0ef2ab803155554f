package nonplanar

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatToSmallestString(t *testing.T) {
	assert.Equal(t, FloatToSmallestString(1024, 4), "1024")
	assert.Equal(t, FloatToSmallestString(300, 4), "300")
	assert.Equal(t, FloatToSmallestString(300, 0), "300")

	assert.Equal(t, FloatToSmallestString(12.5, 4), "12.5")
	assert.Equal(t, FloatToSmallestString(12.111111111111, 4), "12.1111")
	assert.Equal(t, FloatToSmallestString(1.499999999999, 4), "1.5")
	assert.Equal(t, FloatToSmallestString(123.12345555555, 4), "123.1235")

	assert.Equal(t, FloatToSmallestString(0.01, 4), ".01")
	assert.Equal(t, FloatToSmallestString(0.001, 4), ".001")
	assert.Equal(t, FloatToSmallestString(0.0001, 4), ".0001")
	assert.Equal(t, FloatToSmallestString(0.00001, 4), "0")
	assert.Equal(t, FloatToSmallestString(0.00005, 4), ".0001")
	assert.Equal(t, FloatToSmallestString(0.00001, 5), ".00001")

	assert.Equal(t, FloatToSmallestString(-0.5, 4), "-.5")
	assert.Equal(t, FloatToSmallestString(-12.26, 1), "-12.3")
	assert.Equal(t, FloatToSmallestString(-0.00001, 4), "0")
	assert.Equal(t, FloatToSmallestString(0, 3), "0")
}

func TestWriteMove(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, writeMove(&buf, LinearMove, 10.123456, 20, 1.23456, nil, nil))
	require.NoError(t, writeMove(&buf, RapidMove, 1, 2, 3, nil, num(9000.9)))
	require.NoError(t, writeMove(&buf, LinearMove, 1, 2, 0.3, num(0.0123456), num(1800)))

	assert.Equal(t, ""+
		"G1 X10.12346 Y20 Z1.235\n"+
		"G0 X1 Y2 Z3 F9000\n"+
		"G1 X1 Y2 Z.3 E.01235 F1800\n", buf.String())
}

func TestWriteVerticalMove(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, writeVerticalMove(&buf, 0.4, num(600)))
	require.NoError(t, writeVerticalMove(&buf, -0.4, nil))

	assert.Equal(t, ""+
		"G91\nG1 Z.4 F600\nG90\n"+
		"G91\nG1 Z-.4\nG90\n", buf.String())
}
