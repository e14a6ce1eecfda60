package minimodem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan_Bell202(t *testing.T) {
	plan, err := NewPlan(48000, 1200, 2200, 200, 8)
	require.NoError(t, err)

	assert.Equal(t, 6, plan.BMark)
	assert.Equal(t, 11, plan.BSpace)
	assert.Equal(t, 11, plan.NFrameBits) // 8 data + prev-stop + start + stop
	assert.GreaterOrEqual(t, plan.FFTSize, 48000/200)
	assert.True(t, isPowerOfTwo(plan.FFTSize))
}

func TestNewPlan_RejectsNonPositive(t *testing.T) {
	_, err := NewPlan(0, 1200, 2200, 200, 8)
	assert.Error(t, err)

	_, err = NewPlan(48000, 0, 2200, 200, 8)
	assert.Error(t, err)

	_, err = NewPlan(48000, 1200, 2200, 0, 8)
	assert.Error(t, err)
}

func TestNewPlan_RejectsBinCollision(t *testing.T) {
	// mark and space both round to the same 1000Hz-wide bin
	_, err := NewPlan(48000, 1200, 1250, 1000, 8)
	assert.Error(t, err)
}

func TestNewPlan_RejectsBeyondNyquist(t *testing.T) {
	_, err := NewPlan(8000, 5000, 6000, 200, 8)
	assert.Error(t, err)
}

func TestNewPlan_RejectsBadDataBits(t *testing.T) {
	_, err := NewPlan(48000, 1200, 2200, 200, 6)
	assert.Error(t, err)
}

func TestSetTonesByBandshift(t *testing.T) {
	plan, err := NewPlan(48000, 1585, 1415, 10, 5)
	require.NoError(t, err)

	require.NoError(t, plan.SetTonesByBandshift(159, -17))
	assert.Equal(t, 159, plan.BMark)
	assert.Equal(t, 142, plan.BSpace)
	assert.Equal(t, 1590.0, plan.MarkFreq)
	assert.Equal(t, 1420.0, plan.SpaceFreq)
}

func TestSetTonesByBandshift_RejectsNegativeSpaceBin(t *testing.T) {
	plan, err := NewPlan(48000, 1585, 1415, 10, 5)
	require.NoError(t, err)

	err = plan.SetTonesByBandshift(1, -5)
	assert.Error(t, err)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
