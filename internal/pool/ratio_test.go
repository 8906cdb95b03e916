package pool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/infinity-amm/ipool/internal/config"
)

func TestCheckDepositRatioProportionalVector(t *testing.T) {
	p := newTestPool(t)

	ok, err := p.CheckDepositRatio(map[string]float64{"X": 0.1, "Y": 0.2, "Z": 0.3}, config.RatioToleranceTight)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckDepositRatioDoubledTokenShare(t *testing.T) {
	p := newTestPool(t)

	ok, err := p.CheckDepositRatio(map[string]float64{"X": 0.2, "Y": 0.2, "Z": 0.3}, config.RatioToleranceTight)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCheckDepositRatioToleranceBoundary(t *testing.T) {
	p := newTestPool(t)

	// A share drift of a few parts per billion passes loose and fails tight.
	drifted := map[string]float64{"X": 0.1 + 3e-9, "Y": 0.2, "Z": 0.3}

	ok, err := p.CheckDepositRatio(drifted, config.RatioToleranceLoose)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = p.CheckDepositRatio(drifted, config.RatioToleranceTight)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCheckDepositRatioEmptyPoolIsUnconstrained(t *testing.T) {
	p, err := New([]string{"X", "Y", "Z"})
	require.NoError(t, err)

	ok, err := p.CheckDepositRatio(map[string]float64{"X": 5.0, "Y": 1.0, "Z": 0.1}, config.RatioToleranceTight)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckDepositRatioZeroVector(t *testing.T) {
	p := newTestPool(t)

	ok, err := p.CheckDepositRatio(map[string]float64{"X": 0, "Y": 0, "Z": 0}, config.RatioToleranceLoose)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCheckDepositRatioUnknownToken(t *testing.T) {
	p := newTestPool(t)

	_, err := p.CheckDepositRatio(map[string]float64{"X": 0.1, "Y": 0.2, "W": 0.3}, config.RatioToleranceLoose)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
