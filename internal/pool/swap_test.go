package pool

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwapScenario(t *testing.T) {
	p := newTestPool(t)
	before := p.Status()

	amountIn := 0.1
	out, err := p.Swap("X", "Y", amountIn)
	require.NoError(t, err)

	expected := before.Balances["Y"] * (1 - math.Pow(
		(before.Balances["X"]-amountIn)/before.Balances["X"],
		before.Weights["X"]/before.Weights["Y"],
	))
	require.InEpsilon(t, expected, out, 1e-12)

	after := p.Status()
	require.InDelta(t, before.Balances["X"]-amountIn, after.Balances["X"], 1e-12)
	require.InDelta(t, before.Balances["Y"]+expected, after.Balances["Y"], 1e-12)
	require.InDelta(t, before.Balances["Z"], after.Balances["Z"], 1e-12)
}

func TestSwapInsufficientBalance(t *testing.T) {
	p := newTestPool(t)

	_, err := p.Swap("X", "Y", 1.5)
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestSwapValidation(t *testing.T) {
	unweighted, err := New([]string{"X", "Y"})
	require.NoError(t, err)
	_, err = unweighted.Swap("X", "Y", 0.1)
	require.ErrorIs(t, err, ErrPreconditionFailed)

	p := newTestPool(t)

	_, err = p.Swap("W", "Y", 0.1)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = p.Swap("X", "W", 0.1)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = p.Swap("X", "X", 0.1)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = p.Swap("X", "Y", 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = p.Swap("X", "Y", -1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSwapRoundTripNeverGains(t *testing.T) {
	p := newTestPool(t)

	amountIn := 0.1
	outY, err := p.Swap("X", "Y", amountIn)
	require.NoError(t, err)

	backX, err := p.Swap("Y", "X", outY)
	require.NoError(t, err)

	require.LessOrEqual(t, backX, amountIn)
}

func TestSwapRecomputesInvariant(t *testing.T) {
	p := newTestPool(t)
	before := p.Status().Invariant

	_, err := p.Swap("X", "Y", 0.1)
	require.NoError(t, err)

	after := p.Status().Invariant
	require.NotZero(t, after)
	require.LessOrEqual(t, after, before)
}
