package pool

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/infinity-amm/ipool/internal/config"
)

// newTestPool returns a weighted X/Y/Z pool initialized with balances 1, 2, 3,
// which yields weights 1/6, 1/3, 1/2.
func newTestPool(t *testing.T) *Pool {
	t.Helper()
	p, err := New([]string{"X", "Y", "Z"})
	require.NoError(t, err)
	require.NoError(t, p.Initialize(map[string]float64{"X": 1.0, "Y": 2.0, "Z": 3.0}))
	return p
}

func TestNewValidation(t *testing.T) {
	_, err := New([]string{"X"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New([]string{"X", "X"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New([]string{"X", ""})
	require.ErrorIs(t, err, ErrInvalidArgument)

	p, err := New([]string{"X", "Y"})
	require.NoError(t, err)
	require.False(t, p.Weighted())
}

func TestInitializeAssignsProportionalWeights(t *testing.T) {
	p := newTestPool(t)

	status := p.Status()
	require.InDelta(t, 1.0/6.0, status.Weights["X"], 1e-12)
	require.InDelta(t, 2.0/6.0, status.Weights["Y"], 1e-12)
	require.InDelta(t, 3.0/6.0, status.Weights["Z"], 1e-12)

	sum := 0.0
	for _, w := range status.Weights {
		sum += w
	}
	require.InDelta(t, 1.0, sum, 1e-12)

	require.Equal(t, config.DefaultPoolParameters.FirstDepositShares, status.SharesIssued)
	require.True(t, p.Weighted())
	require.Greater(t, status.Invariant, 0.0)
}

func TestInitializeValidation(t *testing.T) {
	p, err := New([]string{"X", "Y", "Z"})
	require.NoError(t, err)

	err = p.Initialize(map[string]float64{"X": 1.0, "Y": 2.0})
	require.ErrorIs(t, err, ErrInvalidArgument)

	err = p.Initialize(map[string]float64{"X": 1.0, "Y": 2.0, "W": 3.0})
	require.ErrorIs(t, err, ErrInvalidArgument)

	err = p.Initialize(map[string]float64{"X": 1.0, "Y": 2.0, "Z": 0.0})
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.False(t, p.Weighted())

	require.NoError(t, p.Initialize(map[string]float64{"X": 1.0, "Y": 2.0, "Z": 3.0}))

	err = p.Initialize(map[string]float64{"X": 1.0, "Y": 2.0, "Z": 3.0})
	require.ErrorIs(t, err, ErrPreconditionFailed)
}

func TestSpotPriceScenario(t *testing.T) {
	p := newTestPool(t)

	// (1/(1/6)) / (2/(2/6)) = 6/6
	price, err := p.SpotPrice("X", "Y")
	require.NoError(t, err)
	require.InDelta(t, 1.0, price, 1e-12)
}

func TestSpotPriceReciprocal(t *testing.T) {
	p := newTestPool(t)

	pairs := [][2]string{{"X", "Y"}, {"X", "Z"}, {"Y", "Z"}}
	for _, pair := range pairs {
		ab, err := p.SpotPrice(pair[0], pair[1])
		require.NoError(t, err)
		ba, err := p.SpotPrice(pair[1], pair[0])
		require.NoError(t, err)
		require.InEpsilon(t, 1/ba, ab, 1e-12)
	}
}

func TestSpotPriceErrors(t *testing.T) {
	unweighted, err := New([]string{"X", "Y"})
	require.NoError(t, err)
	_, err = unweighted.SpotPrice("X", "Y")
	require.ErrorIs(t, err, ErrPreconditionFailed)

	p := newTestPool(t)
	_, err = p.SpotPrice("X", "W")
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = p.SpotPrice("W", "X")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSetInvariantMatchesValueFunction(t *testing.T) {
	p := newTestPool(t)

	status := p.Status()
	expected := 1.0
	for _, token := range status.Tokens {
		expected *= math.Pow(status.Balances[token], status.Weights[token])
	}
	require.InEpsilon(t, expected, p.SetInvariant(), 1e-12)
}

func TestSetInvariantBeforeInitialize(t *testing.T) {
	p, err := New([]string{"X", "Y"})
	require.NoError(t, err)
	require.Zero(t, p.SetInvariant())
}

func TestStatusSnapshotDoesNotAliasState(t *testing.T) {
	p := newTestPool(t)

	status := p.Status()
	status.Balances["X"] = 999
	status.Weights["X"] = 999
	status.Tokens[0] = "tampered"

	fresh := p.Status()
	require.InDelta(t, 1.0, fresh.Balances["X"], 1e-12)
	require.InDelta(t, 1.0/6.0, fresh.Weights["X"], 1e-12)
	require.Equal(t, "X", fresh.Tokens[0])
}
