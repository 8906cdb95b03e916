package pool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/infinity-amm/ipool/internal/config"
)

func TestDepositAllProportional(t *testing.T) {
	p := newTestPool(t)
	before := p.Status()

	amounts := map[string]float64{"X": 0.1, "Y": 0.2, "Z": 0.3}
	shares, err := p.DepositAll(amounts)
	require.NoError(t, err)

	after := p.Status()
	for token, amount := range amounts {
		require.InDelta(t, before.Balances[token]+amount, after.Balances[token], 1e-12)
	}

	// Share estimate is priced off the first token's post-deposit balance.
	require.InEpsilon(t, 0.1*before.ShareSupply/after.Balances["X"], shares, 1e-12)
	require.Greater(t, after.Invariant, before.Invariant)
}

func TestDepositAllRejectsNonPositiveAmount(t *testing.T) {
	p := newTestPool(t)

	_, err := p.DepositAll(map[string]float64{"X": 0.1, "Y": 0.0, "Z": 0.3})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = p.DepositAll(map[string]float64{"X": 0.1, "Y": -0.2, "Z": 0.3})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDepositAllRejectsDisproportionateVector(t *testing.T) {
	p := newTestPool(t)
	before := p.Status()

	_, err := p.DepositAll(map[string]float64{"X": 0.2, "Y": 0.2, "Z": 0.3})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// Failed validation leaves the pool untouched.
	require.Equal(t, before, p.Status())
}

func TestDepositAllTightToleranceRejectsDrift(t *testing.T) {
	params := config.DefaultPoolParameters
	params.RatioTolerance = config.RatioToleranceTight

	p, err := NewWithParameters([]string{"X", "Y", "Z"}, params)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(map[string]float64{"X": 1.0, "Y": 2.0, "Z": 3.0}))

	_, err = p.DepositAll(map[string]float64{"X": 0.1 + 3e-9, "Y": 0.2, "Z": 0.3})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDepositAllBeforeInitialize(t *testing.T) {
	p, err := New([]string{"X", "Y", "Z"})
	require.NoError(t, err)

	// The very first all-token deposit is allowed against an empty pool; it
	// does not assign weights or shares, only balances.
	shares, err := p.DepositAll(map[string]float64{"X": 1.0, "Y": 2.0, "Z": 3.0})
	require.NoError(t, err)
	require.InEpsilon(t, 1.0*config.DefaultPoolParameters.ShareSupply/1.0, shares, 1e-12)

	status := p.Status()
	require.False(t, p.Weighted())
	require.Zero(t, status.Invariant)
	require.Zero(t, status.SharesIssued)
	require.InDelta(t, 2.0, status.Balances["Y"], 1e-12)
}

func TestDepositOne(t *testing.T) {
	p := newTestPool(t)
	before := p.Status()

	shares, err := p.DepositOne(map[string]float64{"X": 0.5, "Y": 0, "Z": 0})
	require.NoError(t, err)

	after := p.Status()
	require.InDelta(t, before.Balances["X"]+0.5, after.Balances["X"], 1e-12)
	require.InEpsilon(t, 0.5*before.ShareSupply/after.Balances["X"], shares, 1e-12)
	require.Greater(t, after.Invariant, before.Invariant)
}

func TestDepositOneValidation(t *testing.T) {
	unweighted, err := New([]string{"X", "Y", "Z"})
	require.NoError(t, err)
	_, err = unweighted.DepositOne(map[string]float64{"X": 0.5, "Y": 0, "Z": 0})
	require.ErrorIs(t, err, ErrPreconditionFailed)

	p := newTestPool(t)

	_, err = p.DepositOne(map[string]float64{"X": 0.5, "Y": 0.5, "Z": 0})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = p.DepositOne(map[string]float64{"X": 0, "Y": 0, "Z": 0})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = p.DepositOne(map[string]float64{"X": -0.5, "Y": 0, "Z": 0})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDepositAny(t *testing.T) {
	p := newTestPool(t)
	before := p.Status()

	amounts := map[string]float64{"X": 0.05, "Y": 0.1, "Z": 0.15}
	shares, err := p.DepositAny(amounts)
	require.NoError(t, err)

	after := p.Status()
	for token, amount := range amounts {
		require.InDelta(t, before.Balances[token]+amount, after.Balances[token], 1e-12)
	}
	require.InEpsilon(t, 0.05*before.ShareSupply/after.Balances["X"], shares, 1e-12)
}

func TestDepositAnyValidation(t *testing.T) {
	unweighted, err := New([]string{"X", "Y", "Z"})
	require.NoError(t, err)
	_, err = unweighted.DepositAny(map[string]float64{"X": 0.05, "Y": 0.1, "Z": 0.15})
	require.ErrorIs(t, err, ErrPreconditionFailed)

	p := newTestPool(t)
	_, err = p.DepositAny(map[string]float64{"X": 0.15, "Y": 0.1, "Z": 0.05})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDepositsDoNotChangeSharesIssued(t *testing.T) {
	p := newTestPool(t)
	issued := p.Status().SharesIssued

	_, err := p.DepositAll(map[string]float64{"X": 0.1, "Y": 0.2, "Z": 0.3})
	require.NoError(t, err)
	_, err = p.DepositOne(map[string]float64{"X": 0.5, "Y": 0, "Z": 0})
	require.NoError(t, err)
	_, err = p.DepositAny(p.Status().Balances)
	require.NoError(t, err)

	require.Equal(t, issued, p.Status().SharesIssued)
}
