/*

Package pool implements a weighted constant-value invariant pool: per-token
balances with fixed proportional weights, bound by the value function
k = prod(balance[t]^weight[t]). It computes deposit, withdrawal, swap and
equalize deltas for an embedding system; it never moves funds itself, and it
must be invoked from a single goroutine per Pool (the host serializes).

Two accounting quirks of the reference pool economics are preserved verbatim
and should not be "fixed" here without product sign-off:

  - Deposit operations return a minted-share estimate but leave SharesIssued
    untouched; only withdrawals adjust it.
  - FirstDepositShares is an absolute share count while withdrawals subtract
    redeem/ShareSupply, a ratio, from the same field.

*/

package pool

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/infinity-amm/ipool/internal/config"
	"github.com/infinity-amm/ipool/internal/logger"
	"github.com/infinity-amm/ipool/internal/types"
)

// Pool is the stateful aggregate of token balances, weights and share
// accounting. Balances and weights are keyed by a stable token index assigned
// at construction; map-shaped caller input is resolved through that index at
// the boundary and never aliased afterwards.
type Pool struct {
	tokens   []string
	index    map[string]int
	weights  []float64
	balances []float64

	sharesIssued float64
	invariant    float64
	weighted     bool

	params types.PoolParameters
	logger zerolog.Logger
}

// New creates an unweighted pool over the given token identifiers using the
// default engine parameters. Deposits, withdrawals and swaps stay disabled
// until Initialize runs.
func New(tokens []string) (*Pool, error) {
	return NewWithParameters(tokens, config.DefaultPoolParameters)
}

// NewWithParameters creates an unweighted pool with injected engine constants.
func NewWithParameters(tokens []string, params types.PoolParameters) (*Pool, error) {
	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: pool requires at least two tokens, got %d", ErrInvalidArgument, len(tokens))
	}
	if params.ShareSupply <= 0 || params.FirstDepositShares <= 0 || params.RatioTolerance <= 0 {
		return nil, fmt.Errorf("%w: pool parameters must all be positive", ErrInvalidArgument)
	}

	index := make(map[string]int, len(tokens))
	ordered := make([]string, len(tokens))
	for i, token := range tokens {
		if token == "" {
			return nil, fmt.Errorf("%w: token identifier at position %d is empty", ErrInvalidArgument, i)
		}
		if _, dup := index[token]; dup {
			return nil, fmt.Errorf("%w: duplicate token %q", ErrInvalidArgument, token)
		}
		index[token] = i
		ordered[i] = token
	}

	return &Pool{
		tokens:   ordered,
		index:    index,
		weights:  make([]float64, len(tokens)),
		balances: make([]float64, len(tokens)),
		params:   params,
		logger:   logger.GetForComponent("pool_engine"),
	}, nil
}

// Initialize performs the first deposit: it sets balances, derives each
// token's weight as its share of the total deposited value, and mints the
// fixed first-depositor share count. It may run exactly once.
func (p *Pool) Initialize(amounts map[string]float64) error {
	if p.weighted {
		return fmt.Errorf("%w: pool is already initialized", ErrPreconditionFailed)
	}

	vec, err := p.resolveAmounts(amounts)
	if err != nil {
		return err
	}

	total := 0.0
	for i, amount := range vec {
		if amount <= 0 {
			return fmt.Errorf("%w: initial balance of %s is %g, must be greater than zero", ErrInvalidArgument, p.tokens[i], amount)
		}
		total += amount
	}

	copy(p.balances, vec)
	for i := range p.weights {
		p.weights[i] = vec[i] / total
	}
	p.sharesIssued = p.params.FirstDepositShares
	p.weighted = true
	p.SetInvariant()

	p.logger.Info().
		Strs("tokens", p.tokens).
		Float64("shares_issued", p.sharesIssued).
		Float64("invariant", p.invariant).
		Msg("Pool initialized")

	return nil
}

// Weighted reports whether Initialize has run and weights are assigned.
func (p *Pool) Weighted() bool {
	return p.weighted
}

// SetInvariant recomputes the cached value function k = prod(balance^weight)
// and returns it. Before initialization it leaves the zero value untouched.
func (p *Pool) SetInvariant() float64 {
	if !p.weighted {
		return p.invariant
	}
	k := 1.0
	for i := range p.tokens {
		k *= math.Pow(p.balances[i], p.weights[i])
	}
	p.invariant = k
	return p.invariant
}

// SpotPrice returns the instantaneous marginal rate of asset priced in
// currency: (balance_a/weight_a) / (balance_c/weight_c).
func (p *Pool) SpotPrice(asset, currency string) (float64, error) {
	if !p.weighted {
		return 0, fmt.Errorf("%w: spot price requires assigned weights", ErrPreconditionFailed)
	}
	a, ok := p.index[asset]
	if !ok {
		return 0, fmt.Errorf("%w: unknown token %q", ErrInvalidArgument, asset)
	}
	c, ok := p.index[currency]
	if !ok {
		return 0, fmt.Errorf("%w: unknown token %q", ErrInvalidArgument, currency)
	}

	return (p.balances[a] / p.weights[a]) / (p.balances[c] / p.weights[c]), nil
}

// Status returns a read-only snapshot of the pool's externally visible state.
func (p *Pool) Status() types.PoolStatus {
	weights := make(map[string]float64, len(p.tokens))
	balances := make(map[string]float64, len(p.tokens))
	for i, token := range p.tokens {
		weights[token] = p.weights[i]
		balances[token] = p.balances[i]
	}

	return types.PoolStatus{
		Tokens:       append([]string(nil), p.tokens...),
		Weights:      weights,
		Balances:     balances,
		ShareSupply:  p.params.ShareSupply,
		SharesIssued: p.sharesIssued,
		Invariant:    p.invariant,
	}
}

// Tokens returns the pool's ordered token identifiers.
func (p *Pool) Tokens() []string {
	return append([]string(nil), p.tokens...)
}

// resolveAmounts validates that a map-shaped vector supplies exactly the
// pool's token set and returns it keyed by token index.
func (p *Pool) resolveAmounts(amounts map[string]float64) ([]float64, error) {
	if len(amounts) != len(p.tokens) {
		return nil, fmt.Errorf("%w: amount keys must match the pool token set, got %d entries for %d tokens", ErrInvalidArgument, len(amounts), len(p.tokens))
	}
	vec := make([]float64, len(p.tokens))
	for token, amount := range amounts {
		i, ok := p.index[token]
		if !ok {
			return nil, fmt.Errorf("%w: unknown token %q", ErrInvalidArgument, token)
		}
		vec[i] = amount
	}
	return vec, nil
}
