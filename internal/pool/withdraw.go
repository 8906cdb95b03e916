package pool

import (
	"fmt"
	"math"
)

// Withdrawal operations redeem pool shares for tokens. The redemption is
// expressed as redeemRatio = redeem/ShareSupply, which is validated against
// and subtracted from SharesIssued (see the package comment on units). All
// amounts out are computed before any balance is written, so a failed
// validation leaves the pool untouched.

// redeemRatio validates a share redemption and returns redeem/ShareSupply.
func (p *Pool) redeemRatio(redeem float64) (float64, error) {
	if redeem <= 0 {
		return 0, fmt.Errorf("%w: redeem amount %g must be positive", ErrInvalidArgument, redeem)
	}
	ratio := redeem / p.params.ShareSupply
	if ratio > p.sharesIssued {
		return 0, fmt.Errorf("%w: redeem amount %g exceeds the total shares issued", ErrInsufficientShares, redeem)
	}
	return ratio, nil
}

// WithdrawAll redeems shares for a proportional amount of every token:
// out[t] = balance[t] * (1 - (sharesIssued - redeemRatio)^(1/weight[t])).
func (p *Pool) WithdrawAll(redeem float64) (map[string]float64, error) {
	if !p.weighted {
		return nil, fmt.Errorf("%w: withdrawal requires assigned weights", ErrPreconditionFailed)
	}
	ratio, err := p.redeemRatio(redeem)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(p.tokens))
	for i := range p.tokens {
		out[i] = p.balances[i] * (1 - math.Pow(p.sharesIssued-ratio, 1/p.weights[i]))
	}
	for i := range p.tokens {
		p.balances[i] -= out[i]
	}
	p.sharesIssued -= ratio
	p.SetInvariant()

	p.logger.Debug().
		Float64("redeem", redeem).
		Float64("shares_issued", p.sharesIssued).
		Float64("invariant", p.invariant).
		Msg("withdraw_all applied")

	return p.amountsByToken(out), nil
}

// WithdrawOne redeems shares for a single token using the same formula
// restricted to that token. Requires assigned weights.
func (p *Pool) WithdrawOne(token string, redeem float64) (float64, error) {
	if !p.weighted {
		return 0, fmt.Errorf("%w: single-token withdrawal requires assigned weights", ErrPreconditionFailed)
	}
	i, ok := p.index[token]
	if !ok {
		return 0, fmt.Errorf("%w: unknown token %q", ErrInvalidArgument, token)
	}
	ratio, err := p.redeemRatio(redeem)
	if err != nil {
		return 0, err
	}

	amountOut := p.balances[i] * (1 - math.Pow(p.sharesIssued-ratio, 1/p.weights[i]))
	p.balances[i] -= amountOut
	p.sharesIssued -= ratio
	p.SetInvariant()

	p.logger.Debug().
		Str("token", token).
		Float64("redeem", redeem).
		Float64("amount_out", amountOut).
		Msg("withdraw_one applied")

	return amountOut, nil
}

// WithdrawAny redeems shares into a basket shaped by ratios, which must be
// proportional to the current balances within the pool's ratio tolerance:
// out[t] = ratios[t] * redeemRatio. Requires assigned weights.
func (p *Pool) WithdrawAny(redeem float64, ratios map[string]float64) (map[string]float64, error) {
	if !p.weighted {
		return nil, fmt.Errorf("%w: multi-token withdrawal requires assigned weights", ErrPreconditionFailed)
	}
	vec, err := p.resolveAmounts(ratios)
	if err != nil {
		return nil, err
	}
	if !p.checkRatio(vec, p.params.RatioTolerance) {
		return nil, fmt.Errorf("%w: the withdrawal ratio does not match the existing token balances ratio", ErrInvalidArgument)
	}
	ratio, err := p.redeemRatio(redeem)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(p.tokens))
	for i := range p.tokens {
		out[i] = vec[i] * ratio
	}
	for i := range p.tokens {
		p.balances[i] -= out[i]
	}
	p.sharesIssued -= ratio
	p.SetInvariant()

	p.logger.Debug().
		Float64("redeem", redeem).
		Float64("shares_issued", p.sharesIssued).
		Msg("withdraw_any applied")

	return p.amountsByToken(out), nil
}

// amountsByToken converts an index-keyed vector back to the map shape callers
// consume.
func (p *Pool) amountsByToken(vec []float64) map[string]float64 {
	out := make(map[string]float64, len(p.tokens))
	for i, token := range p.tokens {
		out[token] = vec[i]
	}
	return out
}
