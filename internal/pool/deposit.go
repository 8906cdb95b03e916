package pool

import "fmt"

// Deposit operations add liquidity and return the share amount the pool would
// mint for it. The estimate for the multi-token variants is priced off the
// first token's post-deposit balance. None of the variants add the estimate
// to SharesIssued (see the package comment).

// DepositAll deposits an amount of every token. The vector must be strictly
// positive and proportional to the current balances within the pool's ratio
// tolerance. It is the one operation permitted before Initialize, against
// whatever balances are present.
func (p *Pool) DepositAll(amounts map[string]float64) (float64, error) {
	vec, err := p.resolveAmounts(amounts)
	if err != nil {
		return 0, err
	}
	for i, amount := range vec {
		if amount <= 0 {
			return 0, fmt.Errorf("%w: amount in %s quantity %g must be positive", ErrInvalidArgument, p.tokens[i], amount)
		}
	}
	if !p.checkRatio(vec, p.params.RatioTolerance) {
		return 0, fmt.Errorf("%w: the deposit ratio does not match the existing token balances ratio", ErrInvalidArgument)
	}

	for i := range vec {
		p.balances[i] += vec[i]
	}
	sharesToIssue := vec[0] * p.params.ShareSupply / p.balances[0]
	if p.weighted {
		p.SetInvariant()
	}

	p.logger.Debug().
		Float64("shares_to_issue", sharesToIssue).
		Float64("invariant", p.invariant).
		Msg("deposit_all applied")

	return sharesToIssue, nil
}

// DepositOne deposits a single token: exactly one entry of the vector may be
// non-zero, and it must be positive. Requires assigned weights.
func (p *Pool) DepositOne(amounts map[string]float64) (float64, error) {
	if !p.weighted {
		return 0, fmt.Errorf("%w: single-token deposit requires assigned weights", ErrPreconditionFailed)
	}
	vec, err := p.resolveAmounts(amounts)
	if err != nil {
		return 0, err
	}

	target := -1
	for i, amount := range vec {
		if amount == 0 {
			continue
		}
		if target >= 0 {
			return 0, fmt.Errorf("%w: exactly one entry may be non-zero", ErrInvalidArgument)
		}
		target = i
	}
	if target < 0 {
		return 0, fmt.Errorf("%w: exactly one entry may be non-zero", ErrInvalidArgument)
	}
	if vec[target] < 0 {
		return 0, fmt.Errorf("%w: deposited amount of %s is %g, must be positive", ErrInvalidArgument, p.tokens[target], vec[target])
	}

	p.balances[target] += vec[target]
	sharesToIssue := vec[target] * p.params.ShareSupply / p.balances[target]
	p.SetInvariant()

	p.logger.Debug().
		Str("token", p.tokens[target]).
		Float64("amount_in", vec[target]).
		Float64("shares_to_issue", sharesToIssue).
		Msg("deposit_one applied")

	return sharesToIssue, nil
}

// DepositAny deposits an arbitrary vector, which must still be proportional to
// the current balances within the pool's ratio tolerance. Requires assigned
// weights.
func (p *Pool) DepositAny(amounts map[string]float64) (float64, error) {
	if !p.weighted {
		return 0, fmt.Errorf("%w: multi-token deposit requires assigned weights", ErrPreconditionFailed)
	}
	vec, err := p.resolveAmounts(amounts)
	if err != nil {
		return 0, err
	}
	if !p.checkRatio(vec, p.params.RatioTolerance) {
		return 0, fmt.Errorf("%w: the deposit ratio does not match the existing token balances ratio", ErrInvalidArgument)
	}

	for i := range vec {
		p.balances[i] += vec[i]
	}
	sharesToIssue := vec[0] * p.params.ShareSupply / p.balances[0]
	p.SetInvariant()

	p.logger.Debug().
		Float64("shares_to_issue", sharesToIssue).
		Float64("invariant", p.invariant).
		Msg("deposit_any applied")

	return sharesToIssue, nil
}
