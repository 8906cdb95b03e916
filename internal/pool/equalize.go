package pool

import (
	"fmt"
	"math"
)

// Equalize models a combined deposit-and-rebalance: the caller proposes adding
// inputs while requesting an output basket shaped like ratioOut, and the pool
// computes how much of each token it would release. Both vectors must be
// proportional to the current balances within the pool's ratio tolerance.
//
// With totalWeightIn = sum(weight[t] * inputs[t]):
//
//	out[t] = balance[t] * ((totalWeightIn/weight[t])^(1/weight[t]) - 1)
//
// ratioOut gates the operation through the proportionality check but does not
// scale the output magnitude.
func (p *Pool) Equalize(inputs, ratioOut map[string]float64) (map[string]float64, error) {
	if !p.weighted {
		return nil, fmt.Errorf("%w: equalizing requires assigned weights", ErrPreconditionFailed)
	}
	vecIn, err := p.resolveAmounts(inputs)
	if err != nil {
		return nil, err
	}
	vecRatio, err := p.resolveAmounts(ratioOut)
	if err != nil {
		return nil, err
	}
	if !p.checkRatio(vecIn, p.params.RatioTolerance) || !p.checkRatio(vecRatio, p.params.RatioTolerance) {
		return nil, fmt.Errorf("%w: the input or output ratio does not match the existing token balances ratio", ErrInvalidArgument)
	}

	totalWeightIn := 0.0
	for i := range p.tokens {
		totalWeightIn += p.weights[i] * vecIn[i]
	}

	out := make([]float64, len(p.tokens))
	for i := range p.tokens {
		out[i] = p.balances[i] * (math.Pow(totalWeightIn/p.weights[i], 1/p.weights[i]) - 1)
	}
	for i := range p.tokens {
		p.balances[i] += vecIn[i]
	}
	p.SetInvariant()

	p.logger.Debug().
		Float64("total_weight_in", totalWeightIn).
		Float64("invariant", p.invariant).
		Msg("equalize applied")

	return p.amountsByToken(out), nil
}
