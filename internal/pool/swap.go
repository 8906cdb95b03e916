package pool

import (
	"fmt"
	"math"
)

// Swap exchanges amountIn of tokenIn for tokenOut along the invariant curve:
//
//	out = balance[out] * (1 - ((balance[in] - amountIn)/balance[in])^(weight[in]/weight[out]))
//
// This is the one operation whose output holds k exactly constant for the
// traded pair, up to floating-point drift. The input token's balance is
// decremented by amountIn and the output token's balance incremented by the
// computed amount.
func (p *Pool) Swap(tokenIn, tokenOut string, amountIn float64) (float64, error) {
	if !p.weighted {
		return 0, fmt.Errorf("%w: swapping requires assigned weights", ErrPreconditionFailed)
	}
	in, ok := p.index[tokenIn]
	if !ok {
		return 0, fmt.Errorf("%w: unknown token %q", ErrInvalidArgument, tokenIn)
	}
	out, ok := p.index[tokenOut]
	if !ok {
		return 0, fmt.Errorf("%w: unknown token %q", ErrInvalidArgument, tokenOut)
	}
	if in == out {
		return 0, fmt.Errorf("%w: cannot swap %s for itself", ErrInvalidArgument, tokenIn)
	}
	if amountIn <= 0 {
		return 0, fmt.Errorf("%w: amount in %g must be positive", ErrInvalidArgument, amountIn)
	}
	if p.balances[in] < amountIn {
		return 0, fmt.Errorf("%w: %s balance %g is below amount in %g", ErrInsufficientBalance, tokenIn, p.balances[in], amountIn)
	}

	amountOut := p.balances[out] * (1 - math.Pow((p.balances[in]-amountIn)/p.balances[in], p.weights[in]/p.weights[out]))
	p.balances[in] -= amountIn
	p.balances[out] += amountOut
	p.SetInvariant()

	p.logger.Debug().
		Str("token_in", tokenIn).
		Str("token_out", tokenOut).
		Float64("amount_in", amountIn).
		Float64("amount_out", amountOut).
		Msg("swap applied")

	return amountOut, nil
}
