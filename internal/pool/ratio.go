package pool

import "math"

// CheckDepositRatio reports whether a proposed multi-token vector is
// proportional to the pool's current composition: for every token, the
// token's share of the proposed total must be within tolerance (absolute) of
// its share of the current balances. Tolerance is a deliberate choice per
// call site; see config.RatioToleranceLoose and config.RatioToleranceTight.
//
// A pool holding nothing imposes no composition constraint, so any vector
// passes against zero total balances.
func (p *Pool) CheckDepositRatio(amounts map[string]float64, tolerance float64) (bool, error) {
	vec, err := p.resolveAmounts(amounts)
	if err != nil {
		return false, err
	}
	return p.checkRatio(vec, tolerance), nil
}

func (p *Pool) checkRatio(vec []float64, tolerance float64) bool {
	totalBalance := 0.0
	for _, balance := range p.balances {
		totalBalance += balance
	}
	if totalBalance == 0 {
		return true
	}

	totalIn := 0.0
	for _, amount := range vec {
		totalIn += amount
	}
	if totalIn == 0 {
		return false
	}

	for i := range vec {
		existingShare := p.balances[i] / totalBalance
		proposedShare := vec[i] / totalIn
		if math.Abs(existingShare-proposedShare) >= tolerance {
			return false
		}
	}
	return true
}
