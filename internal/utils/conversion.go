/*
This file converts between ledger-style integer base units and the float64
quantities the pool engine computes with. Hosts account in math.Int amounts
with a per-token precision; the engine sees real quantities.
*/

package utils

import (
	"errors"
	"fmt"
	"math"

	sdkmath "cosmossdk.io/math"
)

var (
	ErrInvalidPrecision = errors.New("precision is invalid")
	ErrAmountNil        = errors.New("amount is nil")
	ErrAmountNegative   = errors.New("amount is negative")
	ErrNotFinite        = errors.New("value is not finite")
	ErrConversionFailed = errors.New("conversion failed")
)

// BaseUnitsToQuantity converts an integer base-unit amount to an engine
// quantity, dividing by 10^precision.
func BaseUnitsToQuantity(amount sdkmath.Int, precision int) (float64, error) {
	if precision < 0 || precision > 18 {
		return 0, fmt.Errorf("%w: %d (must be between 0 and 18)", ErrInvalidPrecision, precision)
	}
	if amount.IsNil() {
		return 0, ErrAmountNil
	}
	if amount.IsNegative() {
		return 0, ErrAmountNegative
	}

	factor := sdkmath.LegacyNewDec(10).Power(uint64(precision))
	quantity, err := sdkmath.LegacyNewDecFromInt(amount).Quo(factor).Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return 0, fmt.Errorf("%w: result is %f", ErrNotFinite, quantity)
	}

	return quantity, nil
}

// QuantityToBaseUnits converts an engine quantity back to integer base units,
// truncating anything below one base unit.
func QuantityToBaseUnits(quantity float64, precision int) (sdkmath.Int, error) {
	if precision < 0 || precision > 18 {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %d (must be between 0 and 18)", ErrInvalidPrecision, precision)
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: amount is %f", ErrNotFinite, quantity)
	}
	if quantity < 0 {
		return sdkmath.ZeroInt(), ErrAmountNegative
	}
	if quantity == 0 {
		return sdkmath.ZeroInt(), nil
	}

	// String conversion sidesteps binary float representation issues.
	amountStr := fmt.Sprintf(fmt.Sprintf("%%.%df", precision), quantity)
	dec, err := sdkmath.LegacyNewDecFromStr(amountStr)
	if err != nil {
		return sdkmath.ZeroInt(), fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	factor := sdkmath.LegacyNewDec(10).Power(uint64(precision))
	result := dec.Mul(factor).TruncateInt()
	if result.IsNegative() {
		return sdkmath.ZeroInt(), ErrAmountNegative
	}

	return result, nil
}
