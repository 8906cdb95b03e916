/*

This file contains the default numeric parameters for the invariant pool engine.

The share constants come from the reference pool economics: a hard supply
ceiling and a fixed mint to the first depositor. The ratio tolerances are the
two sanctioned strictness levels for the proportionality check; every call site
picks one explicitly.

*/

package config

import (
	"github.com/infinity-amm/ipool/internal/types"
)

const (
	// RatioToleranceLoose is the per-token absolute tolerance used by the
	// multi-token deposit, withdrawal and equalize operations.
	RatioToleranceLoose = 1e-6

	// RatioToleranceTight is the strict tolerance for callers that cannot
	// accept any drift in pool composition.
	RatioToleranceTight = 1e-9
)

// DefaultPoolParameters provides the baseline engine constants. These are used
// whenever the embedding system does not inject its own.
var DefaultPoolParameters = types.PoolParameters{
	// Maximum supply of pool shares.
	ShareSupply: 1e15,

	// Shares issued to the first depositor.
	FirstDepositShares: 1e8,

	RatioTolerance: RatioToleranceLoose,
}
