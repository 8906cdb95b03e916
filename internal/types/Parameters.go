/*

PoolParameters are the numeric constants an invariant pool is constructed with.
They are injected at construction rather than hard-coded at call sites so that
an embedding system can run pools with different share economics side by side.

*/

package types

type PoolParameters struct {
	// ShareSupply is the fixed ceiling on pool shares in existence.
	ShareSupply float64 `json:"share_supply"`

	// FirstDepositShares is the absolute share count minted to the first depositor.
	FirstDepositShares float64 `json:"first_deposit_shares"`

	// RatioTolerance is the absolute per-token tolerance used when a
	// multi-token vector is checked for proportionality against balances.
	RatioTolerance float64 `json:"ratio_tolerance"`
}
