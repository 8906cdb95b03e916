/*

PoolStatus is the externally visible state of an invariant pool. It is the
exact shape an embedding system should checkpoint and restore: everything the
engine knows is in here.

*/

package types

type PoolStatus struct {
	Tokens       []string           `json:"tokens"`        // Ordered token identifiers, fixed at construction
	Weights      map[string]float64 `json:"weights"`       // Normalized value share per token, sums to 1.0
	Balances     map[string]float64 `json:"balances"`      // Current quantity held per token
	ShareSupply  float64            `json:"shares_supply"` // Fixed ceiling on pool shares
	SharesIssued float64            `json:"shares_issued"` // Outstanding pool-share accounting
	Invariant    float64            `json:"invariant"`     // Cached weighted geometric mean of balances
}
