/*

This is a custom type for tokens held by an invariant pool. The engine itself
only needs the symbol; precision and denom exist for embedders that account in
integer base units.

*/

package types

type Token struct {
	Symbol    string `json:"symbol"`    // e.g., "ATOM"
	Denom     string `json:"denom"`     // e.g., "uatom"
	Precision int    `json:"precision"` // e.g., 6 = 1000000 base units per token
}
