// ./internal/state/snapshot_store.go
package state

import (
	"encoding/json"
	"fmt"

	"github.com/lib/pq" // PostgreSQL driver for array support
	"github.com/rs/zerolog/log"

	"github.com/infinity-amm/ipool/internal/types"
)

// SavePoolSnapshot persists a pool status snapshot and returns its ID.
func SavePoolSnapshot(status types.PoolStatus) (int64, error) {
	if DB == nil {
		return 0, fmt.Errorf("database not initialized")
	}

	weightsJSON, err := json.Marshal(status.Weights)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal weights: %w", err)
	}

	balancesJSON, err := json.Marshal(status.Balances)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal balances: %w", err)
	}

	query := `
		INSERT INTO pool_snapshots (
			tokens, weights, balances, shares_supply, shares_issued, invariant
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING snapshot_id;
	`

	var snapshotID int64
	err = DB.QueryRow(
		query,
		pq.Array(status.Tokens), weightsJSON, balancesJSON,
		status.ShareSupply, status.SharesIssued, status.Invariant,
	).Scan(&snapshotID)

	if err != nil {
		return 0, fmt.Errorf("failed to save pool snapshot: %w", err)
	}

	log.Info().
		Int64("snapshot_id", snapshotID).
		Float64("invariant", status.Invariant).
		Float64("shares_issued", status.SharesIssued).
		Msg("Pool snapshot saved to database")

	return snapshotID, nil
}

// LoadLatestPoolSnapshot returns the most recently saved pool status, or an
// error if none exists.
func LoadLatestPoolSnapshot() (*types.PoolStatus, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `
		SELECT tokens, weights, balances, shares_supply, shares_issued, invariant
		FROM pool_snapshots
		ORDER BY snapshot_timestamp DESC, snapshot_id DESC
		LIMIT 1;
	`

	var (
		status       types.PoolStatus
		weightsJSON  []byte
		balancesJSON []byte
	)
	err := DB.QueryRow(query).Scan(
		pq.Array(&status.Tokens), &weightsJSON, &balancesJSON,
		&status.ShareSupply, &status.SharesIssued, &status.Invariant,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest pool snapshot: %w", err)
	}

	if err := json.Unmarshal(weightsJSON, &status.Weights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weights: %w", err)
	}
	if err := json.Unmarshal(balancesJSON, &status.Balances); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balances: %w", err)
	}

	return &status, nil
}

// GetRecentSnapshots returns up to limit snapshots, newest first.
func GetRecentSnapshots(limit int) ([]types.PoolStatus, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT tokens, weights, balances, shares_supply, shares_issued, invariant
		FROM pool_snapshots
		ORDER BY snapshot_timestamp DESC, snapshot_id DESC
		LIMIT $1;
	`

	rows, err := DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pool snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []types.PoolStatus
	for rows.Next() {
		var (
			status       types.PoolStatus
			weightsJSON  []byte
			balancesJSON []byte
		)
		if err := rows.Scan(
			pq.Array(&status.Tokens), &weightsJSON, &balancesJSON,
			&status.ShareSupply, &status.SharesIssued, &status.Invariant,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pool snapshot: %w", err)
		}
		if err := json.Unmarshal(weightsJSON, &status.Weights); err != nil {
			return nil, fmt.Errorf("failed to unmarshal weights: %w", err)
		}
		if err := json.Unmarshal(balancesJSON, &status.Balances); err != nil {
			return nil, fmt.Errorf("failed to unmarshal balances: %w", err)
		}
		snapshots = append(snapshots, status)
	}

	return snapshots, rows.Err()
}
