// ./internal/state/pool_store.go
package state

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/openamm/poolgov/internal/types"
)

// SavePoolRecord upserts the durable snapshot of one pool's governance record.
func SavePoolRecord(rec types.PoolRecord) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	stmt := `
        INSERT INTO pool_governance (
            pool_id, admin, pending_admin, strategy_ref,
            fee_override, pending_fee, fee_ready_at,
            swap_count, total_volume, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
        ON CONFLICT (pool_id) DO UPDATE SET
            admin = EXCLUDED.admin,
            pending_admin = EXCLUDED.pending_admin,
            strategy_ref = EXCLUDED.strategy_ref,
            fee_override = EXCLUDED.fee_override,
            pending_fee = EXCLUDED.pending_fee,
            fee_ready_at = EXCLUDED.fee_ready_at,
            swap_count = EXCLUDED.swap_count,
            total_volume = EXCLUDED.total_volume,
            updated_at = CURRENT_TIMESTAMP;`

	_, err := DB.Exec(stmt,
		int64(rec.ID), string(rec.Admin), string(rec.PendingAdmin), rec.StrategyRef,
		fmt.Sprintf("%d", rec.FeeOverride), fmt.Sprintf("%d", rec.PendingFee), fmt.Sprintf("%d", rec.FeeReadyAt),
		fmt.Sprintf("%d", rec.SwapCount), fmt.Sprintf("%d", rec.TotalVolume),
	)
	if err != nil {
		return fmt.Errorf("failed to save pool %d governance record: %w", rec.ID, err)
	}

	log.Debug().Uint64("poolId", uint64(rec.ID)).Msg("Saved pool governance record")
	return nil
}

// LoadPoolRecords loads every persisted pool governance record, for seeding
// the engine at boot.
func LoadPoolRecords() ([]types.PoolRecord, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `
        SELECT pool_id, admin, pending_admin, strategy_ref,
               fee_override, pending_fee, fee_ready_at,
               swap_count, total_volume
        FROM pool_governance
        ORDER BY pool_id;`

	rows, err := DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pool governance records: %w", err)
	}
	defer rows.Close()

	var records []types.PoolRecord
	for rows.Next() {
		var (
			poolID              int64
			admin, pending, ref string
			rec                 types.PoolRecord
		)
		err := rows.Scan(
			&poolID, &admin, &pending, &ref,
			&rec.FeeOverride, &rec.PendingFee, &rec.FeeReadyAt,
			&rec.SwapCount, &rec.TotalVolume,
		)
		if err != nil {
			log.Error().Err(err).Msg("Failed to scan pool governance row")
			continue // Skip this row and continue with others
		}
		rec.ID = types.PoolID(poolID)
		rec.Admin = types.Principal(admin)
		rec.PendingAdmin = types.Principal(pending)
		rec.StrategyRef = ref
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	log.Info().Int("count", len(records)).Msg("Loaded pool governance records")
	return records, nil
}

// PoolStore adapts the package-level persistence functions to the engine's
// store dependency.
type PoolStore struct{}

// NewPoolStore returns the Postgres-backed governance store.
func NewPoolStore() *PoolStore {
	return &PoolStore{}
}

// SavePool persists one pool record snapshot.
func (s *PoolStore) SavePool(rec types.PoolRecord) error {
	return SavePoolRecord(rec)
}

// AppendEvent journals one governance transition.
func (s *PoolStore) AppendEvent(ev types.GovernanceEvent) error {
	return AppendGovernanceEvent(ev)
}
