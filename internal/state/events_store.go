// ./internal/state/events_store.go
package state

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/openamm/poolgov/internal/types"
)

// AppendGovernanceEvent inserts one audit journal entry.
func AppendGovernanceEvent(ev types.GovernanceEvent) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	stmt := `
        INSERT INTO governance_events (
            event_id, pool_id, event_type, caller, subject, value, tick, occurred_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	_, err := DB.Exec(stmt,
		ev.ID, int64(ev.PoolID), string(ev.Type), string(ev.Caller), string(ev.Subject),
		fmt.Sprintf("%d", ev.Value), fmt.Sprintf("%d", ev.Tick), ev.At,
	)
	if err != nil {
		return fmt.Errorf("failed to append governance event for pool %d: %w", ev.PoolID, err)
	}

	log.Debug().
		Uint64("poolId", uint64(ev.PoolID)).
		Str("type", string(ev.Type)).
		Msg("Appended governance event")
	return nil
}

// GetRecentGovernanceEvents retrieves a pool's journal entries, newest first.
func GetRecentGovernanceEvents(poolID types.PoolID, limit int) ([]types.GovernanceEvent, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	if limit <= 0 || limit > 100 {
		limit = 20 // Default limit
	}

	query := `
        SELECT event_id, pool_id, event_type, caller, subject, value, tick, occurred_at
        FROM governance_events
        WHERE pool_id = $1
        ORDER BY occurred_at DESC
        LIMIT $2;`

	rows, err := DB.Query(query, int64(poolID), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query governance events for pool %d: %w", poolID, err)
	}
	defer rows.Close()

	var events []types.GovernanceEvent
	for rows.Next() {
		var (
			ev                      types.GovernanceEvent
			pid                     int64
			evType, caller, subject string
		)
		err := rows.Scan(&ev.ID, &pid, &evType, &caller, &subject, &ev.Value, &ev.Tick, &ev.At)
		if err != nil {
			log.Error().Err(err).Msg("Failed to scan governance event row")
			continue // Skip this row and continue with others
		}
		ev.PoolID = types.PoolID(pid)
		ev.Type = types.EventType(evType)
		ev.Caller = types.Principal(caller)
		ev.Subject = types.Principal(subject)
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	log.Debug().Uint64("poolId", uint64(poolID)).Int("count", len(events)).Msg("Retrieved governance events")
	return events, nil
}
