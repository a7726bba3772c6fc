package types

import (
	"time"
)

// EventType names a discrete governance state transition.
type EventType string

const (
	EventRegistered       EventType = "registered"
	EventTransferProposed EventType = "transfer_proposed"
	EventTransferAccepted EventType = "transfer_accepted"
	EventFeeQueued        EventType = "fee_queued"
	EventFeeFinalized     EventType = "fee_finalized"
	EventStrategySet      EventType = "strategy_set"
	EventStrategyCleared  EventType = "strategy_cleared"
)

// GovernanceEvent is one entry in the append-only audit journal. Value holds
// the fee for fee events and is zero otherwise; Subject holds the principal
// the transition concerns (new admin, proposed admin, ...) when there is one.
type GovernanceEvent struct {
	ID      string    `json:"id"`
	PoolID  PoolID    `json:"pool_id"`
	Type    EventType `json:"type"`
	Caller  Principal `json:"caller"`
	Subject Principal `json:"subject,omitempty"`
	Value   uint64    `json:"value,omitempty"`
	Tick    uint64    `json:"tick"`
	At      time.Time `json:"at"`
}
