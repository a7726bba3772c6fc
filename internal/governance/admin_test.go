package governance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openamm/poolgov/internal/types"
)

const (
	alice = types.Principal("alice")
	bob   = types.Principal("bob")
	carol = types.Principal("carol")
)

func TestRegisterSetsAdmin(t *testing.T) {
	engine, _, store := newTestEngine()

	require.NoError(t, engine.Register(1, alice))

	admin, err := engine.Admin(1)
	require.NoError(t, err)
	require.Equal(t, alice, admin)

	pending, err := engine.PendingAdmin(1)
	require.NoError(t, err)
	require.True(t, pending.IsEmpty())

	require.Equal(t, []types.EventType{types.EventRegistered}, store.eventTypes())
}

func TestRegisterDuplicateFails(t *testing.T) {
	engine, _, _ := newTestEngine()

	require.NoError(t, engine.Register(1, alice))
	err := engine.Register(1, bob)
	require.ErrorIs(t, err, types.ErrPoolAlreadyRegistered)

	// The original admin is untouched.
	admin, err := engine.Admin(1)
	require.NoError(t, err)
	require.Equal(t, alice, admin)
}

func TestRegisterEmptyInitiatorFails(t *testing.T) {
	engine, _, _ := newTestEngine()
	require.ErrorIs(t, engine.Register(1, ""), types.ErrZeroAddress)
}

func TestProposeTransferRequiresAdmin(t *testing.T) {
	engine, _, _ := newTestEngine()
	require.NoError(t, engine.Register(1, alice))

	require.ErrorIs(t, engine.ProposeAdminTransfer(1, bob, carol), types.ErrUnauthorized)
	require.ErrorIs(t, engine.ProposeAdminTransfer(1, alice, ""), types.ErrZeroAddress)
}

func TestTwoStepTransfer(t *testing.T) {
	engine, _, store := newTestEngine()
	require.NoError(t, engine.Register(1, alice))

	require.NoError(t, engine.ProposeAdminTransfer(1, alice, bob))
	pending, err := engine.PendingAdmin(1)
	require.NoError(t, err)
	require.Equal(t, bob, pending)

	// Acceptance by anyone other than the proposed admin fails.
	require.ErrorIs(t, engine.AcceptAdminTransfer(1, carol), types.ErrNotPendingAdmin)
	require.ErrorIs(t, engine.AcceptAdminTransfer(1, alice), types.ErrNotPendingAdmin)

	require.NoError(t, engine.AcceptAdminTransfer(1, bob))

	admin, err := engine.Admin(1)
	require.NoError(t, err)
	require.Equal(t, bob, admin)

	pending, err = engine.PendingAdmin(1)
	require.NoError(t, err)
	require.True(t, pending.IsEmpty())

	// The previous admin has lost all admin-only capabilities.
	require.ErrorIs(t, engine.QueueFee(1, alice, 100), types.ErrUnauthorized)
	require.ErrorIs(t, engine.SetStrategy(1, alice, "fixed:100"), types.ErrUnauthorized)
	require.ErrorIs(t, engine.ProposeAdminTransfer(1, alice, carol), types.ErrUnauthorized)

	// The new admin has gained them.
	require.NoError(t, engine.QueueFee(1, bob, 100))

	evs := store.eventTypes()
	require.Contains(t, evs, types.EventTransferProposed)
	require.Contains(t, evs, types.EventTransferAccepted)
}

func TestAcceptWithoutProposalFails(t *testing.T) {
	engine, _, _ := newTestEngine()
	require.NoError(t, engine.Register(1, alice))

	require.ErrorIs(t, engine.AcceptAdminTransfer(1, bob), types.ErrNoPendingAdmin)
}

func TestReProposeReplacesPendingAdmin(t *testing.T) {
	engine, _, _ := newTestEngine()
	require.NoError(t, engine.Register(1, alice))

	require.NoError(t, engine.ProposeAdminTransfer(1, alice, bob))
	require.NoError(t, engine.ProposeAdminTransfer(1, alice, carol))

	// The first proposal is gone.
	require.ErrorIs(t, engine.AcceptAdminTransfer(1, bob), types.ErrNotPendingAdmin)
	require.NoError(t, engine.AcceptAdminTransfer(1, carol))

	admin, err := engine.Admin(1)
	require.NoError(t, err)
	require.Equal(t, carol, admin)
}

func TestUnknownPool(t *testing.T) {
	engine, _, _ := newTestEngine()

	_, err := engine.Admin(99)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	require.ErrorIs(t, engine.QueueFee(99, alice, 1), types.ErrPoolNotFound)
	require.ErrorIs(t, engine.FinalizeFee(99, alice), types.ErrPoolNotFound)
	require.ErrorIs(t, engine.ProposeAdminTransfer(99, alice, bob), types.ErrPoolNotFound)
	require.ErrorIs(t, engine.AcceptAdminTransfer(99, alice), types.ErrPoolNotFound)
	require.ErrorIs(t, engine.SetStrategy(99, alice, "fixed:1"), types.ErrPoolNotFound)
}

func TestSetStrategyValidation(t *testing.T) {
	engine, _, _ := newTestEngine()
	require.NoError(t, engine.Register(1, alice))

	require.ErrorIs(t, engine.SetStrategy(1, bob, "fixed:100"), types.ErrUnauthorized)
	require.ErrorIs(t, engine.SetStrategy(1, alice, "no-such-kind"), types.ErrUnknownStrategy)

	require.NoError(t, engine.SetStrategy(1, alice, "fixed:100"))
	ref, err := engine.Strategy(1)
	require.NoError(t, err)
	require.Equal(t, "fixed:100", ref)

	// Clearing removes the attachment.
	require.NoError(t, engine.SetStrategy(1, alice, ""))
	ref, err = engine.Strategy(1)
	require.NoError(t, err)
	require.Empty(t, ref)
}

func TestManagementFailsClosedWhenStoreDown(t *testing.T) {
	engine, _, store := newTestEngine()
	require.NoError(t, engine.Register(1, alice))

	store.fail = true
	err := engine.ProposeAdminTransfer(1, alice, bob)
	require.Error(t, err)

	// The in-memory record was not mutated.
	store.fail = false
	pending, err := engine.PendingAdmin(1)
	require.NoError(t, err)
	require.True(t, pending.IsEmpty())
}
