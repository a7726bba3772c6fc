package types

import (
	"cosmossdk.io/errors"
)

// ModuleName is the codespace for governance sentinel errors.
const ModuleName = "poolgov"

// Governance sentinel errors. Each one identifies exactly which precondition
// a management call violated; none of them can surface on the swap path.
var (
	ErrPoolNotFound          = errors.Register(ModuleName, 1, "pool not registered")
	ErrPoolAlreadyRegistered = errors.Register(ModuleName, 2, "pool already registered")
	ErrUnauthorized          = errors.Register(ModuleName, 3, "caller is not the pool admin")
	ErrZeroAddress           = errors.Register(ModuleName, 4, "empty principal")
	ErrNoPendingAdmin        = errors.Register(ModuleName, 5, "no pending admin transfer")
	ErrNotPendingAdmin       = errors.Register(ModuleName, 6, "caller is not the pending admin")
	ErrFeeTooHigh            = errors.Register(ModuleName, 7, "fee exceeds protocol maximum")
	ErrFeeChangeTimelocked   = errors.Register(ModuleName, 8, "fee change is timelocked or not queued")
	ErrUnknownStrategy       = errors.Register(ModuleName, 9, "unknown strategy reference")
)
