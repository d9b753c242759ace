package types

import "errors"

// Board errors.
var (
	ErrInvalidSlot        = errors.New("invalid slot")
	ErrIncompatibleShape  = errors.New("slots have different shapes")
	ErrIncompletePieceSet = errors.New("piece set must cover every slot exactly once")
	ErrStateDestroyed     = errors.New("puzzle state is destroyed")
)

// ErrShuffleExhausted means a shuffle ran out of target slots. It can only
// happen if the topology table puts slots in the wrong category.
var ErrShuffleExhausted = errors.New("shuffle ran out of target slots")

// Barrier errors.
var (
	ErrEmptyTaskSet     = errors.New("task set is empty")
	ErrDuplicateTaskID  = errors.New("duplicate task id")
	ErrUnknownTaskID    = errors.New("unknown task id")
	ErrBarrierCancelled = errors.New("barrier cancelled")
)

// Session errors.
var (
	ErrUnknownIntent = errors.New("unknown intent")
	ErrBusy          = errors.New("animation in progress")
	ErrNoGame        = errors.New("no game in progress")
	ErrStopped       = errors.New("controller stopped")
)

// Config validation errors.
var (
	ErrBackendEmpty          = errors.New("backend must not be empty")
	ErrBackendUnknown        = errors.New("unknown backend")
	ErrAnimationScaleInvalid = errors.New("animation scale must not be negative")
	ErrPreloadWorkersInvalid = errors.New("preload workers must not be negative")
	ErrLogLevelUnknown       = errors.New("unknown log level")
	ErrPuzzleNameInvalid     = errors.New("puzzle names must be unique and non-empty")
)

// Recorder errors.
var (
	ErrRecorderDetached = errors.New("recorder is detached")
	ErrAlreadyAttached  = errors.New("recorder is already attached")
	ErrInvalidRecord    = errors.New("invalid game record")
)
