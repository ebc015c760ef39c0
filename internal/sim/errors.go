package sim

import "errors"

// Guard errors. All of them are returned before any provider call is made.
var (
	ErrInvalidStudio         = errors.New("invalid studio")
	ErrStudioAlreadySelected = errors.New("studio already selected")
	ErrWrongPhase            = errors.New("operation not allowed in current phase")
	ErrInvalidMonth          = errors.New("month out of range 1..12")
	ErrMonthLocked           = errors.New("month is locked")
	ErrTasksPending          = errors.New("scenario still has unresolved tasks")
	ErrUnknownEmail          = errors.New("unknown email")
	ErrAlreadyResolved       = errors.New("email already resolved")
	ErrEmptyReply            = errors.New("reply is empty")
	ErrBusy                  = errors.New("a request is already in flight")
)

// ErrProviderFailure wraps any content provider error surfaced to the
// caller. The task it concerned is left untouched and can be retried.
var ErrProviderFailure = errors.New("content provider failed")

// ErrProviderUnavailable marks a content provider that cannot serve any
// request, such as one running without credentials. Retrying never helps,
// so a reply submitted against it is closed with an ungraded result.
var ErrProviderUnavailable = errors.New("content provider unavailable")
