package port

import "context"

// ConversionLock serialises conversions of the same lead.
// Acquire returns a release func when the lock was taken, and
// domain.ErrConversionInProgress when someone else holds it.
type ConversionLock interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// StepRecorder receives the outcome of every reconciliation step.
type StepRecorder interface {
	RecordStep(operation, step string, err error)
}
