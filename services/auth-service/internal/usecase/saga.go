package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// saga tracks the compensating actions of completed steps in a multi-entity
// write flow. The data store has no cross-table transactions, so when a
// later step fails the recorded compensations are run in reverse creation
// order to remove everything persisted so far.
type saga struct {
	logger        *zerolog.Logger
	sagaID        string
	compensations []compensation
}

type compensation struct {
	step string
	undo func(ctx context.Context) error
}

func newSaga(logger *zerolog.Logger, sagaID string) *saga {
	return &saga{
		logger: logger,
		sagaID: sagaID,
	}
}

// completed records the compensating action for a step that has been
// persisted.
func (s *saga) completed(step string, undo func(ctx context.Context) error) {
	s.compensations = append(s.compensations, compensation{step: step, undo: undo})
}

// abort runs all recorded compensations in reverse order. A failing
// compensation is logged and does not stop the remaining ones. It reports
// whether every compensation succeeded.
func (s *saga) abort(ctx context.Context) bool {
	ok := true
	for i := len(s.compensations) - 1; i >= 0; i-- {
		c := s.compensations[i]
		if err := c.undo(ctx); err != nil {
			ok = false
			s.logger.Error().
				Err(err).
				Str("saga_id", s.sagaID).
				Str("step", c.step).
				Msg("compensation failed")
		}
	}
	return ok
}

// RegistrationError reports which registration step failed and whether the
// compensation of the previously persisted steps completed. It wraps the
// underlying cause.
type RegistrationError struct {
	Step        string
	Compensated bool
	Err         error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration failed at step %q: %v", e.Step, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}
