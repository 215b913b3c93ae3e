package insights

import (
	"errors"
	"fmt"

	"github.com/ignite/optimizer/internal/domain"
)

var (
	// ErrNotFound is returned when a recommendation id does not exist.
	ErrNotFound = errors.New("recommendation not found")

	// ErrUnknownSource is returned when no adapter is registered for the
	// requested channel.
	ErrUnknownSource = errors.New("unknown source type")

	// ErrGenerationInProgress is returned when another process holds the
	// generation lock and has not committed a batch within the wait window.
	ErrGenerationInProgress = errors.New("generation already in progress")
)

// StateError is returned when apply/dismiss hits a recommendation that has
// already left the open state. The transition is one-shot; callers surface
// the current status to the user.
type StateError struct {
	ID     string
	Status domain.RecommendationStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("recommendation %s already %s", e.ID, e.Status)
}
