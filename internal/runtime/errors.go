package runtime

import (
	"fmt"

	"github.com/aretw0/screenwalk/pkg/domain"
)

// StepError reports a primitive interaction that failed on a screen.
type StepError struct {
	Screen domain.Screen
	Step   domain.Step
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("on %s: %s: %v", e.Screen, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// MarkerError reports that the app did not show the screen the navigator
// believes it is on.
type MarkerError struct {
	Screen domain.Screen
	Marker domain.Selector
	Err    error
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("expected to be on %s but %s never appeared: %v", e.Screen, e.Marker, e.Err)
}

func (e *MarkerError) Unwrap() error {
	return e.Err
}
