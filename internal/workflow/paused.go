package workflow

import "context"

// PausedError is returned when a merge stops on conflicts. The workflow does
// not block waiting for resolution; the CLI layer presents the interactive
// escape hatch and then calls Resume, which instructs git to continue the
// paused operation and finishes the remaining workflow steps.
type PausedError struct {
	Reason string
	Resume func(ctx context.Context) error
}

func (e *PausedError) Error() string {
	return "paused: " + e.Reason
}
