package worker

import (
	"context"
)

// Worker - common contract for background workers.
type Worker interface {
	// Start runs the worker loop until stopped.
	Start(ctx context.Context) error

	// Stop signals the worker to finish.
	Stop() error

	// Name returns the worker name.
	Name() string
}
