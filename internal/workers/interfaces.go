// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running and stopping multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run starts the worker's execution; implementations are expected to spawn
// goroutines internally and return promptly. Stop shuts the worker down and
// must be safe to call repeatedly.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
