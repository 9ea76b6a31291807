// Package domain holds the sweeper worker contracts
package domain

import "context"

// WorkerPort runs the periodic sweep until the context ends
type WorkerPort interface {
	Run(ctx context.Context) error
}
