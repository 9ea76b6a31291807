package domain

import "context"

// RecorderPort lets other modules record capsule unlocks
// implementations must be best effort and never block an unlock
type RecorderPort interface {
	RecordUnlock(ctx context.Context, ev UnlockEvent) error
}

// ServicePort defines the service contract for events
type ServicePort interface {
	RecorderPort
	Recent(ctx context.Context, in RecentInput) ([]RecentEvent, error)
}
