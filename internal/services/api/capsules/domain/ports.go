package domain

import "context"

// ServicePort defines the service contract for capsules
type ServicePort interface {
	Create(ctx context.Context, in CreateInput) (Capsule, error)
	Get(ctx context.Context, in GetInput) (Capsule, error)
	List(ctx context.Context, in ListInput) ([]Capsule, error)
	Upcoming(ctx context.Context, in UpcomingInput) ([]Capsule, error)
	Unlock(ctx context.Context, in UnlockInput) (UnlockResult, error)
	Update(ctx context.Context, in UpdateInput) (Capsule, error)
	Delete(ctx context.Context, in DeleteInput) error
}

// SweepPort unlocks due capsules across all owners
// one bad capsule must not stop the rest of the batch
type SweepPort interface {
	SweepDue(ctx context.Context, batch int) (SweepReport, error)
}
