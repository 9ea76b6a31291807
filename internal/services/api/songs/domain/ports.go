package domain

import "context"

// ServicePort defines the service contract for songs
type ServicePort interface {
	Create(ctx context.Context, in CreateInput) (Song, error)
	Get(ctx context.Context, in GetInput) (Song, error)
	List(ctx context.Context, in ListInput) ([]Song, error)
}

// ResolverPort lets other modules confirm a song exists and fetch its summary
type ResolverPort interface {
	Resolve(ctx context.Context, id string) (Song, error)
}
