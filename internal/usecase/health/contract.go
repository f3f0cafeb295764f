package health

import "context"

// CachePinger checks cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// SourcePinger checks listing source availability.
type SourcePinger interface {
	Ping(ctx context.Context) error
}
