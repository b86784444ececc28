package domain

import (
	"context"
	"encoding/json"
)

// EntityStore is the metadata graph lookup surface the resolver depends on.
// Implemented by graph.Client. A nil EntityStore means the run has no graph
// access (file-only sink).
type EntityStore interface {
	// LookupAspect returns the named aspect for the entity, or nil when the
	// entity has no such aspect. Errors indicate transport or auth failure.
	LookupAspect(ctx context.Context, urn, aspectName string) (json.RawMessage, error)
}

// Reporter collects run counters and warnings. Implementations must not
// affect resolution behavior.
type Reporter interface {
	Warn(key, message string)
	CountResolved()
	CountSkipped()
	CountFiltered()
}
