// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase.
package testutil

import (
	"context"
	"encoding/json"
	"strings"
)

// MockEntityStore implements domain.EntityStore for testing.
type MockEntityStore struct {
	LookupFn func(ctx context.Context, urn, aspectName string) (json.RawMessage, error)
	Calls    int // number of LookupAspect invocations
}

// LookupAspect implements the interface method for testing. Without a
// LookupFn every entity is reported as absent.
func (m *MockEntityStore) LookupAspect(ctx context.Context, urn, aspectName string) (json.RawMessage, error) {
	m.Calls++
	if m.LookupFn != nil {
		return m.LookupFn(ctx, urn, aspectName)
	}
	return nil, nil
}

// MockReporter implements domain.Reporter, collecting warnings and counters
// for assertions.
type MockReporter struct {
	Warnings []string
	Resolved int
	Skipped  int
	Filtered int
}

func (m *MockReporter) Warn(key, message string) {
	m.Warnings = append(m.Warnings, key+": "+message)
}

func (m *MockReporter) CountResolved() { m.Resolved++ }
func (m *MockReporter) CountSkipped()  { m.Skipped++ }
func (m *MockReporter) CountFiltered() { m.Filtered++ }

// HasWarning returns true if any collected warning contains substr.
func (m *MockReporter) HasWarning(substr string) bool {
	for _, w := range m.Warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
