// Package report collects counters and warnings for one ingestion run.
package report

import (
	"fmt"

	"github.com/google/uuid"

	"corpsync/internal/domain"
)

// Warnings beyond this count are dropped to bound memory on noisy runs.
const maxWarnings = 100

// RunReport implements domain.Reporter for a single run.
type RunReport struct {
	RunID    string
	Resolved int
	Skipped  int
	Filtered int
	Warnings []string
}

var _ domain.Reporter = (*RunReport)(nil)

// New creates an empty run report with a fresh run ID.
func New() *RunReport {
	return &RunReport{RunID: uuid.NewString()}
}

func (r *RunReport) Warn(key, message string) {
	if len(r.Warnings) >= maxWarnings {
		return
	}
	r.Warnings = append(r.Warnings, key+": "+message)
}

func (r *RunReport) CountResolved() { r.Resolved++ }
func (r *RunReport) CountSkipped()  { r.Skipped++ }
func (r *RunReport) CountFiltered() { r.Filtered++ }

// Summary returns a one-line digest of the run.
func (r *RunReport) Summary() string {
	return fmt.Sprintf("run %s: resolved=%d skipped=%d filtered=%d warnings=%d",
		r.RunID, r.Resolved, r.Skipped, r.Filtered, len(r.Warnings))
}
