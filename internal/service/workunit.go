package service

import "corpsync/internal/domain"

// WorkUnits wraps change proposals for emission. Proposals for skipped users
// become non-primary work units: the identity stays referenced so stateful
// ingestion does not soft-delete it, but the run does not claim the record.
func (r *UserResolver) WorkUnits(mcps []domain.ChangeProposal) []domain.WorkUnit {
	units := make([]domain.WorkUnit, 0, len(mcps))
	for _, mcp := range mcps {
		units = append(units, domain.WorkUnit{
			ID:            mcp.EntityURN + "-" + mcp.AspectName,
			Proposal:      mcp,
			PrimarySource: !r.SkippedURN(mcp.EntityURN),
		})
	}
	return units
}
