package domain

// Custom-property keys recording where a corp user was sourced from.
const (
	PropSourceUserID        = "source_user_id"
	PropSourcePrincipalType = "source_principal_type"
	PropSourceGraphID       = "source_graph_id"
)

// CorpUserInfo is the user-info aspect attached to a corp-user entity.
type CorpUserInfo struct {
	DisplayName      string            `json:"displayName"`
	Email            string            `json:"email,omitempty"`
	Active           bool              `json:"active"`
	CustomProperties map[string]string `json:"customProperties,omitempty"`
}

// ChangeProposal is a metadata change proposal (MCP) targeting one
// entity/aspect pair in the metadata graph.
type ChangeProposal struct {
	EntityType string        `json:"entityType"`
	EntityURN  string        `json:"entityUrn"`
	ChangeType string        `json:"changeType"`
	AspectName string        `json:"aspectName"`
	Aspect     *CorpUserInfo `json:"aspect"`
}

// WorkUnit wraps a change proposal for the emit stage. Non-primary work units
// keep an identity referenced without claiming ownership of the record, which
// protects skipped users from stateful-ingestion soft deletes.
type WorkUnit struct {
	ID            string         `json:"id"`
	Proposal      ChangeProposal `json:"proposal"`
	PrimarySource bool           `json:"primarySource"`
}
