package domain

import "strings"

// OwnershipPolicy controls whether BI principals are materialized as corp
// users in the metadata graph, and how their identities are derived.
type OwnershipPolicy struct {
	CreateEntities       bool     `yaml:"create_entities" json:"create_entities"`
	OverwriteExisting    bool     `yaml:"overwrite_existing" json:"overwrite_existing"`
	UseEmailAsIdentifier bool     `yaml:"use_email_as_identifier" json:"use_email_as_identifier"`
	StripEmailDomain     bool     `yaml:"strip_email_domain" json:"strip_email_domain"`
	OwnerAccessFilter    []string `yaml:"owner_access_filter" json:"owner_access_filter"`
}

// DefaultOwnershipPolicy returns the policy used when a recipe omits the
// ownership section: create users, never overwrite existing ones.
func DefaultOwnershipPolicy() OwnershipPolicy {
	return OwnershipPolicy{CreateEntities: true}
}

// Validate checks that the policy is internally consistent.
func (p *OwnershipPolicy) Validate() error {
	if p.OverwriteExisting && !p.CreateEntities {
		return ErrValidation("overwrite_existing=true requires create_entities=true")
	}
	return nil
}

// AccessAllowed returns true when the owner access filter is unset or
// contains the given access right.
func (p *OwnershipPolicy) AccessAllowed(right string) bool {
	if len(p.OwnerAccessFilter) == 0 {
		return true
	}
	for _, r := range p.OwnerAccessFilter {
		if strings.EqualFold(r, right) {
			return true
		}
	}
	return false
}
