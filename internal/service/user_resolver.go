// Package service implements the connector's business logic: resolving BI
// principals into corp-user change proposals.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"corpsync/internal/domain"
)

// UserResolver translates BI principals into corp-user change proposals,
// deciding per principal whether an update should be emitted, skipped, or
// suppressed entirely.
//
// One resolver is created per ingestion run and used sequentially. The
// existence cache and skip set are plain maps with no internal locking, so
// concurrent use requires external synchronization.
type UserResolver struct {
	policy   domain.OwnershipPolicy
	store    domain.EntityStore // nil when the run has no graph access
	reporter domain.Reporter
	logger   *slog.Logger

	existsCache map[string]bool
	skippedURNs map[string]struct{}
}

// NewUserResolver creates a resolver for one ingestion run. The store may be
// nil for runs without graph access; the reporter may be nil. The platform
// name is attached to every log record the resolver emits.
func NewUserResolver(policy domain.OwnershipPolicy, store domain.EntityStore, reporter domain.Reporter, logger *slog.Logger, platform string) *UserResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserResolver{
		policy:      policy,
		store:       store,
		reporter:    reporter,
		logger:      logger.With("platform", platform),
		existsCache: make(map[string]bool),
		skippedURNs: make(map[string]struct{}),
	}
}

// ResolveOne maps a single principal to at most one change proposal.
//
// When create_entities is disabled nothing is built or cached. Otherwise one
// proposal is always returned, even for skipped users: downstream stages need
// the URN for ownership references and filter primary emission through
// SkippedURN.
func (r *UserResolver) ResolveOne(ctx context.Context, p *domain.Principal) ([]domain.ChangeProposal, error) {
	if !r.policy.CreateEntities {
		return nil, nil
	}

	if p.EmailAddress == "" {
		r.logger.Debug("principal has no email", "id", p.ID)
	}
	if p.DisplayName == "" {
		r.logger.Debug("principal has no displayName, falling back to id", "id", p.ID)
	}
	if p.GraphID == "" {
		r.logger.Debug("principal has no graph id", "id", p.ID)
	}

	urn := domain.UserURN(p.IdentityName(&r.policy))

	skip, err := r.shouldSkip(ctx, urn)
	if err != nil {
		return nil, err
	}

	displayName := p.DisplayName
	if displayName == "" {
		displayName = p.ID
	}
	props := map[string]string{
		domain.PropSourceUserID:        p.ID,
		domain.PropSourcePrincipalType: p.PrincipalType,
	}
	if p.GraphID != "" {
		props[domain.PropSourceGraphID] = p.GraphID
	}

	mcp := domain.ChangeProposal{
		EntityType: domain.EntityTypeCorpUser,
		EntityURN:  urn,
		ChangeType: domain.ChangeTypeUpsert,
		AspectName: domain.AspectCorpUserInfo,
		Aspect: &domain.CorpUserInfo{
			DisplayName:      displayName,
			Email:            p.EmailAddress,
			Active:           p.IsHuman(),
			CustomProperties: props,
		},
	}

	if skip {
		r.skippedURNs[urn] = struct{}{}
		r.logger.Debug("skipping user entity creation, user already exists", "urn", urn)
		if r.reporter != nil {
			r.reporter.CountSkipped()
		}
	}
	if r.reporter != nil {
		r.reporter.CountResolved()
	}
	return []domain.ChangeProposal{mcp}, nil
}

// ResolveMany maps a batch of principals, preserving input order. Nil entries
// are skipped. When the policy carries an owner access filter, only human
// principals holding one of the listed access rights are resolved; everything
// else is dropped before any cache or store interaction.
func (r *UserResolver) ResolveMany(ctx context.Context, principals []*domain.Principal) ([]domain.ChangeProposal, error) {
	var out []domain.ChangeProposal
	for _, p := range principals {
		if p == nil {
			continue
		}
		if len(r.policy.OwnerAccessFilter) > 0 {
			if !p.IsHuman() || !r.policy.AccessAllowed(p.AccessRight) {
				r.logger.Debug("principal dropped by owner access filter",
					"id", p.ID, "principalType", p.PrincipalType, "accessRight", p.AccessRight)
				if r.reporter != nil {
					r.reporter.CountFiltered()
				}
				continue
			}
		}
		mcps, err := r.ResolveOne(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, mcps...)
	}
	return out, nil
}

// SkippedURN reports whether the update for urn was suppressed because the
// user already exists and overwriting is disabled.
func (r *UserResolver) SkippedURN(urn string) bool {
	_, ok := r.skippedURNs[urn]
	return ok
}

// shouldSkip decides whether emission for urn must be suppressed because the
// user already exists and the policy forbids overwriting. Checking requires
// graph access; without it the run is misconfigured and fails fast.
func (r *UserResolver) shouldSkip(ctx context.Context, urn string) (bool, error) {
	if r.policy.OverwriteExisting {
		return false, nil
	}
	if r.store == nil {
		return false, domain.ErrConfiguration(
			"overwrite_existing=false requires graph access to check existing users; " +
				"configure the datahub_api section or set overwrite_existing=true")
	}
	return r.checkExists(ctx, urn), nil
}

// checkExists reports whether the corp user behind urn already has a
// populated user-info aspect in the graph. Results are memoized for the
// lifetime of the resolver so each distinct URN costs at most one lookup.
func (r *UserResolver) checkExists(ctx context.Context, urn string) bool {
	if exists, ok := r.existsCache[urn]; ok {
		return exists
	}
	if r.store == nil {
		// Unknown rather than known-absent: leave the cache alone so a later
		// call with graph access can still resolve it.
		return false
	}
	exists := false
	aspect, err := r.store.LookupAspect(ctx, urn, domain.AspectCorpUserInfo)
	switch {
	case err != nil:
		// Fail open: assume the user does not exist and let creation proceed.
		r.logger.Warn("user existence lookup failed", "urn", urn, "error", err)
		if r.reporter != nil {
			r.reporter.Warn("user-existence-lookup", fmt.Sprintf("lookup failed for %s: %v", urn, err))
		}
	case aspect != nil:
		exists = true
	}
	r.existsCache[urn] = exists
	return exists
}
