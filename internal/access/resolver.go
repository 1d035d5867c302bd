package access

import (
	"context"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/models"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/repository"
)

// Verdict is the outcome of a ticket access check.
type Verdict int

const (
	Deny Verdict = iota
	Allow
)

func (v Verdict) String() string {
	if v == Allow {
		return "allow"
	}
	return "deny"
}

// Resolver decides whether a principal may read a ticket's discussion. It
// consumes a pre-loaded AccessFacts value; the lookup strategy lives behind
// the loader interface.
type Resolver struct {
	facts repository.AccessFactsLoader
}

func NewResolver(l repository.AccessFactsLoader) *Resolver {
	return &Resolver{facts: l}
}

// Resolve loads the facts for (p, ticketID) and evaluates them. A missing
// ticket or project collapses to Deny; the caller renders any Deny at the
// ticket boundary as "not found" so cross-tenant existence is never
// confirmed. The returned error is infrastructure-only.
func (r *Resolver) Resolve(ctx context.Context, p models.Principal, ticketID string) (Verdict, error) {
	if !p.Valid() || ticketID == "" {
		return Deny, nil
	}
	facts, err := r.facts.LoadAccessFacts(ctx, p, ticketID)
	if err != nil {
		return Deny, err
	}
	return Evaluate(facts), nil
}

// Evaluate applies the resolution rules to already-loaded facts, in
// precedence order, short-circuiting at the first match:
//
//  1. tenant isolation: project must belong to the principal's org
//  2. org admin: capability-complete within its own tenant
//  3. direct participant: ticket creator or current assignee
//  4. department ownership of the project
//  5. department sharing of the project
//  6. role on the project itself (manager or member)
//
// Anything else is a deny. Evaluate is pure and deterministic: the same
// facts always produce the same verdict.
func Evaluate(facts *models.AccessFacts) Verdict {
	if facts == nil || !facts.Principal.Valid() {
		return Deny
	}
	t, proj := facts.Ticket, facts.Project
	if t == nil || proj == nil {
		return Deny
	}

	// 1. Tenant check. Highest stakes, checked first.
	if proj.OrgID != facts.Principal.OrgID {
		return Deny
	}

	// 2. Org admin.
	if facts.OrgRole == models.OrgAdmin {
		return Allow
	}

	// 3. Direct participant. Authorship/assignment implies interest
	// regardless of role churn.
	uid := facts.Principal.UserID
	if t.CreatorID == uid || (t.Assignee != "" && t.Assignee == uid) {
		return Allow
	}

	// 4. Department ownership.
	if proj.OwnerDeptID != "" {
		if _, ok := facts.DeptRoles[proj.OwnerDeptID]; ok {
			return Allow
		}
	}

	// 5. Department sharing.
	for deptID := range facts.DeptRoles {
		if proj.SharedWith(deptID) {
			return Allow
		}
	}

	// 6. Project role. Membership alone implies visibility into all of the
	// project's tickets.
	switch facts.ProjectRole {
	case models.ProjectManager, models.ProjectMember:
		return Allow
	}

	return Deny
}
