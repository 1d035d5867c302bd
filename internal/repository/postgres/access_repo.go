package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/models"
)

// AccessRepo loads access facts for the resolver. The ticket+project lookup
// is one joined query; the role lookups are scoped to the principal so each
// returns at most a handful of rows.
type AccessRepo struct{ db *pgxpool.Pool }

func NewAccessRepo(db *pgxpool.Pool) *AccessRepo { return &AccessRepo{db: db} }

func (r *AccessRepo) LoadAccessFacts(ctx context.Context, p models.Principal, ticketID string) (*models.AccessFacts, error) {
	facts := &models.AccessFacts{
		Principal: p,
		DeptRoles: make(map[string]models.DeptRole),
	}

	var t models.Ticket
	var proj models.Project
	err := r.db.QueryRow(ctx, `
		SELECT t.id, t.project_id, t.creator_id, COALESCE(t.assignee, ''),
		       t.created_at, t.updated_at,
		       p.id, p.org_id, COALESCE(p.owner_dept_id, '')
		FROM tickets t
		JOIN projects p ON p.id = t.project_id
		WHERE t.id = $1
	`, ticketID).Scan(
		&t.ID, &t.ProjectID, &t.CreatorID, &t.Assignee,
		&t.CreatedAt, &t.UpdatedAt,
		&proj.ID, &proj.OrgID, &proj.OwnerDeptID,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			// missing ticket or project is a deny, not an error
			return facts, nil
		}
		return nil, err
	}
	facts.Ticket = &t
	facts.Project = &proj

	shares, err := r.db.Query(ctx, `SELECT dept_id FROM project_shares WHERE project_id = $1`, proj.ID)
	if err != nil {
		return nil, err
	}
	defer shares.Close()
	for shares.Next() {
		var d string
		if err := shares.Scan(&d); err != nil {
			return nil, err
		}
		proj.SharedDeptIDs = append(proj.SharedDeptIDs, d)
	}
	if err := shares.Err(); err != nil {
		return nil, err
	}

	var orgRole string
	err = r.db.QueryRow(ctx, `
		SELECT role FROM org_roles WHERE user_id = $1 AND org_id = $2
	`, p.UserID, p.OrgID).Scan(&orgRole)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	facts.OrgRole = models.OrgRole(orgRole)

	depts, err := r.db.Query(ctx, `
		SELECT dept_id, role FROM dept_roles WHERE user_id = $1 AND org_id = $2
	`, p.UserID, p.OrgID)
	if err != nil {
		return nil, err
	}
	defer depts.Close()
	for depts.Next() {
		var deptID, role string
		if err := depts.Scan(&deptID, &role); err != nil {
			return nil, err
		}
		facts.DeptRoles[deptID] = models.DeptRole(role)
	}
	if err := depts.Err(); err != nil {
		return nil, err
	}

	var projRole string
	err = r.db.QueryRow(ctx, `
		SELECT role FROM project_roles WHERE user_id = $1 AND project_id = $2
	`, p.UserID, proj.ID).Scan(&projRole)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	facts.ProjectRole = models.ProjectRole(projRole)

	return facts, nil
}
