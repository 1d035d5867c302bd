// Package memory holds map-backed implementations of the repository
// interfaces. Unit tests run against it with zero network or database
// dependency, and it doubles as the dev backend (DB_DSN=memory).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/models"
)

type userOrg struct{ user, org string }
type userDept struct{ user, dept string }
type userProject struct{ user, project string }

// Store implements repository.CommentRepository and
// repository.AccessFactsLoader over in-process maps.
type Store struct {
	mu sync.RWMutex

	tickets  map[string]models.Ticket
	projects map[string]models.Project

	orgRoles     map[userOrg]models.OrgRole
	deptRoles    map[userDept]models.DeptRole
	deptOrgs     map[userDept]string // org the dept role was granted in
	projectRoles map[userProject]models.ProjectRole

	comments map[string]models.Comment
	history  map[string][]models.EditHistoryEntry
}

func NewStore() *Store {
	return &Store{
		tickets:      make(map[string]models.Ticket),
		projects:     make(map[string]models.Project),
		orgRoles:     make(map[userOrg]models.OrgRole),
		deptRoles:    make(map[userDept]models.DeptRole),
		deptOrgs:     make(map[userDept]string),
		projectRoles: make(map[userProject]models.ProjectRole),
		comments:     make(map[string]models.Comment),
		history:      make(map[string][]models.EditHistoryEntry),
	}
}

// --- seed helpers (tickets/projects/roles are read-only to the core) ---

func (s *Store) AddTicket(t models.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[t.ID] = t
}

func (s *Store) AddProject(p models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p
}

func (s *Store) SetOrgRole(userID, orgID string, role models.OrgRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgRoles[userOrg{userID, orgID}] = role
}

func (s *Store) SetDeptRole(userID, orgID, deptID string, role models.DeptRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deptRoles[userDept{userID, deptID}] = role
	s.deptOrgs[userDept{userID, deptID}] = orgID
}

func (s *Store) SetProjectRole(userID, projectID string, role models.ProjectRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectRoles[userProject{userID, projectID}] = role
}

// --- AccessFactsLoader ---

func (s *Store) LoadAccessFacts(_ context.Context, p models.Principal, ticketID string) (*models.AccessFacts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	facts := &models.AccessFacts{
		Principal: p,
		DeptRoles: make(map[string]models.DeptRole),
	}

	t, ok := s.tickets[ticketID]
	if !ok {
		return facts, nil
	}
	tc := t
	facts.Ticket = &tc

	proj, ok := s.projects[t.ProjectID]
	if ok {
		pc := proj
		facts.Project = &pc
	}

	facts.OrgRole = s.orgRoles[userOrg{p.UserID, p.OrgID}]
	for k, role := range s.deptRoles {
		if k.user == p.UserID && s.deptOrgs[k] == p.OrgID {
			facts.DeptRoles[k.dept] = role
		}
	}
	facts.ProjectRole = s.projectRoles[userProject{p.UserID, t.ProjectID}]
	return facts, nil
}

// --- CommentRepository ---

func (s *Store) Create(_ context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[c.ID] = *c
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	cc := c
	return &cc, nil
}

func (s *Store) ListByTicket(_ context.Context, ticketID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.TicketID == ticketID && !c.Deleted {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateContent(_ context.Context, c *models.Comment, entry *models.EditHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// history append happens-before the content becomes visible
	s.history[c.ID] = append(s.history[c.ID], *entry)
	cur := s.comments[c.ID]
	cur.Content = c.Content
	cur.UpdatedAt = c.UpdatedAt
	s.comments[c.ID] = cur
	return nil
}

func (s *Store) MarkDeleted(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok || c.Deleted {
		return nil
	}
	c.Deleted = true
	at = at.UTC()
	c.DeletedAt = &at
	c.UpdatedAt = at
	s.comments[id] = c
	return nil
}

func (s *Store) ListHistory(_ context.Context, commentID string) ([]models.EditHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.history[commentID]
	out := make([]models.EditHistoryEntry, len(entries))
	// stored oldest-first; returned newest-first
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out, nil
}
