package models

import "time"

// Ticket is a read-only lookup target for this subsystem; ticket management
// lives elsewhere.
type Ticket struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	CreatorID string    `json:"creatorId"`
	Assignee  string    `json:"assignee"` // empty when unassigned
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Project scopes tickets to an organization and, optionally, to an owning
// department plus any departments it is shared with.
type Project struct {
	ID            string   `json:"id"`
	OrgID         string   `json:"orgId"`
	OwnerDeptID   string   `json:"ownerDeptId"` // empty when no department owns it
	SharedDeptIDs []string `json:"sharedDeptIds,omitempty"`
}

// SharedWith reports whether the project is explicitly shared with the given
// department.
func (p *Project) SharedWith(deptID string) bool {
	for _, d := range p.SharedDeptIDs {
		if d == deptID {
			return true
		}
	}
	return false
}
