package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/access"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/models"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/repository/memory"
)

func baseFacts() *models.AccessFacts {
	return &models.AccessFacts{
		Principal: models.Principal{UserID: "u1", OrgID: "org-a"},
		Ticket:    &models.Ticket{ID: "t1", ProjectID: "p1", CreatorID: "creator"},
		Project:   &models.Project{ID: "p1", OrgID: "org-a", OwnerDeptID: "d1"},
		DeptRoles: map[string]models.DeptRole{},
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.AccessFacts)
		want   access.Verdict
	}{
		{
			name:   "no membership at all",
			mutate: func(f *models.AccessFacts) {},
			want:   access.Deny,
		},
		{
			name: "cross-tenant always denied even for org admin",
			mutate: func(f *models.AccessFacts) {
				f.Project.OrgID = "org-b"
				f.OrgRole = models.OrgAdmin
				f.ProjectRole = models.ProjectManager
			},
			want: access.Deny,
		},
		{
			name: "org admin allowed with no other membership",
			mutate: func(f *models.AccessFacts) {
				f.OrgRole = models.OrgAdmin
			},
			want: access.Allow,
		},
		{
			name: "org member role alone grants nothing",
			mutate: func(f *models.AccessFacts) {
				f.OrgRole = models.OrgMember
			},
			want: access.Deny,
		},
		{
			name: "ticket creator allowed without any role",
			mutate: func(f *models.AccessFacts) {
				f.Ticket.CreatorID = "u1"
			},
			want: access.Allow,
		},
		{
			name: "assignee allowed without any role",
			mutate: func(f *models.AccessFacts) {
				f.Ticket.Assignee = "u1"
			},
			want: access.Allow,
		},
		{
			name: "member of owning department allowed",
			mutate: func(f *models.AccessFacts) {
				f.DeptRoles["d1"] = models.DeptMember
			},
			want: access.Allow,
		},
		{
			name: "member of unrelated department denied",
			mutate: func(f *models.AccessFacts) {
				f.DeptRoles["d2"] = models.DeptManager
			},
			want: access.Deny,
		},
		{
			name: "member of department the project is shared with allowed",
			mutate: func(f *models.AccessFacts) {
				f.Project.SharedDeptIDs = []string{"d2"}
				f.DeptRoles["d2"] = models.DeptMember
			},
			want: access.Allow,
		},
		{
			name: "project manager allowed",
			mutate: func(f *models.AccessFacts) {
				f.ProjectRole = models.ProjectManager
			},
			want: access.Allow,
		},
		{
			name: "project member allowed",
			mutate: func(f *models.AccessFacts) {
				f.ProjectRole = models.ProjectMember
			},
			want: access.Allow,
		},
		{
			name: "ticket missing denies",
			mutate: func(f *models.AccessFacts) {
				f.Ticket = nil
				f.OrgRole = models.OrgAdmin
			},
			want: access.Deny,
		},
		{
			name: "project missing denies",
			mutate: func(f *models.AccessFacts) {
				f.Project = nil
				f.OrgRole = models.OrgAdmin
			},
			want: access.Deny,
		},
		{
			name: "empty principal denies",
			mutate: func(f *models.AccessFacts) {
				f.Principal = models.Principal{}
				f.OrgRole = models.OrgAdmin
			},
			want: access.Deny,
		},
		{
			name: "empty assignee never matches an empty user id",
			mutate: func(f *models.AccessFacts) {
				f.Ticket.Assignee = ""
			},
			want: access.Deny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := baseFacts()
			tt.mutate(facts)
			assert.Equal(t, tt.want, access.Evaluate(facts))
		})
	}
}

func TestEvaluateNilFacts(t *testing.T) {
	assert.Equal(t, access.Deny, access.Evaluate(nil))
}

func TestEvaluateDeterministic(t *testing.T) {
	facts := baseFacts()
	facts.DeptRoles["d1"] = models.DeptMember
	first := access.Evaluate(facts)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, access.Evaluate(facts))
	}
}

func seedStore() *memory.Store {
	mem := memory.NewStore()
	mem.AddProject(models.Project{ID: "p1", OrgID: "org-a", OwnerDeptID: "d1"})
	mem.AddTicket(models.Ticket{ID: "t1", ProjectID: "p1", CreatorID: "creator", Assignee: "assignee"})
	return mem
}

func TestResolverScenarios(t *testing.T) {
	ctx := context.Background()
	mem := seedStore()
	mem.SetDeptRole("u1", "org-a", "d1", models.DeptMember)
	r := access.NewResolver(mem)

	// department member of the owning department, no direct assignment
	v, err := r.Resolve(ctx, models.Principal{UserID: "u1", OrgID: "org-a"}, "t1")
	require.NoError(t, err)
	assert.Equal(t, access.Allow, v)

	// no membership facts at all
	v, err = r.Resolve(ctx, models.Principal{UserID: "u2", OrgID: "org-a"}, "t1")
	require.NoError(t, err)
	assert.Equal(t, access.Deny, v)

	// same dept role granted in another org does not leak across tenants
	mem.SetDeptRole("u3", "org-b", "d1", models.DeptManager)
	v, err = r.Resolve(ctx, models.Principal{UserID: "u3", OrgID: "org-b"}, "t1")
	require.NoError(t, err)
	assert.Equal(t, access.Deny, v)
}

func TestResolverFailsClosed(t *testing.T) {
	ctx := context.Background()
	r := access.NewResolver(seedStore())

	v, err := r.Resolve(ctx, models.Principal{}, "t1")
	require.NoError(t, err)
	assert.Equal(t, access.Deny, v)

	v, err = r.Resolve(ctx, models.Principal{UserID: "u1", OrgID: "org-a"}, "")
	require.NoError(t, err)
	assert.Equal(t, access.Deny, v)

	v, err = r.Resolve(ctx, models.Principal{UserID: "u1", OrgID: "org-a"}, "no-such-ticket")
	require.NoError(t, err)
	assert.Equal(t, access.Deny, v)
}
