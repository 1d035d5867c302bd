package comments_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/access"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/comments"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/models"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/repository/memory"
)

var (
	author   = models.Principal{UserID: "author", OrgID: "org-a"}
	peer     = models.Principal{UserID: "peer", OrgID: "org-a"}
	admin    = models.Principal{UserID: "boss", OrgID: "org-a"}
	stranger = models.Principal{UserID: "stranger", OrgID: "org-a"}
	outsider = models.Principal{UserID: "out", OrgID: "org-b"}
)

// newTestStore seeds two tickets on one org-a project owned by d1. The
// author and peer are d1 members, boss is org admin, stranger and outsider
// hold nothing.
func newTestStore(t *testing.T) (*comments.Store, *memory.Store) {
	t.Helper()
	mem := memory.NewStore()
	mem.AddProject(models.Project{ID: "p1", OrgID: "org-a", OwnerDeptID: "d1"})
	mem.AddTicket(models.Ticket{ID: "t1", ProjectID: "p1", CreatorID: "creator"})
	mem.AddTicket(models.Ticket{ID: "t2", ProjectID: "p1", CreatorID: "creator"})
	mem.SetDeptRole("author", "org-a", "d1", models.DeptMember)
	mem.SetDeptRole("peer", "org-a", "d1", models.DeptMember)
	mem.SetOrgRole("boss", "org-a", models.OrgAdmin)
	return comments.NewStore(mem, access.NewResolver(mem)), mem
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, mentioned, err := store.Create(ctx, author, "t1", "", "hello @[Peer](peer)")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "t1", c.TicketID)
	assert.Equal(t, "author", c.AuthorID)
	assert.Equal(t, "org-a", c.OrgID)
	assert.False(t, c.Deleted)
	assert.Equal(t, []string{"peer"}, mentioned)
}

func TestCreateReply(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	root, _, err := store.Create(ctx, author, "t1", "", "root")
	require.NoError(t, err)

	reply, _, err := store.Create(ctx, peer, "t1", root.ID, "reply")
	require.NoError(t, err)
	assert.Equal(t, root.ID, reply.ParentID)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, _, err := store.Create(ctx, author, "t1", "", "   \n\t ")
	assert.ErrorIs(t, err, comments.ErrValidation)

	_, _, err = store.Create(ctx, author, "t1", "no-such-parent", "text")
	assert.ErrorIs(t, err, comments.ErrValidation)

	// parent on a different ticket is rejected, not silently reparented
	other, _, err := store.Create(ctx, author, "t2", "", "on t2")
	require.NoError(t, err)
	_, _, err = store.Create(ctx, author, "t1", other.ID, "cross-ticket reply")
	assert.ErrorIs(t, err, comments.ErrValidation)
}

func TestCreateAccessDenied(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, _, err := store.Create(ctx, stranger, "t1", "", "text")
	assert.ErrorIs(t, err, comments.ErrAccessDenied)

	_, _, err = store.Create(ctx, outsider, "t1", "", "text")
	assert.ErrorIs(t, err, comments.ErrAccessDenied)

	_, _, err = store.Create(ctx, author, "no-such-ticket", "", "text")
	assert.ErrorIs(t, err, comments.ErrAccessDenied)
}

func TestEdit(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, _, err := store.Create(ctx, author, "t1", "", "v1")
	require.NoError(t, err)

	updated, mentioned, err := store.Edit(ctx, author, c.ID, "v2 cc @[Boss](boss)", "typo", nil)
	require.NoError(t, err)
	assert.Equal(t, "v2 cc @[Boss](boss)", updated.Content)
	assert.Equal(t, []string{"boss"}, mentioned)

	history, err := store.History(ctx, author, c.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "v1", history[0].PrevContent)
	assert.Equal(t, "author", history[0].EditorID)
	assert.Equal(t, "typo", history[0].Reason)
}

func TestEditHistoryOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, _, err := store.Create(ctx, author, "t1", "", "v1")
	require.NoError(t, err)
	_, _, err = store.Edit(ctx, author, c.ID, "v2", "", nil)
	require.NoError(t, err)
	_, _, err = store.Edit(ctx, author, c.ID, "v3", "", nil)
	require.NoError(t, err)

	history, err := store.History(ctx, author, c.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// newest first; each entry keeps what it overwrote
	assert.Equal(t, "v2", history[0].PrevContent)
	assert.Equal(t, "v1", history[1].PrevContent)
}

func TestEditOwnership(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, _, err := store.Create(ctx, author, "t1", "", "v1")
	require.NoError(t, err)

	// editing is author-exclusive, org admins included
	_, _, err = store.Edit(ctx, peer, c.ID, "hijack", "", nil)
	assert.ErrorIs(t, err, comments.ErrOwnership)
	_, _, err = store.Edit(ctx, admin, c.ID, "hijack", "", nil)
	assert.ErrorIs(t, err, comments.ErrOwnership)

	got, err := store.Get(ctx, author, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "v1", got.Content)
}

func TestEditDeleted(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, _, err := store.Create(ctx, author, "t1", "", "v1")
	require.NoError(t, err)
	require.NoError(t, store.SoftDelete(ctx, author, c.ID))

	_, _, err = store.Edit(ctx, author, c.ID, "v2", "", nil)
	assert.ErrorIs(t, err, comments.ErrEditDeleted)
}

func TestEditConflictToken(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, _, err := store.Create(ctx, author, "t1", "", "v1")
	require.NoError(t, err)
	seen := c.UpdatedAt

	// a second tab edits first
	_, _, err = store.Edit(ctx, author, c.ID, "v2", "", nil)
	require.NoError(t, err)

	_, _, err = store.Edit(ctx, author, c.ID, "v3", "", &seen)
	assert.ErrorIs(t, err, comments.ErrEditConflict)

	// with the fresh token the edit goes through
	cur, err := store.Get(ctx, author, c.ID)
	require.NoError(t, err)
	fresh := cur.UpdatedAt
	_, _, err = store.Edit(ctx, author, c.ID, "v3", "", &fresh)
	assert.NoError(t, err)
}

func TestSoftDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, _, err := store.Create(ctx, author, "t1", "", "v1")
	require.NoError(t, err)

	require.NoError(t, store.SoftDelete(ctx, author, c.ID))
	after, err := store.Get(ctx, author, c.ID)
	require.NoError(t, err)
	firstDeletedAt := after.DeletedAt
	require.NotNil(t, firstDeletedAt)

	// second delete succeeds with no observable change
	require.NoError(t, store.SoftDelete(ctx, author, c.ID))
	again, err := store.Get(ctx, author, c.ID)
	require.NoError(t, err)
	assert.True(t, again.Deleted)
	assert.Equal(t, *firstDeletedAt, *again.DeletedAt)
}

func TestSoftDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, _, err := store.Create(ctx, author, "t1", "", "v1")
	require.NoError(t, err)

	assert.ErrorIs(t, store.SoftDelete(ctx, peer, c.ID), comments.ErrOwnership)
	assert.ErrorIs(t, store.SoftDelete(ctx, admin, c.ID), comments.ErrOwnership)
}

func TestGetRedactsDeletedContent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, _, err := store.Create(ctx, author, "t1", "", "secret draft")
	require.NoError(t, err)
	require.NoError(t, store.SoftDelete(ctx, author, c.ID))

	got, err := store.Get(ctx, peer, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
	assert.Equal(t, models.DeletedPlaceholder, got.Content)
}

func TestGetNotFoundCoversDenied(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, _, err := store.Create(ctx, author, "t1", "", "v1")
	require.NoError(t, err)

	_, err = store.Get(ctx, author, "no-such-comment")
	assert.ErrorIs(t, err, comments.ErrNotFound)

	// denied reads are indistinguishable from missing ones
	_, err = store.Get(ctx, outsider, c.ID)
	assert.ErrorIs(t, err, comments.ErrNotFound)
	_, err = store.Get(ctx, stranger, c.ID)
	assert.ErrorIs(t, err, comments.ErrNotFound)
}

func TestListExcludesDeletedButKeepsReplies(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c1, _, err := store.Create(ctx, author, "t1", "", "root")
	require.NoError(t, err)
	c2, _, err := store.Create(ctx, peer, "t1", c1.ID, "reply")
	require.NoError(t, err)
	require.NoError(t, store.SoftDelete(ctx, author, c1.ID))

	flat, err := store.List(ctx, peer, "t1")
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Equal(t, c2.ID, flat[0].ID)
	// the reply still names its former parent
	assert.Equal(t, c1.ID, flat[0].ParentID)

	// and the tree promotes it to a root
	roots := comments.BuildTree(flat)
	require.Len(t, roots, 1)
	assert.Equal(t, c2.ID, roots[0].ID)
	assert.Equal(t, 0, roots[0].Depth)
}

func TestListOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	ids := make([]string, 0, 3)
	for _, text := range []string{"first", "second", "third"} {
		c, _, err := store.Create(ctx, author, "t1", "", text)
		require.NoError(t, err)
		ids = append(ids, c.ID)
		time.Sleep(2 * time.Millisecond)
	}

	flat, err := store.List(ctx, admin, "t1")
	require.NoError(t, err)
	require.Len(t, flat, 3)
	for i, c := range flat {
		assert.Equal(t, ids[i], c.ID)
	}
}

func TestHistoryAccessGated(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, _, err := store.Create(ctx, author, "t1", "", "v1")
	require.NoError(t, err)
	_, _, err = store.Edit(ctx, author, c.ID, "v2", "", nil)
	require.NoError(t, err)

	// readable by anyone who can read the ticket
	history, err := store.History(ctx, peer, c.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = store.History(ctx, outsider, c.ID)
	assert.ErrorIs(t, err, comments.ErrNotFound)
}
