package repository

import (
	"context"
	"time"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/models"
)

// AccessFactsLoader batches every lookup an access decision needs into one
// call, so the resolver never issues its own queries. Implementations may use
// a joined query or several serial/parallel lookups.
//
// A missing ticket or project is not an error: the loader returns facts with
// the corresponding field nil and the resolver fails closed. Errors are
// reserved for infrastructure failures.
type AccessFactsLoader interface {
	LoadAccessFacts(ctx context.Context, p models.Principal, ticketID string) (*models.AccessFacts, error)
}

// CommentRepository persists comments and their append-only edit history.
type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	// Get returns (nil, nil) when the comment does not exist.
	Get(ctx context.Context, id string) (*models.Comment, error)
	// ListByTicket returns non-deleted comments ordered by creation time
	// ascending.
	ListByTicket(ctx context.Context, ticketID string) ([]models.Comment, error)
	// UpdateContent appends the history entry and then applies the new
	// content and updated-at from c. The history write happens-before the
	// content write is visible.
	UpdateContent(ctx context.Context, c *models.Comment, entry *models.EditHistoryEntry) error
	// MarkDeleted sets the soft-delete flag and timestamp. Deleting an
	// already-deleted comment is a no-op.
	MarkDeleted(ctx context.Context, id string, at time.Time) error
	// ListHistory returns edit history entries newest-first.
	ListHistory(ctx context.Context, commentID string) ([]models.EditHistoryEntry, error)
}
