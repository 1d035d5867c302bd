package comments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/access"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/models"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/repository"
)

// Store owns the comment lifecycle: creation, author-only edits with an
// append-only history trail, idempotent soft deletion, and access-gated
// reads. It depends on the resolver for ticket-level authorization and on a
// repository for persistence; it never talks to the notifier itself — Create
// and Edit return the mentioned user ids and the caller forwards them.
type Store struct {
	repo     repository.CommentRepository
	resolver *access.Resolver
}

func NewStore(repo repository.CommentRepository, resolver *access.Resolver) *Store {
	return &Store{repo: repo, resolver: resolver}
}

func (s *Store) allowed(ctx context.Context, p models.Principal, ticketID string) error {
	v, err := s.resolver.Resolve(ctx, p, ticketID)
	if err != nil {
		return fmt.Errorf("resolve access: %w", err)
	}
	if v != access.Allow {
		return ErrAccessDenied
	}
	return nil
}

// Create persists a new comment on the ticket and returns it together with
// the user ids mentioned in its content. A parent id, when supplied, must
// reference an existing comment on the same ticket.
func (s *Store) Create(ctx context.Context, p models.Principal, ticketID, parentID, content string) (*models.Comment, []string, error) {
	if err := s.allowed(ctx, p, ticketID); err != nil {
		return nil, nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, fmt.Errorf("%w: content is empty", ErrValidation)
	}

	if parentID != "" {
		parent, err := s.repo.Get(ctx, parentID)
		if err != nil {
			return nil, nil, fmt.Errorf("load parent: %w", err)
		}
		if parent == nil {
			return nil, nil, fmt.Errorf("%w: parent comment does not exist", ErrValidation)
		}
		if parent.TicketID != ticketID {
			return nil, nil, fmt.Errorf("%w: parent comment belongs to another ticket", ErrValidation)
		}
	}

	now := time.Now().UTC()
	c := &models.Comment{
		ID:        uuid.NewString(),
		TicketID:  ticketID,
		ParentID:  parentID,
		AuthorID:  p.UserID,
		OrgID:     p.OrgID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, nil, fmt.Errorf("create comment: %w", err)
	}
	return c, ExtractMentions(content), nil
}

// Edit replaces the comment's content. Author-only; the prior content is
// appended to the history before the new content is committed. When
// expectedUpdatedAt is non-nil it acts as an optimistic concurrency token:
// a mismatch with the stored updated-at fails with ErrEditConflict instead
// of silently overwriting.
func (s *Store) Edit(ctx context.Context, p models.Principal, commentID, newContent, reason string, expectedUpdatedAt *time.Time) (*models.Comment, []string, error) {
	newContent = strings.TrimSpace(newContent)
	if newContent == "" {
		return nil, nil, fmt.Errorf("%w: content is empty", ErrValidation)
	}

	c, err := s.visible(ctx, p, commentID)
	if err != nil {
		return nil, nil, err
	}
	if c.Deleted {
		return nil, nil, ErrEditDeleted
	}
	if c.AuthorID != p.UserID {
		return nil, nil, ErrOwnership
	}
	if expectedUpdatedAt != nil && !expectedUpdatedAt.Equal(c.UpdatedAt) {
		return nil, nil, ErrEditConflict
	}

	now := time.Now().UTC()
	entry := &models.EditHistoryEntry{
		ID:          uuid.NewString(),
		CommentID:   c.ID,
		PrevContent: c.Content,
		EditorID:    p.UserID,
		Reason:      reason,
		CreatedAt:   now,
	}
	c.Content = newContent
	c.UpdatedAt = now
	if err := s.repo.UpdateContent(ctx, c, entry); err != nil {
		return nil, nil, fmt.Errorf("update comment: %w", err)
	}
	return c, ExtractMentions(newContent), nil
}

// SoftDelete marks the comment deleted. Author-only and terminal; deleting an
// already-deleted comment succeeds without any observable state change.
func (s *Store) SoftDelete(ctx context.Context, p models.Principal, commentID string) error {
	c, err := s.visible(ctx, p, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != p.UserID {
		return ErrOwnership
	}
	if c.Deleted {
		return nil
	}
	if err := s.repo.MarkDeleted(ctx, c.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// Get returns a single comment. Unknown ids and access denials are both
// ErrNotFound. Deleted comments come back with the placeholder content.
func (s *Store) Get(ctx context.Context, p models.Principal, commentID string) (*models.Comment, error) {
	c, err := s.visible(ctx, p, commentID)
	if err != nil {
		return nil, err
	}
	redact(c)
	return c, nil
}

// List returns the ticket's non-deleted comments in creation order. The ids
// of deleted comments remain valid parent references for surviving replies.
func (s *Store) List(ctx context.Context, p models.Principal, ticketID string) ([]models.Comment, error) {
	if err := s.allowed(ctx, p, ticketID); err != nil {
		return nil, err
	}
	list, err := s.repo.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return list, nil
}

// History returns the comment's edit trail, newest entry first. History of a
// soft-deleted comment stays readable for audit.
func (s *Store) History(ctx context.Context, p models.Principal, commentID string) ([]models.EditHistoryEntry, error) {
	if _, err := s.visible(ctx, p, commentID); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListHistory(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// visible loads the comment and checks ticket access, collapsing both
// "does not exist" and "denied" into ErrNotFound.
func (s *Store) visible(ctx context.Context, p models.Principal, commentID string) (*models.Comment, error) {
	if commentID == "" {
		return nil, ErrNotFound
	}
	c, err := s.repo.Get(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("load comment: %w", err)
	}
	if c == nil {
		return nil, ErrNotFound
	}
	v, err := s.resolver.Resolve(ctx, p, c.TicketID)
	if err != nil {
		return nil, fmt.Errorf("resolve access: %w", err)
	}
	if v != access.Allow {
		return nil, ErrNotFound
	}
	return c, nil
}

func redact(c *models.Comment) {
	if c.Deleted {
		c.Content = models.DeletedPlaceholder
	}
}
