package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/models"
)

type CommentRepo struct{ db *pgxpool.Pool }

func NewCommentRepo(db *pgxpool.Pool) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Create(ctx context.Context, c *models.Comment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO comments (id, ticket_id, parent_id, author_id, org_id, content, deleted, created_at, updated_at)
		VALUES ($1,$2,NULLIF($3,''),$4,$5,$6,FALSE,$7,$8)
	`, c.ID, c.TicketID, c.ParentID, c.AuthorID, c.OrgID, c.Content, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CommentRepo) Get(ctx context.Context, id string) (*models.Comment, error) {
	var c models.Comment
	err := r.db.QueryRow(ctx, `
		SELECT id, ticket_id, COALESCE(parent_id, ''), author_id, org_id, content,
		       deleted, deleted_at, created_at, updated_at
		FROM comments
		WHERE id = $1
	`, id).Scan(
		&c.ID, &c.TicketID, &c.ParentID, &c.AuthorID, &c.OrgID, &c.Content,
		&c.Deleted, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) ListByTicket(ctx context.Context, ticketID string) ([]models.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, ticket_id, COALESCE(parent_id, ''), author_id, org_id, content,
		       deleted, deleted_at, created_at, updated_at
		FROM comments
		WHERE ticket_id = $1 AND NOT deleted
		ORDER BY created_at ASC, id ASC
	`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.TicketID, &c.ParentID, &c.AuthorID, &c.OrgID, &c.Content,
			&c.Deleted, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateContent runs in one transaction with the history insert first, so no
// reader can observe the new content before its prior version is recorded.
func (r *CommentRepo) UpdateContent(ctx context.Context, c *models.Comment, entry *models.EditHistoryEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO comment_edits (id, comment_id, prev_content, editor_id, reason, created_at)
		VALUES ($1,$2,$3,$4,NULLIF($5,''),$6)
	`, entry.ID, entry.CommentID, entry.PrevContent, entry.EditorID, entry.Reason, entry.CreatedAt); err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, `
		UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3 AND NOT deleted
	`, c.Content, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("comment %s vanished during edit", c.ID)
	}
	return tx.Commit(ctx)
}

func (r *CommentRepo) MarkDeleted(ctx context.Context, id string, at time.Time) error {
	// WHERE NOT deleted keeps the second delete a no-op
	_, err := r.db.Exec(ctx, `
		UPDATE comments SET deleted = TRUE, deleted_at = $1, updated_at = $1
		WHERE id = $2 AND NOT deleted
	`, at, id)
	return err
}

func (r *CommentRepo) ListHistory(ctx context.Context, commentID string) ([]models.EditHistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, comment_id, prev_content, editor_id, COALESCE(reason, ''), created_at
		FROM comment_edits
		WHERE comment_id = $1
		ORDER BY created_at DESC, id DESC
	`, commentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.EditHistoryEntry, 0)
	for rows.Next() {
		var e models.EditHistoryEntry
		if err := rows.Scan(&e.ID, &e.CommentID, &e.PrevContent, &e.EditorID, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
