package models

import "time"

// DeletedPlaceholder replaces the content of soft-deleted comments on every
// read path. The original content is retained in storage for audit only.
const DeletedPlaceholder = "[deleted]"

type Comment struct {
	ID        string     `json:"id"`
	TicketID  string     `json:"ticketId"`
	ParentID  string     `json:"parentId,omitempty"` // empty for a root comment
	AuthorID  string     `json:"authorId"`
	OrgID     string     `json:"orgId"`
	Content   string     `json:"content"`
	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// EditHistoryEntry records the content a comment held *before* an edit, so
// the audit trail is continuous back to creation. Append-only.
type EditHistoryEntry struct {
	ID          string    `json:"id"`
	CommentID   string    `json:"commentId"`
	PrevContent string    `json:"prevContent"`
	EditorID    string    `json:"editorId"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NestedComment is a Comment decorated with its ordered replies and computed
// depth (root = 0). Derived per read, never persisted or cached.
type NestedComment struct {
	Comment
	Depth   int              `json:"depth"`
	Replies []*NestedComment `json:"replies"`
}
