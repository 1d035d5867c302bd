package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Tickets, projects and role tables are written by the ticket-management and
// org-management services; this service only reads them. Comments and their
// edit trail are owned here.
const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id            TEXT PRIMARY KEY,
	org_id        TEXT NOT NULL,
	owner_dept_id TEXT
);

CREATE TABLE IF NOT EXISTS project_shares (
	project_id TEXT NOT NULL,
	dept_id    TEXT NOT NULL,
	PRIMARY KEY (project_id, dept_id)
);

CREATE TABLE IF NOT EXISTS tickets (
	id         TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	creator_id TEXT NOT NULL,
	assignee   TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS org_roles (
	user_id TEXT NOT NULL,
	org_id  TEXT NOT NULL,
	role    TEXT NOT NULL,
	PRIMARY KEY (user_id, org_id)
);

CREATE TABLE IF NOT EXISTS dept_roles (
	user_id TEXT NOT NULL,
	org_id  TEXT NOT NULL,
	dept_id TEXT NOT NULL,
	role    TEXT NOT NULL,
	PRIMARY KEY (user_id, dept_id)
);

CREATE TABLE IF NOT EXISTS project_roles (
	user_id    TEXT NOT NULL,
	project_id TEXT NOT NULL,
	role       TEXT NOT NULL,
	PRIMARY KEY (user_id, project_id)
);

CREATE TABLE IF NOT EXISTS comments (
	id         TEXT PRIMARY KEY,
	ticket_id  TEXT NOT NULL,
	parent_id  TEXT REFERENCES comments(id),
	author_id  TEXT NOT NULL,
	org_id     TEXT NOT NULL,
	content    TEXT NOT NULL,
	deleted    BOOLEAN NOT NULL DEFAULT FALSE,
	deleted_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_ticket ON comments (ticket_id, created_at);

CREATE TABLE IF NOT EXISTS comment_edits (
	id           TEXT PRIMARY KEY,
	comment_id   TEXT NOT NULL REFERENCES comments(id),
	prev_content TEXT NOT NULL,
	editor_id    TEXT NOT NULL,
	reason       TEXT,
	created_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comment_edits_comment ON comment_edits (comment_id, created_at);
`

// Migrate applies the schema. Idempotent.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}
