package comments

import "errors"

var (
	// ErrAccessDenied is returned when the resolver denies the principal
	// for the target ticket. Handlers fold it into 404 at the ticket
	// boundary to avoid confirming cross-tenant existence.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound covers both a genuinely missing comment and one the
	// principal may not see.
	ErrNotFound = errors.New("comment not found")

	// ErrValidation covers empty content and malformed parent references.
	ErrValidation = errors.New("validation failed")

	// ErrOwnership is returned when a non-author attempts an edit or
	// delete. Author-exclusive regardless of role.
	ErrOwnership = errors.New("not the comment author")

	// ErrEditDeleted is returned when editing a soft-deleted comment.
	ErrEditDeleted = errors.New("comment is deleted")

	// ErrEditConflict is returned when the caller's expected-updated-at
	// token is stale, i.e. the comment changed since it was last read.
	ErrEditConflict = errors.New("comment was modified concurrently")
)
