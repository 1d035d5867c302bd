package models

// AccessFacts is everything the resolver needs to know about one
// (principal, ticket) pair. It is loaded in a single batch call so the
// verdict logic stays independent of the fetch strategy.
type AccessFacts struct {
	Principal Principal

	// Ticket and Project are nil when the corresponding row does not
	// exist; the resolver treats either as a deny.
	Ticket  *Ticket
	Project *Project

	// OrgRole is the principal's role in its own organization, empty when
	// none is assigned.
	OrgRole OrgRole

	// DeptRoles maps department id to the principal's role there. A user
	// may hold roles in several departments.
	DeptRoles map[string]DeptRole

	// ProjectRole is the principal's role on the ticket's project
	// specifically, empty when none.
	ProjectRole ProjectRole
}
