package models

// Roles are closed, per-scope sets. They are resolved once per request into
// AccessFacts instead of being re-derived from raw strings at each check.

type OrgRole string

const (
	OrgAdmin  OrgRole = "admin"
	OrgMember OrgRole = "member"
)

type DeptRole string

const (
	DeptManager DeptRole = "manager"
	DeptMember  DeptRole = "member"
)

type ProjectRole string

const (
	ProjectManager ProjectRole = "manager"
	ProjectMember  ProjectRole = "member"
)
