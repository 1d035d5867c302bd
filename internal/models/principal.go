package models

// Principal is the decoded caller identity handed in by the token layer.
// This package never sees the raw bearer token.
type Principal struct {
	UserID string `json:"userId"`
	OrgID  string `json:"orgId"`
}

// Valid reports whether both identity fields are present.
func (p Principal) Valid() bool {
	return p.UserID != "" && p.OrgID != ""
}
