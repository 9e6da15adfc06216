package model

// User identifies a registered member of the department. Identity and
// role are established upstream by the campus SSO; this service only
// consumes the resulting claims.
//
// Fields:
//  ID    – primary key identifier.
//  Onyen – campus-wide login name, unique.
//  Name  – display name.
//  Role  – access role (MEMBER, AMBASSADOR, ADMIN).
type User struct {
	ID    uint64 `json:"id"`    // users.id
	Onyen string `json:"onyen"` // users.onyen
	Name  string `json:"name"`  // users.name
	Role  string `json:"role"`  // users.role
}

// Roles recognized in the users.role column and in JWT role claims.
const (
	RoleMember     = "MEMBER"
	RoleAmbassador = "AMBASSADOR"
	RoleAdmin      = "ADMIN"
)
