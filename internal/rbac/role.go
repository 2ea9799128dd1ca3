package rbac

import "strings"

// Role identifies one of the fixed platform roles. The set is closed;
// values outside it carry zero permissions.
type Role string

const (
	RoleSuperAdmin        Role = "SUPER_ADMIN"
	RoleAdmin             Role = "ADMIN"
	RoleJudge             Role = "JUDGE"
	RoleLawyer            Role = "LAWYER"
	RoleAssociate         Role = "ASSOCIATE"
	RoleInHouseCounsel    Role = "IN_HOUSE_COUNSEL"
	RoleStudent           Role = "STUDENT"
	RoleComplianceOfficer Role = "COMPLIANCE_OFFICER"
	RoleClerk             Role = "CLERK"
	RoleReadOnlyAuditor   Role = "READ_ONLY_AUDITOR"
)

// Roles lists every recognized role.
var Roles = []Role{
	RoleSuperAdmin,
	RoleAdmin,
	RoleJudge,
	RoleLawyer,
	RoleAssociate,
	RoleInHouseCounsel,
	RoleStudent,
	RoleComplianceOfficer,
	RoleClerk,
	RoleReadOnlyAuditor,
}

// ParseRole normalizes raw input into a Role. Unrecognized values are
// returned as-is with ok=false; callers must not treat that as an error,
// an unknown role simply resolves to no permissions.
func ParseRole(raw string) (Role, bool) {
	candidate := Role(strings.ToUpper(strings.TrimSpace(raw)))
	for _, r := range Roles {
		if candidate == r {
			return r, true
		}
	}
	return candidate, false
}

// Valid reports whether the role belongs to the fixed set.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}
