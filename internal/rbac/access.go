package rbac

// HasPermission reports whether the user's role grants the permission.
// A nil user never holds any permission.
func HasPermission(u *User, p Permission) bool {
	if u == nil {
		return false
	}
	set, ok := rolePermissions[u.Role]
	if !ok {
		return false
	}
	_, ok = set[p]
	return ok
}

// HasAnyPermission reports whether at least one of the permissions is granted.
func HasAnyPermission(u *User, perms ...Permission) bool {
	if u == nil {
		return false
	}
	for _, p := range perms {
		if HasPermission(u, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every listed permission is granted.
func HasAllPermissions(u *User, perms ...Permission) bool {
	if u == nil {
		return false
	}
	for _, p := range perms {
		if !HasPermission(u, p) {
			return false
		}
	}
	return true
}

// CanAccessResource decides whether the user may perform the action guarded
// by perm against a resource identified only by its owner and tenant. The
// rule chain is ordered and each step short-circuits:
//
//  1. nil user denies.
//  2. the role must grant perm.
//  3. SUPER_ADMIN is allowed regardless of tenant or ownership.
//  4. a tenant-scoped resource outside the user's tenant denies, even for
//     the resource owner.
//  5. the owner is allowed.
//  6. an ADMIN in the resource's tenant is allowed.
//  7. a JUDGE in the resource's tenant is allowed for document.read and
//     case.read.
//
// Anything else denies. Reordering these rules changes behavior: the
// super-admin bypass grants what later steps would deny, and the tenant
// check denies what the owner override would otherwise grant.
func CanAccessResource(u *User, resourceOwnerID, resourceTenantID string, perm Permission) bool {
	if u == nil {
		return false
	}
	if !HasPermission(u, perm) {
		return false
	}
	if u.Role == RoleSuperAdmin {
		return true
	}
	if resourceTenantID != "" && resourceTenantID != u.TenantID {
		return false
	}
	if resourceOwnerID != "" && u.ID == resourceOwnerID {
		return true
	}
	if u.Role == RoleAdmin && resourceTenantID == u.TenantID {
		return true
	}
	if u.Role == RoleJudge && resourceTenantID == u.TenantID &&
		(perm == PermDocumentRead || perm == PermCaseRead) {
		return true
	}
	return false
}

// documentActionPerms maps handler-facing action names onto document
// capabilities.
var documentActionPerms = map[string]Permission{
	"read":   PermDocumentRead,
	"write":  PermDocumentWrite,
	"delete": PermDocumentDelete,
	"share":  PermDocumentShare,
	"manage": PermDocumentManage,
}

var caseActionPerms = map[string]Permission{
	"read":   PermCaseRead,
	"write":  PermCaseWrite,
	"delete": PermCaseDelete,
	"manage": PermCaseManage,
}

// CanAccessDocument resolves the action name to a document permission and
// runs the full resource rule chain.
func CanAccessDocument(u *User, ownerID, tenantID, action string) bool {
	perm, ok := documentActionPerms[action]
	if !ok {
		return false
	}
	return CanAccessResource(u, ownerID, tenantID, perm)
}

// CanAccessCase resolves the action name to a case permission and applies
// only the permission, super-admin, and tenant-isolation rules. Cases carry
// no owner override and no judge read bypass: a case is a tenant-shared
// object, so any member of the tenant holding the permission may act on it.
// This deliberately diverges from CanAccessDocument; do not unify the two
// without revisiting the case-sharing model.
func CanAccessCase(u *User, tenantID, action string) bool {
	perm, ok := caseActionPerms[action]
	if !ok {
		return false
	}
	if u == nil {
		return false
	}
	if !HasPermission(u, perm) {
		return false
	}
	if u.Role == RoleSuperAdmin {
		return true
	}
	if tenantID != "" && tenantID != u.TenantID {
		return false
	}
	return true
}
