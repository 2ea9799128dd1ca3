package rbac

import "testing"

func tenantUser(id string, role Role, tenantID string) *User {
	return &User{ID: id, Role: role, TenantID: tenantID, Email: id + "@example.com"}
}

func TestHasPermissionMatchesStaticTable(t *testing.T) {
	for _, role := range Roles {
		granted := make(map[Permission]struct{})
		for _, p := range PermissionsForRole(role) {
			granted[p] = struct{}{}
		}
		u := tenantUser("u1", role, "t1")
		for _, p := range Permissions {
			_, want := granted[p]
			if got := HasPermission(u, p); got != want {
				t.Fatalf("role %s perm %s: got %v, want %v", role, p, got, want)
			}
		}
	}
}

func TestHasPermissionNilUser(t *testing.T) {
	for _, p := range Permissions {
		if HasPermission(nil, p) {
			t.Fatalf("nil user must not hold %s", p)
		}
	}
}

func TestHasPermissionUnknownRoleDeniesAll(t *testing.T) {
	u := tenantUser("u1", Role("PARALEGAL_V2"), "t1")
	for _, p := range Permissions {
		if HasPermission(u, p) {
			t.Fatalf("unknown role must not hold %s", p)
		}
	}
}

func TestHasAnyAndAllPermissions(t *testing.T) {
	u := tenantUser("u1", RoleStudent, "t1")
	if !HasAnyPermission(u, PermDocumentWrite, PermDocumentRead) {
		t.Fatal("expected any-match on document.read")
	}
	if HasAnyPermission(u, PermDocumentWrite, PermContractWrite) {
		t.Fatal("student must not match write permissions")
	}
	if !HasAllPermissions(u, PermDocumentRead, PermCaseRead) {
		t.Fatal("expected all-match on read permissions")
	}
	if HasAllPermissions(u, PermDocumentRead, PermDocumentWrite) {
		t.Fatal("all-match must fail on missing permission")
	}
	if HasAnyPermission(nil, PermDocumentRead) || HasAllPermissions(nil, PermDocumentRead) {
		t.Fatal("nil user must short-circuit to false")
	}
}

func TestSuperAdminBypassesTenantAndOwnership(t *testing.T) {
	u := tenantUser("root", RoleSuperAdmin, "")
	for _, p := range Permissions {
		if !CanAccessResource(u, "someone-else", "other-tenant", p) {
			t.Fatalf("super admin denied %s", p)
		}
	}
}

func TestTenantMismatchPrecedesOwnerOverride(t *testing.T) {
	u := tenantUser("u1", RoleLawyer, "t1")
	if CanAccessResource(u, "u1", "t2", PermCaseWrite) {
		t.Fatal("tenant isolation must deny the owner of a foreign-tenant resource")
	}
}

func TestOwnerOverrideAnyRole(t *testing.T) {
	for _, role := range Roles {
		u := tenantUser("u1", role, "t1")
		if !HasPermission(u, PermDocumentRead) {
			continue
		}
		if !CanAccessResource(u, "u1", "t1", PermDocumentRead) {
			t.Fatalf("owner with base permission denied for role %s", role)
		}
	}
}

func TestAdminSameTenantAccess(t *testing.T) {
	u := tenantUser("admin1", RoleAdmin, "t1")
	if !CanAccessResource(u, "other-user", "t1", PermDocumentDelete) {
		t.Fatal("tenant admin must reach non-owned tenant resources")
	}
	if CanAccessResource(u, "other-user", "t2", PermDocumentDelete) {
		t.Fatal("tenant admin must not cross tenants")
	}
}

func TestScenarioOwnerSameTenantLawyer(t *testing.T) {
	u := tenantUser("u1", RoleLawyer, "t1")
	if !CanAccessResource(u, "u1", "t1", PermCaseWrite) {
		t.Fatal("owner override with matching tenant must allow")
	}
}

func TestScenarioTenantMismatchDenies(t *testing.T) {
	u := tenantUser("u1", RoleLawyer, "t1")
	if CanAccessResource(u, "u1", "t2", PermCaseWrite) {
		t.Fatal("tenant mismatch must deny before the owner check")
	}
}

func TestScenarioJudgeReadBypass(t *testing.T) {
	u := tenantUser("judge1", RoleJudge, "t1")
	if !CanAccessResource(u, "someone-else", "t1", PermDocumentRead) {
		t.Fatal("judge must read non-owned same-tenant documents")
	}
	if !CanAccessResource(u, "someone-else", "t1", PermCaseRead) {
		t.Fatal("judge must read non-owned same-tenant cases")
	}
}

func TestScenarioJudgeLacksWrite(t *testing.T) {
	u := tenantUser("judge1", RoleJudge, "t1")
	if CanAccessResource(u, "someone-else", "t1", PermDocumentWrite) {
		t.Fatal("judge lacks document.write, must deny at the permission step")
	}
	// The same denial holds even when the judge owns the resource: the
	// permission check runs before the owner override.
	if CanAccessResource(u, "judge1", "t1", PermDocumentWrite) {
		t.Fatal("owner override must not outrank the permission check")
	}
}

func TestCanAccessDocumentActionMapping(t *testing.T) {
	u := tenantUser("u1", RoleLawyer, "t1")
	tests := []struct {
		action string
		want   bool
	}{
		{"read", true},
		{"write", true},
		{"delete", true},
		{"share", true},
		{"manage", false}, // lawyer lacks document.manage
		{"publish", false},
	}
	for _, tc := range tests {
		if got := CanAccessDocument(u, "u1", "t1", tc.action); got != tc.want {
			t.Fatalf("action %q: got %v, want %v", tc.action, got, tc.want)
		}
	}
}

func TestCanAccessCaseOmitsOwnerAndJudgeRules(t *testing.T) {
	// Any same-tenant holder of the permission may act; ownership is
	// irrelevant to cases.
	assoc := tenantUser("a1", RoleAssociate, "t1")
	if !CanAccessCase(assoc, "t1", "write") {
		t.Fatal("same-tenant permission holder must access the case")
	}
	if CanAccessCase(assoc, "t2", "write") {
		t.Fatal("tenant isolation must still apply to cases")
	}
	// A judge's document-style read bypass does not exist for case writes:
	// the case chain stops at the permission gate.
	judge := tenantUser("j1", RoleJudge, "t1")
	if CanAccessCase(judge, "t1", "write") {
		t.Fatal("judge lacks case.write")
	}
	if !CanAccessCase(judge, "t1", "read") {
		t.Fatal("judge holds case.read in own tenant")
	}
	if CanAccessCase(assoc, "t1", "share") {
		t.Fatal("cases have no share action")
	}
	root := tenantUser("root", RoleSuperAdmin, "")
	if !CanAccessCase(root, "t9", "delete") {
		t.Fatal("super admin bypass applies to cases")
	}
	if CanAccessCase(nil, "t1", "read") {
		t.Fatal("nil user must deny")
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole("  lawyer "); !ok || r != RoleLawyer {
		t.Fatalf("expected LAWYER, got %q ok=%v", r, ok)
	}
	if r, ok := ParseRole("INTERN"); ok || r != Role("INTERN") {
		t.Fatalf("unknown role must pass through, got %q ok=%v", r, ok)
	}
	if !RoleJudge.Valid() || Role("INTERN").Valid() {
		t.Fatal("Valid() mismatch")
	}
}

func TestSuperAdminIsSupersetOfEveryRole(t *testing.T) {
	for _, role := range Roles {
		for _, p := range PermissionsForRole(role) {
			if !HasPermission(tenantUser("root", RoleSuperAdmin, ""), p) {
				t.Fatalf("super admin missing %s held by %s", p, role)
			}
		}
	}
}
