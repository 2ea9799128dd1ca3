package rbac

// rolePermissions is the static role→permission table. It is built once at
// package init and never mutated afterwards. A role missing from the table
// (including any future role added upstream before this table learns about
// it) resolves to the empty set, keeping the system fail-closed.
var rolePermissions = map[Role]map[Permission]struct{}{
	RoleSuperAdmin: permissionSet(Permissions...),
	RoleAdmin: permissionSet(
		PermDocumentRead, PermDocumentWrite, PermDocumentDelete, PermDocumentShare, PermDocumentManage,
		PermCaseRead, PermCaseWrite, PermCaseDelete, PermCaseManage,
		PermContractRead, PermContractWrite, PermContractDelete,
		PermClientRead, PermClientWrite,
		PermCalendarRead, PermCalendarWrite,
		PermSearchBasic, PermSearchAdvanced,
		PermAnalysisRun, PermMootRun, PermTranslationRun,
		PermAuditRead, PermUserManage,
	),
	RoleJudge: permissionSet(
		PermDocumentRead,
		PermCaseRead,
		PermCalendarRead, PermCalendarWrite,
		PermSearchBasic, PermSearchAdvanced,
		PermMootRun,
	),
	RoleLawyer: permissionSet(
		PermDocumentRead, PermDocumentWrite, PermDocumentDelete, PermDocumentShare,
		PermCaseRead, PermCaseWrite, PermCaseManage,
		PermContractRead, PermContractWrite,
		PermClientRead, PermClientWrite,
		PermCalendarRead, PermCalendarWrite,
		PermSearchBasic, PermSearchAdvanced,
		PermAnalysisRun, PermMootRun, PermTranslationRun,
	),
	RoleAssociate: permissionSet(
		PermDocumentRead, PermDocumentWrite,
		PermCaseRead, PermCaseWrite,
		PermContractRead,
		PermClientRead,
		PermCalendarRead, PermCalendarWrite,
		PermSearchBasic, PermSearchAdvanced,
		PermAnalysisRun, PermTranslationRun,
	),
	RoleInHouseCounsel: permissionSet(
		PermDocumentRead, PermDocumentWrite, PermDocumentShare,
		PermCaseRead,
		PermContractRead, PermContractWrite, PermContractDelete,
		PermClientRead,
		PermCalendarRead, PermCalendarWrite,
		PermSearchBasic, PermSearchAdvanced,
		PermAnalysisRun, PermTranslationRun,
	),
	RoleStudent: permissionSet(
		PermDocumentRead,
		PermCaseRead,
		PermSearchBasic,
		PermMootRun, PermTranslationRun,
	),
	RoleComplianceOfficer: permissionSet(
		PermDocumentRead,
		PermCaseRead,
		PermContractRead,
		PermClientRead,
		PermSearchBasic, PermSearchAdvanced,
		PermAuditRead,
	),
	RoleClerk: permissionSet(
		PermDocumentRead, PermDocumentWrite,
		PermCaseRead,
		PermClientRead,
		PermCalendarRead, PermCalendarWrite,
		PermSearchBasic,
	),
	RoleReadOnlyAuditor: permissionSet(
		PermDocumentRead,
		PermCaseRead,
		PermContractRead,
		PermClientRead,
		PermCalendarRead,
		PermSearchBasic,
		PermAuditRead,
	),
}

func permissionSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// PermissionsForRole returns the sorted-by-declaration permission list for a
// role; an unknown role yields nil.
func PermissionsForRole(role Role) []Permission {
	set, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Permission, 0, len(set))
	for _, p := range Permissions {
		if _, ok := set[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
