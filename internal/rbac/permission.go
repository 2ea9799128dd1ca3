package rbac

// Permission is an atomic capability key. The set is closed and fixed at
// compile time; no permission is ever created at runtime.
type Permission string

const (
	PermDocumentRead   Permission = "document.read"
	PermDocumentWrite  Permission = "document.write"
	PermDocumentDelete Permission = "document.delete"
	PermDocumentShare  Permission = "document.share"
	PermDocumentManage Permission = "document.manage"

	PermCaseRead   Permission = "case.read"
	PermCaseWrite  Permission = "case.write"
	PermCaseDelete Permission = "case.delete"
	PermCaseManage Permission = "case.manage"

	PermContractRead   Permission = "contract.read"
	PermContractWrite  Permission = "contract.write"
	PermContractDelete Permission = "contract.delete"

	PermClientRead  Permission = "client.read"
	PermClientWrite Permission = "client.write"

	PermCalendarRead  Permission = "calendar.read"
	PermCalendarWrite Permission = "calendar.write"

	PermSearchBasic    Permission = "search.basic"
	PermSearchAdvanced Permission = "search.advanced"

	PermAnalysisRun    Permission = "analysis.run"
	PermMootRun        Permission = "moot.run"
	PermTranslationRun Permission = "translation.run"

	PermAuditRead    Permission = "audit.read"
	PermUserManage   Permission = "user.manage"
	PermTenantManage Permission = "tenant.manage"
)

// Permissions lists every capability key known to the platform.
var Permissions = []Permission{
	PermDocumentRead, PermDocumentWrite, PermDocumentDelete, PermDocumentShare, PermDocumentManage,
	PermCaseRead, PermCaseWrite, PermCaseDelete, PermCaseManage,
	PermContractRead, PermContractWrite, PermContractDelete,
	PermClientRead, PermClientWrite,
	PermCalendarRead, PermCalendarWrite,
	PermSearchBasic, PermSearchAdvanced,
	PermAnalysisRun, PermMootRun, PermTranslationRun,
	PermAuditRead, PermUserManage, PermTenantManage,
}
