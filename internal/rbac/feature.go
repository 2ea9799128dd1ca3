package rbac

// AccessLevel is the UI-facing access state for a product feature.
type AccessLevel string

const (
	AccessFull     AccessLevel = "full"
	AccessApproval AccessLevel = "approval"
	AccessNone     AccessLevel = "none"
)

// Feature names as surfaced to users. These are display keys, not
// permission constants.
const (
	FeatureDocumentAnalysis   = "Document Analysis"
	FeatureDraftGeneration    = "Draft Generation"
	FeatureMootCourt          = "Moot Court"
	FeatureTranslation        = "Translation"
	FeatureCaseManagement     = "Case Management"
	FeatureContractManagement = "Contract Management"
	FeatureClientManagement   = "Client Management"
	FeatureCalendar           = "Calendar"
	FeatureLegalResearch      = "Legal Research"
	FeatureAuditLogs          = "Audit Logs"
	FeatureUserAdministration = "User Administration"
)

// Features lists every feature key in display order.
var Features = []string{
	FeatureDocumentAnalysis,
	FeatureDraftGeneration,
	FeatureMootCourt,
	FeatureTranslation,
	FeatureCaseManagement,
	FeatureContractManagement,
	FeatureClientManagement,
	FeatureCalendar,
	FeatureLegalResearch,
	FeatureAuditLogs,
	FeatureUserAdministration,
}

// featureAccess is the presentational feature matrix. It is maintained by
// hand, independently of rolePermissions, and is consulted only for UI
// gating and approval banners, never by the resource evaluator. Roles
// absent from a feature's row get AccessNone.
var featureAccess = map[string]map[Role]AccessLevel{
	FeatureDocumentAnalysis: {
		RoleSuperAdmin:     AccessFull,
		RoleAdmin:          AccessFull,
		RoleLawyer:         AccessFull,
		RoleAssociate:      AccessFull,
		RoleInHouseCounsel: AccessFull,
		RoleStudent:        AccessApproval,
		RoleClerk:          AccessApproval,
	},
	FeatureDraftGeneration: {
		RoleSuperAdmin:     AccessFull,
		RoleAdmin:          AccessFull,
		RoleLawyer:         AccessFull,
		RoleAssociate:      AccessApproval,
		RoleInHouseCounsel: AccessFull,
		RoleStudent:        AccessApproval,
	},
	FeatureMootCourt: {
		RoleSuperAdmin: AccessFull,
		RoleAdmin:      AccessFull,
		RoleJudge:      AccessFull,
		RoleLawyer:     AccessFull,
		RoleAssociate:  AccessFull,
		RoleStudent:    AccessFull,
	},
	FeatureTranslation: {
		RoleSuperAdmin:     AccessFull,
		RoleAdmin:          AccessFull,
		RoleLawyer:         AccessFull,
		RoleAssociate:      AccessFull,
		RoleInHouseCounsel: AccessFull,
		RoleStudent:        AccessApproval,
	},
	FeatureCaseManagement: {
		RoleSuperAdmin:        AccessFull,
		RoleAdmin:             AccessFull,
		RoleJudge:             AccessApproval,
		RoleLawyer:            AccessFull,
		RoleAssociate:         AccessFull,
		RoleInHouseCounsel:    AccessApproval,
		RoleStudent:           AccessApproval,
		RoleComplianceOfficer: AccessApproval,
		RoleClerk:             AccessApproval,
		RoleReadOnlyAuditor:   AccessApproval,
	},
	FeatureContractManagement: {
		RoleSuperAdmin:        AccessFull,
		RoleAdmin:             AccessFull,
		RoleLawyer:            AccessFull,
		RoleAssociate:         AccessApproval,
		RoleInHouseCounsel:    AccessFull,
		RoleComplianceOfficer: AccessApproval,
		RoleReadOnlyAuditor:   AccessApproval,
	},
	FeatureClientManagement: {
		RoleSuperAdmin:      AccessFull,
		RoleAdmin:           AccessFull,
		RoleLawyer:          AccessFull,
		RoleAssociate:       AccessApproval,
		RoleInHouseCounsel:  AccessApproval,
		RoleClerk:           AccessApproval,
		RoleReadOnlyAuditor: AccessApproval,
	},
	FeatureCalendar: {
		RoleSuperAdmin:      AccessFull,
		RoleAdmin:           AccessFull,
		RoleJudge:           AccessFull,
		RoleLawyer:          AccessFull,
		RoleAssociate:       AccessFull,
		RoleInHouseCounsel:  AccessFull,
		RoleClerk:           AccessFull,
		RoleReadOnlyAuditor: AccessApproval,
	},
	FeatureLegalResearch: {
		RoleSuperAdmin:        AccessFull,
		RoleAdmin:             AccessFull,
		RoleJudge:             AccessFull,
		RoleLawyer:            AccessFull,
		RoleAssociate:         AccessFull,
		RoleInHouseCounsel:    AccessFull,
		RoleStudent:           AccessFull,
		RoleComplianceOfficer: AccessFull,
		RoleClerk:             AccessApproval,
	},
	FeatureAuditLogs: {
		RoleSuperAdmin:        AccessFull,
		RoleAdmin:             AccessFull,
		RoleComplianceOfficer: AccessFull,
		RoleReadOnlyAuditor:   AccessFull,
	},
	FeatureUserAdministration: {
		RoleSuperAdmin: AccessFull,
		RoleAdmin:      AccessFull,
	},
}

// FeatureAccess returns the access level the user's role has for the
// feature. Unknown features and unknown roles yield AccessNone.
func FeatureAccess(u *User, feature string) AccessLevel {
	if u == nil {
		return AccessNone
	}
	row, ok := featureAccess[feature]
	if !ok {
		return AccessNone
	}
	level, ok := row[u.Role]
	if !ok {
		return AccessNone
	}
	return level
}

// CanAccessFeature reports whether the feature should render at all for the
// user. Approval-gated access still renders; the approval state only adds a
// banner elsewhere in the UI.
func CanAccessFeature(u *User, feature string) bool {
	level := FeatureAccess(u, feature)
	return level == AccessFull || level == AccessApproval
}

// RequiresApproval reports whether the feature renders in the
// approval-required state for the user.
func RequiresApproval(u *User, feature string) bool {
	return FeatureAccess(u, feature) == AccessApproval
}
