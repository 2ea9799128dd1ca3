package rbac

import "time"

// User is the identity record the evaluator reasons about. It is synced
// from the core backend on first sight of a new external identity and
// refreshed whenever role, tenant, or attrs change upstream.
//
// TenantID is empty only for platform-level super admins.
type User struct {
	ID         string            `json:"id"`
	ExternalID string            `json:"external_id,omitempty"`
	Email      string            `json:"email"`
	Name       string            `json:"name,omitempty"`
	Role       Role              `json:"role"`
	TenantID   string            `json:"tenant_id,omitempty"`
	Attrs      map[string]string `json:"attrs,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// IsSuperAdmin reports whether the user holds the platform-wide role.
func (u *User) IsSuperAdmin() bool {
	return u != nil && u.Role == RoleSuperAdmin
}
