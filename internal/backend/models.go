package backend

import (
	"time"

	"lexora.app/internal/rbac"
)

// Document is the metadata the gateway needs for authorization and
// listing; bodies and processing artifacts stay in the backend.
type Document struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	OwnerID   string    `json:"owner_id"`
	CaseID    string    `json:"case_id,omitempty"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Case is a tenant-shared matter; it carries an owner id for display but
// case authorization ignores ownership.
type Case struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	OwnerID   string    `json:"owner_id,omitempty"`
	Number    string    `json:"number"`
	Title     string    `json:"title"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Contract struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Counterparty string    `json:"counterparty,omitempty"`
	Status       string    `json:"status,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClientRecord is a CRM client entry.
type ClientRecord struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CalendarEvent struct {
	ID       string    `json:"id"`
	TenantID string    `json:"tenant_id"`
	OwnerID  string    `json:"owner_id"`
	CaseID   string    `json:"case_id,omitempty"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at,omitempty"`
	Location string    `json:"location,omitempty"`
}

// AnalysisJob tracks a document-analysis run in the backend pipeline.
type AnalysisJob struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	TenantID   string    `json:"tenant_id"`
	Status     string    `json:"status"`
	Summary    string    `json:"summary,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

type MootSession struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	OwnerID   string    `json:"owner_id"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}

type MootMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type TranslationJob struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	SourceLang string    `json:"source_lang"`
	TargetLang string    `json:"target_lang"`
	Status     string    `json:"status"`
	Result     string    `json:"result,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// userPayload is the wire form of a user record.
type userPayload struct {
	ID         string            `json:"id"`
	ExternalID string            `json:"external_id,omitempty"`
	Email      string            `json:"email"`
	Name       string            `json:"name,omitempty"`
	Role       string            `json:"role"`
	TenantID   string            `json:"tenant_id,omitempty"`
	Attrs      map[string]string `json:"attrs,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (p userPayload) toUser() *rbac.User {
	role, _ := rbac.ParseRole(p.Role)
	return &rbac.User{
		ID:         p.ID,
		ExternalID: p.ExternalID,
		Email:      p.Email,
		Name:       p.Name,
		Role:       role,
		TenantID:   p.TenantID,
		Attrs:      p.Attrs,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
