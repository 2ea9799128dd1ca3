package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"lexora.app/internal/audit"
	"lexora.app/internal/portal"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db), mock
}

func TestCreateAndGetInvite(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	inv := portal.Invite{
		ID:           "inv-1",
		TenantID:     "t1",
		ClientEmail:  "c@example.com",
		InvitedBy:    "u1",
		PasscodeHash: "$argon2id$...",
		ExpiresAt:    now.Add(time.Hour),
		CreatedAt:    now,
	}

	mock.ExpectExec("insert into portal_invites").
		WithArgs(inv.ID, inv.TenantID, inv.ClientEmail, inv.InvitedBy, inv.PasscodeHash, inv.ExpiresAt, inv.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.CreateInvite(context.Background(), inv); err != nil {
		t.Fatalf("CreateInvite: %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "client_email", "invited_by", "passcode_hash", "expires_at", "created_at", "accepted_at"}).
		AddRow(inv.ID, inv.TenantID, inv.ClientEmail, inv.InvitedBy, inv.PasscodeHash, inv.ExpiresAt, inv.CreatedAt, nil)
	mock.ExpectQuery("select id, tenant_id, client_email").WithArgs("inv-1").WillReturnRows(rows)

	got, err := store.GetInvite(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("GetInvite: %v", err)
	}
	if got.Accepted {
		t.Fatal("fresh invite must not be accepted")
	}
	if got.ClientEmail != "c@example.com" {
		t.Fatalf("unexpected invite: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetInviteNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("select id, tenant_id, client_email").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	if _, err := store.GetInvite(context.Background(), "ghost"); !errors.Is(err, portal.ErrNotFound) {
		t.Fatalf("expected portal.ErrNotFound, got %v", err)
	}
}

func TestMarkInviteAcceptedIsSingleUse(t *testing.T) {
	store, mock := newMockStore(t)
	at := time.Now().UTC()

	mock.ExpectExec("update portal_invites set accepted_at").
		WithArgs("inv-1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := store.MarkInviteAccepted(context.Background(), "inv-1", at); err != nil {
		t.Fatalf("MarkInviteAccepted: %v", err)
	}

	mock.ExpectExec("update portal_invites set accepted_at").
		WithArgs("inv-1", at).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := store.MarkInviteAccepted(context.Background(), "inv-1", at); !errors.Is(err, portal.ErrAlreadyUsed) {
		t.Fatalf("expected portal.ErrAlreadyUsed, got %v", err)
	}
}

func TestAppendAndListAuditEvents(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("insert into audit_events").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "req-1", "u1", "t1", "document.share", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Append(context.Background(), audit.Event{
		RequestID: "req-1",
		UserID:    "u1",
		TenantID:  "t1",
		Name:      "document.share",
		Fields:    map[string]string{"document_id": "d1"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	occurred := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "request_id", "user_id", "tenant_id", "event", "fields"}).
		AddRow("ev-1", occurred, "req-1", "u1", "t1", "document.share", []byte(`{"document_id":"d1"}`))
	mock.ExpectQuery("select id, occurred_at, request_id").WithArgs("t1", 100).WillReturnRows(rows)

	events, err := store.List(context.Background(), "t1", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Fields["document_id"] != "d1" {
		t.Fatalf("fields not decoded: %+v", events[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
