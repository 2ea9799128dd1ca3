// Package pg holds the gateway's small slice of local state: portal
// invites and persisted audit events. All tenant business data lives in
// the core backend, not here.
package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"lexora.app/internal/audit"
	"lexora.app/internal/ids"
	"lexora.app/internal/portal"
)

type Store struct {
	db *sql.DB
}

var _ portal.Store = (*Store)(nil)
var _ audit.Store = (*Store)(nil)

// Open connects with pool settings tuned for a thin gateway.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection (used by tests and cmd wiring).
func NewWithDB(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// Portal invites ------------------------------------------------------------

func (s *Store) CreateInvite(ctx context.Context, inv portal.Invite) error {
	_, err := s.db.ExecContext(ctx, `
		insert into portal_invites(id, tenant_id, client_email, invited_by, passcode_hash, expires_at, created_at)
		values ($1,$2,$3,$4,$5,$6,$7)
	`, inv.ID, inv.TenantID, inv.ClientEmail, inv.InvitedBy, inv.PasscodeHash, inv.ExpiresAt, inv.CreatedAt)
	return err
}

func (s *Store) GetInvite(ctx context.Context, id string) (portal.Invite, error) {
	var inv portal.Invite
	var acceptedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		select id, tenant_id, client_email, invited_by, passcode_hash, expires_at, created_at, accepted_at
		from portal_invites where id=$1
	`, id).Scan(&inv.ID, &inv.TenantID, &inv.ClientEmail, &inv.InvitedBy, &inv.PasscodeHash,
		&inv.ExpiresAt, &inv.CreatedAt, &acceptedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.Invite{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.Invite{}, err
	}
	if acceptedAt.Valid {
		inv.Accepted = true
		inv.AcceptedAt = acceptedAt.Time
	}
	return inv, nil
}

func (s *Store) MarkInviteAccepted(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`update portal_invites set accepted_at=$2 where id=$1 and accepted_at is null`, id, at)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return portal.ErrAlreadyUsed
	}
	return nil
}

// Audit events --------------------------------------------------------------

func (s *Store) Append(ctx context.Context, ev audit.Event) error {
	if ev.ID == "" {
		ev.ID = ids.New()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	fields, err := json.Marshal(ev.Fields)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		insert into audit_events(id, occurred_at, request_id, user_id, tenant_id, event, fields)
		values ($1,$2,$3,$4,$5,$6,$7)
	`, ev.ID, ev.OccurredAt, ev.RequestID, ev.UserID, ev.TenantID, ev.Name, fields)
	return err
}

func (s *Store) List(ctx context.Context, tenantID string, limit int) ([]audit.Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		select id, occurred_at, request_id, user_id, tenant_id, event, fields
		from audit_events
		where tenant_id=$1
		order by occurred_at desc
		limit $2
	`, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var ev audit.Event
		var fields []byte
		if err := rows.Scan(&ev.ID, &ev.OccurredAt, &ev.RequestID, &ev.UserID, &ev.TenantID, &ev.Name, &fields); err != nil {
			return nil, err
		}
		if len(fields) > 0 {
			if err := json.Unmarshal(fields, &ev.Fields); err != nil {
				return nil, err
			}
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
