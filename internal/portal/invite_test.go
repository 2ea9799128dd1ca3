package portal

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memStore struct {
	invites map[string]Invite
}

func newMemStore() *memStore {
	return &memStore{invites: make(map[string]Invite)}
}

func (m *memStore) CreateInvite(_ context.Context, inv Invite) error {
	m.invites[inv.ID] = inv
	return nil
}

func (m *memStore) GetInvite(_ context.Context, id string) (Invite, error) {
	inv, ok := m.invites[id]
	if !ok {
		return Invite{}, ErrNotFound
	}
	return inv, nil
}

func (m *memStore) MarkInviteAccepted(_ context.Context, id string, at time.Time) error {
	inv, ok := m.invites[id]
	if !ok {
		return ErrNotFound
	}
	inv.Accepted = true
	inv.AcceptedAt = at
	m.invites[id] = inv
	return nil
}

func TestIssueAndRedeem(t *testing.T) {
	store := newMemStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	inv, passcode, err := svc.Issue(context.Background(), "t1", "Client@Example.com", "u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if passcode == "" {
		t.Fatal("expected plaintext passcode")
	}
	if inv.ClientEmail != "client@example.com" {
		t.Fatalf("email not normalized: %q", inv.ClientEmail)
	}
	if inv.PasscodeHash == passcode {
		t.Fatal("passcode must be stored hashed")
	}

	redeemed, err := svc.Redeem(context.Background(), inv.ID, passcode)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if !redeemed.Accepted || redeemed.AcceptedAt.IsZero() {
		t.Fatalf("invite not marked accepted: %+v", redeemed)
	}
}

func TestRedeemWrongPasscode(t *testing.T) {
	store := newMemStore()
	svc, _ := NewService(store)
	inv, _, err := svc.Issue(context.Background(), "t1", "c@example.com", "u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Redeem(context.Background(), inv.ID, "wrong"); !errors.Is(err, ErrInvalidPasscode) {
		t.Fatalf("expected ErrInvalidPasscode, got %v", err)
	}
}

func TestRedeemExpired(t *testing.T) {
	store := newMemStore()
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := NewService(store, WithTTL(time.Hour), WithClock(func() time.Time { return current }))

	inv, passcode, err := svc.Issue(context.Background(), "t1", "c@example.com", "u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	current = current.Add(2 * time.Hour)
	if _, err := svc.Redeem(context.Background(), inv.ID, passcode); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestRedeemTwice(t *testing.T) {
	store := newMemStore()
	svc, _ := NewService(store)
	inv, passcode, err := svc.Issue(context.Background(), "t1", "c@example.com", "u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Redeem(context.Background(), inv.ID, passcode); err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if _, err := svc.Redeem(context.Background(), inv.ID, passcode); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("expected ErrAlreadyUsed, got %v", err)
	}
}

func TestIssueValidation(t *testing.T) {
	svc, _ := NewService(newMemStore())
	if _, _, err := svc.Issue(context.Background(), "", "c@example.com", "u1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, _, err := svc.Issue(context.Background(), "t1", "not-an-email", "u1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
