// Package portal implements client-portal invites: a tenant member issues a
// one-time passcode for an external client, who redeems it to gain portal
// access. Passcodes are hashed at rest with argon2id.
package portal

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"

	"lexora.app/internal/ids"
)

const defaultInviteTTL = 7 * 24 * time.Hour

var (
	ErrNotFound        = errors.New("portal: invite not found")
	ErrInvalidInput    = errors.New("portal: invalid input")
	ErrInvalidPasscode = errors.New("portal: invalid passcode")
	ErrExpired         = errors.New("portal: invite expired")
	ErrAlreadyUsed     = errors.New("portal: invite already accepted")
)

// Invite is a pending or accepted portal invitation.
type Invite struct {
	ID           string
	TenantID     string
	ClientEmail  string
	InvitedBy    string
	PasscodeHash string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	AcceptedAt   time.Time
	Accepted     bool
}

// Store persists invites.
type Store interface {
	CreateInvite(ctx context.Context, inv Invite) error
	GetInvite(ctx context.Context, id string) (Invite, error)
	MarkInviteAccepted(ctx context.Context, id string, at time.Time) error
}

// Service issues and redeems invites.
type Service struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithTTL overrides the invite lifetime.
func WithTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs a Service.
func NewService(store Store, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("portal: store is required")
	}
	s := &Service{store: store, ttl: defaultInviteTTL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue creates an invite and returns it together with the plaintext
// passcode. The passcode is shown exactly once; only its hash is stored.
func (s *Service) Issue(ctx context.Context, tenantID, clientEmail, invitedBy string) (Invite, string, error) {
	tenantID = strings.TrimSpace(tenantID)
	clientEmail = strings.TrimSpace(strings.ToLower(clientEmail))
	if tenantID == "" {
		return Invite{}, "", fmt.Errorf("%w: tenant_id is required", ErrInvalidInput)
	}
	if clientEmail == "" || !strings.Contains(clientEmail, "@") {
		return Invite{}, "", fmt.Errorf("%w: valid client email is required", ErrInvalidInput)
	}

	passcode, err := generatePasscode()
	if err != nil {
		return Invite{}, "", err
	}
	hash, err := hashPasscode(passcode)
	if err != nil {
		return Invite{}, "", err
	}

	now := s.now().UTC()
	inv := Invite{
		ID:           ids.New(),
		TenantID:     tenantID,
		ClientEmail:  clientEmail,
		InvitedBy:    strings.TrimSpace(invitedBy),
		PasscodeHash: hash,
		ExpiresAt:    now.Add(s.ttl),
		CreatedAt:    now,
	}
	if err := s.store.CreateInvite(ctx, inv); err != nil {
		return Invite{}, "", err
	}
	return inv, passcode, nil
}

// Redeem verifies the passcode and marks the invite accepted.
func (s *Service) Redeem(ctx context.Context, inviteID, passcode string) (Invite, error) {
	inviteID = strings.TrimSpace(inviteID)
	if inviteID == "" || strings.TrimSpace(passcode) == "" {
		return Invite{}, fmt.Errorf("%w: invite id and passcode are required", ErrInvalidInput)
	}
	inv, err := s.store.GetInvite(ctx, inviteID)
	if err != nil {
		return Invite{}, err
	}
	if inv.Accepted {
		return Invite{}, ErrAlreadyUsed
	}
	if s.now().After(inv.ExpiresAt) {
		return Invite{}, ErrExpired
	}
	if !verifyPasscode(inv.PasscodeHash, passcode) {
		return Invite{}, ErrInvalidPasscode
	}
	acceptedAt := s.now().UTC()
	if err := s.store.MarkInviteAccepted(ctx, inv.ID, acceptedAt); err != nil {
		return Invite{}, err
	}
	inv.Accepted = true
	inv.AcceptedAt = acceptedAt
	return inv, nil
}

func generatePasscode() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("portal: generate passcode: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

const (
	argonMemory      = 64 * 1024
	argonIterations  = 2
	argonParallelism = 1
	argonKeyLength   = 32
	argonSaltLength  = 16
)

func hashPasscode(passcode string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("portal: generate salt: %w", err)
	}
	hash := argon2.IDKey([]byte(passcode), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)
	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argonMemory,
		argonIterations,
		argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPasscode(encoded, passcode string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}
	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(passcode), salt, iterations, memory, parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
