package services

import (
	"errors"
	"testing"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/security"
	"golang.org/x/crypto/bcrypt"
)

type stubCoachRepo struct {
	count   int64
	coach   models.Coach
	found   bool
	exists  bool
	created *models.Coach
}

func (stub *stubCoachRepo) CountCoaches() (int64, error) {
	return stub.count, nil
}

func (stub *stubCoachRepo) FindByID(uint) (models.Coach, bool, error) {
	return stub.coach, stub.found, nil
}

func (stub *stubCoachRepo) FindByNormalizedEmail(string) (models.Coach, bool, error) {
	return stub.coach, stub.found, nil
}

func (stub *stubCoachRepo) ExistsByNormalizedEmail(string) (bool, error) {
	return stub.exists, nil
}

func (stub *stubCoachRepo) Create(coach *models.Coach) error {
	coach.ID = 1
	stub.created = coach
	return nil
}

func (stub *stubCoachRepo) List() ([]models.Coach, error) {
	return []models.Coach{stub.coach}, nil
}

type stubInviteRepo struct {
	invite   models.CoachInvite
	found    bool
	created  *models.CoachInvite
	accepted *models.Coach
}

func (stub *stubInviteRepo) Create(invite *models.CoachInvite) error {
	invite.ID = 3
	stub.created = invite
	return nil
}

func (stub *stubInviteRepo) FindByTokenHash(tokenHash string) (models.CoachInvite, bool, error) {
	if !stub.found || tokenHash != stub.invite.TokenHash {
		return models.CoachInvite{}, false, nil
	}
	return stub.invite, true, nil
}

func (stub *stubInviteRepo) AcceptWithCoach(invite *models.CoachInvite, coach *models.Coach, acceptedAt time.Time) error {
	coach.ID = 2
	stub.accepted = coach
	return nil
}

var authTestNow = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func TestRegisterFirstCoachBecomesAdmin(t *testing.T) {
	coaches := &stubCoachRepo{}
	service := NewAuthService(coaches, &stubInviteRepo{})

	coach, err := service.Register(" Marisol@Example.com ", "Sunlit4morning", "", authTestNow)
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if coach.Email != "marisol@example.com" {
		t.Fatalf("email = %q, want normalized", coach.Email)
	}
	if coach.Role != models.RoleAdmin {
		t.Fatalf("role = %q, want admin", coach.Role)
	}
	if coach.DisplayName != "marisol" {
		t.Fatalf("display name = %q, want derived from email", coach.DisplayName)
	}
	if coach.PasswordHash == "Sunlit4morning" {
		t.Fatal("password must never be stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(coach.PasswordHash), []byte("Sunlit4morning")) != nil {
		t.Fatal("stored hash must verify the password")
	}
}

func TestRegisterClosedOnceACoachExists(t *testing.T) {
	service := NewAuthService(&stubCoachRepo{count: 1}, &stubInviteRepo{})
	_, err := service.Register("new@example.com", "Sunlit4morning", "", authTestNow)
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed, got %v", err)
	}
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	service := NewAuthService(&stubCoachRepo{}, &stubInviteRepo{})

	if _, err := service.Register("not-an-email", "Sunlit4morning", "", authTestNow); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("bad email: expected ErrAuthCredentialsInvalid, got %v", err)
	}
	if _, err := service.Register("a@example.com", "short", "", authTestNow); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password: expected ErrWeakPassword, got %v", err)
	}
	if _, err := service.Register("a@example.com", "alllowercase1", "", authTestNow); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("no upper: expected ErrWeakPassword, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("Sunlit4morning"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	coaches := &stubCoachRepo{
		coach: models.Coach{ID: 1, Email: "marisol@example.com", PasswordHash: string(passwordHash)},
		found: true,
	}
	service := NewAuthService(coaches, &stubInviteRepo{})

	coach, err := service.Login("Marisol@example.com", "Sunlit4morning")
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if coach.ID != 1 {
		t.Fatalf("unexpected coach: %+v", coach)
	}

	if _, err := service.Login("marisol@example.com", "WrongPass1"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("wrong password: expected ErrAuthCredentialsInvalid, got %v", err)
	}

	unknown := NewAuthService(&stubCoachRepo{}, &stubInviteRepo{})
	if _, err := unknown.Login("nobody@example.com", "Sunlit4morning"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("unknown email: expected ErrAuthCredentialsInvalid, got %v", err)
	}
}

func TestCreateInvite(t *testing.T) {
	invites := &stubInviteRepo{}
	service := NewAuthService(&stubCoachRepo{}, invites)

	invite, rawToken, err := service.CreateInvite(1, "New@Example.com", "owner", authTestNow)
	if err != nil {
		t.Fatalf("CreateInvite() unexpected error: %v", err)
	}
	if invite.Email != "new@example.com" || invite.Role != models.RoleCoach {
		t.Fatalf("unexpected invite: %+v", invite)
	}
	if invite.PublicID == "" {
		t.Fatal("invite needs a public ID")
	}
	if !invite.ExpiresAt.Equal(authTestNow.Add(models.InviteTTL)) {
		t.Fatalf("expires at = %v", invite.ExpiresAt)
	}
	if invites.created.TokenHash != security.HashToken(rawToken) {
		t.Fatal("stored hash must match the raw invite token")
	}
}

func TestCreateInviteRejectsExistingEmail(t *testing.T) {
	service := NewAuthService(&stubCoachRepo{exists: true}, &stubInviteRepo{})
	if _, _, err := service.CreateInvite(1, "taken@example.com", "", authTestNow); !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func pendingInviteFixture(expiresAt time.Time) (*stubInviteRepo, string) {
	rawToken := "NvK4rTm8WcQz"
	return &stubInviteRepo{
		invite: models.CoachInvite{
			ID:        3,
			Email:     "new@example.com",
			Role:      models.RoleCoach,
			TokenHash: security.HashToken(rawToken),
			ExpiresAt: expiresAt,
		},
		found: true,
	}, rawToken
}

func TestAcceptInvite(t *testing.T) {
	invites, rawToken := pendingInviteFixture(authTestNow.Add(time.Hour))
	service := NewAuthService(&stubCoachRepo{}, invites)

	coach, err := service.AcceptInvite(rawToken, "Sunlit4morning", "Noa", authTestNow)
	if err != nil {
		t.Fatalf("AcceptInvite() unexpected error: %v", err)
	}
	if coach.Email != "new@example.com" || coach.Role != models.RoleCoach || coach.DisplayName != "Noa" {
		t.Fatalf("unexpected coach: %+v", coach)
	}
	if invites.accepted == nil {
		t.Fatal("coach and invite must be written together")
	}
}

func TestAcceptInviteRejectsBadStates(t *testing.T) {
	expired, rawToken := pendingInviteFixture(authTestNow.Add(-time.Minute))
	service := NewAuthService(&stubCoachRepo{}, expired)
	if _, err := service.AcceptInvite(rawToken, "Sunlit4morning", "", authTestNow); !errors.Is(err, ErrInviteInvalid) {
		t.Fatalf("expired: expected ErrInviteInvalid, got %v", err)
	}

	used, usedToken := pendingInviteFixture(authTestNow.Add(time.Hour))
	acceptedAt := authTestNow.Add(-time.Hour)
	used.invite.AcceptedAt = &acceptedAt
	service = NewAuthService(&stubCoachRepo{}, used)
	if _, err := service.AcceptInvite(usedToken, "Sunlit4morning", "", authTestNow); !errors.Is(err, ErrInviteInvalid) {
		t.Fatalf("used: expected ErrInviteInvalid, got %v", err)
	}

	service = NewAuthService(&stubCoachRepo{}, &stubInviteRepo{})
	if _, err := service.AcceptInvite("unknown-token", "Sunlit4morning", "", authTestNow); !errors.Is(err, ErrInviteInvalid) {
		t.Fatalf("unknown: expected ErrInviteInvalid, got %v", err)
	}

	pending, pendingToken := pendingInviteFixture(authTestNow.Add(time.Hour))
	service = NewAuthService(&stubCoachRepo{}, pending)
	if _, err := service.AcceptInvite(pendingToken, "weak", "", authTestNow); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password: expected ErrWeakPassword, got %v", err)
	}
}
