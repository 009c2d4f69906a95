package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrRegistrationClosed is returned once the first coach exists; every
	// later account joins through an invite.
	ErrRegistrationClosed = errors.New("registration closed")

	ErrInviteInvalid = errors.New("invite invalid or expired")
)

type AuthCoachRepository interface {
	CountCoaches() (int64, error)
	FindByID(coachID uint) (models.Coach, bool, error)
	FindByNormalizedEmail(email string) (models.Coach, bool, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	Create(coach *models.Coach) error
	List() ([]models.Coach, error)
}

type AuthInviteRepository interface {
	Create(invite *models.CoachInvite) error
	FindByTokenHash(tokenHash string) (models.CoachInvite, bool, error)
	AcceptWithCoach(invite *models.CoachInvite, coach *models.Coach, acceptedAt time.Time) error
}

type AuthService struct {
	coaches AuthCoachRepository
	invites AuthInviteRepository
}

func NewAuthService(coaches AuthCoachRepository, invites AuthInviteRepository) *AuthService {
	return &AuthService{
		coaches: coaches,
		invites: invites,
	}
}

// Register creates the practice's first coach, who becomes the admin. Once
// any coach exists the endpoint is closed and new coaches join by invite.
func (service *AuthService) Register(emailRaw string, passwordRaw string, displayName string, now time.Time) (models.Coach, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.Coach{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.Coach{}, err
	}

	existing, err := service.coaches.CountCoaches()
	if err != nil {
		return models.Coach{}, err
	}
	if existing > 0 {
		return models.Coach{}, ErrRegistrationClosed
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Coach{}, err
	}

	coach := models.Coach{
		Email:        email,
		PasswordHash: string(passwordHash),
		DisplayName:  fallbackDisplayName(displayName, email),
		Role:         models.RoleAdmin,
		CreatedAt:    now,
	}
	if err := service.coaches.Create(&coach); err != nil {
		return models.Coach{}, err
	}
	return coach, nil
}

func (service *AuthService) Login(emailRaw string, passwordRaw string) (models.Coach, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.Coach{}, err
	}

	coach, found, err := service.coaches.FindByNormalizedEmail(email)
	if err != nil {
		return models.Coach{}, err
	}
	if !found {
		return models.Coach{}, ErrAuthCredentialsInvalid
	}
	if bcrypt.CompareHashAndPassword([]byte(coach.PasswordHash), []byte(password)) != nil {
		return models.Coach{}, ErrAuthCredentialsInvalid
	}
	return coach, nil
}

func (service *AuthService) FindByID(coachID uint) (models.Coach, bool, error) {
	return service.coaches.FindByID(coachID)
}

func (service *AuthService) ListCoaches() ([]models.Coach, error) {
	return service.coaches.List()
}

// CreateInvite mints an invite for a new coach account. The raw token is
// returned once for the admin to deliver; only its hash is stored.
func (service *AuthService) CreateInvite(invitedBy uint, emailRaw string, role string, now time.Time) (models.CoachInvite, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.CoachInvite{}, "", NewValidationError("email", "a valid email is required")
	}
	exists, err := service.coaches.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.CoachInvite{}, "", err
	}
	if exists {
		return models.CoachInvite{}, "", NewValidationError("email", "a coach with this email already exists")
	}

	rawToken, tokenHash, err := security.NewInviteToken()
	if err != nil {
		return models.CoachInvite{}, "", err
	}

	invite := models.CoachInvite{
		PublicID:  uuid.NewString(),
		Email:     email,
		Role:      normalizeCoachRole(role),
		TokenHash: tokenHash,
		InvitedBy: invitedBy,
		ExpiresAt: now.Add(models.InviteTTL),
		CreatedAt: now,
	}
	if err := service.invites.Create(&invite); err != nil {
		return models.CoachInvite{}, "", err
	}
	return invite, rawToken, nil
}

// AcceptInvite consumes a pending invite and creates the coach account in one
// transaction. Expired or already-used invites fail with ErrInviteInvalid.
func (service *AuthService) AcceptInvite(rawToken string, passwordRaw string, displayName string, now time.Time) (models.Coach, error) {
	if strings.TrimSpace(rawToken) == "" {
		return models.Coach{}, ErrInviteInvalid
	}

	invite, found, err := service.invites.FindByTokenHash(security.HashToken(rawToken))
	if err != nil {
		return models.Coach{}, err
	}
	if !found || !models.IsUsableInvite(&invite, now) {
		return models.Coach{}, ErrInviteInvalid
	}

	password := strings.TrimSpace(passwordRaw)
	if err := ValidatePasswordStrength(password); err != nil {
		return models.Coach{}, err
	}
	exists, err := service.coaches.ExistsByNormalizedEmail(invite.Email)
	if err != nil {
		return models.Coach{}, err
	}
	if exists {
		return models.Coach{}, ErrInviteInvalid
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Coach{}, err
	}

	coach := models.Coach{
		Email:        invite.Email,
		PasswordHash: string(passwordHash),
		DisplayName:  fallbackDisplayName(displayName, invite.Email),
		Role:         invite.Role,
		CreatedAt:    now,
	}
	if err := service.invites.AcceptWithCoach(&invite, &coach, now); err != nil {
		return models.Coach{}, err
	}
	return coach, nil
}

func normalizeCoachRole(role string) string {
	if strings.TrimSpace(role) == models.RoleAdmin {
		return models.RoleAdmin
	}
	return models.RoleCoach
}

func fallbackDisplayName(displayName string, email string) string {
	trimmed := strings.TrimSpace(displayName)
	if trimmed != "" {
		return trimmed
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
