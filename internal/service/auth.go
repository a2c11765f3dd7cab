package service

import (
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mwestby/choreboard/internal/email"
	"github.com/mwestby/choreboard/internal/model"
	"github.com/mwestby/choreboard/internal/store"
)

// DefaultHouseholdID is the shared household of a deployment. The
// server is self-hosted per household, so every registrant joins it.
const DefaultHouseholdID = "default"

type AuthService struct {
	profiles   *store.ProfileStore
	sessions   *store.SessionStore
	resets     *store.PasswordResetStore
	mailer     *email.Client
	adminEmail string
	logger     *slog.Logger
}

func NewAuthService(
	ps *store.ProfileStore,
	ss *store.SessionStore,
	prs *store.PasswordResetStore,
	mailer *email.Client,
	adminEmail string,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		profiles:   ps,
		sessions:   ss,
		resets:     prs,
		mailer:     mailer,
		adminEmail: adminEmail,
		logger:     logger.With("component", "auth"),
	}
}

// Register creates a profile and logs it in. The configured admin email
// gets the admin role; everyone else is a member.
func (s *AuthService) Register(name, emailAddr, password, avatar, color string) (*model.UserProfile, *model.Session, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	existing, err := s.profiles.GetByEmail(emailAddr)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	role := model.RoleMember
	if s.adminEmail != "" && strings.EqualFold(emailAddr, s.adminEmail) {
		role = model.RoleAdmin
	}

	profile, err := s.profiles.Create(name, emailAddr, avatar, color, role, string(hash), DefaultHouseholdID)
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.sessions.Create(profile.ID, profile.HouseholdID)
	if err != nil {
		return nil, nil, err
	}
	return profile, sess, nil
}

// Login verifies the password and issues a bearer session. Unknown
// accounts and wrong passwords both come back as ErrInvalidCredentials.
func (s *AuthService) Login(emailAddr, password string) (*model.UserProfile, *model.Session, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	hash, err := s.profiles.PasswordHash(emailAddr)
	if err != nil {
		return nil, nil, err
	}
	if hash == "" {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByEmail(emailAddr)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(profile.ID, profile.HouseholdID)
	if err != nil {
		return nil, nil, err
	}
	return profile, sess, nil
}

func (s *AuthService) Logout(token string) error {
	return s.sessions.Delete(token)
}

// RequestPasswordReset issues a recovery token and mails it when a
// mailer is configured. It succeeds silently for unknown emails so the
// endpoint cannot be used to enumerate accounts.
func (s *AuthService) RequestPasswordReset(emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	profile, err := s.profiles.GetByEmail(emailAddr)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}

	reset, err := s.resets.Create(emailAddr)
	if err != nil {
		return err
	}

	if s.mailer != nil && s.mailer.Configured() {
		if err := s.mailer.SendPasswordReset(emailAddr, reset.Token); err != nil {
			s.logger.Error("send password reset", "error", err)
		}
		return nil
	}
	// Self-hosted deployments without SMTP read the token from the log.
	s.logger.Info("password reset requested", "email", emailAddr, "token", reset.Token)
	return nil
}

// ConfirmPasswordReset sets a new password for the token's account and
// revokes the account's live sessions.
func (s *AuthService) ConfirmPasswordReset(token, newPassword string) error {
	reset, err := s.resets.GetByToken(token)
	if err != nil {
		return err
	}
	if reset == nil {
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.profiles.UpdatePasswordHash(reset.Email, string(hash)); err != nil {
		return err
	}
	if err := s.resets.MarkUsed(reset.ID); err != nil {
		return err
	}

	profile, err := s.profiles.GetByEmail(reset.Email)
	if err != nil || profile == nil {
		return err
	}
	if err := s.sessions.DeleteByUser(profile.ID); err != nil {
		s.logger.Error("revoke sessions after reset", "error", err)
	}
	return nil
}
