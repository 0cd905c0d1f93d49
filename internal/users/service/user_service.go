package service

import (
	"context"
	"errors"
	"log"

	"github.com/mvps-print/printshop-backend/internal/users/domain"
	"github.com/mvps-print/printshop-backend/internal/users/repository"
)

// IdentityDeleter removes the account on the external identity provider.
// Failures there are logged and swallowed: the local store is the authority.
type IdentityDeleter interface {
	DeleteByEmail(ctx context.Context, email string) error
}

type UserService struct {
	users      *repository.UserRepository
	profiles   *repository.ProfileRepository
	identity   IdentityDeleter
	superAdmin string
}

func NewUserService(users *repository.UserRepository, profiles *repository.ProfileRepository, identity IdentityDeleter, superAdminEmail string) *UserService {
	return &UserService{
		users:      users,
		profiles:   profiles,
		identity:   identity,
		superAdmin: superAdminEmail,
	}
}

// EnsureRole auto-provisions a users row on first sight of an email and
// returns the role. The super-admin address is created as a protected admin.
// Idempotent.
func (s *UserService) EnsureRole(ctx context.Context, email string) (string, error) {
	role, err := s.users.GetRole(ctx, email)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	u := domain.User{Email: email, Role: domain.RoleUser}
	if email == s.superAdmin {
		u.Role = domain.RoleAdmin
		u.Protected = true
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return "", err
	}
	return u.Role, nil
}

// GetRole defaults to "user" when the email is unknown; callers that must
// distinguish "unknown" call EnsureRole first.
func (s *UserService) GetRole(ctx context.Context, email string) (string, error) {
	role, err := s.users.GetRole(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.RoleUser, nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func (s *UserService) UpdateRole(ctx context.Context, email, role string) error {
	if email == s.superAdmin && role != domain.RoleAdmin {
		return domain.ErrProtectedAdmin
	}
	return s.users.UpdateRole(ctx, email, role)
}

func (s *UserService) Block(ctx context.Context, email string) error {
	if email == s.superAdmin {
		return domain.ErrProtectedAdmin
	}
	return s.users.SetBlocked(ctx, email, true)
}

// Unblock tolerates unknown emails: clearing a flag that was never set is
// reported as success.
func (s *UserService) Unblock(ctx context.Context, email string) (bool, error) {
	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	return true, s.users.SetBlocked(ctx, email, false)
}

func (s *UserService) IsBlocked(ctx context.Context, email string) (bool, error) {
	return s.users.IsBlocked(ctx, email)
}

// Delete removes the local row and asks the identity provider to drop the
// matching account. Identity-side failures are logged, never surfaced.
func (s *UserService) Delete(ctx context.Context, email string) error {
	if email == s.superAdmin {
		return domain.ErrProtectedAdmin
	}
	if err := s.users.Delete(ctx, email); err != nil {
		return err
	}
	if s.identity != nil {
		if err := s.identity.DeleteByEmail(ctx, email); err != nil {
			log.Printf("[users] identity delete for %s failed (local delete kept): %v", email, err)
		}
	}
	return nil
}

func (s *UserService) List(ctx context.Context) ([]domain.UserListing, error) {
	return s.users.List(ctx)
}

func (s *UserService) UpsertProfile(ctx context.Context, p domain.Profile) error {
	return s.profiles.Upsert(ctx, p)
}

func (s *UserService) GetProfile(ctx context.Context, email string) (*domain.Profile, error) {
	return s.profiles.Get(ctx, email)
}

// ToggleMobileVerified flips the flag; fails with domain.ErrProfileMissing
// when there is no profile to flip.
func (s *UserService) ToggleMobileVerified(ctx context.Context, email string) (bool, error) {
	p, err := s.profiles.Get(ctx, email)
	if err != nil {
		return false, err
	}
	newFlag := !p.MobileVerified
	if err := s.profiles.SetMobileVerified(ctx, email, newFlag); err != nil {
		return false, err
	}
	return newFlag, nil
}

// MarkMobileVerified sets the flag after a successful OTP round-trip, keeping
// the rest of the profile intact (read-modify-write).
func (s *UserService) MarkMobileVerified(ctx context.Context, email, mobileNumber string) error {
	p, err := s.profiles.Get(ctx, email)
	if errors.Is(err, domain.ErrProfileMissing) {
		p = &domain.Profile{Email: email}
	} else if err != nil {
		return err
	}
	if mobileNumber != "" {
		p.MobileNumber = mobileNumber
	}
	p.MobileVerified = true
	return s.profiles.Upsert(ctx, *p)
}

// CheckAccess is the access-check composition: ensure the role exists, admins
// pass unconditionally, blocked users fail with the blocked signal, and
// non-admins without a verified mobile fail with the unverified signal.
func (s *UserService) CheckAccess(ctx context.Context, email string) (domain.AccessResult, error) {
	role, err := s.EnsureRole(ctx, email)
	if err != nil {
		return domain.AccessResult{}, err
	}

	if role == domain.RoleAdmin {
		return domain.AccessResult{Signal: domain.AccessOK, Role: role}, nil
	}

	blocked, err := s.users.IsBlocked(ctx, email)
	if err != nil {
		return domain.AccessResult{}, err
	}
	if blocked {
		return domain.AccessResult{Signal: domain.AccessBlocked, Role: role}, nil
	}

	p, err := s.profiles.Get(ctx, email)
	if errors.Is(err, domain.ErrProfileMissing) {
		return domain.AccessResult{Signal: domain.AccessUnverified, Role: role}, nil
	}
	if err != nil {
		return domain.AccessResult{}, err
	}
	if !p.MobileVerified {
		return domain.AccessResult{Signal: domain.AccessUnverified, Role: role}, nil
	}

	return domain.AccessResult{Signal: domain.AccessOK, Role: role}, nil
}
