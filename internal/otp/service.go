package otp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
)

var (
	ErrInvalidMobile = errors.New("invalid mobile number")
	ErrInvalidCode   = errors.New("invalid otp code")
	ErrRateLimited   = errors.New("otp send rate limited")
)

var (
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	codePattern   = regexp.MustCompile(`^\d{6}$`)
)

// ProfileVerifier is the slice of the users service the OTP flow needs: on a
// successful verify it flips the requesting account's mobile-verified flag.
type ProfileVerifier interface {
	MarkMobileVerified(ctx context.Context, email, mobileNumber string) error
}

type Service struct {
	provider Provider
	store    *SessionStore
	limiter  *sendLimiter
	profiles ProfileVerifier
}

func NewService(provider Provider, store *SessionStore, profiles ProfileVerifier) *Service {
	return &Service{
		provider: provider,
		store:    store,
		limiter:  newSendLimiter(),
		profiles: profiles,
	}
}

// SendOTP asks the provider to deliver a code and remembers which account
// the session belongs to.
func (s *Service) SendOTP(ctx context.Context, mobile, email string) (string, error) {
	if !mobilePattern.MatchString(mobile) {
		return "", ErrInvalidMobile
	}
	if !s.limiter.allow(mobile) {
		return "", ErrRateLimited
	}

	sessionID, err := s.provider.Send(ctx, mobile)
	if err != nil {
		return "", err
	}

	if s.store != nil {
		if err := s.store.Save(ctx, sessionID, Session{Email: email, Mobile: mobile}); err != nil {
			// The provider already holds the authoritative session; losing
			// ours only costs the automatic profile flip on verify.
			log.Printf("[otp] failed to save session %s: %v", sessionID, err)
		}
	}

	return sessionID, nil
}

// VerifyOTP checks the code with the provider. On a match the session's
// profile is marked mobile-verified; on a mismatch it reports false with no
// error so the caller can retry.
func (s *Service) VerifyOTP(ctx context.Context, sessionID, code string) (bool, error) {
	if !codePattern.MatchString(code) {
		return false, ErrInvalidCode
	}

	ok, err := s.provider.Verify(ctx, sessionID, code)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if s.store != nil && s.profiles != nil {
		sess, err := s.store.Get(ctx, sessionID)
		if err == nil && sess.Email != "" {
			if err := s.profiles.MarkMobileVerified(ctx, sess.Email, sess.Mobile); err != nil {
				return false, fmt.Errorf("mark mobile verified: %w", err)
			}
			_ = s.store.Delete(ctx, sessionID)
		} else if err != nil && !errors.Is(err, ErrSessionNotFound) {
			log.Printf("[otp] session lookup failed for %s: %v", sessionID, err)
		}
	}

	return true, nil
}
