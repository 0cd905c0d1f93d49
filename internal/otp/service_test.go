package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	sessionID string
	match     bool
	err       error
	sends     int
	verifies  int
}

func (p *stubProvider) Send(ctx context.Context, mobile string) (string, error) {
	p.sends++
	return p.sessionID, p.err
}

func (p *stubProvider) Verify(ctx context.Context, sessionID, otp string) (bool, error) {
	p.verifies++
	return p.match, p.err
}

type stubVerifier struct {
	email  string
	mobile string
	err    error
}

func (v *stubVerifier) MarkMobileVerified(ctx context.Context, email, mobileNumber string) error {
	v.email, v.mobile = email, mobileNumber
	return v.err
}

func redisStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client), mr
}

func TestSendOTP(t *testing.T) {
	t.Run("rejects malformed mobile numbers", func(t *testing.T) {
		svc := NewService(&stubProvider{}, nil, nil)
		for _, mobile := range []string{"", "12345", "98765432100", "98765abcde"} {
			_, err := svc.SendOTP(context.Background(), mobile, "u@x.com")
			assert.ErrorIs(t, err, ErrInvalidMobile, "mobile %q", mobile)
		}
	})

	t.Run("stores the session keyed by provider id", func(t *testing.T) {
		store, mr := redisStore(t)
		provider := &stubProvider{sessionID: "sess-123"}
		svc := NewService(provider, store, nil)

		sessionID, err := svc.SendOTP(context.Background(), "9876543210", "u@x.com")
		require.NoError(t, err)
		assert.Equal(t, "sess-123", sessionID)
		assert.True(t, mr.Exists("otp:session:sess-123"))
	})

	t.Run("throttles repeated sends to one mobile", func(t *testing.T) {
		provider := &stubProvider{sessionID: "sess-1"}
		svc := NewService(provider, nil, nil)

		// Burst of two goes through, the third is refused.
		_, err := svc.SendOTP(context.Background(), "9876543210", "u@x.com")
		require.NoError(t, err)
		_, err = svc.SendOTP(context.Background(), "9876543210", "u@x.com")
		require.NoError(t, err)
		_, err = svc.SendOTP(context.Background(), "9876543210", "u@x.com")
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.Equal(t, 2, provider.sends)

		// A different mobile has its own budget.
		_, err = svc.SendOTP(context.Background(), "9123456780", "v@x.com")
		require.NoError(t, err)
	})

	t.Run("provider failure surfaces", func(t *testing.T) {
		svc := NewService(&stubProvider{err: errors.New("gateway timeout")}, nil, nil)
		_, err := svc.SendOTP(context.Background(), "9876543210", "u@x.com")
		require.Error(t, err)
	})
}

func TestVerifyOTP(t *testing.T) {
	t.Run("rejects malformed codes", func(t *testing.T) {
		svc := NewService(&stubProvider{}, nil, nil)
		for _, code := range []string{"", "12345", "1234567", "12345a"} {
			_, err := svc.VerifyOTP(context.Background(), "sess-1", code)
			assert.ErrorIs(t, err, ErrInvalidCode, "code %q", code)
		}
	})

	t.Run("mismatch is false without error", func(t *testing.T) {
		svc := NewService(&stubProvider{match: false}, nil, nil)
		ok, err := svc.VerifyOTP(context.Background(), "sess-1", "123456")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("match flips the session's profile and drops the session", func(t *testing.T) {
		store, mr := redisStore(t)
		require.NoError(t, store.Save(context.Background(), "sess-1",
			Session{Email: "u@x.com", Mobile: "9876543210"}))

		verifier := &stubVerifier{}
		svc := NewService(&stubProvider{match: true}, store, verifier)

		ok, err := svc.VerifyOTP(context.Background(), "sess-1", "123456")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "u@x.com", verifier.email)
		assert.Equal(t, "9876543210", verifier.mobile)
		assert.False(t, mr.Exists("otp:session:sess-1"))
	})

	t.Run("match without a session still succeeds", func(t *testing.T) {
		store, _ := redisStore(t)
		verifier := &stubVerifier{}
		svc := NewService(&stubProvider{match: true}, store, verifier)

		ok, err := svc.VerifyOTP(context.Background(), "unknown-sess", "123456")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, verifier.email)
	})

	t.Run("profile flip failure surfaces", func(t *testing.T) {
		store, _ := redisStore(t)
		require.NoError(t, store.Save(context.Background(), "sess-1",
			Session{Email: "u@x.com", Mobile: "9876543210"}))

		verifier := &stubVerifier{err: errors.New("db down")}
		svc := NewService(&stubProvider{match: true}, store, verifier)

		_, err := svc.VerifyOTP(context.Background(), "sess-1", "123456")
		require.Error(t, err)
	})
}

func TestSessionStore(t *testing.T) {
	store, mr := redisStore(t)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "s1", Session{Email: "u@x.com", Mobile: "9876543210"}))

		sess, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "u@x.com", sess.Email)
		assert.Equal(t, "9876543210", sess.Mobile)
	})

	t.Run("sessions expire", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "s2", Session{Email: "u@x.com"}))
		mr.FastForward(sessionTTL + time.Minute)

		_, err := store.Get(ctx, "s2")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "s3", Session{Email: "u@x.com"}))
		require.NoError(t, store.Delete(ctx, "s3"))
		_, err := store.Get(ctx, "s3")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
