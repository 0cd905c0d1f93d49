package guard

import (
	"context"
	"strings"

	"github.com/mvps-print/printshop-backend/internal/users/domain"
)

// AccessChecker is the slice of the users service the guard consumes.
type AccessChecker interface {
	CheckAccess(ctx context.Context, email string) (domain.AccessResult, error)
}

type Guard struct {
	checker AccessChecker
}

func New(checker AccessChecker) *Guard {
	return &Guard{checker: checker}
}

// Evaluate re-derives the access decision for one protected route. It must be
// called on every route change, not once at mount; the OTP-entry page
// short-circuits to Allow so a user actively verifying is never bounced away.
func (g *Guard) Evaluate(ctx context.Context, email, path string, adminOnly bool) (Decision, error) {
	if strings.TrimSpace(email) == "" {
		return Decision{Outcome: RedirectLogin, Redirect: loginPath}, nil
	}

	if path == verifyPath {
		return Decision{Outcome: Allow}, nil
	}

	res, err := g.checker.CheckAccess(ctx, email)
	if err != nil {
		return Decision{}, err
	}

	switch res.Signal {
	case domain.AccessBlocked:
		return Decision{Outcome: Blocked, Redirect: blockedPath, Role: res.Role}, nil
	case domain.AccessUnverified:
		return Decision{Outcome: NeedsVerification, Redirect: verifyPath, Role: res.Role}, nil
	}

	// An authenticated, valid, non-admin user hitting an admin route is sent
	// to the user dashboard, not back to login.
	if adminOnly && res.Role != domain.RoleAdmin {
		return Decision{Outcome: RedirectLogin, Redirect: userDashboardPath, Role: res.Role}, nil
	}

	return Decision{Outcome: Allow, Role: res.Role}, nil
}
