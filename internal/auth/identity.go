package auth

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// Identity is the admin-side view of the external identity provider. The
// local store stays authoritative: callers treat failures here as log-only.
type Identity struct {
	client *auth.Client
}

func NewIdentity(client *auth.Client) *Identity {
	return &Identity{client: client}
}

// DeleteByEmail removes the identity record matching an email, if any.
func (i *Identity) DeleteByEmail(ctx context.Context, email string) error {
	if i == nil || i.client == nil {
		return nil
	}

	u, err := i.client.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup identity for %s: %w", email, err)
	}
	if err := i.client.DeleteUser(ctx, u.UID); err != nil {
		return fmt.Errorf("delete identity %s: %w", u.UID, err)
	}
	return nil
}
