package services

import "context"

// IdentityProvider owns credentials. Implementations return the provider's
// uid for the account, ErrEmailTaken on duplicate sign-up and
// ErrInvalidCredentials on any failed sign-in.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
}
