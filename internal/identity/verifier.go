package identity

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// Verifier wraps the Firebase Auth client. It turns bearer tokens into
// Identities and handles server-side sign-out.
type Verifier struct {
	client     *auth.Client
	adminEmail string
}

// NewVerifier creates a Verifier. The auth client is a hard dependency;
// callers must have initialized the Firebase Admin SDK first.
func NewVerifier(client *auth.Client, adminEmail string) (*Verifier, error) {
	if client == nil {
		return nil, errors.New("identity: Firebase Auth client is nil")
	}
	return &Verifier{client: client, adminEmail: adminEmail}, nil
}

// Verify validates a Firebase ID token and returns the derived Identity.
// Standard claims (email, name, picture) are mapped when present; Firebase
// does not guarantee all of them for every provider.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify ID token: %w", err)
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	return Derive(token.UID, email, name, picture, v.adminEmail), nil
}

// Revoke signs the user out everywhere by revoking their refresh tokens.
// Already-issued ID tokens stay valid until they expire; the broadcaster
// carries the sign-out to live subscribers immediately.
func (v *Verifier) Revoke(ctx context.Context, uid string) error {
	if err := v.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke refresh tokens for %s: %w", uid, err)
	}
	return nil
}

// IsAdmin reports whether an email matches the configured admin address.
func (v *Verifier) IsAdmin(email string) bool {
	return v.adminEmail != "" && email == v.adminEmail
}
