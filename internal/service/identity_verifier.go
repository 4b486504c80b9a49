package service

import (
	"context"
	"errors"

	"firebase.google.com/go/v4/auth"
)

var ErrProviderTokenInvalid = errors.New("identity provider token is invalid")

// ProviderIdentity is what the identity provider vouches for.
type ProviderIdentity struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// IdentityVerifier checks ID tokens issued by the external sign-in provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*ProviderIdentity, error)
}

type firebaseIdentityVerifier struct {
	client *auth.Client
}

func NewFirebaseIdentityVerifier(client *auth.Client) IdentityVerifier {
	return &firebaseIdentityVerifier{client: client}
}

func (v *firebaseIdentityVerifier) Verify(ctx context.Context, idToken string) (*ProviderIdentity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Join(ErrProviderTokenInvalid, err)
	}
	return identityFromClaims(token.UID, token.Claims), nil
}

func identityFromClaims(uid string, claims map[string]interface{}) *ProviderIdentity {
	identity := &ProviderIdentity{UID: uid}
	if v, ok := claims["email"].(string); ok {
		identity.Email = v
	}
	if v, ok := claims["email_verified"].(bool); ok {
		identity.EmailVerified = v
	}
	if v, ok := claims["name"].(string); ok {
		identity.Name = v
	}
	if v, ok := claims["picture"].(string); ok {
		identity.Picture = v
	}
	return identity
}
