package googleauth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Claims carries the identity fields extracted from a verified Google ID token.
type Claims struct {
	Email   string
	Name    string
	Subject string
}

// Verifier validates a Google-issued ID token and returns its identity claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// IDTokenVerifier validates tokens against Google's public keys for a fixed
// OAuth client id (the expected audience).
type IDTokenVerifier struct {
	audience string
}

// NewIDTokenVerifier creates a verifier bound to the given OAuth client id.
func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{audience: clientID}
}

// Verify checks the token signature, expiry and audience, then extracts the
// email, display name and subject id.
func (v *IDTokenVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		return nil, fmt.Errorf("google id token validation failed: %w", err)
	}

	claims := &Claims{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		claims.Name = name
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("google id token has no email claim")
	}
	return claims, nil
}
