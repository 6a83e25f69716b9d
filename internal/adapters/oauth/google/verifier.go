package google

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"

	"github.com/imsujinpark/project-cutepon-sub000/internal/core/ports"
)

// GoogleVerifier validates Google ID tokens. The OAuth negotiation itself
// happens in the browser; the server only ever sees the resulting credential.
type GoogleVerifier struct{}

func NewVerifier() ports.TokenVerifier {
	return &GoogleVerifier{}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	payload, err := idtoken.Validate(ctx, token, clientID)
	if err != nil {
		return nil, err
	}
	email, ok := payload.Claims["email"].(string)
	if !ok {
		return nil, errors.New("email not found in claims")
	}
	name, _ := payload.Claims["name"].(string)
	return &ports.TokenPayload{Subject: payload.Subject, Email: email, Name: name}, nil
}
