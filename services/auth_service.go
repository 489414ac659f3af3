package services

import (
	"fmt"
	"strings"

	"folio-gate/auth"
	"folio-gate/errors"
)

type IAuthService interface {
	IssueAdminToken(subject string) (Token, error)
	Authorize(authorization string, role string) (*auth.CustomClaims, error)
}

// AuthService guards the operator routes. Without a configured secret every
// call fails, which keeps those routes closed.
type AuthService struct {
	tokens  auth.Tokens
	enabled bool
}

type Token string

func NewAuthService(tokens auth.Tokens, enabled bool) *AuthService {
	return &AuthService{tokens: tokens, enabled: enabled}
}

func (s *AuthService) IssueAdminToken(subject string) (Token, error) {
	if !s.enabled {
		return "", errors.ErrMissingCredential
	}
	token, err := s.tokens.GenerateToken(subject, []string{auth.RoleAdmin})
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return Token(token), nil
}

// Authorize checks an Authorization header value ("Bearer <token>") and the required role.
func (s *AuthService) Authorize(authorization string, role string) (*auth.CustomClaims, error) {
	if !s.enabled {
		return nil, errors.ErrUnauthorized
	}
	tokenStr, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || strings.TrimSpace(tokenStr) == "" {
		return nil, errors.ErrUnauthorized
	}
	claims, err := s.tokens.ValidateToken(strings.TrimSpace(tokenStr))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	if !claims.HasRole(role) {
		return nil, errors.ErrUnauthorized
	}
	return claims, nil
}
