package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/lucasmoreno/pharmadash-backend/pkg/auth"
	"github.com/lucasmoreno/pharmadash-backend/pkg/config"
	pkgerrors "github.com/lucasmoreno/pharmadash-backend/pkg/errors"
	"github.com/lucasmoreno/pharmadash-backend/pkg/strapi"
)

type contentAuthenticator interface {
	Login(ctx context.Context, identifier, password string) (string, *strapi.AuthenticatedUser, error)
}

// LoginInput carries dashboard credentials. Identifier is a username or email,
// matching the content API's login contract.
type LoginInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// UserDTO is the authenticated identity echoed back to the client.
type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	RoleID   int64  `json:"role_id"`
}

// SessionDTO is a minted dashboard session.
type SessionDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

// Service authenticates dashboard operators.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*SessionDTO, error)
}

type service struct {
	content contentAuthenticator
	jwtCfg  config.JWTConfig
	now     func() time.Time
}

// NewService builds the auth service.
func NewService(content contentAuthenticator, jwtCfg config.JWTConfig) (Service, error) {
	if content == nil {
		return nil, fmt.Errorf("content client required")
	}
	return &service{
		content: content,
		jwtCfg:  jwtCfg,
		now:     time.Now,
	}, nil
}

// Login verifies credentials against the content API, requires the laboratory
// role, and mints a session token that carries the upstream JWT for
// passthrough writes.
func (s *service) Login(ctx context.Context, input LoginInput) (*SessionDTO, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "identifier and password are required")
	}

	contentToken, user, err := s.content.Login(ctx, identifier, input.Password)
	if err != nil {
		return nil, err
	}

	if user.RoleID != pkgauth.RoleIDLaboratory {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "laboratory access required")
	}

	now := s.now()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:       user.ID,
		Username:     user.Username,
		RoleID:       user.RoleID,
		ContentToken: contentToken,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	return &SessionDTO{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		User: UserDTO{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			RoleID:   user.RoleID,
		},
	}, nil
}
