package service

import (
	"context"

	"github.com/Skotchmaster/portfolio/internal/apperr"
	"github.com/Skotchmaster/portfolio/internal/hash"
	"github.com/Skotchmaster/portfolio/internal/transport"
	"github.com/Skotchmaster/portfolio/pkg/config"
	"github.com/Skotchmaster/portfolio/pkg/logging"
	"github.com/Skotchmaster/portfolio/pkg/tokens"
)

type AuthService struct {
	Admin  config.Admin
	Issuer *tokens.Issuer
}

// Login checks both fields before deciding so a failure says nothing about
// which one was wrong.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (transport.LoginResponse, error) {
	userOK := req.Username != "" && hash.Equal(s.Admin.Username, req.Username)
	passOK := req.Password != "" && hash.CheckPassword(s.Admin.Password, req.Password)
	if !userOK || !passOK || s.Admin.Username == "" {
		return transport.LoginResponse{}, apperr.InvalidCredentials()
	}

	token, exp, err := s.Issuer.Issue(tokens.Identity{Username: req.Username})
	if err != nil {
		return transport.LoginResponse{}, err
	}

	logging.FromContext(ctx).Info("token_issued", "user", req.Username, "expires_at", exp)
	return transport.LoginResponse{Token: token}, nil
}
