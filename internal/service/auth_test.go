package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/portfolio/internal/apperr"
	"github.com/Skotchmaster/portfolio/internal/hash"
	"github.com/Skotchmaster/portfolio/internal/transport"
	"github.com/Skotchmaster/portfolio/pkg/config"
	"github.com/Skotchmaster/portfolio/pkg/tokens"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	hashed, err := hash.HashPassword("hunter2")
	require.NoError(t, err)

	issuer := tokens.NewIssuer([]byte("login-secret"), time.Hour)

	tests := []struct {
		name    string
		stored  string
		req     transport.LoginRequest
		wantErr bool
	}{
		{name: "plain match", stored: "hunter2", req: transport.LoginRequest{Username: "admin", Password: "hunter2"}},
		{name: "hashed match", stored: hashed, req: transport.LoginRequest{Username: "admin", Password: "hunter2"}},
		{name: "wrong password", stored: "hunter2", req: transport.LoginRequest{Username: "admin", Password: "hunter3"}, wantErr: true},
		{name: "wrong username", stored: "hunter2", req: transport.LoginRequest{Username: "Admin", Password: "hunter2"}, wantErr: true},
		{name: "empty body", stored: "hunter2", req: transport.LoginRequest{}, wantErr: true},
		{name: "trailing space", stored: "hunter2", req: transport.LoginRequest{Username: "admin ", Password: "hunter2"}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &AuthService{Admin: config.Admin{Username: "admin", Password: tt.stored}, Issuer: issuer}

			resp, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(err))
				assert.Empty(t, resp.Token)
				return
			}
			require.NoError(t, err)

			id, err := issuer.Verify(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, "admin", id.Username)
		})
	}
}
