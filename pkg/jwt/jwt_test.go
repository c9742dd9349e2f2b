package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("secret", time.Hour)

	token, err := svc.GenerateToken("host-1", RoleHost, 0)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "host-1", claims.Subject)
	assert.Equal(t, string(RoleHost), claims.Role)
	assert.True(t, Role(claims.Role).CanEdit())
}

func TestValidateToken(t *testing.T) {
	svc := NewService("secret", time.Hour)
	other := NewService("other", time.Hour)

	foreign, err := other.GenerateToken("x", RoleHost, time.Hour)
	require.NoError(t, err)

	expiredSvc := NewService("secret", time.Hour).(*service)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.GenerateToken("x", RoleViewer, time.Hour)
	require.NoError(t, err)

	unknownRole, err := svc.GenerateToken("x", Role("admin"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "garbage", token: "not-a-token", wantErr: ErrInvalidToken},
		{name: "wrong secret", token: foreign, wantErr: ErrInvalidSignature},
		{name: "expired", token: expired, wantErr: ErrExpiredToken},
		{name: "unknown role", token: unknownRole, wantErr: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := NewService("", time.Hour).GenerateToken("x", RoleHost, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestViewerCannotEdit(t *testing.T) {
	assert.False(t, RoleViewer.CanEdit())
	_, ok := ParseRole("admin")
	assert.False(t, ok)
}
