package jwt_test

import (
	"hotel/config"
	"hotel/infras/jwt"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "hotel"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 30
	cfg.JWT.RefreshExpireMin = 10080

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	service := jwt.New(testConfig())

	pair, err := service.GenerateTokenPair("u-1", "ana@example.com", "customer")
	require.NoError(t, err)

	claims, err := service.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, time.Minute)

	refresh, err := service.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), refresh.ExpiresAt.Time, time.Minute)
}

func TestValidateToken_Rejections(t *testing.T) {
	cfg := testConfig()
	service := jwt.New(cfg)

	pair, err := service.GenerateTokenPair("u-1", "ana@example.com", "admin")
	require.NoError(t, err)

	expiredCfg := testConfig()
	expiredCfg.JWT.AccessExpireMin = -1
	expired, err := jwt.New(expiredCfg).GenerateAccessToken("u-1", "ana@example.com", "admin")
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWT.AccessSecret = "someone-else"
	forged, err := jwt.New(otherCfg).GenerateAccessToken("u-1", "ana@example.com", "admin")
	require.NoError(t, err)

	noRole, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
		Type:             jwt.AccessToken,
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "u-1", ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(cfg.JWT.AccessSecret))
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		tokenType jwt.TokenType
		wantErr   error
	}{
		{name: "expired", token: expired, tokenType: jwt.AccessToken, wantErr: jwt.ErrExpiredToken},
		{name: "wrong secret", token: forged, tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "garbage", token: "not.a.jwt", tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "refresh used as access", token: pair.RefreshToken, tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "access used as refresh", token: pair.AccessToken, tokenType: jwt.RefreshToken, wantErr: jwt.ErrInvalidToken},
		{name: "missing role", token: noRole, tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token, tt.tokenType)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateToken_TypeMismatchWithSharedSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.RefreshSecret = cfg.JWT.AccessSecret
	service := jwt.New(cfg)

	pair, err := service.GenerateTokenPair("u-1", "ana@example.com", "customer")
	require.NoError(t, err)

	_, err = service.ValidateToken(pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer abc.def", want: "abc.def"},
		{header: "", wantErr: jwt.ErrMissingHeader},
		{header: "Bearer", wantErr: jwt.ErrHeaderFormat},
		{header: "Bearer ", wantErr: jwt.ErrHeaderFormat},
		{header: "Basic dXNlcjpwYXNz", wantErr: jwt.ErrHeaderFormat},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
