package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/password"
)

func stringPtr(s string) *string {
	return &s
}

func tokenPair() *jwt.TokenPair {
	return &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name        string
		req         dto.RegisterRequest
		allowRoles  bool
		setupMock   func(repo *userMocks.MockUser, jwtService *jwtMocks.MockJWT)
		wantCode    int
		wantMessage string
		wantRole    string
	}{
		{
			name: "normalizes and registers customer",
			req:  dto.RegisterRequest{Username: "  Ana ", Email: " ANA@Example.com", Password: "secret-pass"},
			setupMock: func(repo *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
					assert.Equal(t, "ana", user.Username)
					assert.Equal(t, "ana@example.com", user.Email)
					assert.Equal(t, constant.RoleCustomer, user.Role)
					assert.NoError(t, password.Verify("secret-pass", user.Password))
					assert.NotEmpty(t, user.ID)

					return nil
				})
				jwtService.EXPECT().GenerateTokenPair(gomock.Any(), "ana@example.com", constant.RoleCustomer).Return(tokenPair(), nil)
			},
			wantRole: constant.RoleCustomer,
		},
		{
			name:        "missing password",
			req:         dto.RegisterRequest{Username: "ana", Email: "ana@example.com"},
			setupMock:   func(*userMocks.MockUser, *jwtMocks.MockJWT) {},
			wantCode:    http.StatusBadRequest,
			wantMessage: "username, email, and password are required",
		},
		{
			name:        "blank username",
			req:         dto.RegisterRequest{Username: "   ", Email: "ana@example.com", Password: "x"},
			setupMock:   func(*userMocks.MockUser, *jwtMocks.MockJWT) {},
			wantCode:    http.StatusBadRequest,
			wantMessage: "username, email, and password are required",
		},
		{
			name:        "malformed email",
			req:         dto.RegisterRequest{Username: "ana", Email: "not-an-email", Password: "x"},
			setupMock:   func(*userMocks.MockUser, *jwtMocks.MockJWT) {},
			wantCode:    http.StatusBadRequest,
			wantMessage: "Invalid email",
		},
		{
			name: "duplicate username",
			req:  dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "x"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: "Username already exists",
		},
		{
			name: "duplicate username lost on insert",
			req:  dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "x"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(userRepo.ErrDuplicate)
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: "Username already exists",
		},
		{
			name: "admin role ignored without role signup",
			req:  dto.RegisterRequest{Username: "root", Email: "root@example.com", Password: "x", Role: stringPtr("admin")},
			setupMock: func(repo *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				jwtService.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), constant.RoleCustomer).Return(tokenPair(), nil)
			},
			wantRole: constant.RoleCustomer,
		},
		{
			name:       "admin role honoured with role signup",
			req:        dto.RegisterRequest{Username: "root", Email: "root@example.com", Password: "x", Role: stringPtr("Admin")},
			allowRoles: true,
			setupMock: func(repo *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				jwtService.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), constant.RoleAdmin).Return(tokenPair(), nil)
			},
			wantRole: constant.RoleAdmin,
		},
		{
			name:        "unknown role",
			req:         dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "x", Role: stringPtr("owner")},
			allowRoles:  true,
			setupMock:   func(*userMocks.MockUser, *jwtMocks.MockJWT) {},
			wantCode:    http.StatusBadRequest,
			wantMessage: "Invalid role",
		},
		{
			name: "repository failure",
			req:  dto.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "x"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := userMocks.NewMockUser(ctrl)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			cfg := &config.Config{}
			cfg.Auth.AllowRoleSignup = tt.allowRoles

			tt.setupMock(repo, jwtService)

			res, err := service.New(repo, cfg, mocks.NewOtel(), jwtService).Register(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, failure.GetMessage(err))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
			assert.Equal(t, tt.wantRole, res.User.Role)
			assert.NotEmpty(t, res.User.ID)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.Hash("secret-pass")
	require.NoError(t, err)

	stored := userModel.User{
		ID:       "u-1",
		Username: "ana",
		Email:    "ana@example.com",
		Password: hash,
		Role:     constant.RoleCustomer,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *userMocks.MockUser, jwtService *jwtMocks.MockJWT)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: " ANA ", Password: "secret-pass"},
			setupMock: func(repo *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				jwtService.EXPECT().GenerateTokenPair("u-1", "ana@example.com", constant.RoleCustomer).Return(tokenPair(), nil)
			},
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "bob", Password: "secret-pass"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, userRepo.ErrNotFound)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "ana", Password: "nope"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:      "empty credentials",
			req:       dto.LoginRequest{},
			setupMock: func(*userMocks.MockUser, *jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "database error",
			req:  dto.LoginRequest{Username: "ana", Password: "secret-pass"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := userMocks.NewMockUser(ctrl)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			tt.setupMock(repo, jwtService)

			res, err := service.New(repo, &config.Config{}, mocks.NewOtel(), jwtService).Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantCode == http.StatusUnauthorized {
					assert.Equal(t, "Invalid username or password", failure.GetMessage(err))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "ana", res.User.Username)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 30
	cfg.JWT.RefreshExpireMin = 60

	jwtService := jwt.New(cfg)

	pair, err := jwtService.GenerateTokenPair("u-1", "ana@example.com", constant.RoleAdmin)
	require.NoError(t, err)

	svc := service.New(userMocks.NewMockUser(gomock.NewController(t)), cfg, mocks.NewOtel(), jwtService)

	t.Run("mints access token with the same identity", func(t *testing.T) {
		res, err := svc.Refresh(context.Background(), "Bearer "+pair.RefreshToken)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(res.AccessToken, jwt.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.Subject)
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.Equal(t, constant.RoleAdmin, claims.Role)
	})

	failures := map[string]string{
		"":                             "Missing authorization header",
		"Token " + pair.RefreshToken:   "Invalid authorization header format",
		"Bearer " + pair.AccessToken:   "Invalid token",
		"Bearer not.a.token":           "Invalid token",
	}

	for header, message := range failures {
		t.Run(message, func(t *testing.T) {
			_, err := svc.Refresh(context.Background(), header)

			assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
			assert.Equal(t, message, failure.GetMessage(err))
		})
	}
}
