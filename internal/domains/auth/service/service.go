package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/password"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	msgMissingFields      = "username, email, and password are required"
	msgUsernameTaken      = "Username already exists"
	msgInvalidRole        = "Invalid role"
	msgInvalidEmail       = "Invalid email"
	msgInvalidCredentials = "Invalid username or password"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	// Refresh mints a new access token from the refresh token carried in
	// authorization, keeping its subject, role and email.
	Refresh(ctx context.Context, authorization string) (dto.RefreshResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

// role resolves the role a new account gets. Anything but customer needs
// role signup to be enabled; otherwise the request is downgraded.
func (s *serviceImpl) role(req dto.RegisterRequest) (string, error) {
	role := req.RequestedRole()

	if role != constant.RoleCustomer && role != constant.RoleAdmin {
		return "", failure.BadRequestFromString(msgInvalidRole) // nolint:wrapcheck
	}

	if role != constant.RoleCustomer && !s.cfg.Auth.AllowRoleSignup {
		log.Warn().Str("username", req.Username).Str("role", role).Msg("role signup disabled, registering as customer")

		return constant.RoleCustomer, nil
	}

	return role, nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	if !req.Complete() {
		return res, failure.BadRequestFromString(msgMissingFields) // nolint:wrapcheck
	}

	if validator.ValidateVar(req.Email, "email") != nil {
		return res, failure.BadRequestFromString(msgInvalidEmail) // nolint:wrapcheck
	}

	role, err := s.role(req)
	if err != nil {
		return res, err
	}

	exists, err := s.userRepo.Exist(ctx, shared.FilterByID(req.Username, userModel.FieldUsername, userModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString(msgUsernameTaken) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(role, hashedPassword, timezone.Now())

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if errors.Is(err, userRepo.ErrDuplicate) {
			return res, failure.BadRequestFromString(msgUsernameTaken) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	if req.Username == "" || req.Password == "" {
		return res, failure.Unauthorized(msgInvalidCredentials) // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(req.Username, userModel.FieldUsername, userModel.TableName))
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

			return res, failure.Unauthorized(msgInvalidCredentials) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		if errors.Is(err, password.ErrInvalidPassword) {
			log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

			return res, failure.Unauthorized(msgInvalidCredentials) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to verify password: %w", err)
	}

	return s.issue(user)
}

func (s *serviceImpl) issue(user userModel.User) (res dto.AuthResponse, err error) {
	pair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(pair, user)

	return res, nil
}

func (s *serviceImpl) Refresh(ctx context.Context, authorization string) (res dto.RefreshResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refresh")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	token, err := jwt.ExtractTokenFromHeader(authorization)
	if err != nil {
		if errors.Is(err, jwt.ErrMissingHeader) {
			return res, failure.Unauthorized("Missing authorization header") // nolint:wrapcheck
		}

		return res, failure.Unauthorized("Invalid authorization header format") // nolint:wrapcheck
	}

	claims, err := s.jwtService.ValidateToken(token, jwt.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			return res, failure.Unauthorized("Token has expired") // nolint:wrapcheck
		case errors.Is(err, jwt.ErrInvalidClaim):
			return res, failure.Unauthorized("Invalid token claims") // nolint:wrapcheck
		default:
			return res, failure.Unauthorized("Invalid token") // nolint:wrapcheck
		}
	}

	res.AccessToken, err = s.jwtService.GenerateAccessToken(claims.Subject, claims.Email, claims.Role)
	if err != nil {
		return res, fmt.Errorf("failed to generate access token: %w", err)
	}

	return res, nil
}
