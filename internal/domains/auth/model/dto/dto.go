package dto

import (
	"hotel/infras/jwt"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	"hotel/shared/constant"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     *string `json:"role,omitempty"`
}

// Normalize trims and lower-cases username and email.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *RegisterRequest) Complete() bool {
	return r.Username != "" && r.Email != "" && r.Password != ""
}

// RequestedRole is the role asked for, customer when none was given.
func (r *RegisterRequest) RequestedRole() string {
	if r.Role == nil || strings.TrimSpace(*r.Role) == "" {
		return constant.RoleCustomer
	}

	return strings.ToLower(strings.TrimSpace(*r.Role))
}

func (r *RegisterRequest) ToUserModel(role, hashedPassword string, now time.Time) userModel.User {
	id := uuid.NewString()

	user := userModel.User{
		ID:       id,
		Username: r.Username,
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
	}
	user.Stamp(now, id)

	return user
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
}

type AuthResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	User         userDto.UserResponse `json:"user"`
}

func (a *AuthResponse) FromTokenPair(pair *jwt.TokenPair, user userModel.User) {
	a.AccessToken = pair.AccessToken
	a.RefreshToken = pair.RefreshToken
	a.User.FromModel(user)
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// MeResponse describes the caller as seen in its access token.
type MeResponse struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
}
