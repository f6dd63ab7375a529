// Package identity carries the authenticated caller through a request context.
package identity

import (
	"context"
	"hotel/shared/constant"
)

type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == constant.RoleAdmin
}

func (i Identity) IsCustomer() bool {
	return i.Role == constant.RoleCustomer
}

// WithIdentity stores the caller and the raw Authorization header that
// proved it, so outbound calls can present the same credential.
func WithIdentity(ctx context.Context, id Identity, authorization string) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, id.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, id.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, id.Role)

	if authorization != "" {
		ctx = context.WithValue(ctx, constant.ContextKeyAuthorization, authorization)
	}

	return ctx
}

// FromContext returns the caller. ok is false for unauthenticated contexts.
func FromContext(ctx context.Context) (Identity, bool) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return Identity{}, false
	}

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Identity{UserID: userID, Email: email, Role: role}, true
}

func Authorization(ctx context.Context) string {
	value, _ := ctx.Value(constant.ContextKeyAuthorization).(string)

	return value
}
