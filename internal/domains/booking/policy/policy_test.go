package policy_test

import (
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/policy"
	"hotel/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_CanSet(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		field    string
		value    string
		expected bool
	}{
		{"admin any status", constant.RoleAdmin, model.FieldStatus, "confirmed", true},
		{"admin free form status", constant.RoleAdmin, model.FieldStatus, "checked_out_late", true},
		{"customer requests cancellation", constant.RoleCustomer, model.FieldStatus, model.StatusCancellationRequested, true},
		{"customer confirms", constant.RoleCustomer, model.FieldStatus, "confirmed", false},
		{"customer resets to pending", constant.RoleCustomer, model.FieldStatus, model.StatusPending, false},
		{"customer moves dates", constant.RoleCustomer, model.FieldCheckInDate, "2024-01-10", true},
		{"unknown role", "guest", model.FieldCheckInDate, "2024-01-10", false},
		{"unknown field", constant.RoleAdmin, model.FieldCustomerID, "someone", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.Default.CanSet(tt.role, tt.field, tt.value))
		})
	}
}

func TestDefault_CanWrite(t *testing.T) {
	assert.True(t, policy.Default.CanWrite(constant.RoleCustomer, model.FieldStatus))
	assert.True(t, policy.Default.CanWrite(constant.RoleCustomer, model.FieldDurationHours))
	assert.False(t, policy.Default.CanWrite(constant.RoleCustomer, model.FieldRoomID))
	assert.False(t, policy.Default.CanWrite("", model.FieldStatus))
}
