// Package policy holds the allow-list of booking fields each role may change.
package policy

import (
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"slices"
)

// Rule grants write access to one field. A rule with no Values accepts any
// value, otherwise only the listed ones.
type Rule struct {
	Values []string
}

func (r Rule) accepts(value string) bool {
	return len(r.Values) == 0 || slices.Contains(r.Values, value)
}

// Policy maps a role to the fields it may write. Fields and roles without an
// entry are denied.
type Policy map[string]map[string]Rule

var anyValue = Rule{}

// Default is the booking update policy: admins may change every field to any
// value, customers may move their own stay and only request cancellation.
var Default = Policy{
	constant.RoleAdmin: {
		model.FieldStatus:        anyValue,
		model.FieldCheckInDate:   anyValue,
		model.FieldCheckOutDate:  anyValue,
		model.FieldStartTime:     anyValue,
		model.FieldDurationHours: anyValue,
	},
	constant.RoleCustomer: {
		model.FieldStatus:        {Values: []string{model.StatusCancellationRequested}},
		model.FieldCheckInDate:   anyValue,
		model.FieldCheckOutDate:  anyValue,
		model.FieldStartTime:     anyValue,
		model.FieldDurationHours: anyValue,
	},
}

// CanWrite reports whether role may change field at all.
func (p Policy) CanWrite(role, field string) bool {
	_, ok := p[role][field]

	return ok
}

// CanSet reports whether role may set field to value.
func (p Policy) CanSet(role, field, value string) bool {
	rule, ok := p[role][field]

	return ok && rule.accepts(value)
}
