package models

import (
	"testing"
)

func TestUserRoleIsStaff(t *testing.T) {
	tests := []struct {
		role UserRole
		want bool
	}{
		{RolePatient, false},
		{RoleAdmin, true},
		{RoleSuperAdmin, true},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.role.IsStaff(); got != tt.want {
			t.Errorf("%q.IsStaff() = %v, want %v", tt.role, got, tt.want)
		}
	}
}
