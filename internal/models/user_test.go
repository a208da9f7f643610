package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRoleValid(t *testing.T) {
	tests := []struct {
		name     string
		role     UserRole
		expected bool
	}{
		{"admin role", RoleAdmin, true},
		{"fleet manager role", RoleFleetManager, true},
		{"driver role", RoleDriver, true},
		{"invalid role", "SUPERVISOR", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.Valid())
		})
	}
}

func TestToProfileStripsCredential(t *testing.T) {
	user := User{
		Name:         "Alicia Admin",
		Username:     "admin",
		PasswordHash: "$2a$10$secret",
		Role:         RoleAdmin,
	}

	profile := user.ToProfile()

	assert.Equal(t, "Alicia Admin", profile.Name)
	assert.Equal(t, "admin", profile.Username)
	assert.Equal(t, RoleAdmin, profile.Role)
}

func TestServiceTypeDescriptorIsTotal(t *testing.T) {
	known := []ServiceType{
		ServiceOilChange, ServiceBrakeInspection, ServiceTireRotation,
		ServiceAnnualInspection, ServiceEngineTuneUp, ServiceDriverReport,
	}
	for _, st := range known {
		desc := ServiceTypeDescriptor(st)
		assert.NotEmpty(t, desc.Icon, "icon for %s", st)
		assert.Equal(t, string(st), desc.Label)
	}

	// Unknown values still resolve to a usable descriptor
	desc := ServiceTypeDescriptor("Unknown Service")
	assert.Equal(t, "wrench", desc.Icon)
}

func TestSeverityDescriptorIsTotal(t *testing.T) {
	for _, sev := range []NotificationSeverity{SeverityInfo, SeverityWarning, SeverityDanger, "unknown"} {
		desc := SeverityDescriptor(sev)
		assert.NotEmpty(t, desc.Icon, "icon for %s", sev)
	}
}
