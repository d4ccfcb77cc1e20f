package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
	}{
		{"Portal Administrator", RolePortalAdmin},
		{"Partner Account Manager", RolePartnerAccountManager},
		{"Partner SPOC Admin", RolePartnerSpocAdmin},
		{"Partner Team Member", RolePartnerTeamMember},
		{"Viewer", RoleViewer},
		{"", RoleUnknown},
		{"portal administrator", RoleUnknown},
		{"Superuser", RoleUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRole(tt.input), "input %q", tt.input)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RolePortalAdmin.Valid())
	assert.True(t, RoleViewer.Valid())
	assert.False(t, RoleUnknown.Valid())
	assert.False(t, Role("Owner").Valid())
}
