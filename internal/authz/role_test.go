package authz

import (
	"fmt"
	"testing"
)

func TestRoleFromString(t *testing.T) {
	type testCase struct {
		Raw      string
		Expected Role
	}

	testCases := []testCase{
		{Raw: "OWNER", Expected: RoleOwner},
		{Raw: "SUPERADMIN", Expected: RoleSuperadmin},
		{Raw: "ADMIN", Expected: RoleAdmin},
		{Raw: "GUEST", Expected: RoleGuest},
		{Raw: "", Expected: RoleNone},
		{Raw: "admin", Expected: RoleNone},
		{Raw: "ROOT", Expected: RoleNone},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			if e, g := tc.Expected, RoleFromString(tc.Raw); e != g {
				t.Errorf("RoleFromString(%q): expected '%v', got '%v'", tc.Raw, e, g)
			}
		})
	}
}

func TestRoleAtLeast(t *testing.T) {
	if !RoleOwner.AtLeast(RoleAdmin) {
		t.Errorf("owner should rank at least admin")
	}

	if RoleAdmin.AtLeast(RoleSuperadmin) {
		t.Errorf("admin should not rank at least superadmin")
	}

	if RoleNone.AtLeast(RoleGuest) {
		t.Errorf("no role should rank below guest")
	}

	if !RoleGuest.AtLeast(RoleGuest) {
		t.Errorf("a role should rank at least itself")
	}
}
