package nav

import (
	"fmt"
	"testing"

	"github.com/bornholm/collagio/internal/authz"
)

func TestVisible(t *testing.T) {
	type testCase struct {
		Item     Item
		Role     authz.Role
		Expected bool
	}

	unrestricted := Item{Key: "open", Title: "Open"}
	restricted := Item{Key: "config", Title: "University Config", Roles: []authz.Role{authz.RoleOwner}}

	testCases := []testCase{
		{Item: unrestricted, Role: authz.RoleOwner, Expected: true},
		{Item: unrestricted, Role: authz.RoleGuest, Expected: true},
		{Item: unrestricted, Role: authz.RoleNone, Expected: true},
		{Item: restricted, Role: authz.RoleOwner, Expected: true},
		// Scenario: ADMIN against an OWNER-only item
		{Item: restricted, Role: authz.RoleAdmin, Expected: false},
		{Item: restricted, Role: authz.RoleSuperadmin, Expected: false},
		// Unknown role fails closed
		{Item: restricted, Role: authz.RoleNone, Expected: false},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			if e, g := tc.Expected, Visible(tc.Item, tc.Role); e != g {
				t.Errorf("Visible(%q, %q): expected '%v', got '%v'", tc.Item.Key, tc.Role, e, g)
			}
		})
	}
}

func TestFilterDropsEmptySections(t *testing.T) {
	tree := Tree{
		{
			Title: "Administration",
			Items: []Item{
				{Key: KeyUniversity, Title: "University Config", Roles: []authz.Role{authz.RoleOwner}},
			},
		},
		{
			Title: "Help",
			Items: []Item{
				{Key: KeyAPIDocs, Title: "API Docs"},
			},
		},
	}

	filtered := tree.Filter(authz.RoleAdmin)

	if e, g := 1, len(filtered); e != g {
		t.Fatalf("len(filtered): expected '%v', got '%v'", e, g)
	}

	if e, g := "Help", filtered[0].Title; e != g {
		t.Errorf("filtered[0].Title: expected '%v', got '%v'", e, g)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	tree := DefaultTree()

	filtered := tree.Filter(authz.RoleOwner)

	var keys []Key
	for _, section := range filtered {
		for _, item := range section.Items {
			keys = append(keys, item.Key)
		}
	}

	expected := []Key{
		KeyDashboard, KeyAnalytics,
		KeyCollages, KeyPrograms, KeyForms, KeyGalleries, KeySocialLinks,
		KeyUsers, KeyUniversity, KeyAPIDocs,
	}

	if e, g := len(expected), len(keys); e != g {
		t.Fatalf("len(keys): expected '%v', got '%v'", e, g)
	}

	for idx := range expected {
		if e, g := expected[idx], keys[idx]; e != g {
			t.Errorf("keys[%d]: expected '%v', got '%v'", idx, e, g)
		}
	}
}

func TestDefaultTreeRoleGating(t *testing.T) {
	tree := DefaultTree()

	adminTree := tree.Filter(authz.RoleAdmin)

	if _, found := adminTree.Item(KeyUsers); found {
		t.Errorf("admin should not see the users item")
	}

	if _, found := adminTree.Item(KeyUniversity); found {
		t.Errorf("admin should not see the university config item")
	}

	if _, found := adminTree.Item(KeyCollages); !found {
		t.Errorf("admin should see the collages item")
	}

	guestTree := tree.Filter(authz.RoleGuest)

	if _, found := guestTree.Item(KeyDashboard); found {
		t.Errorf("guest should not see the dashboard item")
	}

	if _, found := guestTree.Item(KeyAPIDocs); !found {
		t.Errorf("guest should see the unrestricted api docs item")
	}
}

func TestItemDisabled(t *testing.T) {
	if !(Item{Badge: BadgeSoon}).Disabled() {
		t.Errorf("a 'Soon' badge should disable the item")
	}

	if (Item{Badge: "3"}).Disabled() {
		t.Errorf("a numeric badge should not disable the item")
	}

	if (Item{}).Disabled() {
		t.Errorf("an item without a badge should not be disabled")
	}
}
