package nav

import (
	"fmt"
	"testing"
)

func navTestTree() Tree {
	return Tree{
		{
			Title: "Portfolios Management",
			Items: []Item{
				{Key: KeyCollages, Title: "Collages", Route: "/admin/collages", DynamicBadge: true},
				{Key: KeyPrograms, Title: "Programs", Route: "/admin/programs"},
			},
		},
	}
}

func TestAugment(t *testing.T) {
	type testCase struct {
		Owned  []Entity
		Member []Entity
		Assert func(t *testing.T, item Item)
	}

	testCases := []testCase{
		{
			// Owned-then-member order, badge equals total count
			Owned: []Entity{{Name: "Engineering", Slug: "eng"}},
			Member: []Entity{
				{Name: "Medicine", Slug: "med", LogoURL: "/media/med.png"},
				{Name: "Arts", Slug: "art"},
			},
			Assert: func(t *testing.T, item Item) {
				if e, g := 3, len(item.SubItems); e != g {
					t.Fatalf("len(item.SubItems): expected '%v', got '%v'", e, g)
				}

				expectedRoutes := []string{
					"/admin/collages/eng",
					"/admin/collages/med",
					"/admin/collages/art",
				}

				for idx, route := range expectedRoutes {
					if e, g := route, item.SubItems[idx].Route; e != g {
						t.Errorf("item.SubItems[%d].Route: expected '%v', got '%v'", idx, e, g)
					}
				}

				if e, g := "/media/med.png", item.SubItems[1].LogoURL; e != g {
					t.Errorf("item.SubItems[1].LogoURL: expected '%v', got '%v'", e, g)
				}

				if e, g := "3", item.Badge; e != g {
					t.Errorf("item.Badge: expected '%v', got '%v'", e, g)
				}

				if !item.HasSubItems {
					t.Errorf("item.HasSubItems: expected true")
				}
			},
		},
		{
			// Both collections absent: zero badge, no sub-items
			Owned:  nil,
			Member: nil,
			Assert: func(t *testing.T, item Item) {
				if e, g := 0, len(item.SubItems); e != g {
					t.Errorf("len(item.SubItems): expected '%v', got '%v'", e, g)
				}

				if e, g := "0", item.Badge; e != g {
					t.Errorf("item.Badge: expected '%v', got '%v'", e, g)
				}

				if item.HasSubItems {
					t.Errorf("item.HasSubItems: expected false with zero sub-items")
				}
			},
		},
		{
			// Member-only collections still augment
			Owned:  nil,
			Member: []Entity{{Name: "Law", Slug: "law"}},
			Assert: func(t *testing.T, item Item) {
				if e, g := 1, len(item.SubItems); e != g {
					t.Fatalf("len(item.SubItems): expected '%v', got '%v'", e, g)
				}

				if e, g := "1", item.Badge; e != g {
					t.Errorf("item.Badge: expected '%v', got '%v'", e, g)
				}
			},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			augmented := navTestTree().Augment(KeyCollages, tc.Owned, tc.Member)

			item, found := augmented.Item(KeyCollages)
			if !found {
				t.Fatalf("augmented tree lost the collages item")
			}

			if tc.Assert != nil {
				tc.Assert(t, item)
			}
		})
	}
}

func TestAugmentDoesNotMutateOriginal(t *testing.T) {
	tree := navTestTree()

	tree.Augment(KeyCollages, []Entity{{Name: "Engineering", Slug: "eng"}}, nil)

	item, _ := tree.Item(KeyCollages)

	if len(item.SubItems) != 0 {
		t.Errorf("augmentation must not mutate the original tree")
	}

	if item.Badge != "" {
		t.Errorf("augmentation must not mutate the original badge")
	}
}

func TestAugmentUnknownKeyIsNoop(t *testing.T) {
	tree := navTestTree()

	augmented := tree.Augment(Key("missing"), []Entity{{Name: "Engineering", Slug: "eng"}}, nil)

	if e, g := len(tree), len(augmented); e != g {
		t.Fatalf("len(augmented): expected '%v', got '%v'", e, g)
	}

	item, _ := augmented.Item(KeyCollages)
	if len(item.SubItems) != 0 {
		t.Errorf("augmenting an unknown key must leave other items untouched")
	}
}

func TestAugmentLeavesStaticBadgeAlone(t *testing.T) {
	tree := Tree{
		{
			Title: "Overview",
			Items: []Item{
				{Key: KeyAnalytics, Title: "Analytics", Route: "/admin/analytics", Badge: BadgeSoon},
			},
		},
	}

	augmented := tree.Augment(KeyAnalytics, []Entity{{Name: "Engineering", Slug: "eng"}}, nil)

	item, _ := augmented.Item(KeyAnalytics)

	if e, g := BadgeSoon, item.Badge; e != g {
		t.Errorf("item.Badge: expected '%v', got '%v'", e, g)
	}

	if e, g := 1, len(item.SubItems); e != g {
		t.Errorf("len(item.SubItems): expected '%v', got '%v'", e, g)
	}
}
