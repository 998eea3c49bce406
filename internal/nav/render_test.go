package nav

import (
	"fmt"
	"testing"
)

func TestRenderModeFor(t *testing.T) {
	type testCase struct {
		Mode     ViewMode
		Item     Item
		Expected RenderMode
	}

	withChildren := Item{Key: KeyCollages, HasSubItems: true, SubItems: []SubItem{{Title: "Engineering"}}}
	flat := Item{Key: KeyPrograms}

	testCases := []testCase{
		// Collapsed always wins, sub-items or not
		{Mode: ViewCollapsed, Item: withChildren, Expected: RenderCollapsedIcon},
		{Mode: ViewCollapsed, Item: flat, Expected: RenderCollapsedIcon},
		{Mode: ViewExpanded, Item: withChildren, Expected: RenderExpandableParent},
		{Mode: ViewExpanded, Item: flat, Expected: RenderFlatLink},
		{Mode: ViewMobile, Item: withChildren, Expected: RenderExpandableParent},
		{Mode: ViewMobile, Item: flat, Expected: RenderFlatLink},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			if e, g := tc.Expected, RenderModeFor(tc.Mode, tc.Item); e != g {
				t.Errorf("RenderModeFor(%q, %q): expected '%v', got '%v'", tc.Mode, tc.Item.Key, e, g)
			}
		})
	}
}

func TestViewModeFromString(t *testing.T) {
	if e, g := ViewCollapsed, ViewModeFromString("collapsed"); e != g {
		t.Errorf("expected '%v', got '%v'", e, g)
	}

	if e, g := ViewExpanded, ViewModeFromString(""); e != g {
		t.Errorf("expected '%v', got '%v'", e, g)
	}

	if e, g := ViewExpanded, ViewModeFromString("sideways"); e != g {
		t.Errorf("expected '%v', got '%v'", e, g)
	}
}
