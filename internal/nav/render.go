package nav

// ViewMode is the sidebar's presentation mode, held per session and
// never persisted.
type ViewMode string

const (
	ViewExpanded  ViewMode = "expanded"
	ViewCollapsed ViewMode = "collapsed"

	// ViewMobile selects the same item modes as ViewExpanded; the
	// slide-over overlay itself is handled in CSS, so no handler sets
	// this mode. It is part of the selector contract for clients that
	// negotiate their own presentation.
	ViewMobile ViewMode = "mobile"
)

// ViewModeFromString narrows arbitrary input, defaulting to expanded.
func ViewModeFromString(raw string) ViewMode {
	switch ViewMode(raw) {
	case ViewCollapsed:
		return ViewCollapsed
	case ViewMobile:
		return ViewMobile
	default:
		return ViewExpanded
	}
}

// RenderMode is the presentation selected for an item. Exactly one
// mode applies to a given (ViewMode, item) pair.
type RenderMode string

const (
	// Icon plus tooltip, children never shown.
	RenderCollapsedIcon RenderMode = "collapsed-icon"
	// Clickable label with an independent toggle for its children.
	RenderExpandableParent RenderMode = "expandable-parent"
	// Icon, title, optional badge pill and description.
	RenderFlatLink RenderMode = "flat-link"
)

// RenderModeFor selects the presentation for an item. The collapsed
// rail always wins, regardless of sub-items.
func RenderModeFor(mode ViewMode, item Item) RenderMode {
	if mode == ViewCollapsed {
		return RenderCollapsedIcon
	}

	if item.HasSubItems {
		return RenderExpandableParent
	}

	return RenderFlatLink
}
