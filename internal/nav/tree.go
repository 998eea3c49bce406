package nav

import (
	"github.com/bornholm/collagio/internal/authz"
)

// Key is a stable identifier for a navigation item, decoupled from its
// display title.
type Key string

const (
	KeyDashboard   Key = "dashboard"
	KeyCollages    Key = "collages"
	KeyPrograms    Key = "programs"
	KeyForms       Key = "forms"
	KeyGalleries   Key = "galleries"
	KeySocialLinks Key = "social-links"
	KeyUsers       Key = "users"
	KeyUniversity  Key = "university"
	KeyAnalytics   Key = "analytics"
	KeyAPIDocs     Key = "api-docs"
)

// BadgeSoon marks an item as announced but not yet available; such
// items render inert.
const BadgeSoon = "Soon"

type SubItem struct {
	Title   string
	Route   string
	Icon    string
	LogoURL string
	Roles   []authz.Role
}

type Item struct {
	Key         Key
	Title       string
	Route       string
	Icon        string
	Badge       string
	Description string

	// DynamicBadge items get their badge computed from augmented
	// sub-item counts instead of the literal Badge value.
	DynamicBadge bool

	// Nil or empty Roles means visible to everyone.
	Roles []authz.Role

	SubItems    []SubItem
	HasSubItems bool
}

// Disabled reports whether the item is announced but inert.
func (i Item) Disabled() bool {
	return i.Badge == BadgeSoon
}

type Section struct {
	Title string
	Items []Item
}

// Tree is an ordered sequence of sections; section and item order is
// display order.
type Tree []Section

// Visible reports whether the item may be shown to the role. An item
// without a role restriction is visible to every role, RoleNone
// included; a restricted item is never visible to RoleNone.
func Visible(item Item, role authz.Role) bool {
	if len(item.Roles) == 0 {
		return true
	}

	if role == authz.RoleNone {
		return false
	}

	for _, allowed := range item.Roles {
		if allowed == role {
			return true
		}
	}

	return false
}

func subItemVisible(sub SubItem, role authz.Role) bool {
	return Visible(Item{Roles: sub.Roles}, role)
}

// Filter returns a derived tree containing only the sections and items
// visible to the role. Sections left without items are dropped.
func (t Tree) Filter(role authz.Role) Tree {
	filtered := make(Tree, 0, len(t))

	for _, section := range t {
		items := make([]Item, 0, len(section.Items))
		for _, item := range section.Items {
			if !Visible(item, role) {
				continue
			}

			subItems := make([]SubItem, 0, len(item.SubItems))
			for _, sub := range item.SubItems {
				if subItemVisible(sub, role) {
					subItems = append(subItems, sub)
				}
			}

			item.SubItems = subItems
			item.HasSubItems = len(subItems) > 0
			items = append(items, item)
		}

		if len(items) == 0 {
			continue
		}

		filtered = append(filtered, Section{Title: section.Title, Items: items})
	}

	return filtered
}

// Item returns the first item carrying the key.
func (t Tree) Item(key Key) (Item, bool) {
	for _, section := range t {
		for _, item := range section.Items {
			if item.Key == key {
				return item, true
			}
		}
	}

	return Item{}, false
}

var adminRoles = []authz.Role{authz.RoleOwner, authz.RoleSuperadmin, authz.RoleAdmin}

// DefaultTree is the static navigation declaration for the admin
// dashboard. It is built once per call and never mutated; augmentation
// always derives a copy.
func DefaultTree() Tree {
	return Tree{
		{
			Title: "Overview",
			Items: []Item{
				{
					Key:         KeyDashboard,
					Title:       "Dashboard",
					Route:       "/admin",
					Icon:        "fa-gauge",
					Description: "Activity at a glance",
					Roles:       adminRoles,
				},
				{
					Key:         KeyAnalytics,
					Title:       "Analytics",
					Route:       "/admin/analytics",
					Icon:        "fa-chart-line",
					Badge:       BadgeSoon,
					Description: "Traffic and engagement",
					Roles:       adminRoles,
				},
			},
		},
		{
			Title: "Portfolios Management",
			Items: []Item{
				{
					Key:          KeyCollages,
					Title:        "Collages",
					Route:        "/admin/collages",
					Icon:         "fa-building-columns",
					Description:  "Your colleges and memberships",
					DynamicBadge: true,
					Roles:        adminRoles,
				},
				{
					Key:         KeyPrograms,
					Title:       "Programs",
					Route:       "/admin/programs",
					Icon:        "fa-graduation-cap",
					Description: "Degree programs",
					Roles:       adminRoles,
				},
				{
					Key:         KeyForms,
					Title:       "Forms",
					Route:       "/admin/forms",
					Icon:        "fa-file-lines",
					Description: "Admission and contact forms",
					Roles:       adminRoles,
				},
				{
					Key:         KeyGalleries,
					Title:       "Galleries",
					Route:       "/admin/galleries",
					Icon:        "fa-images",
					Description: "Event galleries",
					Roles:       adminRoles,
				},
				{
					Key:         KeySocialLinks,
					Title:       "Social Links",
					Route:       "/admin/social-links",
					Icon:        "fa-share-nodes",
					Description: "Social media presence",
					Roles:       adminRoles,
				},
			},
		},
		{
			Title: "Administration",
			Items: []Item{
				{
					Key:         KeyUsers,
					Title:       "Users",
					Route:       "/admin/users",
					Icon:        "fa-users",
					Description: "Accounts and roles",
					Roles:       []authz.Role{authz.RoleOwner, authz.RoleSuperadmin},
				},
				{
					Key:         KeyUniversity,
					Title:       "University Config",
					Route:       "/admin/university",
					Icon:        "fa-sliders",
					Description: "Site-wide settings",
					Roles:       []authz.Role{authz.RoleOwner},
				},
				{
					Key:         KeyAPIDocs,
					Title:       "API Docs",
					Route:       "/admin/api-docs",
					Icon:        "fa-code",
					Description: "REST surface reference",
				},
			},
		},
	}
}
