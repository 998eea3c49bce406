package nav

import (
	"strconv"
)

// Entity is a tenant-owned sub-entity surfaced under a navigation item.
type Entity struct {
	Name    string
	Slug    string
	LogoURL string
}

// Augment derives a new tree in which the item carrying the key gets
// its sub-items rebuilt from the owned-then-member entity collections,
// preserving insertion order, and its badge set to the stringified
// total count. Absent collections count as empty; when no item carries
// the key the tree is returned augmented-free. The receiver is never
// mutated.
func (t Tree) Augment(key Key, owned, member []Entity) Tree {
	augmented := make(Tree, len(t))

	for sectionIdx, section := range t {
		items := make([]Item, len(section.Items))
		copy(items, section.Items)

		for itemIdx, item := range items {
			if item.Key != key {
				continue
			}

			subItems := make([]SubItem, 0, len(owned)+len(member))
			for _, entity := range owned {
				subItems = append(subItems, entitySubItem(item, entity))
			}
			for _, entity := range member {
				subItems = append(subItems, entitySubItem(item, entity))
			}

			item.SubItems = subItems
			item.HasSubItems = len(subItems) > 0

			if item.DynamicBadge {
				item.Badge = strconv.Itoa(len(subItems))
			}

			items[itemIdx] = item
		}

		augmented[sectionIdx] = Section{Title: section.Title, Items: items}
	}

	return augmented
}

func entitySubItem(parent Item, entity Entity) SubItem {
	return SubItem{
		Title:   entity.Name,
		Route:   parent.Route + "/" + entity.Slug,
		Icon:    "fa-building-columns",
		LogoURL: entity.LogoURL,
		Roles:   parent.Roles,
	}
}
