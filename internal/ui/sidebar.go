package ui

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/bornholm/collagio/internal/nav"
	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/pkg/swr"
	"github.com/pkg/errors"
)

const (
	CookieSidebarView = "collagio_sidebar_view"
	CookieSidebarOpen = "collagio_sidebar_open"
)

// Collections holds the collages attached to a user, owned first.
type Collections struct {
	Owned  []nav.Entity
	Member []nav.Entity
}

// Sidebar builds the navigation sidebar for a request. Per-user
// collections are served stale-while-revalidate so page loads never
// block on the membership queries.
type Sidebar struct {
	store       *store.Store
	collections *swr.Cache[string, Collections]
}

type SidebarSubItemTemplateData struct {
	Title   string
	Link    string
	LogoURL string
	Active  bool
}

type SidebarItemTemplateData struct {
	Key         nav.Key
	Title       string
	Description string
	Icon        string
	Link        string
	Badge       string
	Disabled    bool
	RenderMode  nav.RenderMode
	Open        bool
	Active      bool
	SubItems    []SidebarSubItemTemplateData
}

type SidebarSectionTemplateData struct {
	Title string
	Items []SidebarItemTemplateData
}

type SidebarTemplateData struct {
	Sections  []SidebarSectionTemplateData
	ViewMode  nav.ViewMode
	Username  string
	RoleLabel string
}

func NewSidebar(st *store.Store, cacheWindow time.Duration) *Sidebar {
	sidebar := &Sidebar{
		store: st,
	}

	sidebar.collections = swr.NewCache(cacheWindow, sidebar.fetchCollections)

	return sidebar
}

// TemplateData assembles the sidebar for the given user and request.
// The request path is expected to be locale-stripped, as served behind
// the locale middleware.
func (s *Sidebar) TemplateData(r *http.Request, user *store.User, locale string) SidebarTemplateData {
	ctx := r.Context()

	currentPath := nav.Route(locale, r.URL.Path)

	role := user.UserRole()

	tree := nav.DefaultTree().Filter(role)

	collections, _ := s.collections.Get(ctx, userKey(user.ID))

	tree = tree.Augment(nav.KeyCollages, collections.Owned, collections.Member)

	viewMode := ViewModeFromRequest(r)
	openState := OpenStateFromRequest(r)

	data := SidebarTemplateData{
		Sections:  make([]SidebarSectionTemplateData, 0, len(tree)),
		ViewMode:  viewMode,
		Username:  user.DisplayName(),
		RoleLabel: role.String(),
	}

	for _, section := range tree {
		sectionData := SidebarSectionTemplateData{
			Title: section.Title,
			Items: make([]SidebarItemTemplateData, 0, len(section.Items)),
		}

		for _, item := range section.Items {
			itemData := SidebarItemTemplateData{
				Key:         item.Key,
				Title:       item.Title,
				Description: item.Description,
				Icon:        item.Icon,
				Link:        nav.Route(locale, item.Route),
				Badge:       item.Badge,
				Disabled:    item.Disabled(),
				RenderMode:  nav.RenderModeFor(viewMode, item),
				Open:        openState[item.Key],
				Active:      nav.IsActive(currentPath, locale, item.Route),
				SubItems:    make([]SidebarSubItemTemplateData, 0, len(item.SubItems)),
			}

			for _, subItem := range item.SubItems {
				itemData.SubItems = append(itemData.SubItems, SidebarSubItemTemplateData{
					Title:   subItem.Title,
					Link:    nav.Route(locale, subItem.Route),
					LogoURL: subItem.LogoURL,
					Active:  nav.IsActive(currentPath, locale, subItem.Route),
				})
			}

			sectionData.Items = append(sectionData.Items, itemData)
		}

		data.Sections = append(data.Sections, sectionData)
	}

	return data
}

// Invalidate drops the cached collections of a user, forcing a fresh
// fetch on the next page load.
func (s *Sidebar) Invalidate(userID int64) {
	s.collections.Invalidate(userKey(userID))
}

func (s *Sidebar) fetchCollections(ctx context.Context, key string) (Collections, error) {
	userID, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return Collections{}, errors.WithStack(err)
	}

	owned, err := s.store.ListOwnedCollages(ctx, userID)
	if err != nil {
		return Collections{}, errors.WithStack(err)
	}

	member, err := s.store.ListMemberCollages(ctx, userID)
	if err != nil {
		return Collections{}, errors.WithStack(err)
	}

	return Collections{
		Owned:  toEntities(owned),
		Member: toEntities(member),
	}, nil
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func toEntities(collages []*store.Collage) []nav.Entity {
	entities := make([]nav.Entity, 0, len(collages))
	for _, collage := range collages {
		entity := nav.Entity{
			Name: collage.Name,
			Slug: collage.Slug,
		}

		if collage.LogoKey != "" {
			entity.LogoURL = "/media/" + collage.LogoKey
		}

		entities = append(entities, entity)
	}

	return entities
}

// ViewModeFromRequest reads the persisted sidebar view mode, defaulting
// to expanded.
func ViewModeFromRequest(r *http.Request) nav.ViewMode {
	cookie, err := r.Cookie(CookieSidebarView)
	if err != nil {
		return nav.ViewExpanded
	}

	return nav.ViewModeFromString(cookie.Value)
}

// WriteViewMode stores the sidebar view mode for the browsing session.
func WriteViewMode(w http.ResponseWriter, mode nav.ViewMode) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieSidebarView,
		Value:    string(mode),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// OpenStateFromRequest reads the per-item expanded state, one flag per
// navigation key. A missing or malformed cookie yields an empty state.
func OpenStateFromRequest(r *http.Request) map[nav.Key]bool {
	cookie, err := r.Cookie(CookieSidebarOpen)
	if err != nil {
		return map[nav.Key]bool{}
	}

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return map[nav.Key]bool{}
	}

	state := map[nav.Key]bool{}
	if err := json.Unmarshal(raw, &state); err != nil {
		return map[nav.Key]bool{}
	}

	return state
}

// WriteOpenState persists the per-item expanded state.
func WriteOpenState(w http.ResponseWriter, state map[nav.Key]bool) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return errors.WithStack(err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieSidebarOpen,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}
