package admin

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/collagio/internal/authz"
	"github.com/bornholm/collagio/internal/locale"
	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/internal/ui"
	"github.com/bornholm/collagio/pkg/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

// BaseTemplateData is shared by every admin page.
type BaseTemplateData struct {
	ui.HeadTemplateData
	Sidebar ui.SidebarTemplateData
	Locale  string
}

type DashboardTemplateData struct {
	BaseTemplateData
	CollageCount      int
	UserCount         int
	ProgramCount      int
	FormCount         int
	GalleryEventCount int
}

type CollageTemplateData struct {
	ID             int64
	Slug           string
	Name           string
	Description    string
	LogoURL        string
	ThemeAccent    string
	ThemeFont      string
	Published      bool
	HumanCreatedAt string
	HumanUpdatedAt string
}

type CollagesTemplateData struct {
	BaseTemplateData
	Collages []CollageTemplateData
}

type MemberTemplateData struct {
	ID       int64
	Nickname string
	Email    string
}

type CollageDetailTemplateData struct {
	BaseTemplateData
	Collage     CollageTemplateData
	Members     []MemberTemplateData
	Programs    []ProgramTemplateData
	Forms       []FormTemplateData
	Galleries   []GalleryEventTemplateData
	SocialLinks []SocialLinkTemplateData
}

type ProgramTemplateData struct {
	ID            int64
	CollageID     int64
	Name          string
	Degree        string
	Description   string
	DurationYears int
}

type ProgramsTemplateData struct {
	BaseTemplateData
	Programs []ProgramTemplateData
	Collages []CollageTemplateData
}

type FormTemplateData struct {
	ID          int64
	CollageID   int64
	Title       string
	Description string
	FieldCount  int
	Open        bool
}

type FormsTemplateData struct {
	BaseTemplateData
	Forms    []FormTemplateData
	Collages []CollageTemplateData
}

type FormSubmissionTemplateData struct {
	ID               string
	Values           map[string]string
	HumanSubmittedAt string
}

type FormDetailTemplateData struct {
	BaseTemplateData
	Form        FormTemplateData
	Fields      []store.FormField
	Submissions []FormSubmissionTemplateData
}

type GalleryEventTemplateData struct {
	ID         int64
	CollageID  int64
	Title      string
	EventDate  string
	ImageURLs  []string
	ImageCount int
}

type GalleriesTemplateData struct {
	BaseTemplateData
	Galleries []GalleryEventTemplateData
	Collages  []CollageTemplateData
}

type SocialLinkTemplateData struct {
	ID        int64
	CollageID int64
	Platform  string
	URL       string
}

type SocialLinksTemplateData struct {
	BaseTemplateData
	SocialLinks []SocialLinkTemplateData
	Collages    []CollageTemplateData
}

type UserTemplateData struct {
	ID               int64
	Provider         string
	Subject          string
	Nickname         string
	Email            string
	Role             string
	APIUsername      string
	HumanConnectedAt string
}

type UsersTemplateData struct {
	BaseTemplateData
	Users    []UserTemplateData
	Roles    []string
	Password string
}

type UniversityTemplateData struct {
	BaseTemplateData
	Instance InstanceInfo
}

type APIDocsTemplateData struct {
	BaseTemplateData
}

func NewCollageTemplateData(collage *store.Collage) CollageTemplateData {
	data := CollageTemplateData{
		ID:             collage.ID,
		Slug:           collage.Slug,
		Name:           collage.Name,
		Description:    collage.Description,
		ThemeAccent:    collage.ThemeAccent,
		ThemeFont:      collage.ThemeFont,
		Published:      collage.Published,
		HumanCreatedAt: humanize.Time(collage.CreatedAt),
		HumanUpdatedAt: humanize.Time(collage.UpdatedAt),
	}

	if collage.LogoKey != "" {
		data.LogoURL = "/media/" + collage.LogoKey
	}

	return data
}

func NewProgramTemplateData(program *store.Program) ProgramTemplateData {
	return ProgramTemplateData{
		ID:            program.ID,
		CollageID:     program.CollageID,
		Name:          program.Name,
		Degree:        program.Degree,
		Description:   program.Description,
		DurationYears: program.DurationYears,
	}
}

func NewFormTemplateData(form *store.Form) FormTemplateData {
	return FormTemplateData{
		ID:          form.ID,
		CollageID:   form.CollageID,
		Title:       form.Title,
		Description: form.Description,
		FieldCount:  len(form.Fields),
		Open:        form.Open,
	}
}

func NewGalleryEventTemplateData(event *store.GalleryEvent) GalleryEventTemplateData {
	data := GalleryEventTemplateData{
		ID:         event.ID,
		CollageID:  event.CollageID,
		Title:      event.Title,
		ImageCount: len(event.ImageKeys),
	}

	if !event.EventDate.IsZero() {
		data.EventDate = event.EventDate.Format(time.DateOnly)
	}

	for _, key := range event.ImageKeys {
		data.ImageURLs = append(data.ImageURLs, "/media/"+key)
	}

	return data
}

func NewSocialLinkTemplateData(link *store.SocialLink) SocialLinkTemplateData {
	return SocialLinkTemplateData{
		ID:        link.ID,
		CollageID: link.CollageID,
		Platform:  link.Platform,
		URL:       link.URL,
	}
}

func NewUserTemplateData(user *store.User) UserTemplateData {
	data := UserTemplateData{
		ID:          user.ID,
		Provider:    user.Provider,
		Subject:     user.Subject,
		Nickname:    user.Nickname,
		Email:       user.Email,
		Role:        user.Role.String(),
		APIUsername: user.APIUsername,
	}

	if !user.ConnectedAt.IsZero() {
		data.HumanConnectedAt = humanize.Time(user.ConnectedAt)
	}

	return data
}

// page resolves the current store user and checks it against a minimum
// role. A nil user means the response was already written.
func (h *Handler) page(w http.ResponseWriter, r *http.Request, min authz.Role) (*store.User, string) {
	authUser, err := authz.ContextUser(r.Context())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return nil, ""
	}

	user, ok := authUser.(*store.User)
	if !ok || !user.Role.AtLeast(min) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return nil, ""
	}

	return user, locale.ContextLocale(r.Context())
}

func (h *Handler) base(r *http.Request, user *store.User, requestLocale string, pageTitle string) BaseTemplateData {
	return BaseTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: pageTitle,
		},
		Sidebar: h.sidebar.TemplateData(r, user, requestLocale),
		Locale:  requestLocale,
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	ctx := r.Context()

	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
