package portal

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/bornholm/collagio/internal/store"
	"github.com/bornholm/collagio/internal/ui"
	"github.com/bornholm/collagio/pkg/log"
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

type CollageCardTemplateData struct {
	Slug        string
	Name        string
	Description string
	LogoURL     string
}

type HomeTemplateData struct {
	ui.HeadTemplateData
	Locale   string
	Collages []CollageCardTemplateData
}

type PortalFormTemplateData struct {
	ID     int64
	Title  string
	Fields []store.FormField
	Errors map[string]string
	Values map[string]string
	Sent   bool
}

type CollagePageTemplateData struct {
	ui.HeadTemplateData
	Locale      string
	Collage     CollageCardTemplateData
	ThemeAccent string
	ThemeFont   string
	Programs    []*store.Program
	Galleries   []GalleryTemplateData
	SocialLinks []*store.SocialLink
	Forms       []PortalFormTemplateData
}

type GalleryTemplateData struct {
	Title       string
	Description string
	ImageURLs   []string
}

func newCollageCard(collage *store.Collage) CollageCardTemplateData {
	card := CollageCardTemplateData{
		Slug:        collage.Slug,
		Name:        collage.Name,
		Description: collage.Description,
	}

	if collage.LogoKey != "" {
		card.LogoURL = "/media/" + collage.LogoKey
	}

	return card
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	ctx := r.Context()

	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
