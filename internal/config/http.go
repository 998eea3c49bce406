package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address InterpolatedString      `yaml:"address"`
	BaseURL InterpolatedString      `yaml:"baseUrl"`
	Session Session                 `yaml:"session"`
	Locales InterpolatedStringSlice `yaml:"locales"`
}

type Session struct {
	Keys   InterpolatedStringSlice `yaml:"keys"`
	Cookie Cookie                  `yaml:"cookie"`
}

type Cookie struct {
	MaxAge   *InterpolatedDuration `yaml:"maxAge"`
	Path     InterpolatedString    `yaml:"path"`
	HTTPOnly InterpolatedBool      `yaml:"httpOnly"`
	Secure   InterpolatedBool      `yaml:"secure"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address: "${COLLAGIO_HTTP_ADDRESS:-:8080}",
		BaseURL: "${COLLAGIO_HTTP_BASE_URL:-http://localhost:8080}",
		Locales: InterpolatedStringSlice{"en"},
		Session: Session{
			Keys: InterpolatedStringSlice{},
			Cookie: Cookie{
				MaxAge:   NewInterpolatedDuration(24 * time.Hour),
				Path:     "/",
				HTTPOnly: true,
				Secure:   false,
			},
		},
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":              []*yaml.Comment{yaml.HeadComment(" Webserver configuration")},
		".address":      []*yaml.Comment{yaml.HeadComment(" Webserver's listening address")},
		".baseUrl":      []*yaml.Comment{yaml.HeadComment(" Publicly reachable base URL, used for OAuth2 callbacks")},
		".locales":      []*yaml.Comment{yaml.HeadComment(" Locales served as URL path prefixes, first one is the default")},
		".session.keys": []*yaml.Comment{yaml.HeadComment(" Cookie signing keys, generated at startup when empty")},
	}
}
