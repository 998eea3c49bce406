package config

import "github.com/goccy/go-yaml"

type Auth struct {
	Providers AuthProviders `yaml:"providers"`
	Roles     []RoleBinding `yaml:"roles"`
}

// RoleBinding promotes an authenticated user to a role, matched by
// email and identity provider.
type RoleBinding struct {
	Email    InterpolatedString `yaml:"email"`
	Provider InterpolatedString `yaml:"provider"`
	Role     InterpolatedString `yaml:"role"`
}

type AuthProviders struct {
	Google OAuth2Provider `yaml:"google"`
	Github OAuth2Provider `yaml:"github"`
	Gitea  GiteaProvider  `yaml:"gitea"`
	OIDC   OIDCProvider   `yaml:"oidc"`
}

type OAuth2Provider struct {
	Key    InterpolatedString      `yaml:"key"`
	Secret InterpolatedString      `yaml:"secret"`
	Scopes InterpolatedStringSlice `yaml:"scopes"`
}

type OIDCProvider struct {
	OAuth2Provider `yaml:",inline"`
	DiscoveryURL   InterpolatedString `yaml:"discoveryUrl"`
	Icon           InterpolatedString `yaml:"icon"`
	Label          InterpolatedString `yaml:"label"`
}

type GiteaProvider struct {
	OAuth2Provider `yaml:",inline"`
	TokenURL       InterpolatedString `yaml:"tokenUrl"`
	AuthURL        InterpolatedString `yaml:"authUrl"`
	ProfileURL     InterpolatedString `yaml:"profileUrl"`
	Label          InterpolatedString `yaml:"label"`
}

func NewDefaultAuthConfig() Auth {
	return Auth{
		Providers: AuthProviders{},
		Roles: []RoleBinding{
			{
				Email:    "",
				Provider: "google",
				Role:     "OWNER",
			},
		},
	}
}

func NewAuthConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                   []*yaml.Comment{yaml.HeadComment(" Auth configuration")},
		".roles":             []*yaml.Comment{yaml.HeadComment(" Role bindings applied on login")},
		".roles[0].email":    []*yaml.Comment{yaml.HeadComment(" User's email address")},
		".roles[0].provider": []*yaml.Comment{yaml.HeadComment(" User's identity provider (see 'providers' section)")},
		".roles[0].role":     []*yaml.Comment{yaml.HeadComment(" One of OWNER, SUPERADMIN, ADMIN, GUEST")},
	}
}
