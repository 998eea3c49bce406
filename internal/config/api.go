package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type API struct {
	RateLimitRate  InterpolatedFloat `yaml:"rateLimitRate"`
	RateLimitBurst InterpolatedInt   `yaml:"rateLimitBurst"`
}

func NewDefaultAPIConfig() API {
	return API{
		RateLimitRate:  10,
		RateLimitBurst: 20,
	}
}

func NewAPIConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                []*yaml.Comment{yaml.HeadComment(" REST API configuration")},
		".rateLimitRate":  []*yaml.Comment{yaml.HeadComment(" Sustained requests per second allowed per user")},
		".rateLimitBurst": []*yaml.Comment{yaml.HeadComment(" Burst size allowed per user")},
	}
}

type UI struct {
	CacheWindow *InterpolatedDuration `yaml:"cacheWindow"`
}

func NewDefaultUIConfig() UI {
	return UI{
		CacheWindow: NewInterpolatedDuration(5 * time.Minute),
	}
}

func NewUIConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":             []*yaml.Comment{yaml.HeadComment(" Dashboard UI configuration")},
		".cacheWindow": []*yaml.Comment{yaml.HeadComment(" Freshness window for sidebar collections, refreshed in the background once stale")},
	}
}
