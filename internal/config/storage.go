package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bornholm/collagio/pkg/blob"
	"github.com/bornholm/collagio/pkg/blob/local"
	"github.com/bornholm/collagio/pkg/blob/s3"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Storage struct {
	Type    InterpolatedString `yaml:"type"`
	Options *InterpolatedMap   `yaml:"options"`
}

func NewDefaultStorageConfig() Storage {
	return Storage{
		Type: InterpolatedString(fmt.Sprintf("${COLLAGIO_STORAGE_TYPE:-%s}", local.Type)),
		Options: &InterpolatedMap{
			Data: map[string]any{
				"dir": "${COLLAGIO_STORAGE_DIR:-./media}",
			},
		},
	}
}

func NewStorageConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":      []*yaml.Comment{yaml.HeadComment(" Media storage configuration (logos, gallery images)")},
		".type": []*yaml.Comment{yaml.HeadComment(" Storage type", fmt.Sprintf(" Available: %v", blob.Registered()))},
		".options": []*yaml.Comment{
			yaml.HeadComment(" Storage options"),
			getStorageOptionComment("S3 storage", s3.Options{}),
		},
	}
}

func getStorageOptionComment(message string, opts any) *yaml.Comment {
	rawOpts, err := yaml.Marshal(opts)
	if err != nil {
		panic(errors.WithStack(err))
	}

	comments := []string{message, "options:"}
	comments = append(comments, slices.Collect(func(yield func(string) bool) {
		for _, str := range strings.Split(string(rawOpts), "\n") {
			if !yield("  " + str) {
				return
			}
		}
	})...)

	return yaml.FootComment(comments...)
}
