package local

import (
	"github.com/bornholm/collagio/pkg/blob"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

const Type blob.Type = "local"

func init() {
	blob.Register(Type, CreateStorageFromOptions)
}

type Options struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

func CreateStorageFromOptions(options any) (blob.Storage, error) {
	opts := Options{}

	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' storage options", Type)
	}

	if opts.Dir == "" {
		return nil, errors.Errorf("missing 'dir' option for '%s' storage", Type)
	}

	return NewStorage(opts.Dir), nil
}
