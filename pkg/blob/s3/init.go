package s3

import (
	"context"

	"github.com/bornholm/collagio/pkg/blob"
	"github.com/go-viper/mapstructure/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const Type blob.Type = "s3"

func init() {
	blob.Register(Type, CreateStorageFromOptions)
}

type Options struct {
	Endpoint        string `mapstructure:"endpoint" yaml:"endpoint"`
	Region          string `mapstructure:"region" yaml:"region"`
	Bucket          string `mapstructure:"bucket" yaml:"bucket"`
	AccessKeyID     string `mapstructure:"accessKeyId" yaml:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey" yaml:"secretAccessKey"`
	UseSSL          bool   `mapstructure:"useSsl" yaml:"useSsl"`
	CreateBucket    bool   `mapstructure:"createBucket" yaml:"createBucket"`
}

func CreateStorageFromOptions(options any) (blob.Storage, error) {
	opts := Options{}

	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' storage options", Type)
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create client for endpoint '%s'", opts.Endpoint)
	}

	if opts.CreateBucket {
		ctx := context.Background()

		exists, err := client.BucketExists(ctx, opts.Bucket)
		if err != nil {
			return nil, errors.Wrapf(err, "could not check bucket '%s'", opts.Bucket)
		}

		if !exists {
			if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
				return nil, errors.Wrapf(err, "could not create bucket '%s'", opts.Bucket)
			}
		}
	}

	return NewStorage(client, opts.Bucket), nil
}
