// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package mirror copies directory state to AWS: the error log to an S3
// object and added entries to a DynamoDB table. The directory works the
// same without it.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hashicorp/go-hclog"
)

const (
	DefaultErrorLogKey = "error-log.txt"
	DefaultTable       = "IPAliases"
)

// ErrNoBucket is returned by the error log operations when no bucket is set.
var ErrNoBucket = errors.New("no S3 bucket configured")

type Config struct {
	Region      string
	Endpoint    string
	Bucket      string
	ErrorLogKey string
	Table       string
}

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type objectGetter interface {
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type itemPutter interface {
	PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type Mirror struct {
	cfg      Config
	uploader uploader
	objects  objectGetter
	items    itemPutter
	logger   hclog.Logger
}

// New loads the AWS configuration from the usual environment, shared
// config and instance sources, then builds the S3 and DynamoDB clients.
func New(ctx context.Context, cfg Config, logger hclog.Logger) (*Mirror, error) {
	var configOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		configOpts = append(configOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		configOpts = append(configOpts, config.WithBaseEndpoint(cfg.Endpoint))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if awsCfg.Region == "" {
		return nil, fmt.Errorf("AWS region not found")
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// local S3 stand-ins rarely support virtual-hosted buckets
		o.UsePathStyle = cfg.Endpoint != ""
	})
	return newMirror(cfg, manager.NewUploader(s3Client), s3Client, dynamodb.NewFromConfig(awsCfg), logger), nil
}

func newMirror(cfg Config, up uploader, objects objectGetter, items itemPutter, logger hclog.Logger) *Mirror {
	if cfg.ErrorLogKey == "" {
		cfg.ErrorLogKey = DefaultErrorLogKey
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Mirror{
		cfg:      cfg,
		uploader: up,
		objects:  objects,
		items:    items,
		logger:   logger.Named("mirror"),
	}
}

// UploadErrorLog uploads the file at path to the configured bucket and key.
func (m *Mirror) UploadErrorLog(ctx context.Context, path string) error {
	if m.cfg.Bucket == "" {
		return ErrNoBucket
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for reading: %w", path, err)
	}
	defer f.Close()

	out, err := m.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.cfg.Bucket),
		Key:         aws.String(m.cfg.ErrorLogKey),
		Body:        f,
		ContentType: aws.String("text/plain"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload error log: %w", err)
	}

	m.logger.Info("error log uploaded", "bucket", m.cfg.Bucket, "key", m.cfg.ErrorLogKey, "location", out.Location)
	return nil
}

// FetchErrorLog copies the uploaded error log to w.
func (m *Mirror) FetchErrorLog(ctx context.Context, w io.Writer) error {
	if m.cfg.Bucket == "" {
		return ErrNoBucket
	}

	out, err := m.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.cfg.Bucket),
		Key:    aws.String(m.cfg.ErrorLogKey),
	})
	if err != nil {
		return fmt.Errorf("failed to retrieve error log: %w", err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("failed to read error log: %w", err)
	}
	return nil
}

// PutEntry writes one address/alias pair to the table, keyed by IP.
func (m *Mirror) PutEntry(ctx context.Context, address, alias string) error {
	_, err := m.items.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(m.cfg.Table),
		Item: map[string]types.AttributeValue{
			"IP":    &types.AttributeValueMemberS{Value: address},
			"Alias": &types.AttributeValueMemberS{Value: alias},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to add entry to DynamoDB: %w", err)
	}

	m.logger.Debug("entry mirrored", "table", m.cfg.Table, "ip", address, "alias", alias)
	return nil
}
