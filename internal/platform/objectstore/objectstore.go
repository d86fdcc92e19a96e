// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objectstore serves van photos from S3-compatible storage.

Van records keep an image reference. A reference with a URL scheme is
already public and passes through unchanged; anything else is an object key
in the photo bucket and is exchanged for a short-lived presigned GET URL.
*/
package objectstore

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Provider is the storage contract behind the [Resolver].
type Provider interface {
	CheckBucket(ctx context.Context) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

// Options configures the MinIO client.
type Options struct {
	Endpoint        string
	BucketName      string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

type minioProvider struct {
	client     *minio.Client
	bucketName string
	logger     *slog.Logger
}

// NewMinIOProvider creates a [Provider] speaking the S3 protocol.
func NewMinIOProvider(opts Options, logger *slog.Logger) (Provider, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: failed to create minio client: %w", err)
	}

	return &minioProvider{
		client:     client,
		bucketName: opts.BucketName,
		logger:     logger,
	}, nil
}

// CheckBucket makes sure the photo bucket exists, creating it when missing.
func (provider *minioProvider) CheckBucket(ctx context.Context) error {
	exists, err := provider.client.BucketExists(ctx, provider.bucketName)
	if err != nil {
		return fmt.Errorf("objectstore: failed to check bucket existence: %w", err)
	}
	if !exists {
		provider.logger.Info("objectstore_bucket_creating", slog.String("bucket", provider.bucketName))
		if err := provider.client.MakeBucket(ctx, provider.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("objectstore: failed to create bucket: %w", err)
		}
	}
	return nil
}

func (provider *minioProvider) GeneratePresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	presignedURL, err := provider.client.PresignedGetObject(ctx, provider.bucketName, objectKey, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("objectstore: failed to generate presigned url: %w", err)
	}
	return presignedURL.String(), nil
}

// # Image Resolution

// Resolver turns stored image references into URLs a browser can load.
//
// A nil provider disables presigning; object keys are then returned as-is.
type Resolver struct {
	provider Provider
	expiry   time.Duration
}

// NewResolver builds a [Resolver]. provider may be nil.
func NewResolver(provider Provider, expiry time.Duration) *Resolver {
	return &Resolver{provider: provider, expiry: expiry}
}

// ImageURL resolves ref. Absolute URLs and empty references pass through.
func (resolver *Resolver) ImageURL(ctx context.Context, ref string) (string, error) {
	if ref == "" || resolver == nil || resolver.provider == nil || isAbsolute(ref) {
		return ref, nil
	}
	return resolver.provider.GeneratePresignedURL(ctx, strings.TrimPrefix(ref, "/"), resolver.expiry)
}

func isAbsolute(ref string) bool {
	parsed, err := url.Parse(ref)
	return err == nil && parsed.Scheme != ""
}
