// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package storage provides a managed client for the S3-compatible object store
(DigitalOcean Spaces) holding listing images.

Core Responsibilities:

  - Connectivity: Builds a path-style client from the endpoint URL.
  - Publication: Uploads objects with a public-read ACL and long-lived caching.
  - Addressing: Derives the public URL, preferring the CDN origin when configured.
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrNotConfigured is returned when object storage settings are incomplete.
var ErrNotConfigured = errors.New("storage_not_configured")

const (
	// headerACL is forwarded verbatim by the client as an x-amz header.
	headerACL = "x-amz-acl"
	aclPublic = "public-read"

	// Object keys embed a UUID, so an object never changes once written.
	cacheControl = "public, max-age=31536000, immutable"
)

// Options configures the object store client.
type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string

	// CDNURL, when set, is the origin of public object URLs.
	CDNURL string
}

// Client uploads public objects to a single bucket.
type Client struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

/*
NewClient builds a path-style client for an S3-compatible endpoint.

Parameters:
  - options: Options
  - logger: *slog.Logger

Returns:
  - *Client: Ready-to-use client
  - error: ErrNotConfigured or an endpoint parsing error
*/
func NewClient(options Options, logger *slog.Logger) (*Client, error) {
	if options.Bucket == "" || options.Endpoint == "" || options.AccessKey == "" || options.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	// 1. Split the endpoint URL into host and TLS flag
	endpoint, err := url.Parse(options.Endpoint)
	if err != nil || endpoint.Host == "" {
		return nil, fmt.Errorf("storage: invalid endpoint %q", options.Endpoint)
	}
	secure := endpoint.Scheme != "http"

	// 2. Path-style lookup avoids wildcard certificate issues on bucket subdomains
	client, err := minio.New(endpoint.Host, &minio.Options{
		Creds:        credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Secure:       secure,
		Region:       options.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: client init failed: %w", err)
	}

	// 3. Public URL origin
	publicBase := strings.TrimRight(options.CDNURL, "/")
	if publicBase == "" {
		publicBase = PathStyleBase(endpoint.Scheme+"://"+endpoint.Host, options.Bucket)
	}

	logger.Info("storage_client_ready",
		slog.String("endpoint", endpoint.Host),
		slog.String("bucket", options.Bucket),
		slog.Bool("cdn", options.CDNURL != ""),
	)

	return &Client{client: client, bucket: options.Bucket, publicBase: publicBase}, nil
}

// Put uploads body under key as a public, immutable object.
func (storage *Client) Put(context context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := storage.client.PutObject(context, storage.bucket, key, body, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: cacheControl,
		UserMetadata: map[string]string{headerACL: aclPublic},
	})
	if err != nil {
		return fmt.Errorf("storage_put_failed: %w", err)
	}
	return nil
}

// PublicURL returns the address browsers use to fetch key.
func (storage *Client) PublicURL(key string) string {
	return JoinURL(storage.publicBase, key)
}

// PathStyleBase is the public origin of a bucket without a CDN.
func PathStyleBase(endpoint, bucket string) string {
	return strings.TrimRight(endpoint, "/") + "/" + bucket
}

// JoinURL appends an object key to an origin, escaping each path segment.
func JoinURL(base, key string) string {
	segments := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
