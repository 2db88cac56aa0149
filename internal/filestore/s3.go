package filestore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	commons3 "github.com/xxxsen/common/s3"
)

type s3Config struct {
	Endpoint  string `json:"endpoint"`
	SecretID  string `json:"secret_id"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Prefix    string `json:"prefix"`
	PublicURL string `json:"public_url"`
	UseSSL    bool   `json:"use_ssl"`
}

// s3Store parks uploads in an S3-compatible bucket and hands clients direct
// object URLs. There is no server-side read path: audio and source files are
// fetched straight from the bucket.
type s3Store struct {
	client *commons3.S3Client
	cfg    s3Config
}

func init() {
	Register("s3", newS3Store)
}

func newS3Store(args interface{}) (Store, error) {
	var cfg s3Config
	if err := decodeConfig(args, &cfg); err != nil {
		return nil, err
	}
	if cfg.Endpoint == "" || cfg.Bucket == "" || cfg.SecretID == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("s3 endpoint/bucket/secret_id/secret_key are required")
	}
	if cfg.Region == "" {
		cfg.Region = "cn"
	}
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")
	client, err := commons3.New(
		commons3.WithEndpoint(cfg.Endpoint),
		commons3.WithSecret(cfg.SecretID, cfg.SecretKey),
		commons3.WithBucket(cfg.Bucket),
		commons3.WithRegion(cfg.Region),
		commons3.WithSSL(cfg.UseSSL),
	)
	if err != nil {
		return nil, err
	}
	return &s3Store{client: client, cfg: cfg}, nil
}

func (s *s3Store) Type() string {
	return "s3"
}

func (s *s3Store) objectKey(key string) string {
	if s.cfg.Prefix != "" {
		key = path.Join(s.cfg.Prefix, key)
	}
	return strings.TrimPrefix(key, "/")
}

func (s *s3Store) URL(key, baseURL string) string {
	_ = baseURL
	base := strings.TrimSuffix(s.cfg.PublicURL, "/")
	if base == "" {
		base = s.bucketBaseURL()
	}
	return strings.TrimSuffix(base, "/") + "/" + s.objectKey(key)
}

func (s *s3Store) Save(ctx context.Context, key string, r ReadSeekCloser, size int64) error {
	if key == "" {
		return fmt.Errorf("file key is required")
	}
	_, err := s.client.Upload(ctx, s.objectKey(key), r, size)
	return err
}

func (s *s3Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	_ = ctx
	_ = key
	return nil, fmt.Errorf("s3 store does not support open, serve via URL instead")
}

func (s *s3Store) bucketBaseURL() string {
	ep := s.cfg.Endpoint
	if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		scheme := "http"
		if s.cfg.UseSSL {
			scheme = "https"
		}
		ep = scheme + "://" + ep
	}
	u, err := url.Parse(ep)
	if err != nil {
		return strings.TrimSuffix(ep, "/") + "/" + s.cfg.Bucket
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + s.cfg.Bucket
	return u.String()
}
