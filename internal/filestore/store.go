// Package filestore persists the opaque binary artifacts the editor produces:
// uploaded thesis source files and synthesized speech audio. Backends are
// registered by name and selected through config, the same way ai providers
// are.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/outlinedev/outline/internal/config"
)

type Store interface {
	Type() string
	// URL renders a client-fetchable address for a stored key. Local stores
	// route through the API's file endpoint rooted at baseURL; s3 stores
	// return the bucket URL directly.
	URL(key, baseURL string) string
	Save(ctx context.Context, key string, r ReadSeekCloser, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// ReadSeekCloser is what Save needs from an upload: multipart file headers
// and os.File both satisfy it.
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

type Factory func(args interface{}) (Store, error)

var backends = map[string]Factory{}

// Register is called from backend init funcs; later registrations under the
// same name win.
func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	backends[key] = factory
}

func New(cfg config.FileStoreConfig) (Store, error) {
	key := strings.ToLower(strings.TrimSpace(cfg.Type))
	if key == "" {
		return nil, fmt.Errorf("file_store.type is required")
	}
	factory, ok := backends[key]
	if !ok {
		return nil, fmt.Errorf("unsupported file store type: %s", cfg.Type)
	}
	return factory(cfg.Data)
}

// decodeConfig round-trips the untyped config blob through JSON into the
// backend's own config struct.
func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("store config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode store config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode store config: %w", err)
	}
	return nil
}
