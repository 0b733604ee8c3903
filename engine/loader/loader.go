// Package loader fetches encoded texture images from a local directory or an http(s) URL prefix
// and caches them by name.
package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"go.uber.org/zap"
)

// LoaderBackendType identifies where texture bytes are read from.
type LoaderBackendType int

const (
	// BackendTypeFile reads textures from a local directory.
	BackendTypeFile LoaderBackendType = iota
	// BackendTypeHTTP fetches textures from an http(s) URL prefix.
	BackendTypeHTTP
)

// DefaultMaxBytes caps the size of a single texture body.
const DefaultMaxBytes = 64 << 20

// ErrTooLarge is returned when a texture exceeds the configured byte limit.
var ErrTooLarge = errors.New("texture exceeds size limit")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	basePath     string
	backendType  LoaderBackendType
	backend      loaderBackend
	httpClient   *http.Client
	maxBytes     int64
	logger       *zap.Logger
	textureCache map[string]*common.ImportedTexture
}

// Loader defines the public-facing interface for loading and caching encoded textures.
// It abstracts the source (directory or URL) behind a backend selected from the base path.
type Loader interface {
	// Load fetches the texture at relPath under the base path and caches it by name.
	// If a texture with the same name is already cached, the cached version is returned.
	// The returned texture holds encoded bytes; call Decode for RGBA pixels.
	//
	// Parameters:
	//   - ctx: cancels the fetch
	//   - name: the cache key, e.g. "earth"
	//   - relPath: the path relative to the base, e.g. "img/earth.jpg"
	//
	// Returns:
	//   - *common.ImportedTexture: the loaded texture
	//   - error: error if the source cannot be read
	Load(ctx context.Context, name, relPath string) (*common.ImportedTexture, error)

	// Get retrieves a cached texture by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *common.ImportedTexture: the cached texture or nil
	Get(name string) *common.ImportedTexture

	// Textures returns a copy of the texture cache.
	//
	// Returns:
	//   - map[string]*common.ImportedTexture: all cached textures keyed by name
	Textures() map[string]*common.ImportedTexture

	// BackendType reports which backend the base path selected.
	BackendType() LoaderBackendType
}

var _ Loader = &loader{}

// BackendTypeFor picks BackendTypeHTTP for http:// and https:// prefixes and BackendTypeFile otherwise.
//
// Parameters:
//   - basePath: a directory or URL prefix
//
// Returns:
//   - LoaderBackendType: the matching backend type
func BackendTypeFor(basePath string) LoaderBackendType {
	lower := strings.ToLower(basePath)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return BackendTypeHTTP
	}
	return BackendTypeFile
}

// NewLoader creates a new Loader for basePath with options applied.
// The backend is chosen by BackendTypeFor.
//
// Parameters:
//   - basePath: a local directory or an http(s) URL prefix
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(basePath string, options ...LoaderBuilderOption) Loader {
	l := &loader{
		basePath:     basePath,
		backendType:  BackendTypeFor(basePath),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		maxBytes:     DefaultMaxBytes,
		logger:       zap.NewNop(),
		textureCache: make(map[string]*common.ImportedTexture),
	}

	for _, option := range options {
		option(l)
	}

	switch l.backendType {
	case BackendTypeHTTP:
		l.backend = newHTTPLoaderBackend(basePath, l.httpClient, l.maxBytes)
	default:
		l.backend = newFileLoaderBackend(basePath, l.maxBytes)
	}
	return l
}

func (l *loader) Load(ctx context.Context, name, relPath string) (*common.ImportedTexture, error) {
	l.mu.RLock()
	if cached, ok := l.textureCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	source := l.backend.Resolve(relPath)
	start := time.Now()
	data, err := l.backend.Fetch(ctx, relPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s from %s: %w", name, source, err)
	}

	tex := &common.ImportedTexture{
		Name:   name,
		Source: source,
		Data:   data,
	}
	l.logger.Debug("texture loaded",
		zap.String("name", name),
		zap.String("source", source),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)),
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.textureCache[name]; ok {
		return cached, nil
	}
	l.textureCache[name] = tex
	return tex, nil
}

func (l *loader) Get(name string) *common.ImportedTexture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.textureCache[name]
}

func (l *loader) Textures() map[string]*common.ImportedTexture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]*common.ImportedTexture, len(l.textureCache))
	for k, v := range l.textureCache {
		out[k] = v
	}
	return out
}

func (l *loader) BackendType() LoaderBackendType {
	return l.backendType
}
