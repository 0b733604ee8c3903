package loader

import (
	"net/http"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"go.uber.org/zap"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithHTTPClient is an option builder that sets the HTTP client used by the HTTP backend.
//
// Parameters:
//   - client: the HTTP client
//
// Returns:
//   - LoaderBuilderOption: a function that applies the client option to a loader
func WithHTTPClient(client *http.Client) LoaderBuilderOption {
	return func(l *loader) {
		if client != nil {
			l.httpClient = client
		}
	}
}

// WithMaxBytes is an option builder that caps the size of a single texture.
//
// Parameters:
//   - n: the byte limit, ignored when not positive
//
// Returns:
//   - LoaderBuilderOption: a function that applies the limit option to a loader
func WithMaxBytes(n int64) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

// WithLogger is an option builder that sets the logger used by the Loader.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *zap.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger.Named("loader")
		}
	}
}

// WithTexture is an option builder that pre-populates the texture cache.
//
// Parameters:
//   - key: the cache key for the texture
//   - tex: the texture to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture option to a loader
func WithTexture(key string, tex *common.ImportedTexture) LoaderBuilderOption {
	return func(l *loader) {
		l.textureCache[key] = tex
	}
}
