package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// loaderBackend defines the generic interface for reading encoded texture bytes.
// Concrete implementations (fileLoaderBackend, httpLoaderBackend) handle source-specific details.
type loaderBackend interface {
	// Fetch reads the full contents at relPath under the backend's base.
	//
	// Parameters:
	//   - ctx: cancels the read
	//   - relPath: the slash-separated path relative to the base
	//
	// Returns:
	//   - []byte: the encoded bytes
	//   - error: error if reading fails or the body exceeds the byte limit
	Fetch(ctx context.Context, relPath string) ([]byte, error)

	// Resolve returns the absolute location of relPath, used for logs and error messages.
	Resolve(relPath string) string
}

type fileLoaderBackend struct {
	root     string
	maxBytes int64
}

var _ loaderBackend = &fileLoaderBackend{}

func newFileLoaderBackend(root string, maxBytes int64) *fileLoaderBackend {
	return &fileLoaderBackend{root: root, maxBytes: maxBytes}
}

func (b *fileLoaderBackend) Resolve(relPath string) string {
	return filepath.Join(b.root, filepath.FromSlash(relPath))
}

func (b *fileLoaderBackend) Fetch(ctx context.Context, relPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(b.Resolve(relPath))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readLimited(f, b.maxBytes)
}

type httpLoaderBackend struct {
	base     string
	client   *http.Client
	maxBytes int64
}

var _ loaderBackend = &httpLoaderBackend{}

func newHTTPLoaderBackend(base string, client *http.Client, maxBytes int64) *httpLoaderBackend {
	return &httpLoaderBackend{base: strings.TrimRight(base, "/"), client: client, maxBytes: maxBytes}
}

func (b *httpLoaderBackend) Resolve(relPath string) string {
	u, err := url.Parse(b.base)
	if err != nil {
		return b.base + "/" + strings.TrimLeft(relPath, "/")
	}
	u.Path = path.Join(u.Path, relPath)
	return u.String()
}

func (b *httpLoaderBackend) Fetch(ctx context.Context, relPath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.Resolve(relPath), nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return readLimited(resp.Body, b.maxBytes)
}

// readLimited reads r fully, failing with ErrTooLarge once more than maxBytes arrive.
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}
