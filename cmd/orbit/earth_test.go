package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const earthFeed = `{"element_count": 3, "near_earth_objects": {
  "2024-06-02": [{"id": "3"}],
  "2024-06-01": [{"id": "1"}, {"id": "2"}]
}}`

func testApp(t *testing.T, feedURL string, timeout time.Duration) *app {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "earth.jpg"), []byte("earth"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "moon.jpg"), []byte("moon"), 0o644))

	cfg := config.Default()
	cfg.Feed.URL = feedURL
	cfg.Feed.Timeout = timeout
	cfg.Assets.BasePath = dir
	return &app{ctx: context.Background(), cfg: cfg, logger: zap.NewNop()}
}

func TestLoadEarth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(earthFeed))
	}))
	defer srv.Close()

	a := testApp(t, srv.URL, time.Second)
	count, textures, err := loadEarth(a.ctx, a)
	require.NoError(t, err)

	assert.Equal(t, 2, count, "first date by key order")
	require.NotNil(t, textures.Earth)
	require.NotNil(t, textures.Moon)
	assert.Equal(t, []byte("earth"), textures.Earth.Data)
	assert.Equal(t, []byte("moon"), textures.Moon.Data)
}

func TestLoadEarth_FeedTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	a := testApp(t, srv.URL, 50*time.Millisecond)
	start := time.Now()
	_, _, err := loadEarth(a.ctx, a)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLoadEarth_MissingTexture(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(earthFeed))
	}))
	defer srv.Close()

	a := testApp(t, srv.URL, time.Second)
	a.cfg.Assets.Moon = "img/missing.jpg"
	_, _, err := loadEarth(a.ctx, a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "moon texture")
}
