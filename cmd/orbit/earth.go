package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine"
	"github.com/Carmen-Shannon/oxy-orbit/engine/feed"
	"github.com/Carmen-Shannon/oxy-orbit/engine/gui"
	"github.com/Carmen-Shannon/oxy-orbit/engine/loader"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbit/engine/scene"
	"go.uber.org/zap"
)

// idleFrameWait paces the frame loop while the window is minimized.
const idleFrameWait = 50 * time.Millisecond

// startEarth fetches the feed and textures off the render thread, then builds the scene on it.
func startEarth(a *app) {
	log := a.logger.Named("earth")

	go func() {
		count, textures, err := loadEarth(a.ctx, a)
		if err != nil {
			log.Error("earth scene not started", zap.Error(err))
			return
		}
		a.engine.Post(func() {
			if !a.window.IsRunning() {
				return
			}
			if err := buildEarth(a, count, textures); err != nil {
				log.Error("earth scene not started", zap.Error(err))
			}
		})
	}()
}

// loadEarth returns the first date's object count and the encoded earth and moon textures.
func loadEarth(ctx context.Context, a *app) (int, scene.Textures, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Feed.Timeout)
	defer cancel()

	client := feed.NewClient(
		feed.WithURL(a.cfg.Feed.URL),
		feed.WithHTTPClient(&http.Client{Timeout: a.cfg.Feed.Timeout}),
		feed.WithLogger(a.logger),
	)
	f, err := client.Fetch(ctx)
	if err != nil {
		return 0, scene.Textures{}, err
	}

	l := loader.NewLoader(a.cfg.Assets.BasePath, loader.WithLogger(a.logger))
	load := func(name, rel string) (*common.ImportedTexture, error) {
		tex, err := l.Load(ctx, name, rel)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s texture: %w", name, err)
		}
		return tex, nil
	}
	earth, err := load("earth", a.cfg.Assets.Earth)
	if err != nil {
		return 0, scene.Textures{}, err
	}
	moon, err := load("moon", a.cfg.Assets.Moon)
	if err != nil {
		return 0, scene.Textures{}, err
	}

	return f.FirstDateCount(), scene.Textures{Earth: earth, Moon: moon}, nil
}

// buildEarth runs on the render thread.
func buildEarth(a *app, count int, textures scene.Textures) error {
	settings := gui.Settings{UseRenderBundles: a.cfg.Settings.UseRenderBundles, AsteroidCount: count}

	sc, err := scene.New(a.renderer, textures, a.window.Width(), a.window.Height(),
		scene.WithSettings(settings),
		scene.WithSeed(a.cfg.Settings.Seed),
		scene.WithLogger(a.logger),
		scene.WithProfiler(a.profiler),
	)
	if err != nil {
		return err
	}
	a.release = append(a.release, sc.Release)

	log := a.logger.Named("earth")
	panel := gui.NewPanel(gui.WithSettings(settings), gui.WithLogger(a.logger))
	panel.OnChange(func(s gui.Settings, field gui.Field) {
		switch field {
		case gui.FieldUseRenderBundles:
			sc.SetUseRenderBundles(s.UseRenderBundles)
		case gui.FieldAsteroidCount:
			if err := sc.SetAsteroidCount(s.AsteroidCount); err != nil {
				log.Error("asteroid count not applied", zap.Int("count", s.AsteroidCount), zap.Error(err))
			}
		}
	})

	a.title = panel.String
	a.resize = func(width, height int) {
		if err := sc.Resize(width, height); err != nil {
			log.Warn("resize failed", zap.Error(err))
		}
	}
	a.engine.OnKeyDown(func(keyCode uint32) {
		if !panel.HandleKey(keyCode) {
			sc.HandleKey(keyCode)
		}
	})

	loop := engine.NewFrameLoop(a.engine, sc.Frame,
		engine.WithLoopLogger(a.logger),
		engine.WithLoopProfiler(a.profiler),
		engine.WithIdleOn(renderer.ErrSurfaceNotConfigured, idleFrameWait),
	)
	a.engine.OnClose(loop.Stop)
	loop.Start()

	log.Info("earth scene started", zap.Int("asteroids", count), zap.Bool("bundles", settings.UseRenderBundles))
	return nil
}
