// Command orbit renders a textured planet circled by an asteroid ring whose size follows today's
// near-earth-object feed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine"
	"github.com/Carmen-Shannon/oxy-orbit/engine/config"
	"github.com/Carmen-Shannon/oxy-orbit/engine/logger"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// app holds what every route needs. It lives on the render thread.
type app struct {
	ctx      context.Context
	cfg      config.Config
	logger   *zap.Logger
	window   window.Window
	renderer renderer.Renderer
	engine   engine.Engine
	profiler *profiler.Profiler

	// resize replaces the default surface resize once a scene takes over.
	resize func(width, height int)
	// title, when set, is appended to the profiler readout in the window title.
	title   func() string
	release []func()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "orbit: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.FromArgs("orbit", args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	route, err := resolveRoute(cfg.Scene)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics, err := profiler.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	if cfg.Metrics.Addr != "" {
		srv := profiler.NewServer(cfg.Metrics.Addr, reg)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		log.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	presentMode := renderer.PresentModeVSync
	if !cfg.Renderer.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
	)
	if err != nil {
		_ = win.Close()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Release()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &app{
		ctx:      ctx,
		cfg:      cfg,
		logger:   log,
		window:   win,
		renderer: r,
	}
	a.profiler = profiler.NewProfiler(
		profiler.WithLogger(log),
		profiler.WithMetrics(metrics),
		profiler.WithReportCallback(a.updateTitle),
	)

	a.engine, err = engine.NewEngine(win, engine.WithLogger(log), engine.WithProfiler(a.profiler))
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	a.engine.OnClose(cancel)
	a.engine.OnResize(func(width, height int) {
		if a.resize != nil {
			a.resize(width, height)
			return
		}
		if err := r.Resize(width, height); err != nil {
			log.Warn("resize failed", zap.Int("width", width), zap.Int("height", height), zap.Error(err))
		}
	})

	log.Info("starting", zap.String("scene", route), zap.String("feed", cfg.Feed.URL))
	routes[route](a)
	a.engine.Run()

	for i := len(a.release) - 1; i >= 0; i-- {
		a.release[i]()
	}
	r.Release()
	// A user close only ends the message loop; Quit destroys the window and terminates GLFW.
	a.engine.Quit()
	log.Info("stopped")
	return nil
}

func (a *app) updateTitle(stats profiler.Stats) {
	title := a.cfg.Window.Title + " | " + stats.String()
	if a.title != nil {
		title += " | " + a.title()
	}
	a.window.SetTitle(title)
}
