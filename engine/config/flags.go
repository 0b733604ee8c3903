package config

import (
	"flag"
	"fmt"
)

// FromArgs parses args, loads the file named by -config over Default, then applies every flag that
// was set explicitly. Flags therefore win over the file, and the file wins over the defaults.
//
// Parameters:
//   - name: the program name used in usage output
//   - args: the command-line arguments without the program name
//
// Returns:
//   - Config: the merged configuration
//   - error: a flag, file or validation error; flag.ErrHelp when -h was given
func FromArgs(name string, args []string) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", "", "path to a YAML config file")
	overrides := bindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := Load(*path)
	if err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply(&cfg)
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// bindFlags registers one flag per overridable field and returns the setters keyed by flag name.
func bindFlags(fs *flag.FlagSet) map[string]func(*Config) {
	d := Default()
	overrides := make(map[string]func(*Config))

	str := func(name, value, usage string, field func(*Config) *string) {
		v := fs.String(name, value, usage)
		overrides[name] = func(c *Config) { *field(c) = *v }
	}
	num := func(name string, value int, usage string, field func(*Config) *int) {
		v := fs.Int(name, value, usage)
		overrides[name] = func(c *Config) { *field(c) = *v }
	}
	boolean := func(name string, value bool, usage string, field func(*Config) *bool) {
		v := fs.Bool(name, value, usage)
		overrides[name] = func(c *Config) { *field(c) = *v }
	}

	str("scene", d.Scene, "scene route to open (empty opens earth)", func(c *Config) *string { return &c.Scene })
	str("window.title", d.Window.Title, "window title", func(c *Config) *string { return &c.Window.Title })
	num("window.width", d.Window.Width, "window width in pixels", func(c *Config) *int { return &c.Window.Width })
	num("window.height", d.Window.Height, "window height in pixels", func(c *Config) *int { return &c.Window.Height })
	boolean("renderer.vsync", d.Renderer.VSync, "present with vsync", func(c *Config) *bool { return &c.Renderer.VSync })
	num("renderer.msaa", d.Renderer.MSAA, "MSAA sample count (1 or 4)", func(c *Config) *int { return &c.Renderer.MSAA })
	boolean("renderer.software", d.Renderer.ForceSoftware, "force the fallback adapter", func(c *Config) *bool { return &c.Renderer.ForceSoftware })
	str("feed.url", d.Feed.URL, "near-earth-object feed URL", func(c *Config) *string { return &c.Feed.URL })
	str("assets.base-path", d.Assets.BasePath, "texture directory or http(s) URL prefix", func(c *Config) *string { return &c.Assets.BasePath })
	boolean("settings.use-render-bundles", d.Settings.UseRenderBundles, "start with render bundles enabled", func(c *Config) *bool { return &c.Settings.UseRenderBundles })
	str("metrics.addr", d.Metrics.Addr, "Prometheus listen address (empty disables)", func(c *Config) *string { return &c.Metrics.Addr })
	str("log.level", d.Log.Level, "log level: debug, info, warn, error", func(c *Config) *string { return &c.Log.Level })
	str("log.encoding", d.Log.Encoding, "log encoding: console or json", func(c *Config) *string { return &c.Log.Encoding })

	timeout := fs.Duration("feed.timeout", d.Feed.Timeout, "feed request timeout")
	overrides["feed.timeout"] = func(c *Config) { c.Feed.Timeout = *timeout }
	seed := fs.Uint64("settings.seed", d.Settings.Seed, "random seed for meshes and placement (0 is unseeded)")
	overrides["settings.seed"] = func(c *Config) { c.Settings.Seed = *seed }

	return overrides
}
