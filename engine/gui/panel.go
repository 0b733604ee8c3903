// Package gui provides the keyboard-driven debug panel that toggles the render settings.
package gui

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"go.uber.org/zap"
)

// Asteroid count slider bounds.
const (
	MinAsteroidCount  = 1000
	MaxAsteroidCount  = 10000
	AsteroidCountStep = 1000
)

// Settings holds the values the panel edits. They are read once per frame.
type Settings struct {
	// UseRenderBundles selects replaying the pre-recorded bundle instead of encoding draws directly.
	UseRenderBundles bool
	// AsteroidCount is the number of asteroids drawn after the planet.
	AsteroidCount int
}

// DefaultSettings returns render bundles enabled and no asteroids. The host replaces the count with
// the feed's first-date object count.
func DefaultSettings() Settings {
	return Settings{UseRenderBundles: true}
}

// Field identifies which setting a change touched.
type Field int

const (
	FieldUseRenderBundles Field = iota
	FieldAsteroidCount
)

func (f Field) String() string {
	switch f {
	case FieldUseRenderBundles:
		return "useRenderBundles"
	case FieldAsteroidCount:
		return "asteroidCount"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

type panel struct {
	mu *sync.Mutex

	settings Settings
	onChange []func(Settings, Field)
	logger   *zap.Logger
}

// Panel is a minimal settings panel driven by key presses.
//
// Key bindings:
//   - B: toggle useRenderBundles
//   - Up / Down: step asteroidCount by AsteroidCountStep
type Panel interface {
	// Settings returns a copy of the current settings.
	Settings() Settings

	// SetUseRenderBundles sets the bundle toggle, notifying listeners when it changes.
	//
	// Parameters:
	//   - enabled: the new toggle value
	SetUseRenderBundles(enabled bool)

	// SetAsteroidCount clamps count to [MinAsteroidCount, MaxAsteroidCount], snaps it to the nearest
	// AsteroidCountStep and stores it, notifying listeners when it changes.
	//
	// Parameters:
	//   - count: the requested count
	//
	// Returns:
	//   - int: the stored count
	SetAsteroidCount(count int) int

	// HandleKey applies the key binding for keyCode.
	//
	// Parameters:
	//   - keyCode: a key code from the common package
	//
	// Returns:
	//   - bool: true if the key is bound
	HandleKey(keyCode uint32) bool

	// OnChange registers a listener called after a setting changes, outside the panel lock.
	//
	// Parameters:
	//   - listener: receives the new settings and the field that changed
	OnChange(listener func(Settings, Field))

	// String formats the settings as a one-line readout.
	String() string
}

var _ Panel = &panel{}

// NewPanel creates a Panel starting from DefaultSettings unless WithSettings overrides it.
// The initial count is kept as given; only later slider changes are clamped and snapped.
//
// Parameters:
//   - options: functional options such as WithSettings and WithLogger
//
// Returns:
//   - Panel: the new panel
func NewPanel(options ...PanelBuilderOption) Panel {
	p := &panel{
		mu:       &sync.Mutex{},
		settings: DefaultSettings(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// SnapAsteroidCount clamps count to the slider range and rounds it to the nearest step.
//
// Parameters:
//   - count: the requested count
//
// Returns:
//   - int: the slider value closest to count
func SnapAsteroidCount(count int) int {
	count = common.Clamp(count, MinAsteroidCount, MaxAsteroidCount)
	return MinAsteroidCount + (count-MinAsteroidCount+AsteroidCountStep/2)/AsteroidCountStep*AsteroidCountStep
}

func (p *panel) Settings() Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

func (p *panel) SetUseRenderBundles(enabled bool) {
	p.mu.Lock()
	if p.settings.UseRenderBundles == enabled {
		p.mu.Unlock()
		return
	}
	p.settings.UseRenderBundles = enabled
	s := p.settings
	p.mu.Unlock()

	p.notify(s, FieldUseRenderBundles)
}

func (p *panel) SetAsteroidCount(count int) int {
	count = SnapAsteroidCount(count)

	p.mu.Lock()
	if p.settings.AsteroidCount == count {
		p.mu.Unlock()
		return count
	}
	p.settings.AsteroidCount = count
	s := p.settings
	p.mu.Unlock()

	p.notify(s, FieldAsteroidCount)
	return count
}

func (p *panel) HandleKey(keyCode uint32) bool {
	switch keyCode {
	case common.KeyB:
		p.SetUseRenderBundles(!p.Settings().UseRenderBundles)
	case common.KeyUp:
		p.SetAsteroidCount(p.Settings().AsteroidCount + AsteroidCountStep)
	case common.KeyDown:
		p.SetAsteroidCount(p.Settings().AsteroidCount - AsteroidCountStep)
	default:
		return false
	}
	return true
}

func (p *panel) OnChange(listener func(Settings, Field)) {
	if listener == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = append(p.onChange, listener)
}

func (p *panel) String() string {
	s := p.Settings()
	return fmt.Sprintf("bundles: %t | asteroids: %d", s.UseRenderBundles, s.AsteroidCount)
}

func (p *panel) notify(s Settings, f Field) {
	p.logger.Debug("setting changed",
		zap.Stringer("field", f),
		zap.Bool("useRenderBundles", s.UseRenderBundles),
		zap.Int("asteroidCount", s.AsteroidCount),
	)

	p.mu.Lock()
	listeners := slices.Clone(p.onChange)
	p.mu.Unlock()

	for _, l := range listeners {
		l(s, f)
	}
}
