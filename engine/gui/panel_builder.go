package gui

import "go.uber.org/zap"

// PanelBuilderOption is a functional option for configuring a Panel via NewPanel.
type PanelBuilderOption func(*panel)

// WithSettings sets the initial settings.
//
// Parameters:
//   - s: the initial settings
//
// Returns:
//   - PanelBuilderOption: a function that applies the settings option to a panel
func WithSettings(s Settings) PanelBuilderOption {
	return func(p *panel) {
		p.settings = s
	}
}

// WithChangeCallback registers a change listener at construction.
//
// Parameters:
//   - listener: receives the new settings and the field that changed
//
// Returns:
//   - PanelBuilderOption: a function that applies the listener option to a panel
func WithChangeCallback(listener func(Settings, Field)) PanelBuilderOption {
	return func(p *panel) {
		if listener != nil {
			p.onChange = append(p.onChange, listener)
		}
	}
}

// WithLogger sets the logger used to trace setting changes.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - PanelBuilderOption: a function that applies the logger option to a panel
func WithLogger(logger *zap.Logger) PanelBuilderOption {
	return func(p *panel) {
		if logger != nil {
			p.logger = logger.Named("gui")
		}
	}
}
