package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// defaultRoute is where the empty route redirects.
const defaultRoute = "earth"

// ErrUnknownRoute is returned for a -scene value with no registered scene.
var ErrUnknownRoute = errors.New("unknown scene route")

// routeFunc starts a scene once the window, renderer and engine exist.
type routeFunc func(a *app)

// routes maps scene names to their starters.
var routes = map[string]routeFunc{
	"earth": startEarth,
}

// resolveRoute normalizes name and redirects the empty route to defaultRoute.
//
// Parameters:
//   - name: the requested route, with or without a leading slash
//
// Returns:
//   - string: the resolved route name
//   - error: ErrUnknownRoute when no scene is registered under name
func resolveRoute(name string) (string, error) {
	name = strings.ToLower(strings.Trim(strings.TrimSpace(name), "/"))
	if name == "" {
		return defaultRoute, nil
	}
	if _, ok := routes[name]; !ok {
		return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownRoute, name, strings.Join(routeNames(), ", "))
	}
	return name, nil
}

func routeNames() []string {
	names := make([]string, 0, len(routes))
	for name := range routes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
