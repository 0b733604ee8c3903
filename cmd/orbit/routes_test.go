package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty redirects", in: "", want: "earth"},
		{name: "root redirects", in: "/", want: "earth"},
		{name: "plain", in: "earth", want: "earth"},
		{name: "slashes and case", in: "/Earth/", want: "earth"},
		{name: "whitespace", in: "  earth ", want: "earth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveRoute(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRoute_Unknown(t *testing.T) {
	_, err := resolveRoute("/mars")
	require.ErrorIs(t, err, ErrUnknownRoute)
	assert.Contains(t, err.Error(), "mars")
	assert.Contains(t, err.Error(), "earth")
}

func TestRouteNames(t *testing.T) {
	assert.Equal(t, []string{"earth"}, routeNames())
	assert.Contains(t, routes, defaultRoute)
}
