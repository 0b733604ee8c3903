package renderable

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/engine/model"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(reg Registry, n int) {
	m := model.NewModel(model.WithName("rock"))
	for i := 0; i < n; i++ {
		reg.Add(NewRenderable(
			WithID(uint64(i)),
			WithModel(m),
			WithBindGroupProvider(bind_group_provider.NewBindGroupProvider("object")),
		))
	}
}

func TestRegistry_AddAt(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, 0, reg.Len())
	assert.Nil(t, reg.At(0))

	r := NewRenderable(WithID(7))
	assert.Equal(t, 0, reg.Add(r))
	assert.Equal(t, 1, reg.Add(NewRenderable()))

	assert.Same(t, r, reg.At(0))
	assert.Nil(t, reg.At(-1))
	assert.Nil(t, reg.At(2))
	assert.Len(t, reg.All(), 2)
}

func TestRegistry_AllIsCopy(t *testing.T) {
	reg := NewRegistry()
	fill(reg, 3)

	all := reg.All()
	all[0] = nil
	assert.NotNil(t, reg.At(0))
}

func TestRegistry_DrawItems(t *testing.T) {
	tests := []struct {
		name          string
		length        int
		asteroidCount int
		expected      int
	}{
		{"draws one more than asteroid count", 10, 5, 6},
		{"capped by length", 4, 1000, 4},
		{"exact fit", 6, 5, 6},
		{"zero asteroids still draws planet", 3, 0, 1},
		{"negative count draws planet", 3, -4, 1},
		{"empty registry", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			fill(reg, tt.length)

			items := reg.DrawItems(tt.asteroidCount)
			require.Len(t, items, tt.expected)
			for i, item := range items {
				assert.Same(t, reg.At(i).BindGroupProvider(), item.Object)
				assert.Same(t, reg.At(i).Model().MeshProvider(), item.Mesh)
			}
		})
	}
}

func TestRegistry_Release(t *testing.T) {
	reg := NewRegistry()
	fill(reg, 2)

	reg.Release()
	assert.Equal(t, 0, reg.Len())
}

func TestNewRenderable_Defaults(t *testing.T) {
	r := NewRenderable()

	assert.Equal(t, [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, r.Transform())
	assert.Nil(t, r.Model())
	assert.Nil(t, r.DrawItem().Mesh)
}

func TestRenderable_Uniform(t *testing.T) {
	var transform [16]float32
	transform[12] = 2.5
	r := NewRenderable(WithTransform(transform))

	assert.Equal(t, transform, r.Uniform().Model)
}
