package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/asteroid"
	"github.com/Carmen-Shannon/oxy-orbit/engine/mesh"
)

// PlanetParams is the planet sphere: unit radius, 32x16 segments, no jitter.
var PlanetParams = asteroid.SphereParams{Radius: 1, WidthSegments: 32, HeightSegments: 16}

// ErrMissingTexture is returned when New is given no earth or moon texture.
var ErrMissingTexture = errors.New("scene texture is missing")

// Textures are the encoded images the scene samples: earth for the planet, moon for every asteroid.
type Textures struct {
	Earth *common.ImportedTexture
	Moon  *common.ImportedTexture
}

// prepared is the CPU-side output of prepare, ready for upload on the render thread.
type prepared struct {
	planet  *mesh.Sphere
	palette []*mesh.Sphere
	earth   common.TextureStagingData
	moon    common.TextureStagingData
}

// prepare generates the planet and palette spheres and decodes both textures on pool.
// Each task writes its own slot and error; a WaitGroup is the barrier, since pool.Wait blocks until
// the workers idle out.
func prepare(pool worker.DynamicWorkerPool, textures Textures, palette []asteroid.SphereParams, seed uint64) (*prepared, error) {
	if textures.Earth == nil || textures.Moon == nil {
		return nil, ErrMissingTexture
	}

	out := &prepared{palette: make([]*mesh.Sphere, len(palette))}
	errs := make([]error, len(palette)+3)

	var wg sync.WaitGroup
	taskID := 0
	submit := func(do func() error) {
		wg.Add(1)
		slot := taskID
		taskID++
		pool.SubmitTask(worker.Task{
			ID: slot,
			Do: func() (any, error) {
				defer wg.Done()
				errs[slot] = do()
				return nil, nil
			},
		})
	}

	submit(func() error {
		s, err := newSphere(PlanetParams, seed, 0)
		if err != nil {
			return fmt.Errorf("planet mesh: %w", err)
		}
		out.planet = s
		return nil
	})
	for i, p := range palette {
		submit(func() error {
			s, err := newSphere(p, seed, uint64(i+1))
			if err != nil {
				return fmt.Errorf("asteroid mesh %d: %w", i, err)
			}
			out.palette[i] = s
			return nil
		})
	}
	submit(func() error {
		staged, err := textures.Earth.Decode()
		out.earth = staged
		return err
	})
	submit(func() error {
		staged, err := textures.Moon.Decode()
		out.moon = staged
		return err
	})

	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

// newSphere builds one sphere. A non-zero seed gives every stream its own PCG generator so
// concurrent tasks stay reproducible.
func newSphere(p asteroid.SphereParams, seed, stream uint64) (*mesh.Sphere, error) {
	var opts []mesh.SphereBuilderOption
	if seed != 0 {
		opts = append(opts, mesh.WithRandomSource(rand.New(rand.NewPCG(seed, stream))))
	}
	return mesh.NewSphere(p.Radius, p.WidthSegments, p.HeightSegments, p.Randomness, opts...)
}
