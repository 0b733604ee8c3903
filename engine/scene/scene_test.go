package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/asteroid"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/gui"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEncoder captures the commands a recording routine emits.
type recordingEncoder struct {
	ops []string
}

func (e *recordingEncoder) SetPipeline(*wgpu.RenderPipeline) {
	e.ops = append(e.ops, "pipeline")
}

func (e *recordingEncoder) SetBindGroup(groupIndex uint32, _ *wgpu.BindGroup, _ []uint32) {
	e.ops = append(e.ops, fmt.Sprintf("bind %d", groupIndex))
}

func (e *recordingEncoder) SetVertexBuffer(slot uint32, _ *wgpu.Buffer, _, _ uint64) {
	e.ops = append(e.ops, fmt.Sprintf("vertex %d", slot))
}

func (e *recordingEncoder) SetIndexBuffer(_ *wgpu.Buffer, format wgpu.IndexFormat, _, _ uint64) {
	e.ops = append(e.ops, fmt.Sprintf("index %d", format))
}

func (e *recordingEncoder) DrawIndexed(indexCount, _, _ uint32, _ int32, _ uint32) {
	e.ops = append(e.ops, fmt.Sprintf("draw %d", indexCount))
}

func (e *recordingEncoder) draws() int {
	n := 0
	for _, op := range e.ops {
		if len(op) > 5 && op[:5] == "draw " {
			n++
		}
	}
	return n
}

// fakeRenderer satisfies renderer.Renderer without a GPU.
type fakeRenderer struct {
	pipelines map[string]pipeline.Pipeline
	bundles   []*recordingEncoder
	direct    []*recordingEncoder
	writes    []bind_group_provider.BufferWrite
	bindErrAt int
	bindCalls int
	beginErr  error
	presented int
	executed  []*renderer.RenderBundle
	resized   [2]int
	// noBundles makes CreateRenderBundle return nil, as on a device without bundle support.
	noBundles bool
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{pipelines: make(map[string]pipeline.Pipeline), bindErrAt: -1}
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline { return f.pipelines[key] }
func (f *fakeRenderer) Pipelines() map[string]pipeline.Pipeline { return f.pipelines }
func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}
func (f *fakeRenderer) SurfaceFormat() wgpu.TextureFormat { return wgpu.TextureFormatBGRA8Unorm }
func (f *fakeRenderer) SampleCount() renderer.MSAASampleCount { return renderer.MSAAOff }
func (f *fakeRenderer) WriteBuffers(w []bind_group_provider.BufferWrite) { f.writes = append(f.writes, w...) }
func (f *fakeRenderer) Present() { f.presented++ }
func (f *fakeRenderer) EndFrame() error { return nil }
func (f *fakeRenderer) Release() {}

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		if _, ok := f.pipelines[p.PipelineKey()]; !ok {
			f.pipelines[p.PipelineKey()] = p
		}
	}
	return nil
}

func (f *fakeRenderer) Resize(width, height int) error {
	f.resized = [2]int{width, height}
	return nil
}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, format wgpu.IndexFormat, indexCount int) error {
	provider.SetMeshBuffers(nil, nil, format, indexCount)
	return nil
}

func (f *fakeRenderer) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor, map[int]uint64) error {
	defer func() { f.bindCalls++ }()
	if f.bindCalls == f.bindErrAt {
		return errors.New("out of memory")
	}
	return nil
}

func (f *fakeRenderer) InitTextureView(bind_group_provider.BindGroupProvider, int, common.TextureStagingData) error {
	return nil
}

func (f *fakeRenderer) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}

func (f *fakeRenderer) CreateRenderBundle(label string, record func(enc renderer.DrawEncoder)) (*renderer.RenderBundle, error) {
	enc := &recordingEncoder{}
	record(enc)
	f.bundles = append(f.bundles, enc)
	if f.noBundles {
		return nil, nil
	}
	return renderer.NewRenderBundle(label, nil), nil
}

func (f *fakeRenderer) BeginFrame() error { return f.beginErr }

func (f *fakeRenderer) Draw(record func(enc renderer.DrawEncoder)) error {
	enc := &recordingEncoder{}
	record(enc)
	f.direct = append(f.direct, enc)
	return nil
}

func (f *fakeRenderer) ExecuteBundles(bundles ...*renderer.RenderBundle) error {
	f.executed = append(f.executed, bundles...)
	return nil
}

func pngTexture(t *testing.T, name string) *common.ImportedTexture {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range 16 {
		img.Set(i%4, i/4, color.RGBA{R: uint8(i * 16), A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &common.ImportedTexture{Name: name, Source: name + ".png", Data: buf.Bytes()}
}

func testTextures(t *testing.T) Textures {
	return Textures{Earth: pngTexture(t, "earth"), Moon: pngTexture(t, "moon")}
}

func newTestScene(t *testing.T, r *fakeRenderer, settings gui.Settings, options ...SceneBuilderOption) Scene {
	t.Helper()
	options = append([]SceneBuilderOption{WithSettings(settings), WithPrepWorkers(2)}, options...)
	s, err := New(r, testTextures(t), 800, 400, options...)
	require.NoError(t, err)
	t.Cleanup(s.Release)
	return s
}

func TestPrepare(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(3, 16, time.Second)
	prep, err := prepare(pool, testTextures(t), asteroid.Palette, 7)
	require.NoError(t, err)

	assert.Equal(t, (32+1)*(16+1), prep.planet.VertexCount())
	require.Len(t, prep.palette, len(asteroid.Palette))
	for i, p := range asteroid.Palette {
		assert.Equal(t, (p.WidthSegments+1)*(p.HeightSegments+1), prep.palette[i].VertexCount(), "palette %d", i)
		assert.Equal(t, uint32(p.WidthSegments*p.HeightSegments*6), prep.palette[i].IndexCount(), "palette %d", i)
	}
	assert.Equal(t, uint32(4), prep.earth.Width)
	assert.Len(t, prep.moon.Pixels, 4*4*4)
}

func TestPrepare_Errors(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(2, 16, time.Second)

	_, err := prepare(pool, Textures{Earth: pngTexture(t, "earth")}, asteroid.Palette, 0)
	assert.ErrorIs(t, err, ErrMissingTexture)

	broken := Textures{Earth: pngTexture(t, "earth"), Moon: &common.ImportedTexture{Source: "moon.jpg"}}
	_, err = prepare(pool, broken, asteroid.Palette, 0)
	assert.ErrorIs(t, err, common.ErrEmptyTexture)
}

func TestPrepare_SeedIsReproducible(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(4, 16, time.Second)
	a, err := prepare(pool, testTextures(t), asteroid.Palette, 99)
	require.NoError(t, err)
	b, err := prepare(pool, testTextures(t), asteroid.Palette, 99)
	require.NoError(t, err)

	for i := range a.palette {
		assert.Equal(t, a.palette[i].Vertices, b.palette[i].Vertices, "palette %d", i)
	}
}

func TestNew_PopulatesAndRecordsBundle(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(t, r, gui.Settings{UseRenderBundles: true, AsteroidCount: 12})

	assert.Equal(t, 13, s.Registry().Len(), "planet plus twelve asteroids")
	require.Len(t, r.bundles, 1)
	assert.Equal(t, 13, r.bundles[0].draws())
	assert.Equal(t, []string{"pipeline", "bind 0", "bind 1", "vertex 0"}, r.bundles[0].ops[:4])

	planet := s.Registry().At(0)
	assert.Equal(t, uint64(0), planet.ID())
	assert.Equal(t, "planet", planet.Model().Name())
	assert.InDelta(t, 2.0, s.Camera().Aspect(), 1e-6)
}

func TestSetAsteroidCount_GrowsAndShrinks(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(t, r, gui.Settings{UseRenderBundles: true, AsteroidCount: 4})
	before := s.Registry().All()

	require.NoError(t, s.SetAsteroidCount(10))
	assert.Equal(t, 11, s.Registry().Len())
	for i, rb := range before {
		assert.Equal(t, rb.Transform(), s.Registry().At(i).Transform(), "entry %d unchanged", i)
	}
	require.Len(t, r.bundles, 2)
	assert.Equal(t, 11, r.bundles[1].draws())

	require.NoError(t, s.SetAsteroidCount(2))
	assert.Equal(t, 11, s.Registry().Len(), "shrinking keeps every renderable")
	require.Len(t, r.bundles, 3)
	assert.Equal(t, 3, r.bundles[2].draws())
	assert.Equal(t, 2, s.Settings().AsteroidCount)
}

func TestFrame_DirectPathMatchesBundle(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(t, r, gui.Settings{UseRenderBundles: false, AsteroidCount: 6})
	r.writes = nil

	require.NoError(t, s.Frame(time.Unix(1000, 0)))
	require.Len(t, r.direct, 1)
	assert.Equal(t, r.bundles[0].ops, r.direct[0].ops)
	assert.Equal(t, 1, r.presented)
	assert.Empty(t, r.executed)

	require.Len(t, r.writes, 1)
	assert.Same(t, s.Camera().BindGroupProvider(), r.writes[0].Provider)
	assert.Len(t, r.writes[0].Data, 64)
}

func TestFrame_BundlePath(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(t, r, gui.Settings{UseRenderBundles: true, AsteroidCount: 6})

	require.NoError(t, s.Frame(time.Unix(1000, 0)))
	require.Len(t, r.executed, 1)
	assert.Equal(t, "Orbit Bundle", r.executed[0].Label())
	assert.Empty(t, r.direct, "bundle path records no direct draws")
	assert.Equal(t, 1, r.presented)

	require.NoError(t, s.SetAsteroidCount(9))
	require.NoError(t, s.Frame(time.Unix(1001, 0)))
	require.Len(t, r.executed, 2)
	assert.NotSame(t, r.executed[0], r.executed[1], "count change replaces the bundle")

	s.SetUseRenderBundles(false)
	require.NoError(t, s.Frame(time.Unix(1002, 0)))
	assert.Len(t, r.executed, 2)
	require.Len(t, r.direct, 1)
	assert.Equal(t, 10, r.direct[0].draws())
}

func TestFrame_MissingBundleFallsBackToDraw(t *testing.T) {
	r := newFakeRenderer()
	r.noBundles = true
	s := newTestScene(t, r, gui.Settings{UseRenderBundles: true, AsteroidCount: 3})

	require.NoError(t, s.Frame(time.Unix(1000, 0)))
	assert.Empty(t, r.executed)
	require.Len(t, r.direct, 1)
	assert.Equal(t, r.bundles[0].ops, r.direct[0].ops)
}

func TestFrame_BeginError(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(t, r, gui.Settings{AsteroidCount: 1})

	r.beginErr = renderer.ErrSurfaceNotConfigured
	err := s.Frame(time.Now())
	assert.ErrorIs(t, err, renderer.ErrSurfaceNotConfigured)
	assert.Empty(t, r.direct)
	assert.Zero(t, r.presented)
}

func TestResize(t *testing.T) {
	r := newFakeRenderer()
	s := newTestScene(t, r, gui.Settings{AsteroidCount: 1})

	require.NoError(t, s.Resize(300, 600))
	assert.Equal(t, [2]int{300, 600}, r.resized)
	assert.InDelta(t, 0.5, s.Camera().Aspect(), 1e-6)

	require.NoError(t, s.Resize(0, 0))
	assert.InDelta(t, 0.5, s.Camera().Aspect(), 1e-6, "minimized window keeps the aspect")
}

func TestNew_SeedIsReproducible(t *testing.T) {
	a := newTestScene(t, newFakeRenderer(), gui.Settings{AsteroidCount: 8}, WithSeed(3))
	b := newTestScene(t, newFakeRenderer(), gui.Settings{AsteroidCount: 8}, WithSeed(3))

	for i := range a.Registry().Len() {
		assert.Equal(t, a.Registry().At(i).Transform(), b.Registry().At(i).Transform(), "entry %d", i)
	}
}

func TestNew_BindGroupFailure(t *testing.T) {
	r := newFakeRenderer()
	// Call 0 is the frame group, call 1 the planet, call 2 the first asteroid.
	r.bindErrAt = 2

	_, err := New(r, testTextures(t), 640, 480, WithSettings(gui.Settings{AsteroidCount: 3}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asteroid 1")
}

func TestHandleKey_DrivesCamera(t *testing.T) {
	ctrl := camera.NewCameraController(camera.WithOrbitSpeed(0.5), camera.WithRadiusLimits(2, 4))
	s := newTestScene(t, newFakeRenderer(), gui.Settings{AsteroidCount: 1}, WithCameraController(ctrl))

	require.True(t, s.HandleKey(common.KeyRight))
	assert.InDelta(t, 0.5, ctrl.Azimuth(), 1e-6)
	require.True(t, s.HandleKey(common.KeyLeft))
	require.True(t, s.HandleKey(common.KeyLeft))
	assert.InDelta(t, -0.5, ctrl.Azimuth(), 1e-6)

	require.True(t, s.HandleKey(common.KeyMinus))
	assert.InDelta(t, 3+ZoomStep, ctrl.Radius(), 1e-6)
	for range 10 {
		s.HandleKey(common.KeyEqual)
	}
	assert.InDelta(t, 2, ctrl.Radius(), 1e-6, "zoom stops at the controller limit")

	assert.False(t, s.HandleKey(common.KeyB), "B belongs to the panel")
}
