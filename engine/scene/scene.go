// Package scene builds the orbit scene: one textured planet, a growing asteroid ring, the render
// pipeline they share and the render bundle that replays their draws.
package scene

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/asteroid"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/gui"
	"github.com/Carmen-Shannon/oxy-orbit/engine/model"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderable"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// PipelineKey is the key the mesh pipeline is registered under.
const PipelineKey = "mesh"

// ZoomStep is the camera distance change per zoom key press.
const ZoomStep float32 = 0.25

// Bind group indices and bindings declared by the mesh shader.
const (
	frameGroup     = 0
	objectGroup    = 1
	uniformBinding = 0
	samplerBinding = 1
	textureBinding = 2
)

type scene struct {
	mu *sync.Mutex

	r        renderer.Renderer
	logger   *zap.Logger
	profiler *profiler.Profiler

	prepWorkers int
	seed        uint64
	settings    gui.Settings
	controller  camera.CameraController

	shader   shader.Shader
	pipeline pipeline.Pipeline
	camera   camera.Camera

	// Holders own the shared sampler and texture views that object bind groups borrow.
	samplerHolder bind_group_provider.BindGroupProvider
	earthHolder   bind_group_provider.BindGroupProvider
	moonHolder    bind_group_provider.BindGroupProvider

	planet   model.Model
	palette  []model.Model
	registry renderable.Registry
	field    asteroid.Field

	bundle *renderer.RenderBundle
}

// Scene is the orbit scene. All methods run on the render thread.
type Scene interface {
	// Settings returns the settings read by Frame.
	Settings() gui.Settings

	// SetUseRenderBundles selects the bundle path or the direct path for subsequent frames.
	//
	// Parameters:
	//   - enabled: true to replay the render bundle
	SetUseRenderBundles(enabled bool)

	// SetAsteroidCount stores count, grows the field to it and re-records the render bundle.
	//
	// Parameters:
	//   - count: the number of asteroids to draw after the planet
	//
	// Returns:
	//   - error: an error if the field could not grow or the bundle could not be recorded
	SetAsteroidCount(count int) error

	// EnsureCount grows the asteroid field until it holds count asteroids. Shrinking never removes any.
	//
	// Parameters:
	//   - count: the requested asteroid count
	//
	// Returns:
	//   - int: the number of renderables appended
	//   - error: an error if a bind group could not be created
	EnsureCount(count int) (int, error)

	// UpdateRenderBundle records the current draw sequence into a new bundle and releases the old one.
	//
	// Returns:
	//   - error: an error if the bundle encoder could not be created
	UpdateRenderBundle() error

	// Frame updates the camera, uploads the frame uniform and draws one frame.
	//
	// Parameters:
	//   - now: the frame time driving the camera spin
	//
	// Returns:
	//   - error: an error if the surface could not be acquired or the frame could not be submitted
	Frame(now time.Time) error

	// Resize reconfigures the surface and updates the camera aspect.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// HandleKey applies the camera bindings: Left/Right orbit, Minus/Equal zoom out and in.
	//
	// Parameters:
	//   - keyCode: a key code from the common package
	//
	// Returns:
	//   - bool: true if the key is bound
	HandleKey(keyCode uint32) bool

	// Camera returns the scene camera.
	Camera() camera.Camera

	// Registry returns the planet and asteroid renderables.
	Registry() renderable.Registry

	// Release releases the bundle, every renderable, mesh, texture and sampler owned by the scene.
	Release()
}

var _ Scene = &scene{}

// New builds the scene on r. CPU preparation (six sphere meshes and two texture decodes) fans out
// on a worker pool; every GPU call runs on the calling goroutine. The asteroid field is grown to
// the initial settings count and the first render bundle is recorded before New returns.
//
// Parameters:
//   - r: the renderer, already bound to a configured surface
//   - textures: the encoded earth and moon images
//   - width, height: the initial framebuffer size, used for the camera aspect
//   - options: functional options such as WithSettings and WithLogger
//
// Returns:
//   - Scene: the ready scene
//   - error: a wrapped error naming the setup step that failed
func New(r renderer.Renderer, textures Textures, width, height int, options ...SceneBuilderOption) (Scene, error) {
	s := &scene{
		mu:          &sync.Mutex{},
		r:           r,
		logger:      zap.NewNop(),
		prepWorkers: max(runtime.NumCPU()-1, 1),
		settings:    gui.DefaultSettings(),
		registry:    renderable.NewRegistry(),
	}
	for _, option := range options {
		option(s)
	}

	start := time.Now()
	pool := worker.NewDynamicWorkerPool(s.prepWorkers, len(asteroid.Palette)+3, time.Second)
	prep, err := prepare(pool, textures, asteroid.Palette, s.seed)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare scene assets: %w", err)
	}
	s.logger.Debug("assets prepared", zap.Duration("took", time.Since(start)), zap.Int("workers", s.prepWorkers))

	if err := s.initPipeline(); err != nil {
		s.Release()
		return nil, err
	}
	if err := s.initCamera(width, height); err != nil {
		s.Release()
		return nil, err
	}
	if err := s.initTextures(prep); err != nil {
		s.Release()
		return nil, err
	}
	if err := s.initModels(prep); err != nil {
		s.Release()
		return nil, err
	}
	if err := s.initPlanet(); err != nil {
		s.Release()
		return nil, err
	}

	fieldOpts := []asteroid.FieldBuilderOption{asteroid.WithLogger(s.logger)}
	if s.seed != 0 {
		fieldOpts = append(fieldOpts, asteroid.WithRandomSource(rand.New(rand.NewPCG(s.seed, uint64(len(s.palette)+1)))))
	}
	s.field, err = asteroid.NewField(s.registry, s.palette, &moonBindGroups{s: s}, fieldOpts...)
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("failed to create asteroid field: %w", err)
	}

	if _, err := s.EnsureCount(s.settings.AsteroidCount); err != nil {
		s.Release()
		return nil, err
	}
	if err := s.UpdateRenderBundle(); err != nil {
		s.Release()
		return nil, err
	}

	s.logger.Info("scene ready",
		zap.Int("renderables", s.registry.Len()),
		zap.Bool("useRenderBundles", s.settings.UseRenderBundles),
		zap.Duration("took", time.Since(start)),
	)
	return s, nil
}

func (s *scene) initPipeline() error {
	var err error
	s.shader, err = shader.NewShader(PipelineKey, shader.MeshSource)
	if err != nil {
		return fmt.Errorf("failed to create mesh shader: %w", err)
	}

	s.pipeline = pipeline.NewPipeline(PipelineKey, s.shader,
		pipeline.WithVertexLayouts(model.VertexLayout()),
		pipeline.WithCullMode(wgpu.CullModeBack),
		pipeline.WithDepthTestEnabled(true),
		pipeline.WithDepthWriteEnabled(true),
	)
	if err := s.r.RegisterPipelines(s.pipeline); err != nil {
		return fmt.Errorf("failed to register mesh pipeline: %w", err)
	}
	// The renderer keeps the first pipeline registered under a key.
	s.pipeline = s.r.Pipeline(PipelineKey)
	return nil
}

func (s *scene) initCamera(width, height int) error {
	provider := bind_group_provider.NewBindGroupProvider("Frame",
		bind_group_provider.WithBindGroupLayout(s.pipeline.BindGroupLayout(frameGroup)),
	)
	if err := s.r.InitBindGroup(provider, s.shader.BindGroupLayoutDescriptor(frameGroup), nil); err != nil {
		provider.Release()
		return fmt.Errorf("failed to init frame bind group: %w", err)
	}

	if s.controller == nil {
		s.controller = camera.NewCameraController()
	}
	opts := []camera.CameraBuilderOption{
		camera.WithBindGroupProvider(provider),
		camera.WithController(s.controller),
	}
	if width > 0 && height > 0 {
		opts = append(opts, camera.WithAspect(float32(width)/float32(height)))
	}
	s.camera = camera.NewCamera(opts...)
	return nil
}

func (s *scene) initTextures(prep *prepared) error {
	s.samplerHolder = bind_group_provider.NewBindGroupProvider("Mesh")
	if err := s.r.InitSampler(s.samplerHolder, samplerBinding, common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
	}); err != nil {
		return fmt.Errorf("failed to create mesh sampler: %w", err)
	}

	s.earthHolder = bind_group_provider.NewBindGroupProvider("Earth")
	if err := s.r.InitTextureView(s.earthHolder, textureBinding, prep.earth); err != nil {
		return fmt.Errorf("failed to upload earth texture: %w", err)
	}
	s.moonHolder = bind_group_provider.NewBindGroupProvider("Moon")
	if err := s.r.InitTextureView(s.moonHolder, textureBinding, prep.moon); err != nil {
		return fmt.Errorf("failed to upload moon texture: %w", err)
	}
	return nil
}

func (s *scene) initModels(prep *prepared) error {
	s.planet = model.FromSphere("planet", prep.planet)
	if err := s.uploadModel(s.planet); err != nil {
		return err
	}

	s.palette = make([]model.Model, 0, len(prep.palette))
	for i, sphere := range prep.palette {
		m := model.FromSphere("asteroid mesh "+strconv.Itoa(i), sphere)
		s.palette = append(s.palette, m)
		if err := s.uploadModel(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *scene) uploadModel(m model.Model) error {
	if err := s.r.InitMeshBuffers(m.MeshProvider(), m.VertexData(), m.IndexData(), m.IndexFormat(), m.IndexCount()); err != nil {
		return fmt.Errorf("failed to upload %s: %w", m.Name(), err)
	}
	return nil
}

func (s *scene) initPlanet() error {
	var identity [16]float32
	common.Identity(identity[:])

	provider, err := s.newObjectBindGroup("planet", s.earthHolder, identity)
	if err != nil {
		return err
	}
	s.registry.Add(renderable.NewRenderable(
		renderable.WithID(0),
		renderable.WithModel(s.planet),
		renderable.WithBindGroupProvider(provider),
		renderable.WithTransform(identity),
	))
	return nil
}

// newObjectBindGroup creates a group 1 bind group holding transform, the shared sampler and the
// texture view owned by textures.
func (s *scene) newObjectBindGroup(label string, textures bind_group_provider.BindGroupProvider, transform [16]float32) (bind_group_provider.BindGroupProvider, error) {
	provider := bind_group_provider.NewBindGroupProvider(label,
		bind_group_provider.WithBindGroupLayout(s.pipeline.BindGroupLayout(objectGroup)),
		bind_group_provider.WithSharedSampler(samplerBinding, s.samplerHolder.Sampler(samplerBinding)),
		bind_group_provider.WithSharedTextureView(textureBinding, textures.TextureView(textureBinding)),
	)
	if err := s.r.InitBindGroup(provider, s.shader.BindGroupLayoutDescriptor(objectGroup), nil); err != nil {
		provider.Release()
		return nil, fmt.Errorf("failed to init bind group for %s: %w", label, err)
	}

	uniform := model.GPUObjectUniform{Model: transform}
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: provider,
		Binding:  uniformBinding,
		Data:     uniform.Marshal(),
	}})
	return provider, nil
}

// moonBindGroups adapts the scene to asteroid.BindGroupFactory; every asteroid samples the moon texture.
type moonBindGroups struct {
	s *scene
}

var _ asteroid.BindGroupFactory = &moonBindGroups{}

func (f *moonBindGroups) NewObjectBindGroup(label string, transform [16]float32) (bind_group_provider.BindGroupProvider, error) {
	return f.s.newObjectBindGroup(label, f.s.moonHolder, transform)
}

func (s *scene) Settings() gui.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *scene) SetUseRenderBundles(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.UseRenderBundles = enabled
}

func (s *scene) SetAsteroidCount(count int) error {
	s.mu.Lock()
	s.settings.AsteroidCount = count
	s.mu.Unlock()

	if _, err := s.EnsureCount(count); err != nil {
		return err
	}
	return s.UpdateRenderBundle()
}

func (s *scene) EnsureCount(count int) (int, error) {
	added, err := s.field.EnsureCount(count)
	if s.profiler != nil {
		s.profiler.SetRenderables(s.registry.Len())
	}
	return added, err
}

func (s *scene) UpdateRenderBundle() error {
	bundle, err := s.r.CreateRenderBundle("Orbit Bundle", s.record)
	if err != nil {
		return fmt.Errorf("failed to record render bundle: %w", err)
	}

	s.mu.Lock()
	old := s.bundle
	s.bundle = bundle
	s.mu.Unlock()

	if old != nil {
		old.Release()
	}
	return nil
}

// record encodes the draw sequence for the current asteroid count. The bundle and the direct path
// both use it, so they emit identical commands.
func (s *scene) record(enc renderer.DrawEncoder) {
	renderer.RecordDraws(enc,
		s.pipeline.RenderPipeline(),
		s.camera.BindGroupProvider(),
		s.registry.DrawItems(s.Settings().AsteroidCount),
	)
}

func (s *scene) Frame(now time.Time) error {
	s.camera.Update(now)
	uniform := s.camera.Uniform()
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: s.camera.BindGroupProvider(),
		Binding:  uniformBinding,
		Data:     uniform.Marshal(),
	}})

	if err := s.r.BeginFrame(); err != nil {
		return err
	}

	s.mu.Lock()
	useBundle := s.settings.UseRenderBundles && s.bundle != nil
	bundle := s.bundle
	s.mu.Unlock()

	var err error
	if useBundle {
		err = s.r.ExecuteBundles(bundle)
	} else {
		err = s.r.Draw(s.record)
	}
	if endErr := s.r.EndFrame(); err == nil {
		err = endErr
	}
	if err != nil {
		return err
	}

	s.r.Present()
	return nil
}

func (s *scene) Resize(width, height int) error {
	if err := s.r.Resize(width, height); err != nil {
		return fmt.Errorf("failed to resize surface to %dx%d: %w", width, height, err)
	}
	if width > 0 && height > 0 {
		s.camera.SetAspect(float32(width) / float32(height))
	}
	return nil
}

func (s *scene) HandleKey(keyCode uint32) bool {
	ctrl := s.camera.Controller()
	if ctrl == nil {
		return false
	}
	switch keyCode {
	case common.KeyLeft:
		ctrl.OrbitLeft()
	case common.KeyRight:
		ctrl.OrbitRight()
	case common.KeyMinus:
		ctrl.SetRadius(ctrl.Radius() + ZoomStep)
	case common.KeyEqual:
		ctrl.SetRadius(ctrl.Radius() - ZoomStep)
	default:
		return false
	}
	return true
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) Registry() renderable.Registry {
	return s.registry
}

func (s *scene) Release() {
	s.mu.Lock()
	bundle := s.bundle
	s.bundle = nil
	s.mu.Unlock()
	if bundle != nil {
		bundle.Release()
	}

	s.registry.Release()
	if s.planet != nil {
		s.planet.Release()
	}
	for _, m := range s.palette {
		m.Release()
	}
	s.palette = nil

	for _, holder := range []bind_group_provider.BindGroupProvider{s.earthHolder, s.moonHolder, s.samplerHolder} {
		if holder != nil {
			holder.Release()
		}
	}
	if s.camera != nil && s.camera.BindGroupProvider() != nil {
		s.camera.BindGroupProvider().Release()
	}
}
