package engine

import (
	"errors"
	"fmt"
	"image"
	"math"
	"reflect"
	"slices"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jrcurtis/canvasgame/audio"
	"github.com/jrcurtis/canvasgame/input"
	"github.com/jrcurtis/canvasgame/render"
	"github.com/jrcurtis/canvasgame/status"
	"github.com/jrcurtis/canvasgame/vmath"
)

var (
	ErrNoSurface  = errors.New("engine: nil surface")
	ErrInvalidFPS = errors.New("engine: fps must be positive and finite")
	ErrRunning    = errors.New("engine: scene already running")
)

// DefaultFPS is the tick rate when none is configured
const DefaultFPS = 30

// logFontSize is the text height of the debug overlay
const logFontSize = 20

// Scene owns a set of objects and advances them on a fixed tick
// All methods except Post must be called from the goroutine driving Tick
type Scene struct {
	FPS   float64
	Dt    float64 // Seconds per tick
	Time  float64 // Accumulated tick time in seconds
	Debug bool

	Input *input.State

	surface render.Surface
	clear   render.Color
	camera  Camera
	objects []Object
	frame   []Object // Per-tick snapshot, tolerates mutation from Update and Draw

	// Resources, see resources.go
	images      map[string]image.Image
	sounds      map[string]*audio.Clip
	pending     int
	loadErrs    []error
	results     chan loadResult
	imageLoader ImageLoader
	soundLoader SoundLoader
	loadLimit   int
	onLoad      func(*Scene)
	onLoadError func(path string, err error)

	posts   chan func()
	running atomic.Bool
	clock   Clock
	logger  *zap.Logger

	metrics     *status.Registry
	statTicks   *atomic.Int64
	statSkipped *atomic.Int64
	statObjects *atomic.Int64
	statPending *atomic.Int64
	statLoaded  *atomic.Int64
	statFailed  *atomic.Int64
	statRunning *atomic.Bool
	statTime    *status.AtomicFloat
	statFrameMS *status.AtomicFloat
	statPhase   *status.AtomicString
}

// NewScene creates a scene drawing onto surface
func NewScene(surface render.Surface, opts ...Option) (*Scene, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}

	s := &Scene{
		FPS:       DefaultFPS,
		Input:     input.NewState(),
		surface:   surface,
		clear:     render.Black(),
		images:    make(map[string]image.Image),
		sounds:    make(map[string]*audio.Clip),
		results:   make(chan loadResult, 64),
		loadLimit: 4,
		posts:     make(chan func(), 256),
		clock:     SystemClock{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.FPS <= 0 || math.IsInf(s.FPS, 0) || math.IsNaN(s.FPS) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFPS, s.FPS)
	}
	s.Dt = 1 / s.FPS

	if s.metrics == nil {
		s.metrics = status.NewRegistry()
	}
	s.statTicks = s.metrics.Ints.Get(status.Ticks)
	s.statSkipped = s.metrics.Ints.Get(status.Skipped)
	s.statObjects = s.metrics.Ints.Get(status.Objects)
	s.statPending = s.metrics.Ints.Get(status.ResourcesPending)
	s.statLoaded = s.metrics.Ints.Get(status.ResourcesLoaded)
	s.statFailed = s.metrics.Ints.Get(status.ResourcesFailed)
	s.statRunning = s.metrics.Bools.Get(status.Running)
	s.statTime = s.metrics.Floats.Get(status.Time)
	s.statFrameMS = s.metrics.Floats.Get(status.FrameMS)
	s.statPhase = s.metrics.Strings.Get(status.Phase)
	s.statPhase.Store("ready")

	return s, nil
}

// Surface returns the surface the scene draws onto
func (s *Scene) Surface() render.Surface {
	return s.surface
}

// Metrics returns the scene's metric registry
func (s *Scene) Metrics() *status.Registry {
	return s.metrics
}

// Logger returns the scene logger, never nil
func (s *Scene) Logger() *zap.Logger {
	return s.logger
}

// Tick runs one update and render pass
// Returns false without touching any state beyond finished loads while resources are pending
func (s *Scene) Tick() bool {
	s.drainLoads()

	if s.pending > 0 {
		s.statSkipped.Add(1)
		s.logger.Debug("frame skipped", zap.Int("pending", s.pending))
		return false
	}

	start := s.clock.Now()
	s.update(s.Dt)
	s.Input.EndFrame()

	s.statTicks.Add(1)
	s.statTime.Set(s.Time)
	s.statFrameMS.Set(float64(s.clock.Now().Sub(start).Microseconds()) / 1000)
	return true
}

func (s *Scene) update(dt float64) {
	s.Time += dt

	w, h := s.surface.Size()
	s.surface.SetFillColor(s.clear)
	s.surface.FillRect(0, 0, float64(w), float64(h))

	s.frame = append(s.frame[:0], s.objects...)
	for _, o := range s.frame {
		o.Update(dt, s)
	}

	slices.SortStableFunc(s.objects, vmath.Key(Object.Depth))

	s.surface.Push()
	if s.camera != nil {
		s.camera.Update(dt, s)
		v := s.camera.View()
		s.surface.Translate(-v.X+float64(w)/2, -v.Y+float64(h)/2)
		s.surface.Scale(1/v.ScaleX, 1/v.ScaleY)
		s.surface.Rotate(-v.Rot)
	}

	s.frame = append(s.frame[:0], s.objects...)
	for _, o := range s.frame {
		o.Draw(s)
	}
	s.surface.Pop()

	if s.Debug {
		s.Log(fmt.Sprintf("t=%.2f objects=%d", s.Time, len(s.objects)))
	}
	if sh, ok := s.surface.(render.Shower); ok {
		sh.Show()
	}

	// Drop references held by the snapshot
	clear(s.frame)
	s.frame = s.frame[:0]
}

// Log draws text on a white box in the top-left corner of the surface
func (s *Scene) Log(text string) {
	s.surface.SetFontSize(logFontSize)
	w := s.surface.MeasureText(text)
	s.surface.SetFillColor(render.White())
	s.surface.FillRect(0, 0, w, logFontSize)
	s.surface.SetFillColor(render.Black())
	s.surface.FillText(text, 0, logFontSize)
}

// AddObject stamps the scene on o and appends it
func (s *Scene) AddObject(o Object) {
	o.Attach(s)
	s.objects = append(s.objects, o)
	s.statObjects.Store(int64(len(s.objects)))
}

func (s *Scene) AddObjects(os ...Object) {
	for _, o := range os {
		s.AddObject(o)
	}
}

// RemoveObject removes o by identity, reporting whether it was present
// Objects should be pointers; uncomparable values never match
func (s *Scene) RemoveObject(o Object) bool {
	i := slices.IndexFunc(s.objects, func(x Object) bool { return sameObject(x, o) })
	if i < 0 {
		return false
	}
	s.objects = slices.Delete(s.objects, i, i+1)
	s.statObjects.Store(int64(len(s.objects)))
	return true
}

// sameObject compares without panicking on uncomparable dynamic values
func sameObject(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

func (s *Scene) RemoveObjects(os ...Object) {
	for _, o := range os {
		s.RemoveObject(o)
	}
}

// Objects returns the managed objects in their current order
func (s *Scene) Objects() []Object {
	return slices.Clone(s.objects)
}

// SetCamera attaches c, or detaches the camera when c is nil
func (s *Scene) SetCamera(c Camera) {
	s.camera = c
}

func (s *Scene) Camera() Camera {
	return s.camera
}

// Key state queries

func (s *Scene) KeyPressed(k string) bool  { return s.Input.Pressed(k) }
func (s *Scene) KeyReleased(k string) bool { return s.Input.Released(k) }
func (s *Scene) KeyDown(k string) bool     { return s.Input.Down(k) }
func (s *Scene) KeyUp(k string) bool       { return s.Input.Up(k) }

// MouseLoc returns the pointer location in world coordinates
func (s *Scene) MouseLoc() vmath.Vector {
	return s.Input.Mouse()
}

// Host event entry points

func (s *Scene) OnMouseDown(button int) { s.Input.Press(input.MouseKey(button)) }
func (s *Scene) OnMouseUp(button int)   { s.Input.Release(input.MouseKey(button)) }
func (s *Scene) OnKeyDown(code int)     { s.Input.Press(input.CharKey(code)) }
func (s *Scene) OnKeyUp(code int)       { s.Input.Release(input.CharKey(code)) }

// OnMouseMove caches a pointer location given in surface coordinates
func (s *Scene) OnMouseMove(x, y float64) {
	w, h := s.surface.Size()
	s.Input.Move(x, y, float64(w), float64(h), s.pointerView())
}

func (s *Scene) OnTouchStart(x, y float64) {
	w, h := s.surface.Size()
	s.Input.Touch(x, y, float64(w), float64(h), s.pointerView())
}

func (s *Scene) OnTouchMove(x, y float64) {
	s.OnMouseMove(x, y)
}

func (s *Scene) OnTouchEnd() {
	s.Input.TouchEnd()
}

func (s *Scene) pointerView() *input.View {
	if s.camera == nil {
		return nil
	}
	return s.camera.View().Pointer()
}
