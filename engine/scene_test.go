package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrcurtis/canvasgame/render"
	"github.com/jrcurtis/canvasgame/status"
)

// tracer records its updates and draw order
type tracer struct {
	Entity
	name     string
	log      *[]string
	updates  int
	onUpdate func(p *tracer, s *Scene)
}

func newTracer(name string, z float64, log *[]string) *tracer {
	return &tracer{Entity: NewEntity(0, 0, z), name: name, log: log}
}

func (p *tracer) Update(dt float64, s *Scene) {
	p.Entity.Update(dt, s)
	p.updates++
	if p.onUpdate != nil {
		p.onUpdate(p, s)
	}
}

func (p *tracer) Draw(s *Scene) {
	p.DrawWith(s, func(sf render.Surface) {
		*p.log = append(*p.log, p.name)
		sf.FillRect(0, 0, 1, 1)
	})
}

func newTestScene(t *testing.T, opts ...Option) (*Scene, *render.Recorder) {
	t.Helper()
	rec := render.NewRecorder(800, 600)
	s, err := NewScene(rec, opts...)
	require.NoError(t, err)
	return s, rec
}

func TestNewScene(t *testing.T) {
	_, err := NewScene(nil)
	assert.ErrorIs(t, err, ErrNoSurface)

	for _, fps := range []float64{0, -1} {
		_, err = NewScene(render.NewRecorder(1, 1), WithFPS(fps))
		assert.ErrorIs(t, err, ErrInvalidFPS)
	}

	s, _ := newTestScene(t)
	assert.Equal(t, float64(DefaultFPS), s.FPS)
	assert.InDelta(t, 1.0/30, s.Dt, 1e-12)
	assert.Equal(t, time.Second/30, s.Interval())
	assert.NotNil(t, s.Logger())
}

func TestTickSequence(t *testing.T) {
	var log []string
	s, rec := newTestScene(t)
	s.AddObject(newTracer("a", 0, &log))

	require.True(t, s.Tick())
	assert.Equal(t, []string{
		"fill", "rect", // clear
		"push",
		"push", "translate", "scale", "rotate", "rect", "pop",
		"pop",
	}, rec.Ops())

	clearRect := rec.Filter("rect")[0]
	assert.Equal(t, []float64{0, 0, 800, 600}, clearRect.Args)
	assert.Equal(t, "#000000", clearRect.Fill.Hex())
	assert.InDelta(t, s.Dt, s.Time, 1e-12)
}

func TestDepthSortIsStable(t *testing.T) {
	var log []string
	s, _ := newTestScene(t)
	s.AddObjects(
		newTracer("a", 2, &log),
		newTracer("b", 1, &log),
		newTracer("c", 2, &log),
		newTracer("d", 0, &log),
	)

	s.Tick()
	assert.Equal(t, []string{"d", "b", "a", "c"}, log)

	// The sorted order is kept, so a second tick draws the same sequence
	log = log[:0]
	s.Tick()
	assert.Equal(t, []string{"d", "b", "a", "c"}, log)
}

func TestDepthChangeInUpdateAppliesSameTick(t *testing.T) {
	var log []string
	s, _ := newTestScene(t)
	a := newTracer("a", 0, &log)
	b := newTracer("b", 1, &log)
	a.onUpdate = func(p *tracer, _ *Scene) { p.Z = 5 }
	s.AddObjects(a, b)

	s.Tick()
	assert.Equal(t, []string{"b", "a"}, log)
	assert.Equal(t, 0.0, a.Loc.Z, "loc is refreshed at the start of the next update")
}

func TestRemoveDuringUpdate(t *testing.T) {
	var log []string
	s, _ := newTestScene(t)
	a := newTracer("a", 0, &log)
	b := newTracer("b", 1, &log)
	c := newTracer("c", 2, &log)
	a.onUpdate = func(p *tracer, s *Scene) { s.RemoveObject(p) }
	s.AddObjects(a, b, c)

	require.NotPanics(t, func() { s.Tick() })
	assert.Equal(t, 1, b.updates)
	assert.Equal(t, 1, c.updates)
	assert.Equal(t, []string{"b", "c"}, log)
	assert.Len(t, s.Objects(), 2)

	assert.False(t, s.RemoveObject(a), "already removed")
}

// valueObject is a non-pointer Object whose dynamic value is uncomparable
type valueObject struct {
	tags []string
}

func (valueObject) Update(float64, *Scene) {}
func (valueObject) Draw(*Scene)            {}
func (valueObject) Depth() float64         { return 0 }
func (valueObject) Attach(*Scene)          {}

func TestRemoveUncomparableObject(t *testing.T) {
	var log []string
	s, _ := newTestScene(t)
	a := newTracer("a", 0, &log)
	v := valueObject{tags: []string{"x"}}
	s.AddObjects(v, a)

	var removed bool
	require.NotPanics(t, func() { removed = s.RemoveObject(valueObject{tags: []string{"x"}}) })
	assert.False(t, removed, "values without identity never match")
	require.NotPanics(t, func() { removed = s.RemoveObject(a) })
	assert.True(t, removed)
	assert.Len(t, s.Objects(), 1)
	assert.False(t, s.RemoveObject(nil))
}

func TestInputEdgesAcrossTicks(t *testing.T) {
	var log []string
	s, _ := newTestScene(t)
	p := newTracer("p", 0, &log)

	type frame struct{ pressed, down, released bool }
	var seen []frame
	p.onUpdate = func(_ *tracer, s *Scene) {
		seen = append(seen, frame{s.KeyPressed("A"), s.KeyDown("A"), s.KeyReleased("A")})
	}
	s.AddObject(p)

	s.OnKeyDown('A')
	s.Tick()
	s.Tick()
	s.OnKeyUp('A')
	s.Tick()
	s.Tick()

	assert.Equal(t, []frame{
		{pressed: true, down: true},
		{down: true},
		{released: true},
		{},
	}, seen)
	assert.True(t, s.KeyUp("A"))
	assert.True(t, s.KeyUp("never-seen"))
}

func TestCameraTransform(t *testing.T) {
	s, rec := newTestScene(t)
	cam := &Entity{X: 100, Y: 50, Scale: 2}
	s.SetCamera(cam)

	var log []string
	p := newTracer("p", 0, &log)
	p.X, p.Y = 10, 20
	s.AddObject(p)
	s.Tick()

	assert.Equal(t, 2.0, cam.ScaleX, "camera is updated by the scene")
	assert.Equal(t, []string{"fill", "rect", "push", "translate", "scale", "rotate"}, rec.Ops()[:6])

	rect := rec.Filter("rect")[1]
	x, y := render.Apply(rect.Transform, 0, 0)
	assert.InDelta(t, 305, x, 1e-9)
	assert.InDelta(t, 260, y, 1e-9)

	// Pointer at the surface center maps to the camera position
	s.OnMouseMove(400, 300)
	assert.InDelta(t, 100, s.MouseLoc().X, 1e-9)
	assert.InDelta(t, 50, s.MouseLoc().Y, 1e-9)

	s.SetCamera(nil)
	s.OnMouseMove(400, 300)
	assert.Equal(t, 400.0, s.MouseLoc().X)
}

func TestMouseAndTouchEvents(t *testing.T) {
	s, _ := newTestScene(t)
	s.OnMouseDown(2)
	assert.True(t, s.KeyPressed("BUTTON2"))
	s.OnMouseUp(2)
	assert.True(t, s.KeyReleased("BUTTON2"))

	s.OnTouchStart(5, 6)
	assert.True(t, s.KeyDown("BUTTON0"))
	assert.Equal(t, 5.0, s.MouseLoc().X)
	s.OnTouchMove(7, 8)
	assert.Equal(t, 8.0, s.MouseLoc().Y)
	s.OnTouchEnd()
	assert.True(t, s.KeyUp("BUTTON0"))
}

func TestDebugOverlay(t *testing.T) {
	s, rec := newTestScene(t)
	s.Debug = true
	s.Tick()

	text := rec.Filter("text")
	require.Len(t, text, 1)
	assert.Equal(t, "t=0.03 objects=0", text[0].Text)
	assert.Equal(t, []float64{0, 20}, text[0].Args)
	assert.Equal(t, "#000000", text[0].Fill.Hex())

	box := rec.Filter("rect")[1]
	assert.Equal(t, "#ffffff", box.Fill.Hex())
	assert.Equal(t, []float64{0, 0, rec.MeasureText(text[0].Text), 20}, box.Args)
	assert.True(t, box.Transform.IsIdentity(), "overlay is drawn outside the camera")
}

func TestEntityDefaults(t *testing.T) {
	e := &Entity{X: 1, Y: 2, Z: 3}
	s, _ := newTestScene(t)
	s.AddObject(e)

	assert.Same(t, s, e.Scene())
	assert.Equal(t, 1.0, e.Scale)

	e.Scale = 3
	e.ScaleY = 0.5
	e.Update(0, s)
	assert.Equal(t, 3.0, e.ScaleX)
	assert.Equal(t, 0.5, e.ScaleY)
	assert.Equal(t, 3.0, e.Loc.Z)

	// Once filled, axis scales no longer follow Scale
	e.Scale = 4
	e.X = 9
	e.Update(0, s)
	assert.Equal(t, 3.0, e.ScaleX)
	assert.Equal(t, 9.0, e.Loc.X)
	assert.Equal(t, View{X: 9, Y: 2, ScaleX: 3, ScaleY: 0.5}, e.View())
}

func TestMetricsPublished(t *testing.T) {
	reg := status.NewRegistry()
	s, _ := newTestScene(t, WithMetrics(reg), WithClock(NewManualClock(time.Unix(0, 0))))
	var log []string
	s.AddObject(newTracer("p", 0, &log))
	s.Tick()
	s.Tick()

	snap := reg.Snapshot()
	assert.Equal(t, int64(2), snap[status.Ticks])
	assert.Equal(t, int64(1), snap[status.Objects])
	assert.InDelta(t, 2*s.Dt, snap[status.Time], 1e-12)
	assert.Equal(t, 0.0, snap[status.FrameMS], "manual clock does not advance")
	assert.Equal(t, "ready", snap[status.Phase])
}

func TestRun(t *testing.T) {
	s, _ := newTestScene(t, WithFPS(200))
	var log []string
	p := newTracer("p", 0, &log)
	s.AddObject(p)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, s.Running, time.Second, time.Millisecond)
	assert.ErrorIs(t, s.Run(ctx), ErrRunning)

	var posted atomic.Bool
	s.Post(func() {
		s.OnKeyDown('W')
		posted.Store(true)
	})

	require.Eventually(t, func() bool {
		return posted.Load() && s.Metrics().Ints.Get(status.Ticks).Load() >= 3
	}, 2*time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, s.Running())
	assert.True(t, s.KeyDown("W"))
}

func TestLoadErrorType(t *testing.T) {
	base := errors.New("boom")
	err := error(&LoadError{Kind: "image", Path: "a.png", Err: base})
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "load image a.png: boom", err.Error())

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "a.png", le.Path)
}
