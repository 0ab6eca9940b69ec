package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jrcurtis/canvasgame/audio"
)

// ErrNoLoader is reported for loads requested without a configured loader
var ErrNoLoader = errors.New("engine: no loader configured")

// ImageLoader decodes an image file
// Called from loader goroutines, implementations must be safe for concurrent use
type ImageLoader interface {
	LoadImage(path string) (image.Image, error)
}

// SoundLoader decodes a sound file
// Called from loader goroutines, implementations must be safe for concurrent use
type SoundLoader interface {
	LoadSound(path string) (*audio.Clip, error)
}

// ImageLoaderFunc adapts a function to ImageLoader
type ImageLoaderFunc func(path string) (image.Image, error)

func (f ImageLoaderFunc) LoadImage(path string) (image.Image, error) { return f(path) }

// SoundLoaderFunc adapts a function to SoundLoader
type SoundLoaderFunc func(path string) (*audio.Clip, error)

func (f SoundLoaderFunc) LoadSound(path string) (*audio.Clip, error) { return f(path) }

// LoadError is a failed resource load
type LoadError struct {
	Kind string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type loadResult struct {
	kind  string
	path  string
	image image.Image
	sound *audio.Clip
	err   error
}

// ResourceName returns the table key for a resource path:
// the directory and the file name up to its first dot
func ResourceName(path string) string {
	dir, file := filepath.Split(path)
	if i := strings.IndexByte(file, '.'); i >= 0 {
		file = file[:i]
	}
	return dir + file
}

// LoadImages starts loading paths in the background
// Ticks are skipped until every load has finished or failed
func (s *Scene) LoadImages(paths ...string) {
	s.startLoads("image", paths, func(path string) loadResult {
		if s.imageLoader == nil {
			return loadResult{err: ErrNoLoader}
		}
		img, err := s.imageLoader.LoadImage(path)
		return loadResult{image: img, err: err}
	})
}

// LoadSounds starts loading sound paths in the background, gated like LoadImages
func (s *Scene) LoadSounds(paths ...string) {
	s.startLoads("sound", paths, func(path string) loadResult {
		if s.soundLoader == nil {
			return loadResult{err: ErrNoLoader}
		}
		clip, err := s.soundLoader.LoadSound(path)
		return loadResult{sound: clip, err: err}
	})
}

func (s *Scene) startLoads(kind string, paths []string, load func(string) loadResult) {
	if len(paths) == 0 {
		return
	}
	s.pending += len(paths)
	s.statPending.Store(int64(s.pending))
	s.statPhase.Store("loading")
	s.logger.Debug("loading resources", zap.String("kind", kind), zap.Int("count", len(paths)))

	paths = slices.Clone(paths)
	limit := s.loadLimit
	go func() {
		var g errgroup.Group
		g.SetLimit(limit)
		for _, p := range paths {
			g.Go(func() error {
				r := load(p)
				r.kind, r.path = kind, p
				s.results <- r
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// drainLoads applies every finished load without blocking
func (s *Scene) drainLoads() {
	for {
		select {
		case r := <-s.results:
			s.finishLoad(r)
		default:
			return
		}
	}
}

// WaitLoaded blocks until no loads are pending or ctx is done
// Returns the joined load failures, or the context error
func (s *Scene) WaitLoaded(ctx context.Context) error {
	for s.pending > 0 {
		select {
		case r := <-s.results:
			s.finishLoad(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return errors.Join(s.loadErrs...)
}

func (s *Scene) finishLoad(r loadResult) {
	s.pending--
	s.statPending.Store(int64(s.pending))

	name := ResourceName(r.path)
	if r.err != nil {
		err := &LoadError{Kind: r.kind, Path: r.path, Err: r.err}
		s.loadErrs = append(s.loadErrs, err)
		s.statFailed.Add(1)
		s.logger.Warn("resource load failed", zap.String("kind", r.kind), zap.String("path", r.path), zap.Error(r.err))
		if s.onLoadError != nil {
			s.onLoadError(r.path, err)
		}
	} else {
		switch r.kind {
		case "image":
			s.images[name] = r.image
		case "sound":
			s.sounds[name] = r.sound
		}
		s.statLoaded.Add(1)
		s.logger.Debug("resource loaded", zap.String("kind", r.kind), zap.String("name", name))
	}

	if s.pending == 0 {
		s.statPhase.Store("ready")
		s.logger.Info("resources loaded", zap.Int("images", len(s.images)), zap.Int("sounds", len(s.sounds)), zap.Int("failed", len(s.loadErrs)))
		if s.onLoad != nil {
			s.onLoad(s)
		}
	}
}

// OnLoad sets the hook run each time the pending count returns to zero
func (s *Scene) OnLoad(fn func(*Scene)) {
	s.onLoad = fn
}

// OnLoadError sets the hook run for every failed load
func (s *Scene) OnLoadError(fn func(path string, err error)) {
	s.onLoadError = fn
}

// Pending returns the number of loads still in flight
func (s *Scene) Pending() int {
	return s.pending
}

// LoadErrors returns every load failure so far
func (s *Scene) LoadErrors() []error {
	return slices.Clone(s.loadErrs)
}

// Image returns a loaded image by resource name
func (s *Scene) Image(name string) (image.Image, bool) {
	img, ok := s.images[name]
	return img, ok
}

// Sound returns a loaded sound by resource name
func (s *Scene) Sound(name string) (*audio.Clip, bool) {
	c, ok := s.sounds[name]
	return c, ok
}

// ImageNames returns the loaded image names, sorted
func (s *Scene) ImageNames() []string {
	return slices.Sorted(maps.Keys(s.images))
}

// SoundNames returns the loaded sound names, sorted
func (s *Scene) SoundNames() []string {
	return slices.Sorted(maps.Keys(s.sounds))
}
