package ggsurface

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

// Loader decodes PNG, JPEG and WebP files for engine.Scene
type Loader struct{}

// Sprite is a decoded image that keeps its gg buffer for fast redraws
type Sprite struct {
	image.Image
	buf *gg.ImageBuf
}

func (s *Sprite) ImageBuf() *gg.ImageBuf { return s.buf }

// LoadImage implements engine.ImageLoader
func (Loader) LoadImage(path string) (image.Image, error) {
	buf, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return &Sprite{Image: buf.ToStdImage(), buf: buf}, nil
}
