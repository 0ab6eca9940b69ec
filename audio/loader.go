package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/wav"
)

// Loader decodes WAV files into clips
type Loader struct{}

// LoadSound reads and fully decodes the WAV file at path
func (Loader) LoadSound(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Decode(name, f)
}

// Decode reads a WAV stream into a clip
func Decode(name string, r io.Reader) (*Clip, error) {
	s, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer s.Close()

	clip := NewClip(name, format, s)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return clip, nil
}
