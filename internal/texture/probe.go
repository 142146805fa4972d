package texture

import (
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	// Atlas formats accepted by ProbeSize.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"go.uber.org/zap"

	"github.com/Faultbox/blockyimport/internal/logger"
	"github.com/Faultbox/blockyimport/internal/uvmap"
)

// Info describes a probed texture.
type Info struct {
	Size   uvmap.TextureSize
	Format string // As registered with package image, e.g. "png" or "tga"
}

// ProbeSize reads only the image header at path.
func ProbeSize(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("opening texture %s: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("reading texture %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("texture %s has empty size %dx%d", path, cfg.Width, cfg.Height)
	}
	return Info{
		Size:   uvmap.TextureSize{Width: float32(cfg.Width), Height: float32(cfg.Height)},
		Format: format,
	}, nil
}

type cacheEntry struct {
	info    Info
	modTime time.Time
	size    int64
}

// Prober caches probe results per path. An entry is reused while the file's
// modification time and size are unchanged, so repeated imports from the
// watcher only reopen textures that were edited.
type Prober struct {
	entries map[string]cacheEntry
	mu      sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewProber creates a prober with an empty cache.
func NewProber() *Prober {
	return &Prober{entries: make(map[string]cacheEntry)}
}

// Probe returns the texture info for path, from cache when still valid.
func (p *Prober) Probe(path string) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("opening texture %s: %w", path, err)
	}

	p.mu.Lock()
	e, ok := p.entries[path]
	if ok && e.modTime.Equal(st.ModTime()) && e.size == st.Size() {
		p.hits++
		p.mu.Unlock()
		return e.info, nil
	}
	p.misses++
	p.mu.Unlock()

	info, err := ProbeSize(path)
	if err != nil {
		return Info{}, err
	}
	logger.Debug("probed texture",
		zap.String("path", path),
		zap.String("format", info.Format),
		zap.Float32("width", info.Size.Width),
		zap.Float32("height", info.Size.Height))

	p.mu.Lock()
	p.entries[path] = cacheEntry{info: info, modTime: st.ModTime(), size: st.Size()}
	p.mu.Unlock()
	return info, nil
}

// Clear drops all cached entries and statistics.
func (p *Prober) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = make(map[string]cacheEntry)
	p.hits = 0
	p.misses = 0
}

// Stats returns cache statistics.
func (p *Prober) Stats() (hits, misses int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses
}
