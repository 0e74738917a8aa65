package disk

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-encdetect/internal/interfaces"
	"github.com/deploymenttheory/go-encdetect/internal/types"
)

// cacheChunkSize is the granularity of the read cache. Detection probes
// cluster around volume starts, so caching aligned chunks turns repeated
// probes of the same region into memory reads.
const cacheChunkSize = 65536

// ImageConfig holds configuration for raw image handling and the
// detection tunables exposed to operators.
type ImageConfig struct {
	WindowSize       int     `mapstructure:"window_size"`
	EntropyThreshold float64 `mapstructure:"entropy_threshold"`
	ScanStride       int64   `mapstructure:"scan_stride"`
	CacheEnabled     bool    `mapstructure:"cache_enabled"`
	CacheSize        int     `mapstructure:"cache_size"`
	SegmentDetection bool    `mapstructure:"segment_detection"`
}

// LoadImageConfig loads image configuration using Viper. Missing config
// files are fine; defaults apply and the ENCDETECT_* environment overrides
// them.
func LoadImageConfig() (*ImageConfig, error) {
	v := viper.New()
	v.SetConfigName("encdetect-config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.encdetect")
	v.AddConfigPath("/etc/encdetect")

	v.SetDefault("window_size", types.DefaultWindowSize)
	v.SetDefault("entropy_threshold", types.DefaultEntropyThreshold)
	v.SetDefault("scan_stride", int64(1024*1024))
	v.SetDefault("cache_enabled", true)
	v.SetDefault("cache_size", 64)
	v.SetDefault("segment_detection", true)

	v.SetEnvPrefix("ENCDETECT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config ImageConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// ImageStatistics is a snapshot of access counters for a RawImage.
type ImageStatistics struct {
	ReadsCompleted int64
	BytesRead      int64
	CacheHits      int64
	CacheMisses    int64
	SegmentCount   int
}

// segment is one file of a possibly split raw image, placed at start
// within the combined address space.
type segment struct {
	file  *os.File
	start int64
	size  int64
}

// RawImage provides byte-addressable access to a raw (dd-style) forensic
// image, either a single file or a numbered segment series (.001, .002,
// ...). Reads are safe for concurrent use.
type RawImage struct {
	path     string
	segments []segment
	size     int64

	cacheEnabled     bool
	maxCacheSize     int64
	currentCacheSize int64
	chunkCache       map[int64][]byte
	cacheMutex       sync.RWMutex

	statsMutex  sync.Mutex
	reads       int64
	bytesRead   int64
	cacheHits   int64
	cacheMisses int64
}

// Ensure interface compliance
var _ interfaces.ImageReader = (*RawImage)(nil)

// OpenImage opens a raw image for reading. When segment detection is on
// and the path names the first segment of a split image, the remaining
// numbered segments are opened and stitched into one address space.
func OpenImage(path string, config *ImageConfig) (*RawImage, error) {
	if config == nil {
		loaded, err := LoadImageConfig()
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	paths := []string{path}
	if config.SegmentDetection {
		paths = segmentPaths(path)
	}

	image := &RawImage{
		path:         path,
		cacheEnabled: config.CacheEnabled,
		maxCacheSize: int64(config.CacheSize) * 1024 * 1024,
		chunkCache:   make(map[int64][]byte),
	}

	for _, p := range paths {
		file, err := os.Open(p)
		if err != nil {
			image.Close()
			return nil, fmt.Errorf("failed to open image segment %s: %w", p, err)
		}
		stat, err := file.Stat()
		if err != nil {
			file.Close()
			image.Close()
			return nil, fmt.Errorf("failed to stat image segment %s: %w", p, err)
		}
		image.segments = append(image.segments, segment{
			file:  file,
			start: image.size,
			size:  stat.Size(),
		})
		image.size += stat.Size()
	}

	return image, nil
}

// segmentPaths expands the first file of a split image into the full
// ordered segment list. Anything not named *.001 is a single-file image.
func segmentPaths(path string) []string {
	if !strings.HasSuffix(path, ".001") {
		return []string{path}
	}

	base := strings.TrimSuffix(path, ".001")
	paths := []string{path}
	for i := 2; ; i++ {
		next := fmt.Sprintf("%s.%03d", base, i)
		if _, err := os.Stat(next); err != nil {
			break
		}
		paths = append(paths, next)
	}
	return paths
}

// Size returns the total number of addressable bytes across all segments.
func (r *RawImage) Size() uint64 {
	return uint64(r.size)
}

// SegmentCount returns the number of files backing the image.
func (r *RawImage) SegmentCount() int {
	return len(r.segments)
}

// Path returns the path the image was opened with.
func (r *RawImage) Path() string {
	return r.path
}

// ReadAt reads len(p) bytes at the absolute offset off, following
// io.ReaderAt semantics: a read reaching the end of the image returns the
// bytes that exist together with io.EOF.
func (r *RawImage) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	if off >= r.size {
		return 0, io.EOF
	}

	want := len(p)
	if off+int64(want) > r.size {
		want = int(r.size - off)
	}

	read := 0
	for read < want {
		pos := off + int64(read)
		chunk, err := r.chunk(pos / cacheChunkSize)
		if err != nil {
			return read, err
		}
		read += copy(p[read:want], chunk[pos%cacheChunkSize:])
	}

	r.statsMutex.Lock()
	r.reads++
	r.bytesRead += int64(read)
	r.statsMutex.Unlock()

	if read < len(p) {
		return read, io.EOF
	}
	return read, nil
}

// chunk returns the cache-aligned chunk with the given index, reading it
// from the backing segments on a miss.
func (r *RawImage) chunk(index int64) ([]byte, error) {
	if r.cacheEnabled {
		r.cacheMutex.RLock()
		cached, ok := r.chunkCache[index]
		r.cacheMutex.RUnlock()
		if ok {
			r.statsMutex.Lock()
			r.cacheHits++
			r.statsMutex.Unlock()
			return cached, nil
		}
	}

	start := index * cacheChunkSize
	length := int64(cacheChunkSize)
	if start+length > r.size {
		length = r.size - start
	}
	if length <= 0 {
		return nil, io.EOF
	}

	buf := make([]byte, length)
	if err := r.readRaw(buf, start); err != nil {
		return nil, err
	}

	if r.cacheEnabled {
		r.cacheMutex.Lock()
		if r.currentCacheSize+length <= r.maxCacheSize {
			r.chunkCache[index] = buf
			r.currentCacheSize += length
		}
		r.cacheMutex.Unlock()
		r.statsMutex.Lock()
		r.cacheMisses++
		r.statsMutex.Unlock()
	}

	return buf, nil
}

// readRaw fills p from the segment files starting at the absolute offset
// off. The caller guarantees the range lies inside the image.
func (r *RawImage) readRaw(p []byte, off int64) error {
	for len(p) > 0 {
		seg := r.segmentAt(off)
		if seg == nil {
			return fmt.Errorf("offset %d outside image address space", off)
		}

		local := off - seg.start
		n := int64(len(p))
		if avail := seg.size - local; n > avail {
			n = avail
		}

		m, err := seg.file.ReadAt(p[:n], local)
		if err != nil && (err != io.EOF || int64(m) < n) {
			return fmt.Errorf("failed to read %d bytes at segment offset %d: %w", n, local, err)
		}

		p = p[n:]
		off += n
	}
	return nil
}

// segmentAt returns the segment containing the absolute offset, or nil.
func (r *RawImage) segmentAt(off int64) *segment {
	for i := range r.segments {
		s := &r.segments[i]
		if off >= s.start && off < s.start+s.size {
			return s
		}
	}
	return nil
}

// Statistics returns a snapshot of the access counters.
func (r *RawImage) Statistics() ImageStatistics {
	r.statsMutex.Lock()
	defer r.statsMutex.Unlock()
	return ImageStatistics{
		ReadsCompleted: r.reads,
		BytesRead:      r.bytesRead,
		CacheHits:      r.cacheHits,
		CacheMisses:    r.cacheMisses,
		SegmentCount:   len(r.segments),
	}
}

// Close releases all backing segment files.
func (r *RawImage) Close() error {
	var firstErr error
	for _, s := range r.segments {
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.segments = nil
	return firstErr
}
