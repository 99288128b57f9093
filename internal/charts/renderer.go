package charts

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/2beens/hrvreport/internal/telemetry/tracing"
	"github.com/2beens/hrvreport/pkg"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	KindOverview = "overview"
	KindRadar    = "radar"
	KindTriangle = "triangle"
)

// Result describes one rendered comparison chart.
type Result struct {
	Path string
	// global levels absent from the reference table, their bands were skipped
	MissingLevels []string
	// set when the thresholds are not ordered, bands are drawn anyway
	OrderingViolation error
	Cached            bool
}

// Degraded reports whether the threshold bands were left out.
func (r *Result) Degraded() bool {
	return len(r.MissingLevels) > 0
}

// Renderer writes chart images. All output is deterministic, so a rendered
// image can be served from the cache when the exact same inputs come again.
type Renderer struct {
	cache *freecache.Cache

	// OverviewTitle is drawn above the overview chart, DefaultOverviewTitle when empty.
	OverviewTitle string
}

// MinCacheSize is the smallest chart cache that can hold a radar image:
// freecache refuses entries larger than 1/1024 of its size.
const MinCacheSize = 256 * 1024 * 1024

// NewRenderer creates a renderer with a chart cache of cacheSize bytes,
// raised to MinCacheSize when smaller. A cacheSize of zero disables caching.
func NewRenderer(cacheSize int) *Renderer {
	r := &Renderer{}
	if cacheSize <= 0 {
		return r
	}
	if cacheSize < MinCacheSize {
		log.Warnf("chart cache size %d too small to hold a chart, using %d", cacheSize, MinCacheSize)
		cacheSize = MinCacheSize
	}
	r.cache = freecache.NewCache(cacheSize)
	return r
}

func (r *Renderer) overviewTitle() string {
	if r.OverviewTitle == "" {
		return DefaultOverviewTitle
	}
	return r.OverviewTitle
}

// CacheHitCount is the number of images served from the cache so far.
func (r *Renderer) CacheHitCount() int64 {
	if r.cache == nil {
		return 0
	}
	return r.cache.HitCount()
}

type cacheKey struct {
	buf bytes.Buffer
}

func newCacheKey(kind string) *cacheKey {
	k := &cacheKey{}
	k.str(kind)
	return k
}

func (k *cacheKey) str(s string) *cacheKey {
	k.buf.WriteString(strconv.Itoa(len(s)))
	k.buf.WriteByte(':')
	k.buf.WriteString(s)
	return k
}

func (k *cacheKey) num(v float64) *cacheKey {
	k.buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	k.buf.WriteByte(';')
	return k
}

func (k *cacheKey) sum() []byte {
	s := sha256.Sum256(k.buf.Bytes())
	return s[:]
}

// produce returns the image bytes for key, drawing them on a cache miss, and
// writes them to path atomically.
func (r *Renderer) produce(ctx context.Context, kind string, key *cacheKey, path string, draw func(w io.Writer) error) (cached bool, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "charts."+kind+".produce")
	defer func() {
		span.SetAttributes(attribute.Bool("chart.cached", cached))
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if path == "" {
		return false, errors.New("chart output path is empty")
	}

	var keyBytes []byte
	var image []byte
	if r.cache != nil {
		keyBytes = key.sum()
		if b, getErr := r.cache.Get(keyBytes); getErr == nil {
			image = b
			cached = true
		}
	}

	if image == nil {
		var buf bytes.Buffer
		if err := draw(&buf); err != nil {
			return false, fmt.Errorf("render %s chart: %w", kind, err)
		}
		image = buf.Bytes()
		if r.cache != nil {
			if setErr := r.cache.Set(keyBytes, image, 0); setErr != nil {
				log.Debugf("%s chart not cached: %s", kind, setErr)
			}
		}
	}

	err = pkg.WriteFileAtomic(path, func(f *os.File) error {
		_, writeErr := f.Write(image)
		return writeErr
	})
	if err != nil {
		return cached, fmt.Errorf("write %s chart: %w", kind, err)
	}

	log.Tracef("%s chart written to %s (cached: %t)", kind, path, cached)
	return cached, nil
}
