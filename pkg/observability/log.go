package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline and cache events to a logger at debug level.
// Failed stages are logged as warnings.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, records int) {
	h.logger.Debug("layout started", "records", records)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, s LayoutStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("layout complete",
		"events", s.Events,
		"bands", s.Bands,
		"storylines", s.Storylines,
		"excluded", s.Excluded,
		"duration", d)
}

func (h *LogHooks) OnGeometryComplete(_ context.Context, domain int, padding float64, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("geometry failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("geometry complete", "slices", domain, "padding", padding, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, vizType string, formats []string) {
	h.logger.Debug("render started", "viz", vizType, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, vizType string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "viz", vizType, "error", err, "duration", d)
		return
	}
	h.logger.Debug("render complete", "viz", vizType, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, format string) {
	h.logger.Debug("cache hit", "format", format)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, format string) {
	h.logger.Debug("cache miss", "format", format)
}

func (h *LogHooks) OnCacheSet(_ context.Context, format string, size int) {
	h.logger.Debug("cache set", "format", format, "bytes", size)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
