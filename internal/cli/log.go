package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polymer/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Rendered 3 files (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func installDebugHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnGenerate(_ context.Context, ev observability.GenerateEvent) {
	if ev.Err != nil {
		h.logger.Debug("generate failed", "units", ev.Units, "error", ev.Err)
		return
	}
	h.logger.Debug("generated", "units", ev.Units, "reproducible", ev.Reproducible, "duration", ev.Duration)
}

func (h logHooks) OnRender(_ context.Context, ev observability.RenderEvent) {
	if ev.Err != nil {
		h.logger.Debug("render failed", "formats", ev.Formats, "error", ev.Err)
		return
	}
	h.logger.Debug("rendered", "formats", ev.Formats, "duration", ev.Duration)
}

func (h logHooks) OnCache(_ context.Context, ev observability.CacheEvent) {
	if ev.Op == observability.CacheStore {
		h.logger.Debug("cache "+string(ev.Op), "format", ev.Format, "bytes", ev.Bytes)
		return
	}
	h.logger.Debug("cache "+string(ev.Op), "format", ev.Format)
}
