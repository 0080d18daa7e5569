// Package eventlog is the bounded, best-effort telemetry sink.
package eventlog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/flappykiro/leaderboard-service/internal/models"
	"github.com/flappykiro/leaderboard-service/internal/store"
)

// DefaultCapacity bounds the log; at capacity each append evicts the oldest
// event.
const DefaultCapacity = 10000

// Log keeps telemetry events in append order, mirrored to a JSON file.
// There is no external read path; the log exists as a durability sink.
type Log struct {
	mu       sync.Mutex
	events   []models.TelemetryEvent
	file     *store.JSONFile[models.TelemetryEvent]
	capacity int
	now      func() time.Time
	tracer   trace.Tracer
}

// New loads any persisted events; missing or corrupt state starts empty.
func New(file *store.JSONFile[models.TelemetryEvent], capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l := &Log{
		file:     file,
		capacity: capacity,
		now:      time.Now,
		tracer:   otel.Tracer("eventlog"),
	}
	l.events = file.Load()
	return l
}

// Append records one event: assign the receive time, append, drop from the
// front past capacity, persist. Telemetry is best-effort, so a failed
// persist is logged and swallowed; the caller always succeeds.
func (l *Log) Append(ctx context.Context, payload map[string]any) {
	_, span := l.tracer.Start(ctx, "eventlog.append")
	defer span.End()
	span.SetAttributes(attribute.String("event_name", eventName(payload)))

	evt := models.TelemetryEvent{
		Payload:    payload,
		ReceivedAt: l.now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, evt)
	if overflow := len(l.events) - l.capacity; overflow > 0 {
		l.events = l.events[overflow:]
	}

	if err := l.file.Save(l.events); err != nil {
		span.RecordError(err)
		slog.Error("telemetry save failed", slog.String("error", err.Error()))
		return
	}
	slog.Info("telemetry event logged", slog.String("event_name", eventName(payload)))
}

// Len reports the current number of retained events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// eventName pulls a display name out of the opaque payload for logging.
// This is the only interpretation the server does on telemetry contents.
func eventName(payload map[string]any) string {
	if name, ok := payload["eventName"].(string); ok && name != "" {
		return name
	}
	return "unknown"
}
