package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const batchSize = 50

// dbSink owns the buffer and flush loop shared by a DBHandler and every
// handler derived from it with WithAttrs or WithGroup.
type dbSink struct {
	db       *gorm.DB
	mu       sync.Mutex
	buffer   []models.SystemLog
	ticker   *time.Ticker
	flushReq chan struct{}
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// DBHandler is an slog.Handler that batches ERROR+ logs into system_logs.
type DBHandler struct {
	sink   *dbSink
	attrs  []slog.Attr
	prefix string
}

func NewDBHandler(db *gorm.DB, interval time.Duration) *DBHandler {
	s := &dbSink{
		db:       db,
		buffer:   make([]models.SystemLog, 0, batchSize),
		ticker:   time.NewTicker(interval),
		flushReq: make(chan struct{}, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go s.flushLoop()
	return &DBHandler{sink: s}
}

// flushLoop is the only goroutine that writes to the database.
func (s *dbSink) flushLoop() {
	defer close(s.stopped)
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.flushReq:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *dbSink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, batchSize)
	s.mu.Unlock()

	if err := s.db.CreateInBatches(batch, batchSize).Error; err != nil {
		// Must not go through slog.Error, which would loop back here.
		slog.Warn("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

func (s *dbSink) add(entry models.SystemLog) {
	s.mu.Lock()
	s.buffer = append(s.buffer, entry)
	full := len(s.buffer) >= batchSize
	s.mu.Unlock()

	if full {
		select {
		case s.flushReq <- struct{}{}:
		default:
		}
	}
}

// Stop flushes pending records and waits for the flush loop to exit. No
// database writes happen after Stop returns.
func (h *DBHandler) Stop() {
	h.sink.stopOnce.Do(func() {
		h.sink.ticker.Stop()
		close(h.sink.done)
	})
	<-h.sink.stopped
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	for _, a := range h.attrs {
		h.apply(&entry, extra, a, "")
	}
	record.Attrs(func(a slog.Attr) bool {
		h.apply(&entry, extra, a, h.prefix)
		return true
	})

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.sink.add(entry)
	return nil
}

// apply maps well-known top-level keys onto columns and everything else,
// including grouped keys, into extra.
func (h *DBHandler) apply(entry *models.SystemLog, extra map[string]interface{}, a slog.Attr, prefix string) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.apply(entry, extra, ga, groupPrefix)
		}
		return
	}

	if prefix == "" {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
			return
		case "step":
			entry.Step = a.Value.String()
			return
		case "report_id":
			if a.Value.Kind() == slog.KindUint64 {
				id := uint(a.Value.Uint64())
				entry.ReportID = &id
				return
			}
		case "error":
			entry.Error = a.Value.String()
			return
		}
	}
	extra[prefix+a.Key] = a.Value.Any()
}

func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a = slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
		}
		merged = append(merged, a)
	}
	return &DBHandler{sink: h.sink, attrs: merged, prefix: h.prefix}
}

func (h *DBHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &DBHandler{sink: h.sink, attrs: h.attrs, prefix: h.prefix + name + "."}
}
