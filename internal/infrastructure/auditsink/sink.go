// Package auditsink records audit events asynchronously. Recording never
// blocks or fails the operation being audited: events go into a bounded buffer
// drained by a background worker, and a full buffer drops the event with a
// warning rather than stalling a request.
package auditsink

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mfreita/contas/internal/domain"
	"github.com/mfreita/contas/internal/infrastructure/metrics"
)

// Writer persists one audit event.
type Writer interface {
	Write(ctx context.Context, event *domain.AuditEvent) error
}

// IDGenerator stamps events that arrive without an id.
type IDGenerator interface {
	Generate() string
}

// Config for the Sink.
type Config struct {
	Writer       Writer
	IDGen        IDGenerator
	Logger       zerolog.Logger
	Metrics      *metrics.Metrics
	BufferSize   int
	WriteTimeout time.Duration
}

// Sink is an asynchronous AuditSink backed by a Writer.
type Sink struct {
	writer       Writer
	idGen        IDGenerator
	logger       zerolog.Logger
	metrics      *metrics.Metrics
	writeTimeout time.Duration

	buf  chan *domain.AuditEvent
	stop chan struct{}
	wg   sync.WaitGroup
}

// New creates a Sink. Start must be called before events are drained.
func New(cfg Config) *Sink {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 256
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}

	return &Sink{
		writer:       cfg.Writer,
		idGen:        cfg.IDGen,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		writeTimeout: cfg.WriteTimeout,
		buf:          make(chan *domain.AuditEvent, cfg.BufferSize),
		stop:         make(chan struct{}),
	}
}

// Record queues an event for persistence. It never blocks: when the buffer is
// full the event is dropped and counted.
func (s *Sink) Record(ctx context.Context, event *domain.AuditEvent) {
	if event.ID == "" && s.idGen != nil {
		event.ID = s.idGen.Generate()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	select {
	case s.buf <- event:
	default:
		if s.metrics != nil {
			s.metrics.AuditEventsDropped.Inc()
		}
		s.logger.Warn().
			Str("action", event.Action).
			Str("entity_id", event.EntityID).
			Msg("audit buffer full, event dropped")
	}
}

// Start launches the drain worker.
func (s *Sink) Start() {
	s.wg.Add(1)
	go s.drain()
}

// Close stops the worker after flushing everything still buffered.
func (s *Sink) Close() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Sink) drain() {
	defer s.wg.Done()

	for {
		select {
		case event := <-s.buf:
			s.write(event)
		case <-s.stop:
			for {
				select {
				case event := <-s.buf:
					s.write(event)
				default:
					return
				}
			}
		}
	}
}

func (s *Sink) write(event *domain.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	if err := s.writer.Write(ctx, event); err != nil {
		s.logger.Error().Err(err).
			Str("action", event.Action).
			Str("entity_id", event.EntityID).
			Msg("audit event write failed")
		return
	}

	if s.metrics != nil {
		s.metrics.AuditEventsRecorded.WithLabelValues(event.Action).Inc()
	}
}
