package capture

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/aimsight/pkg/logger"
	"github.com/okian/aimsight/pkg/metrics"
)

// Default producer configuration constants.
const (
	defaultTargetFPS     = 30
	grabErrorPause       = 100 * time.Millisecond
	producerStopTimeout  = 5 * time.Second
	errorChannelCapacity = 16
)

// Source supplies image buffers. The producer owns its source exclusively;
// a Source must not be shared across producers.
type Source interface {
	// Grab returns the next frame. Implementations may block briefly
	// (e.g. waiting on a capture handle) and must honor ctx.
	Grab(ctx context.Context) (*Frame, error)
}

// Producer runs the continuous capture loop: grab from the source at the
// target rate, publish into the slot. Grab failures are logged, counted,
// reported on Errors, and the loop continues after a brief pause; a
// single bad frame never stops the session.
type Producer struct {
	source    Source
	slot      *Slot
	limiter   *rate.Limiter
	targetFPS int

	frames atomic.Uint64
	errs   chan error

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// ProducerOption applies a configuration option to the Producer.
type ProducerOption func(*Producer)

// WithTargetFPS sets the frame rate the producer paces itself to.
func WithTargetFPS(fps int) ProducerOption {
	return func(p *Producer) {
		if fps > 0 {
			p.targetFPS = fps
		}
	}
}

// WithProducerLogger sets a custom logger for the producer.
func WithProducerLogger(log logger.Logger) ProducerOption {
	return func(p *Producer) {
		if log != nil {
			p.logger = log
		}
	}
}

// NewProducer creates a producer publishing frames from source into slot.
func NewProducer(source Source, slot *Slot, opts ...ProducerOption) *Producer {
	p := &Producer{
		source:    source,
		slot:      slot,
		targetFPS: defaultTargetFPS,
		errs:      make(chan error, errorChannelCapacity),
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("capture"),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.limiter = rate.NewLimiter(rate.Limit(p.targetFPS), 1)

	return p
}

// Errors exposes grab failures to the owner, which decides whether to
// surface or restart. The channel is never closed.
func (p *Producer) Errors() <-chan error {
	return p.errs
}

// Frames returns the number of frames published so far.
func (p *Producer) Frames() uint64 {
	return p.frames.Load()
}

// Run executes the capture loop until ctx is canceled or Shutdown is
// called. It assigns sequence numbers in publish order.
func (p *Producer) Run(ctx context.Context) {
	defer close(p.done)

	p.logger.Info(ctx, "capture producer started", logger.Int("targetFPS", p.targetFPS))

	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		default:
		}

		if err := p.limiter.Wait(ctx); err != nil {
			return
		}

		frame, err := p.source.Grab(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			metrics.RecordCaptureError()
			p.logger.Warn(ctx, "frame grab failed", logger.Error(err))
			select {
			case p.errs <- err:
			default:
				// Owner is not draining; drop the report rather than block.
			}
			time.Sleep(grabErrorPause)
			continue
		}
		if frame == nil {
			// A missing frame is a no-op; the consumer simply sees no
			// new frame this tick.
			continue
		}

		seq++
		frame.Seq = seq
		p.slot.Publish(frame)
		p.frames.Add(1)
		metrics.RecordFrameCaptured()
	}
}

// Shutdown stops the capture loop cooperatively: signal, then wait for the
// loop to exit, logging rather than failing if it does not stop promptly.
func (p *Producer) Shutdown(ctx context.Context) error {
	select {
	case <-p.shutdown:
		// Already signaled.
	default:
		close(p.shutdown)
	}

	select {
	case <-p.done:
		p.logger.Info(ctx, "capture producer stopped", logger.Int64("frames", int64(p.frames.Load())))
		return nil
	case <-time.After(producerStopTimeout):
		p.logger.Warn(ctx, "capture producer did not stop promptly")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
