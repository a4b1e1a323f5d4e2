package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrClosed     = errors.New("publisher closed")
	ErrBufferFull = errors.New("publisher buffer full")
)

const (
	maxBatch       = 100
	publishTimeout = 5 * time.Second
)

// AsyncPublisher queues events and hands them to next from a single
// goroutine, so events reach next in the order Publish accepted them.
// Publish never blocks; Close flushes the queue before closing next.
type AsyncPublisher struct {
	next  Publisher
	log   *slog.Logger
	queue chan CartEvent
	done  chan struct{}

	mu       sync.RWMutex
	closed   bool
	once     sync.Once
	closeErr error
}

func NewAsyncPublisher(next Publisher, buffer int, log *slog.Logger) *AsyncPublisher {
	p := &AsyncPublisher{
		next:  next,
		log:   log.With("component", "events"),
		queue: make(chan CartEvent, buffer),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish enqueues events. The whole call fails with ErrBufferFull if the
// queue cannot take every event; events queued before that are kept.
func (p *AsyncPublisher) Publish(_ context.Context, events ...CartEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	for _, event := range events {
		select {
		case p.queue <- event:
		default:
			return ErrBufferFull
		}
	}
	return nil
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	batch := make([]CartEvent, 0, maxBatch)
	for event := range p.queue {
		batch = append(batch[:0], event)
	fill:
		for len(batch) < maxBatch {
			select {
			case queued, ok := <-p.queue:
				if !ok {
					break fill
				}
				batch = append(batch, queued)
			default:
				break fill
			}
		}
		p.flush(batch)
	}
}

func (p *AsyncPublisher) flush(batch []CartEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.next.Publish(ctx, batch...); err != nil {
		p.log.Warn("cart events dropped", "count", len(batch), "error", err)
	}
}

// Close stops accepting events, waits for the queued ones to be handed to
// next and then closes next.
func (p *AsyncPublisher) Close() error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()

		<-p.done
		p.closeErr = p.next.Close()
	})
	return p.closeErr
}
