package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/tuanvumaihuynh/catalog-search/internal/config"
	"github.com/tuanvumaihuynh/catalog-search/internal/storage/mq"
	"github.com/tuanvumaihuynh/catalog-search/pkg/msgheader"
	"github.com/tuanvumaihuynh/catalog-search/pkg/ptr"
)

var _ Publisher = (*Relay)(nil)

// Relay buffers search events and produces them to Kafka in batches from a
// background loop, so the request path never waits on the broker.
type Relay struct {
	cfg        config.Relay
	topic      string
	logger     *slog.Logger
	mqProducer mq.Producer

	queue    chan mq.ProduceMsg
	stopChan chan struct{}
}

func NewRelay(
	cfg config.Relay,
	topic string,
	logger *slog.Logger,
	mqProducer mq.Producer,
) *Relay {
	return &Relay{
		cfg:        cfg,
		topic:      topic,
		logger:     logger.With(slog.String("service", "relay")),
		mqProducer: mqProducer,
		queue:      make(chan mq.ProduceMsg, max(cfg.QueueSize, 1)),
		stopChan:   make(chan struct{}),
	}
}

// Publish enqueues ev. When the queue is full the event is dropped.
func (r *Relay) Publish(ctx context.Context, ev SearchPerformedEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		r.logger.ErrorContext(ctx, "error marshalling search event", slog.Any("error", err))
		return
	}

	msg := mq.ProduceMsg{
		Topic:        r.topic,
		Headers:      msgheader.Build(ctx),
		Payload:      payload,
		PartitionKey: ptr.New(ev.Entrypoint),
	}

	select {
	case r.queue <- msg:
	default:
		r.logger.WarnContext(ctx, "search event queue is full, dropping event",
			slog.String("search_id", ev.SearchID),
		)
	}
}

type CleanupFunc func()

// Run starts the relay loop. The returned cleanup flushes what is queued and
// stops the loop, giving up after five seconds.
func (r *Relay) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		r.run(ctx)
	}()

	return func() {
		close(r.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
			<-stoppedChan
		}
	}
}

func (r *Relay) run(ctx context.Context) {
	interval := r.cfg.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			for r.flush(ctx) > 0 {
			}
			return
		case <-ticker.C:
			r.flush(ctx)
		}
	}
}

// flush produces up to one batch of queued messages and reports how many it
// took from the queue.
func (r *Relay) flush(ctx context.Context) int {
	batch := r.drain(max(r.cfg.BatchSize, 1))
	if len(batch) == 0 {
		return 0
	}

	r.logger.DebugContext(ctx, "relaying search events", slog.Int("count", len(batch)))

	if failed, err := r.mqProducer.ProduceBatch(ctx, batch); err != nil {
		r.logger.ErrorContext(ctx,
			"error producing search events",
			slog.String("topic", r.topic),
			slog.Int("failed", failed),
			slog.Int("count", len(batch)),
			slog.Any("error", err),
		)
	}

	return len(batch)
}

func (r *Relay) drain(n int) []mq.ProduceMsg {
	batch := make([]mq.ProduceMsg, 0, n)
	for len(batch) < n {
		select {
		case msg := <-r.queue:
			batch = append(batch, msg)
		default:
			return batch
		}
	}
	return batch
}
