package mq

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/catalog-search/internal/config"
)

var (
	tracer  = otel.Tracer("internal/storage/mq")
	kTracer = kotel.NewTracer()
)

// ProduceMsg is one search event ready for the broker. An empty Topic uses
// the client's default topic. PartitionKey groups events of one entry point
// on the same partition.
type ProduceMsg struct {
	Topic        string
	Headers      map[string]string
	Payload      []byte
	PartitionKey *string
}

// Producer ships batches of search events.
type Producer interface {
	// ProduceBatch sends msgs and waits until each one is acknowledged or has
	// failed. It reports how many failed along with the first error.
	ProduceBatch(ctx context.Context, msgs []ProduceMsg) (int, error)
}

var (
	_ Producer = (*KafkaProducer)(nil)
)

type KafkaProducer struct {
	cl           *kgo.Client
	defaultTopic string
}

func NewKafkaProducer(ctx context.Context, cfg config.Kafka) (*KafkaProducer, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Addresses...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.AllowAutoTopicCreation(),
		kgo.WithContext(ctx),
		kgo.WithHooks(kTracer),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := cl.Ping(pingCtx); err != nil {
		cl.Close()
		return nil, fmt.Errorf("ping kafka: %w", err)
	}

	return &KafkaProducer{cl: cl, defaultTopic: cfg.Topic}, nil
}

func (p *KafkaProducer) ProduceBatch(ctx context.Context, msgs []ProduceMsg) (int, error) {
	ctx, span := tracer.Start(ctx, "KafkaProducer.ProduceBatch",
		trace.WithAttributes(
			attribute.String("topic", p.defaultTopic),
			attribute.Int("batch_size", len(msgs)),
		),
	)
	defer span.End()

	if len(msgs) == 0 {
		return 0, nil
	}

	records := make([]*kgo.Record, len(msgs))
	for i, msg := range msgs {
		records[i] = buildProduceRecord(msg)
	}

	results := p.cl.ProduceSync(ctx, records...)
	failed := countFailed(results)
	span.SetAttributes(attribute.Int("failed", failed))

	if err := results.FirstErr(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to produce search events")
		return failed, fmt.Errorf("produce %d of %d search events: %w", failed, len(msgs), err)
	}

	span.SetStatus(codes.Ok, "")
	return 0, nil
}

func countFailed(results kgo.ProduceResults) int {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	return failed
}

func (p *KafkaProducer) Close() {
	p.cl.Close()
}

func buildProduceRecord(msg ProduceMsg) *kgo.Record {
	headers := make([]kgo.RecordHeader, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kgo.RecordHeader{
			Key:   k,
			Value: []byte(v),
		})
	}

	r := &kgo.Record{
		Topic:   msg.Topic,
		Value:   msg.Payload,
		Headers: headers,
	}

	if msg.PartitionKey != nil {
		r.Key = []byte(*msg.PartitionKey)
	}

	return r
}
