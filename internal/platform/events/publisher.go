package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/segmentio/kafka-go"
)

// Topics published by the scoring engine and the progress ledger.
const (
	TopicPerformanceRecalculated = "performance.recalculated"
	TopicGoalProgress            = "goals.progress"
)

// Publisher writes domain events to Kafka, lazily managing one writer per
// topic. A Publisher built with no brokers is disabled and drops every
// publish, so callers never need to branch on configuration.
type Publisher struct {
	brokers []string
	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

func New(brokers []string) *Publisher {
	return &Publisher{
		brokers: brokers,
		writers: make(map[string]*kafka.Writer),
	}
}

func (p *Publisher) Enabled() bool {
	return p != nil && len(p.brokers) > 0
}

// Publish marshals payload as JSON and writes it to topic under key.
// Disabled publishers return nil.
func (p *Publisher) Publish(ctx context.Context, topic, key string, payload any) error {
	if !p.Enabled() {
		return nil
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	writer := p.writerForTopic(topic)
	return writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value})
}

func (p *Publisher) writerForTopic(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		Async:        false,
	}
	p.writers[topic] = writer
	return writer
}

// Close releases all writers.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}
