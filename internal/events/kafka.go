package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	DefaultTopic = "storefront-events"

	defaultBuffer = 256
	writeTimeout  = 5 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher queues events in memory and writes them from a single
// background goroutine. Events are dropped, and logged, when the queue is
// full.
type KafkaPublisher struct {
	writer messageWriter
	log    *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	wg     sync.WaitGroup
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, defaultBuffer, log)
}

func newKafkaPublisher(w messageWriter, buffer int, log *zap.Logger) *KafkaPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	p := &KafkaPublisher{
		writer: w,
		log:    log,
		queue:  make(chan Event, buffer),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

func (p *KafkaPublisher) Publish(_ context.Context, e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.log.Debug("event dropped, publisher closed", zap.String("type", e.Type))
		return
	}
	select {
	case p.queue <- e:
	default:
		p.log.Warn("event dropped, queue full", zap.String("type", e.Type), zap.String("id", e.ID))
	}
}

func (p *KafkaPublisher) run() {
	defer p.wg.Done()
	for e := range p.queue {
		p.write(e)
	}
}

func (p *KafkaPublisher) write(e Event) {
	value, err := json.Marshal(e)
	if err != nil {
		p.log.Error("failed to marshal event", zap.String("type", e.Type), zap.Error(err))
		return
	}
	msg := kafka.Message{
		Key:   []byte(e.Session), // keeps a session's events ordered
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warn("failed to publish event", zap.String("type", e.Type), zap.String("id", e.ID), zap.Error(err))
	}
}

// Close flushes queued events and closes the writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	return p.writer.Close()
}
