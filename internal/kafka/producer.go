package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	log     *zap.Logger
	failed  atomic.Int64
}

func NewProducer(brokers []string, topic string, buf int, log *zap.Logger) *Producer {
	p := &Producer{
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
		log:     log.With(zap.String("topic", topic)),
	}
	p.w = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion:   p.completed,
	}
	return p
}

// async batches report their outcome here
func (p *Producer) completed(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	p.failed.Add(int64(len(messages)))
	p.log.Warn("kafka batch failed", zap.Int("messages", len(messages)), zap.Error(err))
}

// Start drains the inbox into the writer until Close is called.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for m := range p.inbox {
			if err := p.w.WriteMessages(ctx, m); err != nil {
				p.failed.Add(1)
				p.log.Warn("kafka write failed", zap.Error(err))
			}
		}
		// Close flushes pending async batches
		if err := p.w.Close(); err != nil {
			p.log.Warn("kafka writer close", zap.Error(err))
		}
	}()
}

func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) {
	p.inbox <- kafka.Message{
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}
}

// Close stops accepting messages; the Start goroutine flushes the rest and exits.
func (p *Producer) Close() { close(p.inbox) }

func (p *Producer) WaitClosed() { <-p.closeCh }

// Failed is the number of messages the writer reported as not delivered.
func (p *Producer) Failed() int64 { return p.failed.Load() }
