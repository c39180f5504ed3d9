package kafka

import (
	"time"

	"github.com/ariefcatur/go-bench-datagen/internal/dataset"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

var orderHeaders = []kafka.Header{
	{Key: "x-event-type", Value: []byte(dataset.EventOrderGenerated)},
	{Key: "x-event-version", Value: []byte("1")},
}

// PublishOrders queues one OrderGenerated event per order, keyed by customer_id.
func PublishOrders(p *Producer, runID, producer string, orders []dataset.Order) {
	for _, o := range orders {
		ev := NewOrderEvent(runID, producer, o, time.Now().UTC())
		p.Publish(dataset.PartitionKey(o.CustomerID), MustMarshal(ev), orderHeaders...)
	}
}

func NewOrderEvent(runID, producer string, o dataset.Order, at time.Time) dataset.Envelope {
	return dataset.Envelope{
		EventID:      uuid.NewString(),
		EventType:    dataset.EventOrderGenerated,
		EventVersion: 1,
		OccurredAt:   at,
		Producer:     producer,
		RunID:        runID,
		Payload:      MustMarshal(dataset.NewOrderGeneratedPayload(o)),
	}
}
