package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/ariefcatur/go-bench-datagen/internal/dataset"
	kafkax "github.com/ariefcatur/go-bench-datagen/internal/kafka"
	"github.com/ariefcatur/go-bench-datagen/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Verdict int

const (
	VerdictOK Verdict = iota
	VerdictUnknownCustomer
	VerdictCountryMismatch
)

func (v Verdict) String() string {
	switch v {
	case VerdictOK:
		return "ok"
	case VerdictUnknownCustomer:
		return "unknown_customer"
	case VerdictCountryMismatch:
		return "country_mismatch"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// Check compares an order event with the country mirrored for its customer.
func Check(p dataset.OrderGeneratedPayload, mirrored string, found bool) Verdict {
	switch {
	case !found:
		return VerdictUnknownCustomer
	case p.Country != mirrored:
		return VerdictCountryMismatch
	}
	return VerdictOK
}

type Stats struct {
	Checked    int64
	Unknown    int64
	Mismatched int64
}

// Service consumes OrderGenerated events and checks each against the run's Redis country mirror.
type Service struct {
	Redis       redis.Cmdable
	ServiceName string
	Log         *zap.Logger

	checked, unknown, mismatched atomic.Int64
}

func (s *Service) HandleOrderGenerated(ctx context.Context, m kafkago.Message) error {
	var env dataset.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != dataset.EventOrderGenerated {
		return nil
	}

	// at-least-once delivery: skip events already seen
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	fresh, err := s.Redis.SetNX(ctx, dkey, "1", redisx.TTLDedup).Result()
	if err != nil {
		return err
	}
	if !fresh {
		return nil
	}

	if err := s.check(ctx, env); err != nil {
		// release the claim so the redelivered event is checked again
		if derr := s.Redis.Del(context.WithoutCancel(ctx), dkey).Err(); derr != nil {
			s.Log.Warn("release dedup key", zap.String("key", dkey), zap.Error(derr))
		}
		return err
	}
	return nil
}

func (s *Service) check(ctx context.Context, env dataset.Envelope) error {
	p, err := kafkax.UnwrapPayload[dataset.OrderGeneratedPayload](env.Payload)
	if err != nil {
		return err
	}
	mirrored, found, err := redisx.CountryOf(ctx, s.Redis, env.RunID, p.CustomerID)
	if err != nil {
		return err
	}
	s.record(env.RunID, p, Check(p, mirrored, found), mirrored)
	return nil
}

func (s *Service) record(runID string, p dataset.OrderGeneratedPayload, v Verdict, mirrored string) {
	s.checked.Add(1)
	switch v {
	case VerdictOK:
		return
	case VerdictUnknownCustomer:
		s.unknown.Add(1)
	case VerdictCountryMismatch:
		s.mismatched.Add(1)
	}
	s.Log.Warn("order failed audit",
		zap.String("run_id", runID),
		zap.Int("order_id", p.OrderID),
		zap.Int("customer_id", p.CustomerID),
		zap.String("country", p.Country),
		zap.String("mirrored_country", mirrored),
		zap.Stringer("verdict", v),
	)
}

func (s *Service) Stats() Stats {
	return Stats{Checked: s.checked.Load(), Unknown: s.unknown.Load(), Mismatched: s.mismatched.Load()}
}
