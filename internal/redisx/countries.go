package redisx

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ariefcatur/go-bench-datagen/internal/dataset"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
)

const countryChunk = 1000

// PublishCountries mirrors the run's customer_id -> country lookup into a Redis hash and marks
// the run as latest. Benchmark drivers read it back to resolve a customer's country without the csv.
func PublishCountries(ctx context.Context, rdb redis.Cmdable, runID string, ds *dataset.Dataset) error {
	key := fmt.Sprintf(KeyCountries, runID)
	for _, chunk := range lo.Chunk(ds.Customers, countryChunk) {
		if _, err := rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, key, countryFields(chunk))
			return nil
		}); err != nil {
			return fmt.Errorf("hset %s: %w", key, err)
		}
	}
	_, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Expire(ctx, key, TTLCountries)
		p.Set(ctx, KeyLatestRun, runID, TTLCountries)
		return nil
	})
	return err
}

func countryFields(customers []dataset.Customer) map[string]any {
	out := make(map[string]any, len(customers))
	for _, c := range customers {
		out[strconv.Itoa(c.ID)] = c.Country
	}
	return out
}

// CountryOf reads one mirrored entry. ok is false when the run or customer is unknown.
func CountryOf(ctx context.Context, rdb redis.Cmdable, runID string, customerID int) (country string, ok bool, err error) {
	country, err = rdb.HGet(ctx, fmt.Sprintf(KeyCountries, runID), strconv.Itoa(customerID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return country, true, nil
}
