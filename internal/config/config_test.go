package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 15000, cfg.Customers)
	assert.Equal(t, 150000, cfg.Orders)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, int32(8), cfg.PostgresMaxConns)
	assert.Equal(t, "datagen", cfg.ServiceName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATAGEN_CUSTOMERS", "3")
	t.Setenv("DATAGEN_ORDERS", "5")
	t.Setenv("DATAGEN_SEED", "1234")
	t.Setenv("DATAGEN_OUTPUT_DIR", "/tmp/bench")
	t.Setenv("KAFKA_BROKERS", " k1:9092, ,k2:9092 ")

	cfg := Load()
	assert.Equal(t, 3, cfg.Customers)
	assert.Equal(t, 5, cfg.Orders)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, "/tmp/bench", cfg.OutputDir)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestSplitCSV(t *testing.T) {
	assert.Empty(t, splitCSV(""))
	assert.Equal(t, []string{"a", "b"}, splitCSV("a,,b,"))
}
