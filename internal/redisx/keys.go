package redisx

import "time"

const (
	// Country mirror per run: hash datagen:{run_id}:countries -> customer_id => country
	KeyCountries = "datagen:%s:countries"

	// Run id of the most recent published mirror
	KeyLatestRun = "datagen:latest"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLCountries = 7 * 24 * time.Hour
	TTLDedup     = 48 * time.Hour
)
