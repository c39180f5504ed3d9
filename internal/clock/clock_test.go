package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake(t *testing.T) {
	start := time.Date(2024, 12, 31, 23, 0, 0, 0, time.FixedZone("X", 3600))
	c := NewFake(start)
	assert.Equal(t, time.UTC, c.Now().Location())
	assert.True(t, c.Now().Equal(start))

	c.Advance(2 * time.Hour)
	assert.True(t, c.Now().Equal(start.Add(2*time.Hour)))
}
