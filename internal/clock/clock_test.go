package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("EET", 2*3600))
	c := NewFixed(at)

	assert.Equal(t, at.UTC(), c.Now())
	assert.Equal(t, c.Now(), c.Now())
	assert.Equal(t, time.UTC, c.Now().Location())
}

func TestSystem(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)
	now := NewSystem().Now()

	assert.True(t, now.After(before))
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
}
