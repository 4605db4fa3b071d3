package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimiterDisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("client"))
	}
}

func TestLimiterBurstExhaustion(t *testing.T) {
	l := NewLimiter(Config{Enabled: true, PerMinute: 60, Burst: 3})
	defer l.Stop()

	assert.True(t, l.Allow("client"))
	assert.True(t, l.Allow("client"))
	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))
}

func TestLimiterIsolatesClients(t *testing.T) {
	l := NewLimiter(Config{Enabled: true, PerMinute: 60, Burst: 1})
	defer l.Stop()

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestLimiterBurstDefaultsToPerMinute(t *testing.T) {
	l := NewLimiter(Config{Enabled: true, PerMinute: 5})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("client"))
	}
	assert.False(t, l.Allow("client"))
}
