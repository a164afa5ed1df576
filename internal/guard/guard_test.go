package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d should be allowed", i+1)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	rl.Allow("1.2.3.4")
	rl.Allow("1.2.3.4")

	assert.False(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiter_EvictsIdleKeys(t *testing.T) {
	rl := NewRateLimiter(5, 10*time.Millisecond)

	assert.True(t, rl.Allow("1.2.3.4"))

	time.Sleep(25 * time.Millisecond)

	// A hit from another key triggers the sweep; the idle key's window
	// must no longer be tracked.
	assert.True(t, rl.Allow("5.6.7.8"))

	rl.mu.Lock()
	_, tracked := rl.windows["1.2.3.4"]
	rl.mu.Unlock()
	assert.False(t, tracked)
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(30 * time.Millisecond)

	assert.True(t, rl.Allow("1.2.3.4"))
}
