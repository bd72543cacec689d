package shared

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInList(t *testing.T) {
	list := []string{"json", "sarif"}

	assert.True(t, IsInList("json", list))
	assert.True(t, IsInList("sarif", list))
	assert.False(t, IsInList("JSON", list))
	assert.False(t, IsInList("html", list))
	assert.False(t, IsInList("json", nil))
}

func TestForEveryWithBoundedGoroutines(t *testing.T) {
	values := make([]interface{}, 50)
	for i := range values {
		values[i] = i
	}

	var current, peak, calls int64
	var mu sync.Mutex

	ForEveryWithBoundedGoroutines(4, values, func(i int, value interface{}) {
		n := atomic.AddInt64(&current, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		atomic.AddInt64(&calls, 1)
		atomic.AddInt64(&current, -1)
	})

	assert.Equal(t, int64(50), calls)
	assert.LessOrEqual(t, peak, int64(4))
}

func TestForEveryWithBoundedGoroutinesInvalidLimit(t *testing.T) {
	var calls int64
	ForEveryWithBoundedGoroutines(0, []interface{}{1, 2, 3}, func(i int, value interface{}) {
		atomic.AddInt64(&calls, 1)
	})
	assert.Equal(t, int64(3), calls)
}
