package resource

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	// Test with limit
	c := NewController(Config{MemoryLimitBytes: 100})

	// Acquire 50
	err := c.AcquireMemory(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.MemoryUsage())

	// Acquire 40
	err = c.AcquireMemory(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// TryAcquire 20 (should fail)
	ok := c.TryAcquireMemory(20)
	assert.False(t, ok)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Acquire 20 (should block/timeout)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = c.AcquireMemory(ctx, 20)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Release 50
	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	// Now Acquire 20 should succeed
	err = c.AcquireMemory(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(60), c.MemoryUsage())
}

func TestController_Reserve(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: VectorBytes(10, 2)})

	release, err := c.Reserve(VectorBytes(8, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(128), c.MemoryUsage())

	_, err = c.Reserve(VectorBytes(4, 2))
	assert.ErrorIs(t, err, ErrMemoryLimit)

	release()
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 0})

	err := c.AcquireMemory(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	release, err := c.Reserve(1 << 40)
	require.NoError(t, err)
	release()
	require.NoError(t, c.AcquireLoad(context.Background()))
	c.ReleaseLoad()
	require.NoError(t, c.AcquireIO(context.Background(), 1<<20))
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_Loads(t *testing.T) {
	c := NewController(Config{MaxConcurrentLoads: 2})

	// Acquire 2
	require.NoError(t, c.AcquireLoad(context.Background()))
	require.NoError(t, c.AcquireLoad(context.Background()))

	// Try 3rd
	assert.False(t, c.TryAcquireLoad())

	// Release 1
	c.ReleaseLoad()

	// Try 3rd again
	assert.True(t, c.TryAcquireLoad())
}

func TestRateLimitedReader(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	src := strings.Repeat("1,2,3\n", 100)

	r := NewRateLimitedReader(context.Background(), strings.NewReader(src), c)
	var buf bytes.Buffer
	_, err := io.Copy(&buf, r)
	require.NoError(t, err)
	assert.Equal(t, src, buf.String())
}

func TestRateLimitedReader_Canceled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRateLimitedReader(ctx, strings.NewReader("abc"), c)
	_, err := r.Read(make([]byte, 1))
	assert.Error(t, err)
}
