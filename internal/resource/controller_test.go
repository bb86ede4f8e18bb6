package resource

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/whitedew/internal/arena"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(50))
	assert.Equal(t, int64(50), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	err := c.AcquireMemory(20)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(90), c.MemoryPeak())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
}

func TestController_NilChecks(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.AcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Zero(t, c.MemoryUsage())
	assert.Zero(t, c.MemoryPeak())
	assert.NoError(t, c.AcquireIO(context.Background(), 10))
	assert.True(t, c.TryAcquireIO(10))
}

func TestController_ArenaBudget(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 2 * arena.ChunkSize})

	a, err := arena.New(8*arena.ChunkSize, arena.WithMemoryAcquirer(c))
	require.NoError(t, err)

	_, err = a.Alloc(2*arena.ChunkSize, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2*arena.ChunkSize), c.MemoryUsage())

	_, err = a.Alloc(1, 1)
	assert.ErrorIs(t, err, arena.ErrAllocationFailed)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)

	require.NoError(t, a.Close())
	assert.Zero(t, c.MemoryUsage())
}

func TestController_IO(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1000})
	ctx := context.Background()

	assert.NoError(t, c.AcquireIO(ctx, 100))
	assert.True(t, c.TryAcquireIO(100))
	assert.False(t, c.TryAcquireIO(5000))

	unlimited := NewController(Config{})
	assert.NoError(t, unlimited.AcquireIO(ctx, 1000000))
}

func TestController_IOCancelled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 10})
	require.True(t, c.TryAcquireIO(10))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Error(t, c.AcquireIO(ctx, 10))
}

func TestRateLimitedWriter(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	var buf bytes.Buffer

	w := NewRateLimitedWriter(context.Background(), &buf, c)
	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", buf.String())

	t.Run("cancelled", func(t *testing.T) {
		slow := NewController(Config{IOLimitBytesPerSec: 1})
		require.True(t, slow.TryAcquireIO(1))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		_, err := NewRateLimitedWriter(ctx, &out, slow).Write([]byte("x"))
		assert.Error(t, err)
		assert.Zero(t, out.Len())
	})

	t.Run("nil controller", func(t *testing.T) {
		var out bytes.Buffer
		_, err := NewRateLimitedWriter(context.Background(), &out, nil).Write([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, "abc", out.String())
	})
}
