package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_Defaults(t *testing.T) {
	p := NewPool(WorkerConfig{})
	assert.Equal(t, 10, p.maxWorkers)
	assert.Equal(t, 100, cap(p.jobQueue))
	assert.Equal(t, 5*time.Second, p.submitTimeout)
}

func TestPool_SubmitRequiresStart(t *testing.T) {
	p := NewPool(WorkerConfig{MaxWorkers: 1})
	err := p.Submit(context.Background(), func(context.Context) {})
	assert.ErrorIs(t, err, ErrWorkerNotRunning)
}

func TestPool_Map(t *testing.T) {
	p := NewPool(WorkerConfig{MaxWorkers: 4, QueueSize: 2})
	require.NoError(t, p.Start())
	defer p.Stop()

	results := make([]int, 50)
	err := p.Map(context.Background(), len(results), func(ctx context.Context, i int) {
		results[i] = i * i
	})
	require.NoError(t, err)
	for i, v := range results {
		assert.Equal(t, i*i, v)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	p := NewPool(WorkerConfig{MaxWorkers: 2})
	require.NoError(t, p.Start())
	defer p.Stop()

	var current, peak int32
	err := p.Map(context.Background(), 20, func(ctx context.Context, i int) {
		n := atomic.AddInt32(&current, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&current, -1)
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestPool_QueueFull(t *testing.T) {
	p := NewPool(WorkerConfig{MaxWorkers: 1, QueueSize: 1, SubmitTimeout: 10 * time.Millisecond})
	require.NoError(t, p.Start())

	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(1)
	require.NoError(t, p.Submit(context.Background(), func(context.Context) {
		started.Done()
		<-release
	}))
	started.Wait()

	// One job fills the queue; the next times out
	require.NoError(t, p.Submit(context.Background(), func(context.Context) {}))
	err := p.Submit(context.Background(), func(context.Context) {})
	assert.ErrorIs(t, err, ErrQueueFull)

	close(release)
	require.NoError(t, p.Stop())
}

func TestPool_SubmitHonorsContext(t *testing.T) {
	p := NewPool(WorkerConfig{MaxWorkers: 1, QueueSize: 1, SubmitTimeout: time.Minute})
	require.NoError(t, p.Start())

	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(1)
	require.NoError(t, p.Submit(context.Background(), func(context.Context) {
		started.Done()
		<-release
	}))
	started.Wait()
	require.NoError(t, p.Submit(context.Background(), func(context.Context) {}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Submit(ctx, func(context.Context) {}), context.Canceled)

	close(release)
	require.NoError(t, p.Stop())
}

func TestPool_StopDrainsQueue(t *testing.T) {
	p := NewPool(WorkerConfig{MaxWorkers: 1})
	require.NoError(t, p.Start())

	var ran int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(context.Background(), func(context.Context) {
			atomic.AddInt32(&ran, 1)
		}))
	}
	require.NoError(t, p.Stop())
	assert.Equal(t, int32(10), atomic.LoadInt32(&ran))

	assert.ErrorIs(t, p.Submit(context.Background(), func(context.Context) {}), ErrWorkerNotRunning)
	assert.ErrorIs(t, p.Start(), ErrPoolStopped)
	assert.NoError(t, p.Stop())
}
