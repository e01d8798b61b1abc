package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func counter(n *atomic.Int32) func(context.Context) {
	return func(ctx context.Context) {
		if ctx.Err() == nil {
			n.Add(1)
		}
	}
}

// settled ждёт, пока счётчик перестанет расти после остановки.
func settled(t *testing.T, n *atomic.Int32) int32 {
	t.Helper()
	time.Sleep(20 * time.Millisecond)
	v := n.Load()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, v, n.Load())
	return v
}

func TestRepeaterTicksUntilStopped(t *testing.T) {
	t.Parallel()

	var n atomic.Int32
	r := NewRepeater(5*time.Millisecond, counter(&n))
	require.False(t, r.Running())

	r.Start(context.Background())
	r.Start(context.Background()) // повторный старт игнорируется
	require.True(t, r.Running())

	require.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)

	r.Stop()
	require.False(t, r.Running())
	settled(t, &n)

	r.Stop()
}

func TestRepeaterStopsWithContext(t *testing.T) {
	t.Parallel()

	var n atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRepeater(time.Millisecond, counter(&n))
	r.Start(ctx)
	require.Eventually(t, func() bool { return n.Load() >= 1 }, time.Second, time.Millisecond)

	cancel()
	settled(t, &n)
	r.Stop()
}

func TestRepeaterRestart(t *testing.T) {
	t.Parallel()

	var n atomic.Int32
	r := NewRepeater(time.Millisecond, counter(&n))
	r.Start(context.Background())
	r.Stop()

	before := settled(t, &n)
	r.Start(context.Background())
	require.Eventually(t, func() bool { return n.Load() > before }, time.Second, time.Millisecond)
	r.Stop()
}
