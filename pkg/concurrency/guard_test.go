package concurrency

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardRunsTask(t *testing.T) {
	g := NewConcurrencyGuard()
	ran := false

	require.NoError(t, g.Execute(func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}

func TestGuardRejectsConcurrentTask(t *testing.T) {
	g := NewConcurrencyGuard()
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = g.Execute(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	assert.ErrorIs(t, g.Execute(func() error { return nil }), ErrBusy)
	close(release)
}

func TestGuardReleasesAfterError(t *testing.T) {
	g := NewConcurrencyGuard()
	taskErr := errors.New("listing failed")

	require.ErrorIs(t, g.Execute(func() error { return taskErr }), taskErr)
	require.NoError(t, g.Execute(func() error { return nil }), "the guard frees up after a failed task")
}

func TestGuardSerializesUnderContention(t *testing.T) {
	g := NewConcurrencyGuard()
	var mu sync.Mutex
	ran, busy := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := g.ExecuteWithContext(context.Background(), func(context.Context) error { return nil })
			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, ErrBusy) {
				busy++
			} else if err == nil {
				ran++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ran+busy)
	assert.GreaterOrEqual(t, ran, 1)
}
