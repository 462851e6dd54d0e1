package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSemaphoreAcquireRelease(t *testing.T) {
	f := New(Config{Groups: 2, Tables: 1})
	ctx := context.Background()

	// The mutex starts signalled.
	assert.NoError(t, f.Mutex().Acquire(ctx))
	assert.NoError(t, f.Mutex().Release())

	// RequestReady starts empty; an acquire must block until released.
	acquired := make(chan error, 1)
	go func() {
		acquired <- f.RequestReady().Acquire(ctx)
	}()
	select {
	case err := <-acquired:
		t.Fatalf("acquire returned before release: %v", err)
	case <-time.After(20 * time.Millisecond):
	}
	assert.NoError(t, f.RequestReady().Release())
	assert.NoError(t, <-acquired)
}

func TestSemaphoreContextCancel(t *testing.T) {
	f := New(Config{Groups: 1, Tables: 1})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := f.TableGranted(0).Acquire(ctx)
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStrictSaturation(t *testing.T) {
	f := New(Config{Groups: 1, Tables: 1})

	// The mutex token is still undelivered, a second release is a bug.
	err := f.Mutex().Release()
	assert.ErrorIs(t, err, ErrSaturated)

	// Grant semaphores are strict too.
	assert.NoError(t, f.TableGranted(0).Release())
	assert.ErrorIs(t, f.TableGranted(0).Release(), ErrSaturated)
}

func TestLatchedVacancySignal(t *testing.T) {
	f := New(Config{Groups: 1, Tables: 1})
	ctx := context.Background()

	// Consecutive payments on the same table coalesce while unobserved.
	assert.NoError(t, f.TableVacated(0).Release())
	assert.NoError(t, f.TableVacated(0).Release())

	assert.NoError(t, f.TableVacated(0).Acquire(ctx))
	assert.NoError(t, f.TableVacated(0).Release())
}

func TestClosedFabric(t *testing.T) {
	f := New(Config{Groups: 1, Tables: 1})

	// Blocked waiters are released with an error on close.
	waitErr := make(chan error, 1)
	go func() {
		waitErr <- f.RequestReady().Acquire(context.Background())
	}()
	assert.NoError(t, f.Close())
	assert.ErrorIs(t, <-waitErr, ErrClosed)

	assert.ErrorIs(t, f.Mutex().Acquire(context.Background()), ErrClosed)
	assert.ErrorIs(t, f.SlotFree().Release(), ErrClosed)

	// Close is idempotent.
	assert.NoError(t, f.Close())
}

func TestUnknownName(t *testing.T) {
	f := New(Config{Groups: 2, Tables: 2})

	assert.ErrorIs(t, f.TableGranted(7).Release(), ErrUnknownName)
	assert.ErrorIs(t, f.TableGranted(-1).Acquire(context.Background()), ErrUnknownName)
	assert.ErrorIs(t, f.TableVacated(2).Release(), ErrUnknownName)
}
