package positionqueue_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tablero/internal/domain/floor"
	"tablero/internal/pkg/errs"
	"tablero/internal/usecase/commands"
	"tablero/internal/usecase/positionqueue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePassesThroughOutcome(t *testing.T) {
	apply := func(_ context.Context, input commands.UpdateTablePositionInput) (*floor.Table, error) {
		return &floor.Table{ID: input.TableID, X: input.X, Y: input.Y}, nil
	}
	d := positionqueue.NewDispatcher(apply)

	table, err := d.Update(context.Background(), commands.UpdateTablePositionInput{TableID: "t-1", X: 40, Y: 50})
	require.NoError(t, err)
	assert.Equal(t, "t-1", table.ID)
	assert.InDelta(t, 40, table.X, 1e-9)
}

func TestUpdatePropagatesErrors(t *testing.T) {
	wantErr := errs.New("boom")
	apply := func(_ context.Context, _ commands.UpdateTablePositionInput) (*floor.Table, error) {
		return nil, wantErr
	}
	d := positionqueue.NewDispatcher(apply)

	_, err := d.Update(context.Background(), commands.UpdateTablePositionInput{TableID: "t-1"})
	assert.ErrorIs(t, err, wantErr)
}

func TestBurstCoalescesToLatestWrite(t *testing.T) {
	var calls int32
	entered := make(chan struct{})
	release := make(chan struct{})
	var lastX atomic.Value

	apply := func(_ context.Context, input commands.UpdateTablePositionInput) (*floor.Table, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			entered <- struct{}{}
			<-release
		}
		lastX.Store(input.X)
		return &floor.Table{ID: input.TableID, X: input.X}, nil
	}
	d := positionqueue.NewDispatcher(apply)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := d.Update(context.Background(), commands.UpdateTablePositionInput{TableID: "t-1", X: 1})
		assert.NoError(t, err)
	}()
	<-entered // first write is in flight

	// queue a burst behind it; each should coalesce onto the latest input
	results := make(chan *floor.Table, 3)
	for _, x := range []float64{2, 3, 4} {
		wg.Add(1)
		go func(x float64) {
			defer wg.Done()
			table, err := d.Update(context.Background(), commands.UpdateTablePositionInput{TableID: "t-1", X: x})
			assert.NoError(t, err)
			results <- table
		}(x)
		time.Sleep(20 * time.Millisecond) // keep queueing order deterministic
	}

	close(release)
	wg.Wait()
	close(results)

	// one in-flight write plus one coalesced write for the whole burst
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.InDelta(t, 4.0, lastX.Load().(float64), 1e-9)
	for table := range results {
		assert.InDelta(t, 4.0, table.X, 1e-9)
	}
}

func TestIndependentTablesDoNotQueueOnEachOther(t *testing.T) {
	block := make(chan struct{})
	apply := func(_ context.Context, input commands.UpdateTablePositionInput) (*floor.Table, error) {
		if input.TableID == "t-blocked" {
			<-block
		}
		return &floor.Table{ID: input.TableID}, nil
	}
	d := positionqueue.NewDispatcher(apply)

	go func() {
		_, _ = d.Update(context.Background(), commands.UpdateTablePositionInput{TableID: "t-blocked"})
	}()

	done := make(chan struct{})
	go func() {
		_, err := d.Update(context.Background(), commands.UpdateTablePositionInput{TableID: "t-free"})
		assert.NoError(t, err)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("update on an independent table was blocked")
	}
	close(block)
}

func TestCallerContextCancellationStopsWaitingOnly(t *testing.T) {
	release := make(chan struct{})
	apply := func(_ context.Context, input commands.UpdateTablePositionInput) (*floor.Table, error) {
		<-release
		return &floor.Table{ID: input.TableID}, nil
	}
	d := positionqueue.NewDispatcher(apply)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := d.Update(ctx, commands.UpdateTablePositionInput{TableID: "t-1"})
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller kept waiting")
	}
	close(release)
}
