// Package positionqueue serializes table position writes. The canvas emits
// bursts of drag updates per table; the dispatcher keeps a single write in
// flight per table and coalesces queued updates to the latest coordinates,
// so the store sees one write per burst with the same end state.
package positionqueue

import (
	"context"
	"sync"

	"tablero/internal/domain/floor"
	"tablero/internal/usecase/commands"
)

// ApplyFunc performs the actual position update (the table command).
type ApplyFunc func(ctx context.Context, input commands.UpdateTablePositionInput) (*floor.Table, error)

type outcome struct {
	table *floor.Table
	err   error
}

type pendingWrite struct {
	input   commands.UpdateTablePositionInput
	waiters []chan outcome
}

type tableQueue struct {
	inFlight bool
	pending  *pendingWrite
}

type Dispatcher struct {
	mu     sync.Mutex
	apply  ApplyFunc
	queues map[string]*tableQueue
}

func NewDispatcher(apply ApplyFunc) *Dispatcher {
	return &Dispatcher{
		apply:  apply,
		queues: make(map[string]*tableQueue),
	}
}

// Update requests a position write for input.TableID and blocks until the
// write that ends up covering this request completes. Requests arriving
// while a write is in flight are coalesced: only the latest coordinates are
// dispatched and every coalesced caller receives that write's outcome.
func (d *Dispatcher) Update(ctx context.Context, input commands.UpdateTablePositionInput) (*floor.Table, error) {
	done := make(chan outcome, 1)

	d.mu.Lock()
	q, ok := d.queues[input.TableID]
	if !ok {
		q = &tableQueue{}
		d.queues[input.TableID] = q
	}
	if q.inFlight {
		if q.pending == nil {
			q.pending = &pendingWrite{}
		}
		q.pending.input = input
		q.pending.waiters = append(q.pending.waiters, done)
		d.mu.Unlock()
	} else {
		q.inFlight = true
		d.mu.Unlock()
		go d.run(input.TableID, input, []chan outcome{done})
	}

	select {
	case res := <-done:
		return res.table, res.err
	case <-ctx.Done():
		// the write still lands; only this caller stops waiting
		return nil, ctx.Err()
	}
}

func (d *Dispatcher) run(tableID string, input commands.UpdateTablePositionInput, waiters []chan outcome) {
	for {
		table, err := d.apply(context.Background(), input)
		res := outcome{table: table, err: err}
		for _, w := range waiters {
			w <- res
		}

		d.mu.Lock()
		q := d.queues[tableID]
		if q.pending == nil {
			q.inFlight = false
			delete(d.queues, tableID)
			d.mu.Unlock()
			return
		}
		input = q.pending.input
		waiters = q.pending.waiters
		q.pending = nil
		d.mu.Unlock()
	}
}
