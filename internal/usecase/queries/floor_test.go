package queries_test

import (
	"context"
	"testing"
	"time"

	"tablero/internal/domain/floor"
	"tablero/internal/infra/memstore"
	"tablero/internal/pkg/clock"
	"tablero/internal/pkg/config"
	"tablero/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNoon = time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

func newQueriesFixture(t *testing.T) (queries.FloorQueries, *clock.MockClock, *memstore.Store) {
	t.Helper()
	clk := clock.NewMockClock(testNoon)
	store := memstore.New(clk)
	q := queries.NewFloorQueries(
		store.Areas(), store.Tables(), store.Reservations(), clk, config.NewTestConfig().Floor,
	)
	return q, clk, store
}

func TestListAreas(t *testing.T) {
	q, _, _ := newQueriesFixture(t)

	areas, err := q.ListAreas(context.Background())
	require.NoError(t, err)
	require.Len(t, areas, 5)
	assert.Equal(t, "Terraza", areas[0].Name)
}

func TestListTables(t *testing.T) {
	ctx := context.Background()
	q, _, _ := newQueriesFixture(t)

	t.Run("all tables", func(t *testing.T) {
		tables, err := q.ListTables(ctx, "")
		require.NoError(t, err)
		assert.Len(t, tables, 23)
	})

	t.Run("filtered by area", func(t *testing.T) {
		tables, err := q.ListTables(ctx, "area-vip")
		require.NoError(t, err)
		require.Len(t, tables, 3)
		for _, table := range tables {
			assert.Equal(t, "area-vip", table.AreaID)
		}
	})
}

func TestListReservations(t *testing.T) {
	ctx := context.Background()
	q, _, _ := newQueriesFixture(t)

	t.Run("defaults to today", func(t *testing.T) {
		reservations, err := q.ListReservations(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, reservations, 4)
	})

	t.Run("other dates are empty", func(t *testing.T) {
		reservations, err := q.ListReservations(ctx, "2025-05-16", "")
		require.NoError(t, err)
		assert.Empty(t, reservations)
	})

	t.Run("area filter keeps only touching reservations", func(t *testing.T) {
		reservations, err := q.ListReservations(ctx, "", "area-vip")
		require.NoError(t, err)
		require.Len(t, reservations, 1)
		assert.Equal(t, "res-3", reservations[0].ID)
	})
}

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()

	names := func(suggestions []queries.TableSuggestion) []string {
		out := make([]string, len(suggestions))
		for i, s := range suggestions {
			out[i] = s.TableName
		}
		return out
	}

	t.Run("free day splits suggestions by capacity", func(t *testing.T) {
		q, _, _ := newQueriesFixture(t)

		availability, err := q.GetAvailability(ctx, "2025-05-16", 2, "20:00", "area-patio")
		require.NoError(t, err)

		if diff := cmp.Diff([]string{"P1", "P2", "P3"}, names(availability.SuggestedTables)); diff != "" {
			t.Errorf("suggested tables mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"P4", "P5", "P6"}, names(availability.Alternatives)); diff != "" {
			t.Errorf("alternatives mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("booked tables are excluded", func(t *testing.T) {
		q, _, _ := newQueriesFixture(t)

		// today at 13:00 the 90-minute window collides with res-1 (T3,
		// 13:00-14:30) and res-2 (T6, 14:00-15:30)
		availability, err := q.GetAvailability(ctx, "", 2, "13:00", "area-terraza")
		require.NoError(t, err)

		if diff := cmp.Diff([]string{"T1", "T2", "T4"}, names(availability.SuggestedTables)); diff != "" {
			t.Errorf("suggested tables mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"T5", "T7", "T8"}, names(availability.Alternatives)); diff != "" {
			t.Errorf("alternatives mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("party size filters small tables", func(t *testing.T) {
		q, _, _ := newQueriesFixture(t)

		availability, err := q.GetAvailability(ctx, "2025-05-16", 7, "20:00", "area-patio")
		require.NoError(t, err)

		if diff := cmp.Diff([]string{"P7"}, names(availability.SuggestedTables)); diff != "" {
			t.Errorf("suggested tables mismatch (-want +got):\n%s", diff)
		}
		assert.Empty(t, availability.Alternatives)
	})

	t.Run("window near midnight clamps at end of day", func(t *testing.T) {
		q, _, _ := newQueriesFixture(t)

		availability, err := q.GetAvailability(ctx, "2025-05-16", 2, "23:00", "area-patio")
		require.NoError(t, err)
		assert.NotEmpty(t, availability.SuggestedTables)
	})

	t.Run("malformed start time", func(t *testing.T) {
		q, _, _ := newQueriesFixture(t)

		_, err := q.GetAvailability(ctx, "", 2, "8pm", "")
		assert.ErrorIs(t, err, queries.ErrInvalidStartTime)
	})

	t.Run("non-positive party size", func(t *testing.T) {
		q, _, _ := newQueriesFixture(t)

		_, err := q.GetAvailability(ctx, "", 0, "20:00", "")
		assert.ErrorIs(t, err, queries.ErrInvalidPartySize)
	})
}

func TestGetFloorLayout(t *testing.T) {
	ctx := context.Background()

	statusOf := func(layout *queries.FloorLayout, tableID string) floor.VisualStatus {
		for _, view := range layout.Tables {
			if view.ID == tableID {
				return view.VisualStatus
			}
		}
		return ""
	}

	t.Run("projects visual statuses at the current instant", func(t *testing.T) {
		q, clk, _ := newQueriesFixture(t)
		clk.Set(time.Date(2025, 5, 15, 13, 20, 0, 0, time.UTC))

		layout, err := q.GetFloorLayout(ctx, "", "")
		require.NoError(t, err)
		assert.Equal(t, "2025-05-15", layout.Date)
		assert.Nil(t, layout.AreaID)
		assert.Len(t, layout.Areas, 5)
		assert.Len(t, layout.Tables, 23)
		assert.Len(t, layout.Reservations, 4)

		assert.Equal(t, floor.StatusReservedActive, statusOf(layout, "t-t3"))
		assert.Equal(t, floor.StatusReservedFuture, statusOf(layout, "t-t6"))
		assert.Equal(t, floor.StatusOccupied, statusOf(layout, "t-p3"))
		assert.Equal(t, floor.StatusReservedFuture, statusOf(layout, "t-va"))
		assert.Equal(t, floor.StatusAvailable, statusOf(layout, "t-b1"))
	})

	t.Run("vip pair shows combined during its window", func(t *testing.T) {
		q, clk, _ := newQueriesFixture(t)
		clk.Set(time.Date(2025, 5, 15, 20, 30, 0, 0, time.UTC))

		layout, err := q.GetFloorLayout(ctx, "", "")
		require.NoError(t, err)
		assert.Equal(t, floor.StatusVipCombined, statusOf(layout, "t-va"))
		assert.Equal(t, floor.StatusVipCombined, statusOf(layout, "t-vb"))
		assert.Equal(t, floor.StatusAvailable, statusOf(layout, "t-v1"))
	})

	t.Run("area scope narrows tables and reservations", func(t *testing.T) {
		q, _, _ := newQueriesFixture(t)

		layout, err := q.GetFloorLayout(ctx, "", "area-vip")
		require.NoError(t, err)
		require.NotNil(t, layout.AreaID)
		assert.Equal(t, "area-vip", *layout.AreaID)
		assert.Len(t, layout.Tables, 3)
		assert.Len(t, layout.Reservations, 1)
	})
}
