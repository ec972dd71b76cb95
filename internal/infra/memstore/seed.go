package memstore

import (
	"time"

	"tablero/internal/domain/floor"
	"tablero/internal/domain/reservation"
	"tablero/internal/pkg/clock"
)

func strPtr(s string) *string { return &s }

// SeedAreas returns the five fixed areas of the reference floor.
func SeedAreas() []floor.Area {
	return []floor.Area{
		{ID: "area-terraza", Name: "Terraza", MaxTables: 8},
		{ID: "area-patio", Name: "Patio", MaxTables: 8},
		{ID: "area-lobby", Name: "Lobby", MaxTables: 8},
		{ID: "area-bar", Name: "Bar", MaxTables: 8},
		{ID: "area-vip", Name: "Salones VIP", MaxTables: 3},
	}
}

// SeedTables returns the demo table layout: Terraza 8, Patio 7, Lobby 6,
// Bar 5 and the VIP trio with the mergeable square pair.
func SeedTables(now time.Time) []floor.Table {
	mk := func(id, areaID string, capacity int, typ floor.TableType, name string, isVIP, canMerge bool, mergeGroup *string, x, y float64) floor.Table {
		return floor.Table{
			ID: id, AreaID: areaID, Capacity: capacity, Type: typ, Name: name,
			IsVIP: isVIP, CanMerge: canMerge, MergeGroup: mergeGroup,
			X: x, Y: y, Version: 1, UpdatedAt: now,
		}
	}

	return []floor.Table{
		mk("t-t1", "area-terraza", 2, floor.TableStandard, "T1", false, false, nil, 8, 12),
		mk("t-t2", "area-terraza", 2, floor.TableStandard, "T2", false, false, nil, 28, 12),
		mk("t-t3", "area-terraza", 4, floor.TableStandard, "T3", false, false, nil, 50, 12),
		mk("t-t4", "area-terraza", 4, floor.TableStandard, "T4", false, false, nil, 75, 12),
		mk("t-t5", "area-terraza", 4, floor.TableStandard, "T5", false, false, nil, 8, 48),
		mk("t-t6", "area-terraza", 6, floor.TableStandard, "T6", false, false, nil, 32, 48),
		mk("t-t7", "area-terraza", 6, floor.TableStandard, "T7", false, false, nil, 60, 48),
		mk("t-t8", "area-terraza", 8, floor.TableStandard, "T8", false, false, nil, 40, 80),
		mk("t-p1", "area-patio", 2, floor.TableStandard, "P1", false, false, nil, 10, 15),
		mk("t-p2", "area-patio", 2, floor.TableStandard, "P2", false, false, nil, 35, 15),
		mk("t-p3", "area-patio", 4, floor.TableStandard, "P3", false, false, nil, 60, 15),
		mk("t-p4", "area-patio", 4, floor.TableStandard, "P4", false, false, nil, 82, 15),
		mk("t-p5", "area-patio", 6, floor.TableStandard, "P5", false, false, nil, 18, 55),
		mk("t-p6", "area-patio", 6, floor.TableStandard, "P6", false, false, nil, 52, 55),
		mk("t-p7", "area-patio", 8, floor.TableStandard, "P7", false, false, nil, 40, 82),
		mk("t-l1", "area-lobby", 2, floor.TableStandard, "L1", false, false, nil, 12, 18),
		mk("t-l2", "area-lobby", 2, floor.TableStandard, "L2", false, false, nil, 45, 18),
		mk("t-l3", "area-lobby", 4, floor.TableStandard, "L3", false, false, nil, 78, 18),
		mk("t-l4", "area-lobby", 4, floor.TableStandard, "L4", false, false, nil, 12, 58),
		mk("t-l5", "area-lobby", 6, floor.TableStandard, "L5", false, false, nil, 45, 58),
		mk("t-l6", "area-lobby", 6, floor.TableStandard, "L6", false, false, nil, 78, 58),
		mk("t-b1", "area-bar", 2, floor.TableStandard, "B1", false, false, nil, 10, 25),
		mk("t-b2", "area-bar", 2, floor.TableStandard, "B2", false, false, nil, 35, 25),
		mk("t-b3", "area-bar", 4, floor.TableStandard, "B3", false, false, nil, 60, 25),
		mk("t-b4", "area-bar", 4, floor.TableStandard, "B4", false, false, nil, 22, 65),
		mk("t-b5", "area-bar", 4, floor.TableStandard, "B5", false, false, nil, 55, 65),
		mk("t-v1", "area-vip", 10, floor.TableCircular, "Redonda VIP", true, false, nil, 40, 15),
		mk("t-va", "area-vip", 4, floor.TableSquare, "Cuadrada A", true, true, strPtr("VIP_AB"), 22, 62),
		mk("t-vb", "area-vip", 4, floor.TableSquare, "Cuadrada B", true, true, strPtr("VIP_AB"), 58, 62),
	}
}

// SeedReservations returns the demo bookings, dated the day of now.
func SeedReservations(now time.Time) []reservation.Reservation {
	today := clock.DateString(now)
	return []reservation.Reservation{
		{
			ID: "res-1", TableIDs: []string{"t-t3"}, ClientName: "García López",
			PartySize: 3, Date: today, StartTime: "13:00", EndTime: "14:30",
			Status: reservation.StatusConfirmed, Duration: 90, Notes: "Cumpleaños",
		},
		{
			ID: "res-2", TableIDs: []string{"t-t6"}, ClientName: "Martínez Ruiz",
			PartySize: 5, Date: today, StartTime: "14:00", EndTime: "15:30",
			Status: reservation.StatusConfirmed, Duration: 90, Notes: "",
		},
		{
			ID: "res-3", TableIDs: []string{"t-va", "t-vb"}, ClientName: "Fernández VIP",
			PartySize: 5, Date: today, StartTime: "20:00", EndTime: "22:00",
			Status: reservation.StatusConfirmed, Duration: 120, Notes: "Cliente frecuente",
		},
		{
			ID: "res-4", TableIDs: []string{"t-p3"}, ClientName: "Walk-in",
			PartySize: 2, Date: today, StartTime: "12:30", EndTime: "23:59",
			Status: reservation.StatusConfirmed, Duration: 0, Notes: "Sin reserva",
		},
	}
}
