// Package matcher decides which waiting party gets which table.
//
// Everything here is pure: callers pass snapshots in and get decisions back.
// Persisting a decision is the job of the seating service.
package matcher

import (
	"slices"

	tableModel "seatq/internal/domains/table/model"
	waitModel "seatq/internal/domains/waitlist/model"
)

type Pairing struct {
	Entry waitModel.Entry
	Table tableModel.Table
}

// SelectTable returns the smallest available table that seats partySize,
// lowest number first among equal capacities.
func SelectTable(partySize int, tables []tableModel.Table) (tableModel.Table, bool) {
	var (
		best  tableModel.Table
		found bool
	)

	for _, table := range tables {
		if !table.Selectable() || !table.Fits(partySize) {
			continue
		}

		if !found || table.Capacity < best.Capacity ||
			(table.Capacity == best.Capacity && table.Number < best.Number) {
			best = table
			found = true
		}
	}

	return best, found
}

// OrderWaiting keeps waiting entries only, oldest first, id as tie breaker.
func OrderWaiting(entries []waitModel.Entry) []waitModel.Entry {
	waiting := make([]waitModel.Entry, 0, len(entries))

	for _, entry := range entries {
		if entry.Status == waitModel.StatusWaiting {
			waiting = append(waiting, entry)
		}
	}

	slices.SortStableFunc(waiting, func(a, b waitModel.Entry) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})

	return waiting
}

// MatchBatch pairs waiting entries with tables greedily in line order.
// A table handed to an earlier entry is not offered to later ones.
// Entries without a fitting table are skipped and stay in line.
func MatchBatch(entries []waitModel.Entry, tables []tableModel.Table) []Pairing {
	remaining := make([]tableModel.Table, 0, len(tables))

	for _, table := range tables {
		if table.Selectable() {
			remaining = append(remaining, table)
		}
	}

	var pairings []Pairing

	for _, entry := range OrderWaiting(entries) {
		if len(remaining) == 0 {
			break
		}

		table, ok := SelectTable(entry.PartySize, remaining)
		if !ok {
			continue
		}

		pairings = append(pairings, Pairing{Entry: entry, Table: table})

		remaining = slices.DeleteFunc(remaining, func(t tableModel.Table) bool {
			return t.ID == table.ID
		})
	}

	return pairings
}
