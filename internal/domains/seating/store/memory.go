package store

import (
	"context"
	"slices"
	"sync"

	tableModel "seatq/internal/domains/table/model"
	waitModel "seatq/internal/domains/waitlist/model"
	"seatq/shared/timezone"
)

type tableCell struct {
	mu    sync.Mutex
	table tableModel.Table
}

type entryCell struct {
	mu    sync.Mutex
	entry waitModel.Entry
}

// memoryStore keeps state in process. Commits lock only the cells they touch,
// always table before entry. The gate is shared by commits and held
// exclusively by Snapshot so a snapshot never sees half of a commit.
type memoryStore struct {
	gate sync.RWMutex

	mu       sync.RWMutex
	tables   map[string]*tableCell
	byNumber map[int]*tableCell
	entries  map[string]*entryCell
}

func NewMemory() Store {
	return &memoryStore{
		tables:   map[string]*tableCell{},
		byNumber: map[int]*tableCell{},
		entries:  map[string]*entryCell{},
	}
}

func (m *memoryStore) Snapshot(_ context.Context) (Snapshot, error) {
	m.gate.Lock()
	defer m.gate.Unlock()

	return Snapshot{
		Tables:  m.copyTables(),
		Entries: m.copyEntries(func(e waitModel.Entry) bool { return e.Status == waitModel.StatusWaiting || e.Seated() }),
	}, nil
}

func (m *memoryStore) Tables(_ context.Context) ([]tableModel.Table, error) {
	m.gate.Lock()
	defer m.gate.Unlock()

	return m.copyTables(), nil
}

func (m *memoryStore) Entries(_ context.Context, statuses ...waitModel.Status) ([]waitModel.Entry, error) {
	m.gate.Lock()
	defer m.gate.Unlock()

	return m.copyEntries(func(e waitModel.Entry) bool { return wants(statuses, e.Status) }), nil
}

func (m *memoryStore) Entry(_ context.Context, id string) (waitModel.Entry, error) {
	cell, ok := m.entryCell(id)
	if !ok {
		return waitModel.Entry{}, ErrNotFound
	}

	cell.mu.Lock()
	defer cell.mu.Unlock()

	return cloneEntry(cell.entry), nil
}

func (m *memoryStore) TableByNumber(_ context.Context, number int) (tableModel.Table, error) {
	m.mu.RLock()
	cell, ok := m.byNumber[number]
	m.mu.RUnlock()

	if !ok {
		return tableModel.Table{}, ErrNotFound
	}

	cell.mu.Lock()
	defer cell.mu.Unlock()

	return cell.table, nil
}

func (m *memoryStore) CreateEntry(_ context.Context, entry waitModel.Entry) error {
	m.gate.RLock()
	defer m.gate.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[entry.ID]; ok {
		return ErrConflict
	}

	m.entries[entry.ID] = &entryCell{entry: cloneEntry(entry)}

	return nil
}

func (m *memoryStore) CreateTable(_ context.Context, table tableModel.Table) error {
	m.gate.RLock()
	defer m.gate.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byNumber[table.Number]; ok {
		return ErrConflict
	}

	if _, ok := m.tables[table.ID]; ok {
		return ErrConflict
	}

	cell := &tableCell{table: table}
	m.tables[table.ID] = cell
	m.byNumber[table.Number] = cell

	return nil
}

func (m *memoryStore) Seat(_ context.Context, entry waitModel.Entry, table tableModel.Table) (waitModel.Entry, tableModel.Table, error) {
	if err := checkSeatable(entry, table); err != nil {
		return entry, table, err
	}

	m.gate.RLock()
	defer m.gate.RUnlock()

	tc, ok := m.tableCell(table.ID)
	if !ok {
		return entry, table, ErrNotFound
	}

	ec, ok := m.entryCell(entry.ID)
	if !ok {
		return entry, table, ErrNotFound
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	ec.mu.Lock()
	defer ec.mu.Unlock()

	current := tc.table
	if current.Version != table.Version || !current.Selectable() {
		return entry, table, ErrConflict
	}

	if ec.entry.Version != entry.Version || ec.entry.Status != waitModel.StatusWaiting {
		return entry, table, ErrConflict
	}

	if err := checkCapacity(ec.entry, current); err != nil {
		return entry, table, err
	}

	now := timezone.Now()
	number := current.Number

	current.Status = tableModel.StatusOccupied
	current.Version++
	current.ModifiedAt = now

	seated := ec.entry
	seated.Status = waitModel.StatusAssigned
	seated.TableNumber = &number
	seated.Version++
	seated.ModifiedAt = now

	tc.table = current
	ec.entry = seated

	return cloneEntry(seated), current, nil
}

func (m *memoryStore) Remove(_ context.Context, entry waitModel.Entry) (waitModel.Entry, error) {
	m.gate.RLock()
	defer m.gate.RUnlock()

	ec, ok := m.entryCell(entry.ID)
	if !ok {
		return entry, ErrNotFound
	}

	ec.mu.Lock()
	defer ec.mu.Unlock()

	if ec.entry.Version != entry.Version || ec.entry.Status != waitModel.StatusWaiting {
		return entry, ErrConflict
	}

	removed := ec.entry
	removed.Status = waitModel.StatusRemoved
	removed.Version++
	removed.ModifiedAt = timezone.Now()

	ec.entry = removed

	return cloneEntry(removed), nil
}

func (m *memoryStore) Release(_ context.Context, table tableModel.Table, seated *waitModel.Entry) (tableModel.Table, *waitModel.Entry, error) {
	m.gate.RLock()
	defer m.gate.RUnlock()

	tc, ok := m.tableCell(table.ID)
	if !ok {
		return table, seated, ErrNotFound
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	current := tc.table
	if current.Version != table.Version || current.Status == tableModel.StatusAvailable {
		return table, seated, ErrConflict
	}

	now := timezone.Now()

	var released *waitModel.Entry

	if seated != nil {
		ec, ok := m.entryCell(seated.ID)
		if !ok {
			return table, seated, ErrNotFound
		}

		ec.mu.Lock()
		defer ec.mu.Unlock()

		if ec.entry.Version != seated.Version || !ec.entry.SeatedAt(current.Number) {
			return table, seated, ErrConflict
		}

		entry := ec.entry
		entry.ReleasedAt = &now
		entry.Version++
		entry.ModifiedAt = now

		ec.entry = entry
		released = &entry
	}

	current.Status = tableModel.StatusAvailable
	current.Version++
	current.ModifiedAt = now

	tc.table = current

	if released != nil {
		clone := cloneEntry(*released)
		released = &clone
	}

	return current, released, nil
}

func (m *memoryStore) Hold(_ context.Context, table tableModel.Table) (tableModel.Table, error) {
	m.gate.RLock()
	defer m.gate.RUnlock()

	tc, ok := m.tableCell(table.ID)
	if !ok {
		return table, ErrNotFound
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	current := tc.table
	if current.Version != table.Version || !current.Selectable() {
		return table, ErrConflict
	}

	current.Status = tableModel.StatusReserved
	current.Version++
	current.ModifiedAt = timezone.Now()

	tc.table = current

	return current, nil
}

func (m *memoryStore) tableCell(id string) (*tableCell, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cell, ok := m.tables[id]

	return cell, ok
}

func (m *memoryStore) entryCell(id string) (*entryCell, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cell, ok := m.entries[id]

	return cell, ok
}

// copyTables and copyEntries expect the gate to be held exclusively.
func (m *memoryStore) copyTables() []tableModel.Table {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tables := make([]tableModel.Table, 0, len(m.tables))
	for _, cell := range m.tables {
		tables = append(tables, cell.table)
	}

	slices.SortFunc(tables, func(a, b tableModel.Table) int { return a.Number - b.Number })

	return tables
}

func (m *memoryStore) copyEntries(keep func(waitModel.Entry) bool) []waitModel.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]waitModel.Entry, 0, len(m.entries))
	for _, cell := range m.entries {
		if keep(cell.entry) {
			entries = append(entries, cloneEntry(cell.entry))
		}
	}

	sortEntries(entries)

	return entries
}

func sortEntries(entries []waitModel.Entry) {
	slices.SortFunc(entries, func(a, b waitModel.Entry) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})
}

func cloneEntry(entry waitModel.Entry) waitModel.Entry {
	if entry.TableNumber != nil {
		number := *entry.TableNumber
		entry.TableNumber = &number
	}

	if entry.ReleasedAt != nil {
		releasedAt := *entry.ReleasedAt
		entry.ReleasedAt = &releasedAt
	}

	return entry
}
