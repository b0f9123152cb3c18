// Package store persists tables and wait entries behind version-checked commits.
//
// Every mutating call takes the entity values the caller last read. A commit
// succeeds only when each entity still carries that version and status;
// otherwise it fails with ErrConflict and nothing is written.
package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=../mocks/store_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"seatq/config"
	"seatq/infras/otel"
	"seatq/infras/postgres"
	tableModel "seatq/internal/domains/table/model"
	tableRepo "seatq/internal/domains/table/repository"
	waitModel "seatq/internal/domains/waitlist/model"
	waitRepo "seatq/internal/domains/waitlist/repository"
	"seatq/shared/constant"

	"github.com/rs/zerolog/log"
)

var (
	ErrConflict  = errors.New("commit conflict")
	ErrNotFound  = errors.New("not found")
	ErrInvariant = errors.New("invariant violation")
)

// Snapshot is a consistent view of every table and every live entry
// (waiting, or assigned and still holding its table).
type Snapshot struct {
	Tables  []tableModel.Table
	Entries []waitModel.Entry
}

// SeatedAt returns the entry currently holding the table, if any.
func (s Snapshot) SeatedAt(number int) (waitModel.Entry, bool) {
	for _, entry := range s.Entries {
		if entry.SeatedAt(number) {
			return entry, true
		}
	}

	return waitModel.Entry{}, false
}

type Store interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	Tables(ctx context.Context) ([]tableModel.Table, error)
	Entries(ctx context.Context, statuses ...waitModel.Status) ([]waitModel.Entry, error)
	Entry(ctx context.Context, id string) (waitModel.Entry, error)
	TableByNumber(ctx context.Context, number int) (tableModel.Table, error)
	CreateEntry(ctx context.Context, entry waitModel.Entry) error
	CreateTable(ctx context.Context, table tableModel.Table) error
	// Seat moves the table available->occupied and the entry waiting->assigned together.
	Seat(ctx context.Context, entry waitModel.Entry, table tableModel.Table) (waitModel.Entry, tableModel.Table, error)
	// Remove moves a waiting entry to removed.
	Remove(ctx context.Context, entry waitModel.Entry) (waitModel.Entry, error)
	// Release makes an occupied or reserved table available and marks its seated entry released.
	Release(ctx context.Context, table tableModel.Table, seated *waitModel.Entry) (tableModel.Table, *waitModel.Entry, error)
	// Hold moves an available table to reserved.
	Hold(ctx context.Context, table tableModel.Table) (tableModel.Table, error)
}

type primaryKey struct{}

// ReadYourWrites marks ctx so listings are served by the primary. Use it when
// the result drives a commit.
func ReadYourWrites(ctx context.Context) context.Context {
	return context.WithValue(ctx, primaryKey{}, true)
}

// ReadsPrimary reports whether ctx was marked by ReadYourWrites.
func ReadsPrimary(ctx context.Context) bool {
	primary, _ := ctx.Value(primaryKey{}).(bool)

	return primary
}

// New picks the implementation configured by MATCHING_STORE_DRIVER.
func New(cfg *config.Config, db *postgres.Connection, tables tableRepo.Table, entries waitRepo.Entry, otel otel.Otel) Store {
	if cfg.Matching.StoreDriver == constant.StoreDriverMemory {
		log.Warn().Msg("Using in-process seating store, state is lost on restart")

		return NewMemory()
	}

	return NewPostgres(db, tables, entries, otel)
}

func checkCapacity(entry waitModel.Entry, table tableModel.Table) error {
	if !table.Fits(entry.PartySize) {
		return fmt.Errorf("%w: table %d seats %d, party of %d", ErrInvariant, table.Number, table.Capacity, entry.PartySize)
	}

	return nil
}

// checkSeatable rejects a capacity mismatch before looking at freshness.
func checkSeatable(entry waitModel.Entry, table tableModel.Table) error {
	if err := checkCapacity(entry, table); err != nil {
		return err
	}

	if entry.Status != waitModel.StatusWaiting || !table.Selectable() {
		return ErrConflict
	}

	return nil
}

func wants(statuses []waitModel.Status, status waitModel.Status) bool {
	return len(statuses) == 0 || slices.Contains(statuses, status)
}
