package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"seatq/infras/otel"
	"seatq/infras/postgres"
	tableModel "seatq/internal/domains/table/model"
	tableRepo "seatq/internal/domains/table/repository"
	waitModel "seatq/internal/domains/waitlist/model"
	waitRepo "seatq/internal/domains/waitlist/repository"
	"seatq/shared"
	"seatq/shared/constant"
	gDto "seatq/shared/dto"
	"seatq/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	argWhereVersion = "where_version"
	argWhereStatus  = "where_status"
)

type postgresStore struct {
	db      *postgres.Connection
	tables  tableRepo.Table
	entries waitRepo.Entry
	otel    otel.Otel
}

func NewPostgres(db *postgres.Connection, tables tableRepo.Table, entries waitRepo.Entry, otel otel.Otel) Store {
	return &postgresStore{
		db:      db,
		tables:  tables,
		entries: entries,
		otel:    otel,
	}
}

func (p *postgresStore) Snapshot(ctx context.Context) (res Snapshot, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Snapshot")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = p.read(ctx, p.db.Write, func(tx *sqlx.Tx) error {
		res.Tables, err = p.tables.GetAllTx(ctx, tx, tablesOrder(), gDto.FilterGroup{})
		if err != nil {
			return err
		}

		res.Entries, err = p.entries.GetAllTx(ctx, tx, entriesOrder(), liveEntries())

		return err
	})
	if err != nil {
		return res, fmt.Errorf("failed to read seating snapshot: %w", err)
	}

	sortEntries(res.Entries)

	return res, nil
}

func (p *postgresStore) Tables(ctx context.Context) (res []tableModel.Table, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Tables")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = p.tables.GetAll(ctx, tablesOrder(), gDto.FilterGroup{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	return res, nil
}

func (p *postgresStore) Entries(ctx context.Context, statuses ...waitModel.Status) (res []waitModel.Entry, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Entries")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{}
	if len(statuses) > 0 {
		filter.Filters = []any{
			gDto.Filter{
				Field:    waitModel.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    statusValues(statuses),
				Table:    waitModel.TableName,
			},
		}
	}

	err = p.read(ctx, p.source(ctx), func(tx *sqlx.Tx) error {
		res, err = p.entries.GetAllTx(ctx, tx, entriesOrder(), filter)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list wait entries: %w", err)
	}

	sortEntries(res)

	return res, nil
}

func (p *postgresStore) Entry(ctx context.Context, id string) (res waitModel.Entry, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Entry")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = p.read(ctx, p.db.Write, func(tx *sqlx.Tx) error {
		res, err = p.entries.GetTx(ctx, tx, shared.FilterByID(id, waitModel.FieldID, waitModel.TableName))

		return err
	})
	if err != nil {
		return res, fmt.Errorf("failed to get wait entry: %w", err)
	}

	if res.ID == constant.Empty {
		return res, ErrNotFound
	}

	return res, nil
}

func (p *postgresStore) TableByNumber(ctx context.Context, number int) (res tableModel.Table, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".TableByNumber")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = p.read(ctx, p.db.Write, func(tx *sqlx.Tx) error {
		res, err = p.tables.GetTx(ctx, tx, shared.FilterByField(tableModel.FieldNumber, number, tableModel.TableName))

		return err
	})
	if err != nil {
		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if res.ID == constant.Empty {
		return res, ErrNotFound
	}

	return res, nil
}

func (p *postgresStore) CreateEntry(ctx context.Context, entry waitModel.Entry) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".CreateEntry")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = p.entries.Insert(ctx, entry); err != nil {
		return translate(err)
	}

	return nil
}

func (p *postgresStore) CreateTable(ctx context.Context, table tableModel.Table) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".CreateTable")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = p.tables.Insert(ctx, table); err != nil {
		return translate(err)
	}

	return nil
}

func (p *postgresStore) Seat(ctx context.Context, entry waitModel.Entry, table tableModel.Table) (_ waitModel.Entry, _ tableModel.Table, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Seat")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"entry.id":     entry.ID,
		"table.number": table.Number,
	})

	if err = checkSeatable(entry, table); err != nil {
		return entry, table, err
	}

	now := timezone.Now()
	number := table.Number

	occupied := table
	occupied.Status = tableModel.StatusOccupied
	occupied.Version = table.Version + 1
	occupied.ModifiedAt = now

	seated := cloneEntry(entry)
	seated.Status = waitModel.StatusAssigned
	seated.TableNumber = &number
	seated.Version = entry.Version + 1
	seated.ModifiedAt = now

	err = p.write(ctx, func(tx *sqlx.Tx) error {
		ok, err := p.tables.CompareAndUpdateTx(ctx, tx, map[string]any{
			tableModel.FieldStatus:   occupied.Status,
			tableModel.FieldVersion:  occupied.Version,
			constant.FieldModifiedAt: now,
		}, versionFilter(tableModel.TableName, table.ID, table.Version, tableModel.StatusAvailable))
		if err != nil || !ok {
			return orConflict(err, ok)
		}

		ok, err = p.entries.CompareAndUpdateTx(ctx, tx, map[string]any{
			waitModel.FieldStatus:      seated.Status,
			waitModel.FieldTableNumber: number,
			waitModel.FieldVersion:     seated.Version,
			constant.FieldModifiedAt:   now,
		}, versionFilter(waitModel.TableName, entry.ID, entry.Version, waitModel.StatusWaiting))

		return orConflict(err, ok)
	})
	if err != nil {
		return entry, table, err
	}

	return seated, occupied, nil
}

func (p *postgresStore) Remove(ctx context.Context, entry waitModel.Entry) (_ waitModel.Entry, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Remove")
	defer scope.End()
	defer scope.TraceIfError(err)

	removed := cloneEntry(entry)
	removed.Status = waitModel.StatusRemoved
	removed.Version = entry.Version + 1
	removed.ModifiedAt = timezone.Now()

	err = p.write(ctx, func(tx *sqlx.Tx) error {
		ok, err := p.entries.CompareAndUpdateTx(ctx, tx, map[string]any{
			waitModel.FieldStatus:    removed.Status,
			waitModel.FieldVersion:   removed.Version,
			constant.FieldModifiedAt: removed.ModifiedAt,
		}, versionFilter(waitModel.TableName, entry.ID, entry.Version, waitModel.StatusWaiting))

		return orConflict(err, ok)
	})
	if err != nil {
		return entry, err
	}

	return removed, nil
}

func (p *postgresStore) Release(ctx context.Context, table tableModel.Table, seated *waitModel.Entry) (_ tableModel.Table, _ *waitModel.Entry, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("table.number", table.Number)

	now := timezone.Now()

	available := table
	available.Status = tableModel.StatusAvailable
	available.Version = table.Version + 1
	available.ModifiedAt = now

	var released *waitModel.Entry

	if seated != nil {
		entry := cloneEntry(*seated)
		entry.ReleasedAt = &now
		entry.Version = seated.Version + 1
		entry.ModifiedAt = now
		released = &entry
	}

	err = p.write(ctx, func(tx *sqlx.Tx) error {
		ok, err := p.tables.CompareAndUpdateTx(ctx, tx, map[string]any{
			tableModel.FieldStatus:   available.Status,
			tableModel.FieldVersion:  available.Version,
			constant.FieldModifiedAt: now,
		}, versionFilter(tableModel.TableName, table.ID, table.Version, tableModel.StatusOccupied, tableModel.StatusReserved))
		if err != nil || !ok || released == nil {
			return orConflict(err, ok)
		}

		filter := versionFilter(waitModel.TableName, seated.ID, seated.Version, waitModel.StatusAssigned)
		filter.Filters = append(filter.Filters,
			gDto.Filter{Field: waitModel.FieldReleasedAt, Operator: gDto.FilterIsNull, Table: waitModel.TableName},
			gDto.Filter{Field: waitModel.FieldTableNumber, ArgName: "where_table_number", Operator: gDto.FilterOperatorEq, Value: table.Number, Table: waitModel.TableName},
		)

		ok, err = p.entries.CompareAndUpdateTx(ctx, tx, map[string]any{
			waitModel.FieldReleasedAt: now,
			waitModel.FieldVersion:    released.Version,
			constant.FieldModifiedAt:  now,
		}, filter)

		return orConflict(err, ok)
	})
	if err != nil {
		return table, seated, err
	}

	return available, released, nil
}

func (p *postgresStore) Hold(ctx context.Context, table tableModel.Table) (_ tableModel.Table, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".Hold")
	defer scope.End()
	defer scope.TraceIfError(err)

	reserved := table
	reserved.Status = tableModel.StatusReserved
	reserved.Version = table.Version + 1
	reserved.ModifiedAt = timezone.Now()

	err = p.write(ctx, func(tx *sqlx.Tx) error {
		ok, err := p.tables.CompareAndUpdateTx(ctx, tx, map[string]any{
			tableModel.FieldStatus:   reserved.Status,
			tableModel.FieldVersion:  reserved.Version,
			constant.FieldModifiedAt: reserved.ModifiedAt,
		}, versionFilter(tableModel.TableName, table.ID, table.Version, tableModel.StatusAvailable))

		return orConflict(err, ok)
	})
	if err != nil {
		return table, err
	}

	return reserved, nil
}

// read runs fn in a read-only repeatable-read transaction on db so both result
// sets come from the same point in time. Reads that feed a commit pass the
// primary; a replica may not have the caller's last write yet.
func (p *postgresStore) read(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to begin read transaction: %w", err)
	}

	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Warn().Err(rbErr).Msg("failed to close read transaction")
		}
	}()

	return fn(tx)
}

// source is the pool for listings: the replica unless ctx asks for ReadYourWrites.
func (p *postgresStore) source(ctx context.Context) *sqlx.DB {
	if ReadsPrimary(ctx) {
		return p.db.Write
	}

	return p.db.Read
}

func (p *postgresStore) write(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := p.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
	}()

	if err = fn(tx); err != nil {
		return translate(err)
	}

	if err = tx.Commit(); err != nil {
		return translate(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

func versionFilter[S ~string](table, id string, version int64, statuses ...S) gDto.FilterGroup {
	values := make([]string, len(statuses))
	for i, status := range statuses {
		values[i] = string(status)
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: constant.FieldID, Operator: gDto.FilterOperatorEq, Value: id, Table: table},
			gDto.Filter{Field: constant.FieldVersion, ArgName: argWhereVersion, Operator: gDto.FilterOperatorEq, Value: version, Table: table},
			gDto.Filter{Field: constant.FieldStatus, ArgName: argWhereStatus, Operator: gDto.FilterOperatorIn, Value: values, Table: table},
		},
	}
}

func liveEntries() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: waitModel.FieldStatus, ArgName: "live_waiting", Operator: gDto.FilterOperatorEq, Value: waitModel.StatusWaiting, Table: waitModel.TableName},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{Field: waitModel.FieldStatus, ArgName: "live_assigned", Operator: gDto.FilterOperatorEq, Value: waitModel.StatusAssigned, Table: waitModel.TableName},
					gDto.Filter{Field: waitModel.FieldReleasedAt, Operator: gDto.FilterIsNull, Table: waitModel.TableName},
				},
			},
		},
	}
}

func tablesOrder() gDto.QueryParams {
	return gDto.QueryParams{SortBy: tableModel.TableName + "." + tableModel.FieldNumber, SortDir: gDto.SortDirAsc}
}

func entriesOrder() gDto.QueryParams {
	return gDto.QueryParams{SortBy: waitModel.TableName + "." + waitModel.FieldCreatedAt, SortDir: gDto.SortDirAsc}
}

func statusValues(statuses []waitModel.Status) []string {
	values := make([]string, len(statuses))
	for i, status := range statuses {
		values[i] = string(status)
	}

	return values
}

// orConflict turns a lost compare-and-set into ErrConflict.
func orConflict(err error, ok ...bool) error {
	if err != nil {
		return err
	}

	if len(ok) > 0 && !ok[0] {
		return ErrConflict
	}

	return nil
}

// translate maps a unique violation, including the one-seated-entry-per-table
// index, to ErrConflict.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
	}

	return err
}
