package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"seatq/infras/postgres"
	tableModel "seatq/internal/domains/table/model"
	waitModel "seatq/internal/domains/waitlist/model"
)

func TestVersionFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   func() (string, map[string]any)
		expected string
		args     map[string]any
	}{
		{
			name: "table with one status",
			filter: func() (string, map[string]any) {
				group := versionFilter(tableModel.TableName, "table-1", 3, tableModel.StatusAvailable)

				return group.GetWhereClause()
			},
			expected: "(dining_tables.id = :id AND dining_tables.version = :where_version AND dining_tables.status IN (:where_status_0))",
			args: map[string]any{
				"id":             "table-1",
				"where_version":  int64(3),
				"where_status_0": "available",
			},
		},
		{
			name: "table with two statuses",
			filter: func() (string, map[string]any) {
				group := versionFilter(tableModel.TableName, "table-2", 7, tableModel.StatusOccupied, tableModel.StatusReserved)

				return group.GetWhereClause()
			},
			expected: "(dining_tables.id = :id AND dining_tables.version = :where_version AND dining_tables.status IN (:where_status_0, :where_status_1))",
			args: map[string]any{
				"id":             "table-2",
				"where_version":  int64(7),
				"where_status_0": "occupied",
				"where_status_1": "reserved",
			},
		},
		{
			name: "entry",
			filter: func() (string, map[string]any) {
				group := versionFilter(waitModel.TableName, "entry-1", 1, waitModel.StatusWaiting)

				return group.GetWhereClause()
			},
			expected: "(wait_entries.id = :id AND wait_entries.version = :where_version AND wait_entries.status IN (:where_status_0))",
			args: map[string]any{
				"id":             "entry-1",
				"where_version":  int64(1),
				"where_status_0": "waiting",
			},
		},
		{
			name: "no status matches nothing",
			filter: func() (string, map[string]any) {
				group := versionFilter[tableModel.Status](tableModel.TableName, "table-1", 3)

				return group.GetWhereClause()
			},
			expected: "(dining_tables.id = :id AND dining_tables.version = :where_version AND FALSE)",
			args: map[string]any{
				"id":            "table-1",
				"where_version": int64(3),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter()
			assert.Equal(t, tt.expected, clause)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestLiveEntries(t *testing.T) {
	group := liveEntries()
	clause, args := group.GetWhereClause()

	assert.Equal(t,
		"(wait_entries.status = :live_waiting OR (wait_entries.status = :live_assigned AND wait_entries.released_at IS NULL))",
		clause,
	)
	assert.Equal(t, map[string]any{
		"live_waiting":  waitModel.StatusWaiting,
		"live_assigned": waitModel.StatusAssigned,
	}, args)
}

func TestOrConflict(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		ok       []bool
		expected error
	}{
		{name: "applied", ok: []bool{true}},
		{name: "no flag", expected: nil},
		{name: "lost compare", ok: []bool{false}, expected: ErrConflict},
		{name: "error wins over flag", err: boom, ok: []bool{false}, expected: boom},
		{name: "error without flag", err: boom, expected: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := orConflict(tt.err, tt.ok...)
			if tt.expected == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestTranslate(t *testing.T) {
	boom := errors.New("boom")

	t.Run("unique violation is a conflict", func(t *testing.T) {
		err := translate(fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "wait_entries_seated_table_idx"}))

		assert.ErrorIs(t, err, ErrConflict)
		assert.Contains(t, err.Error(), "wait_entries_seated_table_idx")
	})

	t.Run("other postgres errors pass through", func(t *testing.T) {
		pqErr := &pq.Error{Code: "23503", Constraint: "fk"}
		err := translate(pqErr)

		assert.NotErrorIs(t, err, ErrConflict)
		assert.Same(t, pqErr, err)
	})

	t.Run("plain errors pass through", func(t *testing.T) {
		assert.Same(t, boom, translate(boom))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translate(nil))
	})
}

func TestPostgresStore_Source(t *testing.T) {
	conn := &postgres.Connection{
		Read:  sqlx.NewDb(nil, "postgres"),
		Write: sqlx.NewDb(nil, "postgres"),
	}
	p := &postgresStore{db: conn}

	assert.Same(t, conn.Read, p.source(context.Background()))
	assert.Same(t, conn.Write, p.source(ReadYourWrites(context.Background())))
	assert.True(t, ReadsPrimary(ReadYourWrites(context.Background())))
	assert.False(t, ReadsPrimary(context.Background()))
}
