package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"seatq/infras/otel/mocks"
	"seatq/shared/dto"
	"seatq/shared/model"
	"seatq/shared/repository"
)

type contact struct {
	Name  string `db:"name"`
	Phone string `db:"phone"`
}

type row struct {
	ID      string `db:"id"`
	Size    int    `db:"size"`
	Skipped string
	contact
	model.Metadata
}

func TestNewRepository_InsertColumns(t *testing.T) {
	repo := repository.NewRepository[row]("row", "rows", "id", nil, mocks.NewOtel())

	assert.Equal(t, []string{
		"id", "size", "name", "phone",
		"created_at", "modified_at", "created_by", "modified_by",
	}, repo.InsertColumns)
}

func TestRepository_BuildWhereClause(t *testing.T) {
	repo := repository.NewRepository[row]("row", "rows", "id", nil, mocks.NewOtel())

	tests := []struct {
		name      string
		filter    dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty filter",
			filter:    dto.FilterGroup{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name: "version guarded update",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "id", Operator: dto.FilterOperatorEq, Value: "a", Table: "rows"},
					dto.Filter{Field: "version", ArgName: "where_version", Operator: dto.FilterOperatorEq, Value: int64(3), Table: "rows"},
					dto.Filter{Field: "status", ArgName: "where_status", Operator: dto.FilterOperatorIn, Value: []string{"occupied", "reserved"}, Table: "rows"},
				},
			},
			wantWhere: " WHERE (rows.id = :id AND rows.version = :where_version AND rows.status IN (:where_status_0, :where_status_1)) ",
			wantArgs: map[string]any{
				"id":             "a",
				"where_version":  int64(3),
				"where_status_0": "occupied",
				"where_status_1": "reserved",
			},
		},
		{
			name: "nested groups",
			filter: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", ArgName: "live_waiting", Operator: dto.FilterOperatorEq, Value: "waiting"},
					dto.FilterGroup{
						Operator: dto.FilterGroupOperatorAnd,
						Filters: []any{
							dto.Filter{Field: "status", ArgName: "live_assigned", Operator: dto.FilterOperatorEq, Value: "assigned"},
							dto.Filter{Field: "released_at", Operator: dto.FilterIsNull},
						},
					},
				},
			},
			wantWhere: " WHERE (status = :live_waiting OR (status = :live_assigned AND released_at IS NULL)) ",
			wantArgs: map[string]any{
				"live_waiting":  "waiting",
				"live_assigned": "assigned",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := repo.BuildWhereClause(context.Background(), tt.filter)

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
