package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"seatq/shared"
	cacheMocks "seatq/shared/cache/mocks"
	"seatq/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "plain number", input: "12", want: 12},
		{name: "surrounding spaces", input: " 7 ", want: 7},
		{name: "negative", input: "-3", want: -3},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "T4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shared.ConvertStringToInt(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "no data", total: 0, limit: 10, want: 1},
		{name: "zero limit", total: 25, limit: 0, want: 1},
		{name: "exact pages", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestFilterByID(t *testing.T) {
	got := shared.FilterByID("entry-1", "id", "wait_entries")

	require.Len(t, got.Filters, 1)

	filter, ok := got.Filters[0].(dto.Filter)
	require.True(t, ok)
	assert.Equal(t, "id", filter.Field)
	assert.Equal(t, "entry-1", filter.Value)
	assert.Equal(t, dto.FilterOperatorEq, filter.Operator)
	assert.Equal(t, "wait_entries", filter.Table)

	where, args := got.GetWhereClause()
	assert.Equal(t, "(wait_entries.id = :id)", where)
	assert.Equal(t, "entry-1", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "table:get", shared.BuildCacheKey("table:get"))
	assert.Equal(t, "table:get:4", shared.BuildCacheKey("table:get", "4"))
	assert.Equal(t, "limiter:10.0.0.1:curl", shared.BuildCacheKey("limiter", "10.0.0.1", "curl"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	available := shared.FilterByField("status", "available", "dining_tables")
	occupied := shared.FilterByField("status", "occupied", "dining_tables")

	first := shared.BuildCacheKeyWithQuery("table:gets", params, available)
	second := shared.BuildCacheKeyWithQuery("table:gets", params, available)
	other := shared.BuildCacheKeyWithQuery("table:gets", params, occupied)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.True(t, strings.HasPrefix(first, "table:gets:"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "table:gets:*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "table:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "table:get:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "table:get")
}
