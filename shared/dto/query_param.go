package dto

import (
	"math"
	"net/http"
	"strconv"

	"seatq/shared/constant"
	"seatq/shared/failure"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"

	MaxLimit = 100
	MaxPage  = 1_000_000
)

// QueryParams carries pagination from the request. SortBy and SortDir are
// set by repositories only and are never read from the query string.
type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"-"`
	SortDir string `json:"-"`
}

// FromRequest reads page and limit, applying defaults for missing values.
func (q *QueryParams) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	page, err := positiveParam(query.Get(constant.RequestParamPage), constant.DefaultValuePage)
	if err != nil || page > MaxPage {
		return failure.InvalidPageParam
	}

	limit, err := positiveParam(query.Get(constant.RequestParamLimit), constant.DefaultValueLimit)
	if err != nil {
		return failure.InvalidLimitParam
	}

	q.Page = page
	q.Limit = min(limit, MaxLimit)

	return nil
}

// Offset is the number of rows before Page. It saturates instead of
// overflowing, so an absurd page lands past the last row.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}

	return (q.Page - 1) * q.Limit
}

func positiveParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	if value < 1 {
		return 0, strconv.ErrRange
	}

	return value, nil
}
