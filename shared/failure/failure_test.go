package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"seatq/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("name is required")), wantCode: http.StatusBadRequest, wantMsg: "name is required"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid status"), wantCode: http.StatusBadRequest, wantMsg: "invalid status"},
		{name: "unauthorized", err: failure.Unauthorized("Token has expired"), wantCode: http.StatusUnauthorized, wantMsg: "Token has expired"},
		{name: "not found", err: failure.NotFound("queue entry"), wantCode: http.StatusNotFound, wantMsg: "queue entry"},
		{name: "conflict", err: failure.Conflict("table 3 is occupied"), wantCode: http.StatusConflict, wantMsg: "table 3 is occupied"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), wantCode: http.StatusInternalServerError, wantMsg: "db down"},
		{name: "forbidden", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMsg: "You don't have the required permissions"},
		{name: "invalid page", err: failure.InvalidPageParam, wantCode: http.StatusBadRequest, wantMsg: "invalid page parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.EqualError(t, tt.err, tt.wantMsg)
		})
	}
}

func TestNilWrappersStayNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to assign customer: %w", failure.Conflict("table is held"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}
