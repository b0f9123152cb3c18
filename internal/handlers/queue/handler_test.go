package queue_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"seatq/config"
	"seatq/infras/otel/mocks"
	seatingMocks "seatq/internal/domains/seating/mocks"
	seatingDto "seatq/internal/domains/seating/model/dto"
	"seatq/internal/domains/seating/notifier"
	waitModel "seatq/internal/domains/waitlist/model"
	"seatq/internal/domains/waitlist/model/dto"
	"seatq/internal/handlers/queue"
	"seatq/shared/failure"
)

type fixture struct {
	seating    *seatingMocks.MockSeating
	rebalancer *seatingMocks.MockRebalancer
	router     chi.Router
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		seating:    seatingMocks.NewMockSeating(ctrl),
		rebalancer: seatingMocks.NewMockRebalancer(ctrl),
		router:     chi.NewRouter(),
	}

	handler := queue.New(f.seating, f.rebalancer, &config.Config{}, mocks.NewOtel())
	handler.Router(f.router)

	return f
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body struct {
		Data T `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Data
}

func TestHandler_JoinQueue(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(f fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "seated on arrival",
			body: `{"name":"Rivera","phone":"5551234567","party_size":2}`,
			setupMock: func(f fixture) {
				f.seating.EXPECT().JoinQueue(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req dto.JoinQueueRequest) (dto.JoinQueueResponse, error) {
					assert.Equal(t, 2, *req.PartySize)

					return dto.JoinQueueResponse{Message: dto.MessageAssigned(1)}, nil
				})
			},
			wantCode: http.StatusCreated,
			wantMsg:  "Assigned to Table 1",
		},
		{
			name:      "missing phone",
			body:      `{"name":"Rivera"}`,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "zero party size",
			body:      `{"name":"Rivera","phone":"5551234567","party_size":0}`,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed body",
			body:      `{"name":`,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			rec := f.do(http.MethodPost, "/queue/", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decode[dto.JoinQueueResponse](t, rec).Message)
			}
		})
	}
}

func TestHandler_GetQueue(t *testing.T) {
	f := newFixture(t)

	f.seating.EXPECT().GetQueue(gomock.Any(), "waiting").Return(dto.QueueResponse{Total: 2, Waiting: 2}, nil)

	rec := f.do(http.MethodGet, "/queue/?status=waiting", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[dto.QueueResponse](t, rec).Waiting)

	f.seating.EXPECT().GetQueue(gomock.Any(), "seated").Return(dto.QueueResponse{}, failure.BadRequestFromString("bad status"))

	rec = f.do(http.MethodGet, "/queue/?status=seated", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdateCustomerStatus(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "assign",
			body: `{"status":"assigned","table_number":3}`,
			setupMock: func(f fixture) {
				f.seating.EXPECT().UpdateCustomerStatus(gomock.Any(), "entry-1", gomock.Any()).DoAndReturn(
					func(_ context.Context, _ string, req dto.UpdateCustomerStatusRequest) (dto.EntryResponse, error) {
						assert.Equal(t, waitModel.StatusAssigned, req.Status)
						assert.Equal(t, 3, *req.TableNumber)

						return dto.EntryResponse{ID: "entry-1", Status: waitModel.StatusAssigned, TableNumber: req.TableNumber}, nil
					})
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "assign without table",
			body:      `{"status":"assigned"}`,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "reactivate",
			body:      `{"status":"waiting"}`,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "table taken",
			body: `{"status":"assigned","table_number":3}`,
			setupMock: func(f fixture) {
				f.seating.EXPECT().UpdateCustomerStatus(gomock.Any(), "entry-1", gomock.Any()).
					Return(dto.EntryResponse{}, failure.Conflict("table 3 is not available"))
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			rec := f.do(http.MethodPatch, "/queue/entry-1/status", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_RemoveAndClear(t *testing.T) {
	f := newFixture(t)

	f.seating.EXPECT().RemoveCustomer(gomock.Any(), "entry-1").Return(nil)
	assert.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/queue/entry-1", "").Code)

	f.seating.EXPECT().RemoveCustomer(gomock.Any(), "entry-2").Return(failure.Conflict("already seated"))
	assert.Equal(t, http.StatusConflict, f.do(http.MethodDelete, "/queue/entry-2", "").Code)

	f.seating.EXPECT().ClearQueue(gomock.Any()).Return(dto.ClearQueueResponse{Removed: 4}, nil)

	rec := f.do(http.MethodDelete, "/queue/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, decode[dto.ClearQueueResponse](t, rec).Removed)
}

func TestHandler_RunRebalancing(t *testing.T) {
	f := newFixture(t)

	f.rebalancer.EXPECT().RunNow(gomock.Any()).Return(2, nil)

	rec := f.do(http.MethodPost, "/queue/rebalance", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[seatingDto.RebalanceResponse](t, rec).Assigned)
}

func TestHandler_Stream(t *testing.T) {
	f := newFixture(t)

	callbacks := make(chan notifier.Callback, 1)
	unsubscribed := make(chan struct{})

	f.seating.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(cb notifier.Callback) notifier.Handle {
		callbacks <- cb

		return 1
	})
	gomock.InOrder(
		f.seating.EXPECT().GetQueue(gomock.Any(), "").Return(dto.QueueResponse{Total: 1, Waiting: 1}, nil),
		f.seating.EXPECT().GetQueue(gomock.Any(), "").Return(dto.QueueResponse{Total: 2}, nil),
	)
	f.seating.EXPECT().Unsubscribe(notifier.Handle(1)).Do(func(notifier.Handle) {
		close(unsubscribed)
	})

	server := httptest.NewServer(f.router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/queue/stream"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	var snapshot seatingDto.SnapshotResponse

	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, seatingDto.SnapshotType, snapshot.Type)
	assert.Equal(t, 1, snapshot.Queue.Waiting)

	number := 2
	entry := waitModel.Entry{ID: "entry-1", Status: waitModel.StatusAssigned, TableNumber: &number, Version: 2}

	cb := <-callbacks
	cb(notifier.Event{Seq: 5, Type: notifier.EventEntryAssigned, Entry: &entry})

	var event seatingDto.EventResponse

	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, uint64(5), event.Seq)
	assert.Equal(t, notifier.EventEntryAssigned, event.Type)
	require.NotNil(t, event.Entry)
	assert.Equal(t, "entry-1", event.Entry.ID)

	cb(notifier.Event{Seq: 9, Type: notifier.EventResync})

	var resync seatingDto.SnapshotResponse

	require.NoError(t, conn.ReadJSON(&resync))
	assert.Equal(t, seatingDto.SnapshotType, resync.Type)
	assert.Equal(t, 2, resync.Queue.Total)
	assert.Zero(t, resync.Queue.Waiting)

	require.NoError(t, conn.Close())

	select {
	case <-unsubscribed:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not unsubscribe after the client left")
	}
}
