package service_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"seatq/config"
	"seatq/infras/otel/mocks"
	"seatq/infras/s3"
	s3Mocks "seatq/infras/s3/mocks"
	seatingMocks "seatq/internal/domains/seating/mocks"
	"seatq/internal/domains/seating/notifier"
	"seatq/internal/domains/seating/service"
	"seatq/internal/domains/seating/store"
	tableModel "seatq/internal/domains/table/model"
	waitModel "seatq/internal/domains/waitlist/model"
	"seatq/internal/domains/waitlist/model/dto"
	cacheMocks "seatq/shared/cache/mocks"
	"seatq/shared/failure"
)

type fixture struct {
	svc   service.Seating
	store store.Store
	s3    *s3Mocks.MockS3
	cfg   *config.Config
}

func newFixture(t *testing.T, tables ...tableModel.Table) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockS3 := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.Matching.MaxCommitAttempts = 3

	st := store.NewMemory()
	for _, table := range tables {
		require.NoError(t, st.CreateTable(context.Background(), table))
	}

	hub := notifier.New(cfg)
	t.Cleanup(hub.Close)

	return fixture{
		svc:   service.New(st, hub, mockCache, mockS3, cfg, mocks.NewOtel()),
		store: st,
		s3:    mockS3,
		cfg:   cfg,
	}
}

func table(number, capacity int) tableModel.Table {
	return tableModel.Table{
		ID:       fmt.Sprintf("table-%d", number),
		Number:   number,
		Capacity: capacity,
		Status:   tableModel.StatusAvailable,
		Version:  1,
	}
}

func join(t *testing.T, svc service.Seating, partySize int) dto.JoinQueueResponse {
	t.Helper()

	res, err := svc.JoinQueue(context.Background(), dto.JoinQueueRequest{
		PartySize: &partySize,
		Name:      "Guest",
		Phone:     "5551234567",
	})
	require.NoError(t, err)

	return res
}

func assertFailure(t *testing.T, err error, code int) {
	t.Helper()

	require.Error(t, err)
	assert.Equal(t, code, failure.GetCode(err))
}

func TestSeating_Scenarios(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, table(1, 2), table(2, 4))

	// A party of three skips the two-top and takes table 2.
	first := join(t, f.svc, 3)
	assert.Equal(t, waitModel.StatusAssigned, first.Entry.Status)
	require.NotNil(t, first.Entry.TableNumber)
	assert.Equal(t, 2, *first.Entry.TableNumber)
	assert.Equal(t, "Assigned to Table 2", first.Message)

	// A party of two gets the smallest remaining fit.
	second := join(t, f.svc, 2)
	assert.Equal(t, waitModel.StatusAssigned, second.Entry.Status)
	assert.Equal(t, 1, *second.Entry.TableNumber)

	// Nothing seats five.
	third := join(t, f.svc, 5)
	assert.Equal(t, waitModel.StatusWaiting, third.Entry.Status)
	assert.Nil(t, third.Entry.TableNumber)
	assert.Equal(t, dto.MessageQueued, third.Message)

	// A later party of four joins while everything is taken.
	fourth := join(t, f.svc, 4)
	assert.Equal(t, waitModel.StatusWaiting, fourth.Entry.Status)

	freed, err := f.svc.FreeTable(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, tableModel.StatusAvailable, freed.Status)

	assigned, err := f.svc.RunRebalancing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, assigned)

	big, err := f.store.Entry(ctx, third.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, waitModel.StatusWaiting, big.Status)

	four, err := f.store.Entry(ctx, fourth.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, waitModel.StatusAssigned, four.Status)
	assert.Equal(t, 2, *four.TableNumber)

	// Removing a customer who was just seated fails and leaves them seated.
	err = f.svc.RemoveCustomer(ctx, fourth.Entry.ID)
	assertFailure(t, err, http.StatusConflict)

	four, err = f.store.Entry(ctx, fourth.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, waitModel.StatusAssigned, four.Status)
}

func TestSeating_JoinQueueDefaultsPartySize(t *testing.T) {
	f := newFixture(t, table(1, 1))

	res, err := f.svc.JoinQueue(context.Background(), dto.JoinQueueRequest{Name: "Solo", Phone: "5551234567"})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Entry.PartySize)
	assert.Equal(t, waitModel.StatusAssigned, res.Entry.Status)
}

func TestSeating_ConcurrentJoinsForSoleTable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, table(1, 4))

	const parties = 16

	var wg sync.WaitGroup

	results := make([]dto.JoinQueueResponse, parties)

	for i := range parties {
		wg.Add(1)

		go func() {
			defer wg.Done()

			size := 2
			res, err := f.svc.JoinQueue(ctx, dto.JoinQueueRequest{PartySize: &size, Name: "Guest", Phone: "5551234567"})
			assert.NoError(t, err)

			results[i] = res
		}()
	}

	wg.Wait()

	seated := 0

	for _, res := range results {
		switch res.Entry.Status {
		case waitModel.StatusAssigned:
			seated++

			assert.Equal(t, "Assigned to Table 1", res.Message)
		case waitModel.StatusWaiting:
			assert.Equal(t, dto.MessageQueued, res.Message)
		default:
			assert.Failf(t, "unexpected status", "%s", res.Entry.Status)
		}
	}

	assert.Equal(t, 1, seated)

	queue, err := f.svc.GetQueue(ctx, string(waitModel.StatusAssigned))
	require.NoError(t, err)
	assert.Equal(t, 1, queue.Total)
}

func TestSeating_RunRebalancingIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, table(1, 2), table(2, 2))

	// Fill both tables, queue two more, then free both.
	join(t, f.svc, 2)
	join(t, f.svc, 2)
	waitingA := join(t, f.svc, 2)
	time.Sleep(time.Millisecond)
	waitingB := join(t, f.svc, 2)

	_, err := f.svc.FreeTable(ctx, 1)
	require.NoError(t, err)
	_, err = f.svc.FreeTable(ctx, 2)
	require.NoError(t, err)

	assigned, err := f.svc.RunRebalancing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, assigned)

	again, err := f.svc.RunRebalancing(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)

	a, err := f.store.Entry(ctx, waitingA.Entry.ID)
	require.NoError(t, err)
	b, err := f.store.Entry(ctx, waitingB.Entry.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, *a.TableNumber)
	assert.Equal(t, 2, *b.TableNumber)
}

func TestSeating_RebalancingKeepsLineOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, table(1, 4))

	join(t, f.svc, 4)
	earlier := join(t, f.svc, 3)
	time.Sleep(time.Millisecond)
	later := join(t, f.svc, 2)

	_, err := f.svc.FreeTable(ctx, 1)
	require.NoError(t, err)

	assigned, err := f.svc.RunRebalancing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, assigned)

	got, err := f.store.Entry(ctx, earlier.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, waitModel.StatusAssigned, got.Status)

	got, err = f.store.Entry(ctx, later.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, waitModel.StatusWaiting, got.Status)
}

func TestSeating_UpdateCustomerStatus(t *testing.T) {
	ctx := context.Background()
	number := func(n int) *int { return &n }

	tests := []struct {
		name     string
		tables   []tableModel.Table
		setup    func(t *testing.T, f fixture) string
		req      dto.UpdateCustomerStatusRequest
		wantCode int
		want     waitModel.Status
	}{
		{
			name:   "assign to a free table",
			tables: []tableModel.Table{table(1, 2), table(2, 6)},
			setup: func(t *testing.T, f fixture) string {
				_, err := f.svc.HoldTable(ctx, 1)
				require.NoError(t, err)
				_, err = f.svc.HoldTable(ctx, 2)
				require.NoError(t, err)

				entry := join(t, f.svc, 2)

				_, err = f.svc.FreeTable(ctx, 2)
				require.NoError(t, err)

				return entry.Entry.ID
			},
			req:  dto.UpdateCustomerStatusRequest{Status: waitModel.StatusAssigned, TableNumber: number(2)},
			want: waitModel.StatusAssigned,
		},
		{
			name:   "occupied table is rejected",
			tables: []tableModel.Table{table(1, 4)},
			setup: func(t *testing.T, f fixture) string {
				join(t, f.svc, 2)

				return join(t, f.svc, 2).Entry.ID
			},
			req:      dto.UpdateCustomerStatusRequest{Status: waitModel.StatusAssigned, TableNumber: number(1)},
			wantCode: http.StatusConflict,
		},
		{
			name:   "table too small is rejected",
			tables: []tableModel.Table{table(1, 2)},
			setup: func(t *testing.T, f fixture) string {
				return join(t, f.svc, 5).Entry.ID
			},
			req:      dto.UpdateCustomerStatusRequest{Status: waitModel.StatusAssigned, TableNumber: number(1)},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "seated customer cannot be reassigned",
			tables: []tableModel.Table{table(1, 4), table(2, 4)},
			setup: func(t *testing.T, f fixture) string {
				return join(t, f.svc, 2).Entry.ID
			},
			req:      dto.UpdateCustomerStatusRequest{Status: waitModel.StatusAssigned, TableNumber: number(2)},
			wantCode: http.StatusConflict,
		},
		{
			name:   "unknown table",
			tables: []tableModel.Table{table(1, 2)},
			setup: func(t *testing.T, f fixture) string {
				return join(t, f.svc, 5).Entry.ID
			},
			req:      dto.UpdateCustomerStatusRequest{Status: waitModel.StatusAssigned, TableNumber: number(9)},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "remove a waiting customer",
			tables: []tableModel.Table{table(1, 2)},
			setup: func(t *testing.T, f fixture) string {
				return join(t, f.svc, 5).Entry.ID
			},
			req:  dto.UpdateCustomerStatusRequest{Status: waitModel.StatusRemoved},
			want: waitModel.StatusRemoved,
		},
		{
			name:   "back to waiting is rejected",
			tables: []tableModel.Table{table(1, 2)},
			setup: func(t *testing.T, f fixture) string {
				return join(t, f.svc, 5).Entry.ID
			},
			req:      dto.UpdateCustomerStatusRequest{Status: waitModel.StatusWaiting},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "unknown customer",
			tables: []tableModel.Table{table(1, 2)},
			setup: func(*testing.T, fixture) string {
				return "missing"
			},
			req:      dto.UpdateCustomerStatusRequest{Status: waitModel.StatusRemoved},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.tables...)
			id := tt.setup(t, f)

			res, err := f.svc.UpdateCustomerStatus(ctx, id, tt.req)
			if tt.wantCode != 0 {
				assertFailure(t, err, tt.wantCode)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
		})
	}
}

func TestSeating_RemoveCustomerIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	entry := join(t, f.svc, 2)

	require.NoError(t, f.svc.RemoveCustomer(ctx, entry.Entry.ID))
	require.NoError(t, f.svc.RemoveCustomer(ctx, entry.Entry.ID))

	got, err := f.store.Entry(ctx, entry.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, waitModel.StatusRemoved, got.Status)
}

func TestSeating_ClearQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("removes waiting customers only", func(t *testing.T) {
		f := newFixture(t, table(1, 2))

		seated := join(t, f.svc, 2)
		join(t, f.svc, 2)
		join(t, f.svc, 3)

		res, err := f.svc.ClearQueue(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Removed)

		queue, err := f.svc.GetQueue(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 3, queue.Total)
		assert.Zero(t, queue.Waiting)

		got, err := f.store.Entry(ctx, seated.Entry.ID)
		require.NoError(t, err)
		assert.Equal(t, waitModel.StatusAssigned, got.Status)
	})

	t.Run("archives removed customers when a bucket is set", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.External.S3.BucketName = "archive"

		uploaded := make(chan []byte, 1)

		f.s3.EXPECT().
			Put(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, obj s3.Object) (string, error) {
				assert.True(t, strings.HasPrefix(obj.Key, "queue-archive/"))
				assert.Equal(t, "application/json", obj.ContentType)
				uploaded <- obj.Body

				return "https://cdn.example.com/queue-archive/x.json", nil
			})

		join(t, f.svc, 2)

		res, err := f.svc.ClearQueue(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Removed)

		select {
		case data := <-uploaded:
			assert.Contains(t, string(data), `"status":"removed"`)
		case <-time.After(2 * time.Second):
			require.FailNow(t, "archive was never uploaded")
		}
	})

	t.Run("lists waiting customers from the primary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := seatingMocks.NewMockStore(ctrl)
		hub := notifier.New(&config.Config{})
		t.Cleanup(hub.Close)

		st.EXPECT().
			Entries(gomock.Any(), waitModel.StatusWaiting).
			DoAndReturn(func(ctx context.Context, _ ...waitModel.Status) ([]waitModel.Entry, error) {
				assert.True(t, store.ReadsPrimary(ctx))

				return nil, nil
			})

		svc := service.New(st, hub, nil, nil, &config.Config{}, mocks.NewOtel())

		res, err := svc.ClearQueue(ctx)
		require.NoError(t, err)
		assert.Zero(t, res.Removed)
	})

	t.Run("empty queue skips the archive", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.External.S3.BucketName = "archive"

		res, err := f.svc.ClearQueue(ctx)
		require.NoError(t, err)
		assert.Zero(t, res.Removed)
	})
}

func TestSeating_GetQueue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, table(1, 2))

	join(t, f.svc, 2)
	join(t, f.svc, 2)

	all, err := f.svc.GetQueue(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
	assert.Equal(t, 1, all.Waiting)

	waiting, err := f.svc.GetQueue(ctx, "waiting")
	require.NoError(t, err)
	assert.Equal(t, 1, waiting.Total)

	_, err = f.svc.GetQueue(ctx, "seated")
	assertFailure(t, err, http.StatusBadRequest)
}

func TestSeating_Tables(t *testing.T) {
	ctx := context.Background()

	t.Run("hold then free", func(t *testing.T) {
		f := newFixture(t, table(1, 4))

		held, err := f.svc.HoldTable(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, tableModel.StatusReserved, held.Status)

		res := join(t, f.svc, 2)
		assert.Equal(t, waitModel.StatusWaiting, res.Entry.Status)

		_, err = f.svc.HoldTable(ctx, 1)
		assertFailure(t, err, http.StatusConflict)

		freed, err := f.svc.FreeTable(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, tableModel.StatusAvailable, freed.Status)
	})

	t.Run("freeing releases the seated party", func(t *testing.T) {
		f := newFixture(t, table(1, 4))

		seated := join(t, f.svc, 2)

		_, err := f.svc.FreeTable(ctx, 1)
		require.NoError(t, err)

		got, err := f.store.Entry(ctx, seated.Entry.ID)
		require.NoError(t, err)
		assert.Equal(t, waitModel.StatusAssigned, got.Status)
		assert.NotNil(t, got.ReleasedAt)

		next := join(t, f.svc, 4)
		assert.Equal(t, waitModel.StatusAssigned, next.Entry.Status)
	})

	t.Run("freeing an available table is a no-op", func(t *testing.T) {
		f := newFixture(t, table(1, 4))

		freed, err := f.svc.FreeTable(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), freed.Version)
	})

	t.Run("unknown table", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.FreeTable(ctx, 3)
		assertFailure(t, err, http.StatusNotFound)

		_, err = f.svc.HoldTable(ctx, 3)
		assertFailure(t, err, http.StatusNotFound)
	})
}

func TestSeating_PublishesCommittedChanges(t *testing.T) {
	f := newFixture(t, table(1, 4))

	events := make(chan notifier.Event, 8)
	handle := f.svc.Subscribe(func(e notifier.Event) { events <- e })
	defer f.svc.Unsubscribe(handle)

	join(t, f.svc, 2)

	var got []notifier.EventType

	for range 3 {
		select {
		case e := <-events:
			got = append(got, e.Type)
		case <-time.After(2 * time.Second):
			require.FailNow(t, "missing event")
		}
	}

	assert.Equal(t, []notifier.EventType{
		notifier.EventEntryCreated,
		notifier.EventEntryAssigned,
		notifier.EventTableUpdated,
	}, got)
}
