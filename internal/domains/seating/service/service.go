package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"slices"
	"time"

	"seatq/config"
	"seatq/infras/otel"
	"seatq/infras/s3"
	"seatq/internal/domains/seating/matcher"
	"seatq/internal/domains/seating/notifier"
	"seatq/internal/domains/seating/store"
	tableModel "seatq/internal/domains/table/model"
	tableDto "seatq/internal/domains/table/model/dto"
	waitModel "seatq/internal/domains/waitlist/model"
	"seatq/internal/domains/waitlist/model/dto"
	"seatq/shared"
	"seatq/shared/cache"
	"seatq/shared/constant"
	"seatq/shared/failure"
	"seatq/shared/logger"
	"seatq/shared/timezone"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

const (
	defaultCommitAttempts = 3
	archiveDirectory      = "queue-archive"
)

type Seating interface {
	JoinQueue(ctx context.Context, req dto.JoinQueueRequest) (dto.JoinQueueResponse, error)
	GetQueue(ctx context.Context, status string) (dto.QueueResponse, error)
	UpdateCustomerStatus(ctx context.Context, id string, req dto.UpdateCustomerStatusRequest) (dto.EntryResponse, error)
	RemoveCustomer(ctx context.Context, id string) error
	ClearQueue(ctx context.Context) (dto.ClearQueueResponse, error)
	RunRebalancing(ctx context.Context) (int, error)
	FreeTable(ctx context.Context, number int) (tableDto.TableResponse, error)
	HoldTable(ctx context.Context, number int) (tableDto.TableResponse, error)
	Subscribe(cb notifier.Callback) notifier.Handle
	Unsubscribe(handle notifier.Handle)
}

type serviceImpl struct {
	store    store.Store
	notifier notifier.Notifier
	cache    cache.RedisCache
	objects  s3.S3
	cfg      *config.Config
	otel     otel.Otel
}

func New(store store.Store, notifier notifier.Notifier, cache cache.RedisCache, archive s3.S3, cfg *config.Config, otel otel.Otel) Seating {
	return &serviceImpl{
		store:    store,
		notifier: notifier,
		cache:    cache,
		objects:  archive,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) JoinQueue(ctx context.Context, req dto.JoinQueueRequest) (res dto.JoinQueueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".JoinQueue")
	defer scope.End()
	defer scope.TraceIfError(err)

	entry := req.ToModel()

	if err = s.store.CreateEntry(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to create wait entry")

		return res, fmt.Errorf("failed to create wait entry: %w", err)
	}

	s.notifier.Publish(notifier.EntryEvent(notifier.EventEntryCreated, entry))

	seated, err := s.seatOnArrival(ctx, entry)
	if err != nil {
		return res, err
	}

	scope.SetAttributes(map[string]any{
		"entry.id":     seated.ID,
		"entry.status": string(seated.Status),
	})

	res.FromModel(seated)

	return res, nil
}

// seatOnArrival runs the read-decide-commit loop for one new entry. A lost
// race is retried a bounded number of times, after which the entry simply
// stays in line for the rebalancer.
func (s *serviceImpl) seatOnArrival(ctx context.Context, entry waitModel.Entry) (waitModel.Entry, error) {
	result, err := retry(ctx, s.cfg, func() (waitModel.Entry, error) {
		snap, err := s.store.Snapshot(ctx)
		if err != nil {
			return entry, backoff.Permanent(err)
		}

		idx := slices.IndexFunc(snap.Entries, func(e waitModel.Entry) bool { return e.ID == entry.ID })
		if idx < 0 || snap.Entries[idx].Status != waitModel.StatusWaiting {
			return entry, nil
		}

		current := snap.Entries[idx]

		table, ok := matcher.SelectTable(current.PartySize, snap.Tables)
		if !ok {
			return current, nil
		}

		seated, occupied, err := s.store.Seat(ctx, current, table)
		if errors.Is(err, store.ErrConflict) {
			log.Debug().Str("entry", current.ID).Int("table", table.Number).Msg("seat on arrival lost a race, retrying")

			return current, err
		}

		if err != nil {
			return current, backoff.Permanent(err)
		}

		s.seated(ctx, seated, occupied)

		return seated, nil
	})

	switch {
	case err == nil && result.Status == waitModel.StatusAssigned:
		return result, nil
	case errors.Is(err, store.ErrInvariant):
		logger.ErrorWithStack(err)

		return entry, failure.InternalError(err)
	case err != nil && !errors.Is(err, store.ErrConflict):
		log.Error().Err(err).Msg("failed to seat new arrival")

		return entry, fmt.Errorf("failed to seat new arrival: %w", err)
	}

	latest, err := s.store.Entry(ctx, entry.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to re-read wait entry")

		return entry, fmt.Errorf("failed to re-read wait entry: %w", err)
	}

	return latest, nil
}

func (s *serviceImpl) GetQueue(ctx context.Context, status string) (res dto.QueueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetQueue")
	defer scope.End()
	defer scope.TraceIfError(err)

	var statuses []waitModel.Status

	if status != constant.Empty {
		wanted := waitModel.Status(status)
		if !slices.Contains([]waitModel.Status{waitModel.StatusWaiting, waitModel.StatusAssigned, waitModel.StatusRemoved}, wanted) {
			return res, failure.BadRequestFromString("status must be one of waiting, assigned, removed")
		}

		statuses = append(statuses, wanted)
	}

	entries, err := s.store.Entries(ctx, statuses...)
	if err != nil {
		log.Error().Err(err).Msg("failed to get queue")

		return res, fmt.Errorf("failed to get queue: %w", err)
	}

	res.FromModels(entries)

	return res, nil
}

func (s *serviceImpl) UpdateCustomerStatus(ctx context.Context, id string, req dto.UpdateCustomerStatusRequest) (res dto.EntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCustomerStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	entry, err := s.entry(ctx, id)
	if err != nil {
		return res, err
	}

	switch req.Status {
	case waitModel.StatusRemoved:
		removed, err := s.remove(ctx, entry)
		if err != nil {
			return res, err
		}

		res.FromModel(removed)

		return res, nil
	case waitModel.StatusAssigned:
		if req.TableNumber == nil {
			return res, failure.BadRequestFromString("table_number is required to assign a customer")
		}

		seated, err := s.assign(ctx, entry, *req.TableNumber)
		if err != nil {
			return res, err
		}

		res.FromModel(seated)

		return res, nil
	default:
		return res, failure.BadRequestFromString(fmt.Sprintf("status cannot be changed to %s", req.Status))
	}
}

// assign seats the entry at a table picked by staff. Matching is bypassed,
// exclusivity and capacity are not.
func (s *serviceImpl) assign(ctx context.Context, entry waitModel.Entry, number int) (waitModel.Entry, error) {
	if entry.Status != waitModel.StatusWaiting {
		return entry, failure.Conflict(fmt.Sprintf("customer is already %s", entry.Status))
	}

	table, err := s.table(ctx, number)
	if err != nil {
		return entry, err
	}

	if !table.Fits(entry.PartySize) {
		return entry, failure.BadRequestFromString(fmt.Sprintf("table %d seats %d, party of %d does not fit", table.Number, table.Capacity, entry.PartySize))
	}

	if !table.Selectable() {
		return entry, failure.Conflict(fmt.Sprintf("table %d is %s", table.Number, table.Status))
	}

	seated, occupied, err := s.store.Seat(ctx, entry, table)
	if err != nil {
		return entry, s.commitFailure(err, "failed to assign customer", "customer or table changed, reload and try again")
	}

	s.seated(ctx, seated, occupied)

	return seated, nil
}

func (s *serviceImpl) RemoveCustomer(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	entry, err := s.entry(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.remove(ctx, entry)

	return err
}

// remove succeeds only while the entry is still waiting at commit time. An
// entry removed twice is fine; an entry seated in the meantime stays seated.
func (s *serviceImpl) remove(ctx context.Context, entry waitModel.Entry) (waitModel.Entry, error) {
	switch entry.Status {
	case waitModel.StatusRemoved:
		return entry, nil
	case waitModel.StatusAssigned:
		return entry, failure.Conflict("customer is already seated")
	}

	removed, err := s.store.Remove(ctx, entry)
	if errors.Is(err, store.ErrConflict) {
		latest, readErr := s.entry(ctx, entry.ID)
		if readErr != nil {
			return entry, readErr
		}

		if latest.Status == waitModel.StatusRemoved {
			return latest, nil
		}

		return latest, failure.Conflict(fmt.Sprintf("customer is already %s", latest.Status))
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to remove customer")

		return entry, fmt.Errorf("failed to remove customer: %w", err)
	}

	s.notifier.Publish(notifier.EntryEvent(notifier.EventEntryRemoved, removed))

	return removed, nil
}

func (s *serviceImpl) ClearQueue(ctx context.Context) (res dto.ClearQueueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClearQueue")
	defer scope.End()
	defer scope.TraceIfError(err)

	waiting, err := s.store.Entries(store.ReadYourWrites(ctx), waitModel.StatusWaiting)
	if err != nil {
		log.Error().Err(err).Msg("failed to list waiting customers")

		return res, fmt.Errorf("failed to list waiting customers: %w", err)
	}

	removed := make([]waitModel.Entry, 0, len(waiting))

	for _, entry := range waiting {
		gone, err := s.store.Remove(ctx, entry)
		if errors.Is(err, store.ErrConflict) {
			continue
		}

		if err != nil {
			log.Error().Err(err).Str("entry", entry.ID).Msg("failed to clear customer")

			return res, fmt.Errorf("failed to clear queue: %w", err)
		}

		removed = append(removed, gone)
		s.notifier.Publish(notifier.EntryEvent(notifier.EventEntryRemoved, gone))
	}

	res.Removed = len(removed)
	scope.SetAttribute("queue.removed", res.Removed)

	if len(removed) > 0 && s.cfg.External.S3.BucketName != constant.Empty {
		go s.archive(context.WithoutCancel(ctx), removed)
	}

	return res, nil
}

func (s *serviceImpl) archive(ctx context.Context, entries []waitModel.Entry) {
	payload := make([]dto.EntryResponse, len(entries))
	for i, entry := range entries {
		payload[i].FromModel(entry)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode queue archive")

		return
	}

	url, err := s.objects.Put(ctx, s3.Object{
		Key:         path.Join(archiveDirectory, timezone.Now().Format("20060102T150405.000000000")+".json"),
		ContentType: constant.ContentTypeJSON,
		Body:        data,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to archive cleared queue")

		return
	}

	log.Info().Str("url", url).Int("entries", len(entries)).Msg("Archived cleared queue")
}

// RunRebalancing runs one batch cycle. Pairings that lost a race are dropped
// and picked up again by the next cycle.
func (s *serviceImpl) RunRebalancing(ctx context.Context) (assigned int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RunRebalancing")
	defer scope.End()
	defer scope.TraceIfError(err)

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read seating snapshot")

		return 0, fmt.Errorf("failed to read seating snapshot: %w", err)
	}

	for _, pairing := range matcher.MatchBatch(snap.Entries, snap.Tables) {
		seated, occupied, err := s.store.Seat(ctx, pairing.Entry, pairing.Table)
		if errors.Is(err, store.ErrConflict) {
			log.Debug().Str("entry", pairing.Entry.ID).Int("table", pairing.Table.Number).Msg("dropping stale pairing")

			continue
		}

		if errors.Is(err, store.ErrInvariant) {
			logger.ErrorWithStack(err)

			return assigned, failure.InternalError(err)
		}

		if err != nil {
			log.Error().Err(err).Msg("failed to commit pairing")

			return assigned, fmt.Errorf("failed to commit pairing: %w", err)
		}

		s.seated(ctx, seated, occupied)
		assigned++
	}

	scope.SetAttribute("rebalance.assigned", assigned)

	return assigned, nil
}

// FreeTable makes an occupied or reserved table available again and releases
// the party seated there. Freeing an available table is a no-op.
func (s *serviceImpl) FreeTable(ctx context.Context, number int) (res tableDto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FreeTable")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("table.number", number)

	freed, err := retry(ctx, s.cfg, func() (tableModel.Table, error) {
		snap, err := s.store.Snapshot(ctx)
		if err != nil {
			return tableModel.Table{}, backoff.Permanent(err)
		}

		idx := slices.IndexFunc(snap.Tables, func(t tableModel.Table) bool { return t.Number == number })
		if idx < 0 {
			return tableModel.Table{}, backoff.Permanent(failure.NotFound("table not found"))
		}

		table := snap.Tables[idx]
		if table.Status == tableModel.StatusAvailable {
			return table, nil
		}

		var holder *waitModel.Entry
		if entry, ok := snap.SeatedAt(number); ok {
			holder = &entry
		}

		available, released, err := s.store.Release(ctx, table, holder)
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				return table, err
			}

			return table, backoff.Permanent(err)
		}

		events := []notifier.Event{notifier.TableEvent(available)}
		if released != nil {
			events = append(events, notifier.EntryEvent(notifier.EventEntryReleased, *released))
		}

		s.notifier.Publish(events...)
		s.invalidateTables(ctx)

		return available, nil
	})
	if err != nil {
		var fail *failure.Failure
		if errors.As(err, &fail) {
			return res, err
		}

		return res, s.commitFailure(err, "failed to free table", "table changed, reload and try again")
	}

	res.FromModel(freed)

	return res, nil
}

func (s *serviceImpl) HoldTable(ctx context.Context, number int) (res tableDto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HoldTable")
	defer scope.End()
	defer scope.TraceIfError(err)

	table, err := s.table(ctx, number)
	if err != nil {
		return res, err
	}

	if !table.Selectable() {
		return res, failure.Conflict(fmt.Sprintf("table %d is %s", table.Number, table.Status))
	}

	reserved, err := s.store.Hold(ctx, table)
	if err != nil {
		return res, s.commitFailure(err, "failed to hold table", "table changed, reload and try again")
	}

	s.notifier.Publish(notifier.TableEvent(reserved))
	s.invalidateTables(ctx)

	res.FromModel(reserved)

	return res, nil
}

func (s *serviceImpl) Subscribe(cb notifier.Callback) notifier.Handle {
	return s.notifier.Subscribe(cb)
}

func (s *serviceImpl) Unsubscribe(handle notifier.Handle) {
	s.notifier.Unsubscribe(handle)
}

func (s *serviceImpl) seated(ctx context.Context, entry waitModel.Entry, table tableModel.Table) {
	s.notifier.Publish(
		notifier.EntryEvent(notifier.EventEntryAssigned, entry),
		notifier.TableEvent(table),
	)

	s.invalidateTables(ctx)
}

func (s *serviceImpl) invalidateTables(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, tableModel.CacheGet)
		shared.InvalidateCaches(c, s.cache, tableModel.CacheGetAll)
	}()
}

func (s *serviceImpl) entry(ctx context.Context, id string) (waitModel.Entry, error) {
	entry, err := s.store.Entry(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return entry, failure.NotFound("customer not found")
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return entry, fmt.Errorf("failed to get customer: %w", err)
	}

	return entry, nil
}

func (s *serviceImpl) table(ctx context.Context, number int) (tableModel.Table, error) {
	table, err := s.store.TableByNumber(ctx, number)
	if errors.Is(err, store.ErrNotFound) {
		return table, failure.NotFound("table not found")
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return table, fmt.Errorf("failed to get table: %w", err)
	}

	return table, nil
}

func (s *serviceImpl) commitFailure(err error, action, conflict string) error {
	switch {
	case errors.Is(err, store.ErrConflict):
		return failure.Conflict(conflict)
	case errors.Is(err, store.ErrInvariant):
		logger.ErrorWithStack(err)

		return failure.InternalError(err)
	default:
		log.Error().Err(err).Msg(action)

		return fmt.Errorf("%s: %w", action, err)
	}
}

func retry[T any](ctx context.Context, cfg *config.Config, op backoff.Operation[T]) (T, error) {
	attempts := cfg.Matching.MaxCommitAttempts
	if attempts == 0 {
		attempts = defaultCommitAttempts
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(cfg.Matching.RetryBackoffMillis) * time.Millisecond
	b.MaxInterval = 10 * b.InitialInterval

	return backoff.Retry(ctx, op, backoff.WithBackOff(b), backoff.WithMaxTries(attempts))
}
