package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"seatq/config"
	"seatq/infras/otel"
	"seatq/internal/domains/seating/notifier"
	"seatq/internal/domains/seating/store"
	"seatq/internal/domains/table/model"
	"seatq/internal/domains/table/model/dto"
	"seatq/shared"
	"seatq/shared/cache"
	"seatq/shared/constant"
	gDto "seatq/shared/dto"
	"seatq/shared/failure"

	"github.com/rs/zerolog/log"
)

type Table interface {
	Create(ctx context.Context, req dto.CreateTableRequest) (dto.TableResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetTablesResponse, error)
	Get(ctx context.Context, number int) (dto.TableResponse, error)
}

type serviceImpl struct {
	store    store.Store
	notifier notifier.Notifier
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(store store.Store, notifier notifier.Notifier, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Table {
	return &serviceImpl{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	table := req.ToModel(user)

	err = s.store.CreateTable(ctx, table)
	if errors.Is(err, store.ErrConflict) {
		return res, failure.Conflict(fmt.Sprintf("table %d already exists", req.Number))
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create table")

		return res, fmt.Errorf("failed to create table: %w", err)
	}

	// A new available table is a chance to seat someone.
	s.notifier.Publish(notifier.TableEvent(table))

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
	}()

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, gDto.FilterGroup{})

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tables")

		return res, nil
	}

	if !cache.IsMiss(err) {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("cache unavailable, reading store")
	}

	tables, err := s.store.Tables(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	res.FromModels(page(tables, req), len(tables), req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tables to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, number int) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, strconv.Itoa(number))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for table")

		return res, nil
	}

	if !cache.IsMiss(err) {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("cache unavailable, reading store")
	}

	table, err := s.store.TableByNumber(ctx, number)
	if errors.Is(err, store.ErrNotFound) {
		return res, failure.NotFound("table not found") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	res.FromModel(table)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save table to cache")
		}
	}()

	return res, nil
}

// page slices tables already ordered by number. A zero limit returns everything.
func page(tables []model.Table, req gDto.QueryParams) []model.Table {
	if req.Limit <= 0 {
		return tables
	}

	start := req.Offset()
	if start >= len(tables) {
		return []model.Table{}
	}

	return tables[start:min(start+req.Limit, len(tables))]
}
