package queue

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"seatq/config"
	"seatq/infras/otel"
	seatingDto "seatq/internal/domains/seating/model/dto"
	"seatq/internal/domains/seating/notifier"
	"seatq/internal/domains/seating/rebalancer"
	"seatq/internal/domains/seating/service"
	"seatq/internal/domains/waitlist/model/dto"
	"seatq/shared/constant"
	"seatq/shared/validator"
	"seatq/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

type Handler struct {
	service    service.Seating
	rebalancer rebalancer.Rebalancer
	otel       otel.Otel
	upgrader   websocket.Upgrader
}

func New(service service.Seating, rebalancer rebalancer.Rebalancer, cfg *config.Config, otel otel.Otel) Handler {
	origins := cfg.App.CORS.AllowedOrigins

	return Handler{
		service:    service,
		rebalancer: rebalancer,
		otel:       otel,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == constant.Empty || len(origins) == 0 {
					return true
				}

				return slices.Contains(origins, constant.Asterix) || slices.Contains(origins, origin)
			},
		},
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/queue", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.JoinQueue)
		routerGroup.Get("/", handler.GetQueue)
		routerGroup.Delete("/", handler.ClearQueue)
		routerGroup.Get("/stream", handler.Stream)
		routerGroup.Post("/rebalance", handler.RunRebalancing)
		routerGroup.Patch("/{id}/status", handler.UpdateCustomerStatus)
		routerGroup.Delete("/{id}", handler.RemoveCustomer)
	})
}

// JoinQueue adds a party to the line and seats it at once when a table fits.
// @Summary Join the queue
// @Description Add a party to the waiting line. The party is seated immediately when a fitting table is available.
// @Tags Queue
// @Accept json
// @Produce json
// @Param request body dto.JoinQueueRequest true "Party details"
// @Success 201 {object} response.Data[dto.JoinQueueResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/queue [post]
func (handler *Handler) JoinQueue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".JoinQueue")
	defer scope.End()

	var req dto.JoinQueueRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.JoinQueue(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to join queue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent(res.Message)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetQueue lists wait entries in line order.
// @Summary Get the queue
// @Description List wait entries ordered by arrival, optionally filtered by status.
// @Tags Queue
// @Produce json
// @Param status query string false "waiting, assigned or removed"
// @Success 200 {object} response.Data[dto.QueueResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/queue [get]
func (handler *Handler) GetQueue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQueue")
	defer scope.End()

	res, err := handler.service.GetQueue(ctx, r.URL.Query().Get(constant.RequestParamStatus))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get queue")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateCustomerStatus lets staff seat a waiting party at a chosen table or remove it.
// @Summary Update a customer's status
// @Description Staff override. Assigning requires a table number and an available table that fits the party.
// @Tags Queue
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body dto.UpdateCustomerStatusRequest true "New status"
// @Success 200 {object} response.Data[dto.EntryResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/queue/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCustomerStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCustomerStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateCustomerStatusRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateCustomerStatus(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update customer status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Customer status updated by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// RemoveCustomer takes a waiting party out of the line.
// @Summary Remove a customer
// @Description Remove a waiting party. Removing an already removed party succeeds.
// @Tags Queue
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/queue/{id} [delete]
func (handler *Handler) RemoveCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveCustomer")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.RemoveCustomer(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to remove customer")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Customer removed from queue")
}

// ClearQueue removes every waiting party.
// @Summary Clear the queue
// @Description Remove every waiting party. Seated parties are untouched.
// @Tags Queue
// @Produce json
// @Success 200 {object} response.Data[dto.ClearQueueResponse]
// @Failure 500 {object} response.Error
// @Router /v1/queue [delete]
// @Security BearerAuth
func (handler *Handler) ClearQueue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearQueue")
	defer scope.End()

	res, err := handler.service.ClearQueue(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to clear queue")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Queue cleared by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// RunRebalancing runs a matching cycle now.
// @Summary Run rebalancing
// @Description Run one batch matching cycle and report how many parties were seated.
// @Tags Queue
// @Produce json
// @Success 200 {object} response.Data[seatingDto.RebalanceResponse]
// @Failure 500 {object} response.Error
// @Router /v1/queue/rebalance [post]
// @Security BearerAuth
func (handler *Handler) RunRebalancing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RunRebalancing")
	defer scope.End()

	assigned, err := handler.rebalancer.RunNow(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to run rebalancing")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, seatingDto.RebalanceResponse{Assigned: assigned})
}

// Stream pushes a queue snapshot followed by every committed change.
//
// The subscription is opened before the snapshot is read, so a change frame
// may repeat state the snapshot already shows. Clients keep the highest
// version seen per entry and table and ignore frames that are not newer.
// A client that falls too far behind receives a fresh snapshot instead of
// the changes it missed.
// @Summary Stream queue changes
// @Description WebSocket. The first frame is a queue snapshot, then one frame per committed change. Ignore change frames whose entry or table version is not newer than the one already held. A later snapshot frame replaces all state.
// @Tags Queue
// @Success 101 {string} string "Switching Protocols"
// @Router /v1/queue/stream [get]
func (handler *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Stream")
	defer scope.End()

	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to upgrade queue stream")

		return
	}
	defer conn.Close()

	var (
		mu   sync.Mutex
		once sync.Once
		done = make(chan struct{})
	)

	stop := func() { once.Do(func() { close(done) }) }

	writeLocked := func(payload any) {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))

		if err := conn.WriteJSON(payload); err != nil {
			log.Debug().Err(err).Msg("queue stream write failed")
			stop()
		}
	}

	// The snapshot is written before the lock is released so no event frame precedes it.
	mu.Lock()

	handle := handler.service.Subscribe(func(event notifier.Event) {
		mu.Lock()
		defer mu.Unlock()

		if event.Resync() {
			queue, err := handler.service.GetQueue(ctx, constant.Empty)
			if err != nil {
				log.Error().Err(err).Msg("failed to reload queue snapshot")
				stop()

				return
			}

			writeLocked(seatingDto.SnapshotResponse{Type: seatingDto.SnapshotType, Queue: queue})

			return
		}

		var payload seatingDto.EventResponse

		payload.FromEvent(event)
		writeLocked(payload)
	})
	defer handler.service.Unsubscribe(handle)

	queue, err := handler.service.GetQueue(ctx, constant.Empty)
	if err == nil {
		writeLocked(seatingDto.SnapshotResponse{Type: seatingDto.SnapshotType, Queue: queue})
	}

	mu.Unlock()

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to load queue snapshot")

		return
	}

	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	go func() {
		defer stop()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}
