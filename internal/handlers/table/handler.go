package table

import (
	"net/http"

	"seatq/infras/otel"
	seatingService "seatq/internal/domains/seating/service"
	"seatq/internal/domains/table/model/dto"
	"seatq/internal/domains/table/service"
	"seatq/shared"
	"seatq/shared/constant"
	gDto "seatq/shared/dto"
	"seatq/shared/failure"
	"seatq/shared/validator"
	"seatq/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Table
	seating seatingService.Seating
	otel    otel.Otel
}

func New(service service.Table, seating seatingService.Seating, otel otel.Otel) Handler {
	return Handler{
		service: service,
		seating: seating,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTable)
		routerGroup.Get("/", handler.GetTables)
		routerGroup.Get("/{number}", handler.GetTable)
		routerGroup.Post("/{number}/free", handler.FreeTable)
		routerGroup.Post("/{number}/hold", handler.HoldTable)
	})
}

func tableNumber(r *http.Request) (int, error) {
	number, err := shared.ConvertStringToInt(chi.URLParam(r, constant.RequestParamNumber))
	if err != nil || number < 1 {
		return 0, failure.BadRequestFromString("table number must be a positive integer")
	}

	return number, nil
}

// CreateTable registers a new table.
// @Summary Create a table
// @Description Register a table with a unique number and a seating capacity. New tables start available.
// @Tags Table
// @Accept json
// @Produce json
// @Param request body dto.CreateTableRequest true "Table details"
// @Success 201 {object} response.Data[dto.TableResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [post]
// @Security BearerAuth
func (handler *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	var req dto.CreateTableRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create table")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Table created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTables lists tables ordered by number.
// @Summary Get all tables
// @Description List tables ordered by number with pagination.
// @Tags Table
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetTablesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [get]
func (handler *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTables")
	defer scope.End()

	var queryParams gDto.QueryParams

	if err := queryParams.FromRequest(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	tables, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tables")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tables)
}

// GetTable retrieves a table by its number.
// @Summary Get a table
// @Tags Table
// @Produce json
// @Param number path int true "Table number"
// @Success 200 {object} response.Data[dto.TableResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{number} [get]
func (handler *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTable")
	defer scope.End()

	number, err := tableNumber(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	table, err := handler.service.Get(ctx, number)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("number", number).Msg("failed to get table")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, table)
}

// FreeTable marks a table available and releases the party seated at it.
// @Summary Free a table
// @Description Mark an occupied or reserved table available. The seated party is released and a rebalancing cycle follows.
// @Tags Table
// @Produce json
// @Param number path int true "Table number"
// @Success 200 {object} response.Data[dto.TableResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{number}/free [post]
// @Security BearerAuth
func (handler *Handler) FreeTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FreeTable")
	defer scope.End()

	number, err := tableNumber(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	table, err := handler.seating.FreeTable(ctx, number)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("number", number).Msg("failed to free table")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, table)
}

// HoldTable reserves an available table so the matcher skips it.
// @Summary Hold a table
// @Tags Table
// @Produce json
// @Param number path int true "Table number"
// @Success 200 {object} response.Data[dto.TableResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{number}/hold [post]
// @Security BearerAuth
func (handler *Handler) HoldTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HoldTable")
	defer scope.End()

	number, err := tableNumber(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	table, err := handler.seating.HoldTable(ctx, number)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("number", number).Msg("failed to hold table")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, table)
}
