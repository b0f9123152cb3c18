// Package events bridges the seating engine and Kafka: committed changes go out
// on the seating topic and table status reports from other systems come in.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"seatq/config"
	"seatq/infras/kafka"
	"seatq/infras/otel"
	"seatq/internal/domains/seating/model/dto"
	"seatq/internal/domains/seating/notifier"
	"seatq/internal/domains/seating/service"
	tableModel "seatq/internal/domains/table/model"
	"seatq/shared/constant"
	"seatq/shared/failure"
	"seatq/shared/validator"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

var ErrUnknownEvent = errors.New("event has neither entry nor table")

type Bridge interface {
	// Forward publishes every committed change until ctx is done.
	Forward(ctx context.Context)
	// ConsumeTableStatus applies table status reports until ctx is done.
	ConsumeTableStatus(ctx context.Context)
	HandleTableStatus(ctx context.Context, message kafkaGo.Message) error
}

type bridgeImpl struct {
	kafka   kafka.Client
	seating service.Seating
	cfg     *config.Config
	otel    otel.Otel
}

func New(kafka kafka.Client, seating service.Seating, cfg *config.Config, otel otel.Otel) Bridge {
	return &bridgeImpl{
		kafka:   kafka,
		seating: seating,
		cfg:     cfg,
		otel:    otel,
	}
}

func (b *bridgeImpl) Forward(ctx context.Context) {
	handle := b.seating.Subscribe(func(event notifier.Event) {
		// Delivery is best effort; the store stays the source of truth.
		_ = b.forward(context.WithoutCancel(ctx), event)
	})
	defer b.seating.Unsubscribe(handle)

	log.Info().Str("topic", b.cfg.Kafka.Topics.SeatingEvents).Msg("forwarding seating events")

	<-ctx.Done()
}

func (b *bridgeImpl) forward(ctx context.Context, event notifier.Event) (err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Forward")
	defer scope.End()
	defer scope.TraceIfError(err)

	var payload dto.EventResponse

	payload.FromEvent(event)

	key := payload.Key()
	if key == constant.Empty {
		return ErrUnknownEvent
	}

	scope.SetAttributes(map[string]any{
		"event.type": string(event.Type),
		"event.seq":  event.Seq,
	})

	err = b.kafka.SendMessages(ctx, b.cfg.Kafka.Topics.SeatingEvents, kafka.Message{Key: key, Value: payload})
	if err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Uint64("seq", event.Seq).Msg("failed to forward seating event")

		return fmt.Errorf("failed to forward seating event: %w", err)
	}

	return nil
}

func (b *bridgeImpl) ConsumeTableStatus(ctx context.Context) {
	log.Info().Str("topic", b.cfg.Kafka.Topics.TableStatus).Msg("consuming table status reports")

	b.kafka.Consume(ctx, b.cfg.Kafka.Topics.TableStatus, b.HandleTableStatus)
}

// HandleTableStatus frees or holds the reported table. Malformed reports and
// unknown tables are acknowledged and dropped; any other failure leaves the
// offset uncommitted.
func (b *bridgeImpl) HandleTableStatus(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleTableStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	report, err := kafka.Decode[dto.TableStatusMessage](message)
	if err != nil {
		log.Warn().Err(err).Int64("offset", message.Offset).Msg("dropping malformed table status report")

		return nil
	}

	if err = validator.ValidateStruct(&report); err != nil {
		log.Warn().Err(err).Int64("offset", message.Offset).Msg("dropping invalid table status report")

		return nil
	}

	switch tableModel.Status(report.Status) {
	case tableModel.StatusAvailable:
		_, err = b.seating.FreeTable(ctx, report.TableNumber)
	case tableModel.StatusReserved:
		_, err = b.seating.HoldTable(ctx, report.TableNumber)
	default:
		log.Debug().Str("status", report.Status).Int("table", report.TableNumber).Msg("ignoring table status report")

		return nil
	}

	switch failure.GetCode(err) {
	case http.StatusNotFound, http.StatusConflict:
		log.Warn().Err(err).Int("table", report.TableNumber).Msg("table status report not applied")

		return nil
	}

	if err != nil {
		log.Error().Err(err).Int("table", report.TableNumber).Msg("failed to apply table status report")

		return fmt.Errorf("failed to apply table status report: %w", err)
	}

	log.Info().Int("table", report.TableNumber).Str("status", report.Status).Msg("table status report applied")

	return nil
}
