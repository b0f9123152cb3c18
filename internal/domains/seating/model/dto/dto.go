package dto

import (
	"seatq/internal/domains/seating/notifier"
	tableDto "seatq/internal/domains/table/model/dto"
	waitDto "seatq/internal/domains/waitlist/model/dto"
	"seatq/shared/constant"
	"seatq/shared/timezone"
)

// EventResponse is the wire form of a committed change, shared by the queue
// stream and the outbound event topic.
type EventResponse struct {
	Seq        uint64                  `json:"seq"`
	Type       notifier.EventType      `json:"type"`
	Entry      *waitDto.EntryResponse  `json:"entry,omitempty"`
	Table      *tableDto.TableResponse `json:"table,omitempty"`
	OccurredAt string                  `json:"occurred_at"`
}

func (e *EventResponse) FromEvent(event notifier.Event) {
	e.Seq = event.Seq
	e.Type = event.Type
	e.OccurredAt = timezone.Format(event.OccurredAt, constant.DateFormat)

	if event.Entry != nil {
		e.Entry = &waitDto.EntryResponse{}
		e.Entry.FromModel(*event.Entry)
	}

	if event.Table != nil {
		e.Table = &tableDto.TableResponse{}
		e.Table.FromModel(*event.Table)
	}
}

// Key identifies the entity the event belongs to, so that one entity's events
// stay on one partition. Resync events share one key of their own.
func (e *EventResponse) Key() string {
	switch {
	case e.Type == notifier.EventResync:
		return string(notifier.EventResync)
	case e.Entry != nil:
		return e.Entry.ID
	case e.Table != nil:
		return e.Table.ID
	default:
		return ""
	}
}

// TableStatusMessage is reported by an external system (e.g. a point of sale)
// when a table changes state outside this service.
type TableStatusMessage struct {
	TableNumber int    `json:"table_number" validate:"required,gte=1"`
	Status      string `json:"status"       validate:"required"`
}

const SnapshotType = "queue.snapshot"

// SnapshotResponse is the first frame a stream client receives.
type SnapshotResponse struct {
	Type  string                `json:"type"`
	Queue waitDto.QueueResponse `json:"queue"`
}

type RebalanceResponse struct {
	Assigned int `json:"assigned"`
}
