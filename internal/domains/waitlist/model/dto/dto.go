package dto

import (
	"fmt"

	"seatq/internal/domains/waitlist/model"
	"seatq/shared/constant"
	gModel "seatq/shared/model"
	"seatq/shared/timezone"

	"github.com/google/uuid"
)

const (
	MessageQueued = "Added to queue. You will be assigned a table when one becomes available."
)

// MessageAssigned is shown to a customer seated on arrival.
func MessageAssigned(number int) string {
	return fmt.Sprintf("Assigned to Table %d", number)
}

type JoinQueueRequest struct {
	PartySize *int   `json:"party_size" validate:"omitempty,gte=1,lte=100"`
	Name      string `json:"name"       validate:"required,max=100"`
	Phone     string `json:"phone"      validate:"required,phone"`
	Email     string `json:"email"      validate:"omitempty,email"`
}

func (j *JoinQueueRequest) ToModel() model.Entry {
	partySize := model.DefaultPartySize
	if j.PartySize != nil {
		partySize = *j.PartySize
	}

	now := timezone.Now()

	return model.Entry{
		ID:        uuid.NewString(),
		PartySize: partySize,
		Status:    model.StatusWaiting,
		Version:   1,
		Contact: model.Contact{
			Name:  j.Name,
			Phone: j.Phone,
			Email: j.Email,
		},
		Metadata: gModel.NewMetadata(constant.ContextGuest, now),
	}
}

type UpdateCustomerStatusRequest struct {
	Status      model.Status `json:"status"       validate:"required,oneof=assigned removed"`
	TableNumber *int         `json:"table_number" validate:"required_if=Status assigned,omitempty,gte=1"`
}

type EntryResponse struct {
	ID          string       `json:"id"`
	PartySize   int          `json:"party_size"`
	Name        string       `json:"name"`
	Phone       string       `json:"phone"`
	Email       string       `json:"email,omitempty"`
	Status      model.Status `json:"status"`
	TableNumber *int         `json:"table_number,omitempty"`
	ReleasedAt  *string      `json:"released_at,omitempty"`
	Version     int64        `json:"version"`
	CreatedAt   string       `json:"created_at"`
}

func (e *EntryResponse) FromModel(m model.Entry) {
	e.ID = m.ID
	e.PartySize = m.PartySize
	e.Name = m.Name
	e.Phone = m.Phone
	e.Email = m.Email
	e.Status = m.Status
	e.TableNumber = m.TableNumber
	e.Version = m.Version
	e.CreatedAt = timezone.Format(m.CreatedAt, constant.DateFormat)

	if m.ReleasedAt != nil {
		releasedAt := timezone.Format(*m.ReleasedAt, constant.DateFormat)
		e.ReleasedAt = &releasedAt
	}
}

type JoinQueueResponse struct {
	Entry   EntryResponse `json:"entry"`
	Message string        `json:"message"`
}

func (j *JoinQueueResponse) FromModel(m model.Entry) {
	j.Entry.FromModel(m)

	j.Message = MessageQueued
	if m.Status == model.StatusAssigned && m.TableNumber != nil {
		j.Message = MessageAssigned(*m.TableNumber)
	}
}

type QueueResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int             `json:"total"`
	Waiting int             `json:"waiting"`
}

func (q *QueueResponse) FromModels(models []model.Entry) {
	q.Total = len(models)
	q.Entries = make([]EntryResponse, len(models))

	for i, mod := range models {
		q.Entries[i].FromModel(mod)

		if mod.Status == model.StatusWaiting {
			q.Waiting++
		}
	}
}

type ClearQueueResponse struct {
	Removed int `json:"removed"`
}
