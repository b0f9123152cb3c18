package dto

import (
	"seatq/internal/domains/table/model"
	"seatq/shared"
	gDto "seatq/shared/dto"
	gModel "seatq/shared/model"
	"seatq/shared/timezone"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	Number   int `json:"number"   validate:"required,gte=1"`
	Capacity int `json:"capacity" validate:"required,gte=1,lte=100"`
}

func (c *CreateTableRequest) ToModel(user string) model.Table {
	now := timezone.Now()

	return model.Table{
		ID:       uuid.NewString(),
		Number:   c.Number,
		Capacity: c.Capacity,
		Status:   model.StatusAvailable,
		Version:  1,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type TableResponse struct {
	ID       string       `json:"id"`
	Number   int          `json:"number"`
	Capacity int          `json:"capacity"`
	Status   model.Status `json:"status"`
	Version  int64        `json:"version"`
	gDto.Metadata
}

func (t *TableResponse) FromModel(m model.Table) {
	t.ID = m.ID
	t.Number = m.Number
	t.Capacity = m.Capacity
	t.Status = m.Status
	t.Version = m.Version
	t.Metadata.FromModel(m.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (g *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		g.Tables[i].FromModel(mod)
	}
}
