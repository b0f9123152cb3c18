package model

import "seatq/shared/model"

const (
	TableName  = "dining_tables"
	EntityName = "table"

	FieldID       = "id"
	FieldNumber   = "number"
	FieldCapacity = "capacity"
	FieldStatus   = "status"
	FieldVersion  = "version"

	CacheGet    = "table:get"
	CacheGetAll = "table:gets"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusReserved  Status = "reserved"
)

type Table struct {
	ID       string `db:"id"`
	Number   int    `db:"number"`
	Capacity int    `db:"capacity"`
	Status   Status `db:"status"`
	Version  int64  `db:"version"`
	model.Metadata
}

// Selectable reports whether the matcher may hand this table out.
func (t Table) Selectable() bool {
	return t.Status == StatusAvailable
}

// Fits reports whether a party of the given size can sit at the table.
func (t Table) Fits(partySize int) bool {
	return t.Capacity >= partySize
}
