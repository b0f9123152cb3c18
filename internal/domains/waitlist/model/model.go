package model

import (
	"time"

	"seatq/shared/model"
)

const (
	TableName  = "wait_entries"
	EntityName = "wait_entry"

	FieldID          = "id"
	FieldPartySize   = "party_size"
	FieldStatus      = "status"
	FieldTableNumber = "table_number"
	FieldReleasedAt  = "released_at"
	FieldVersion     = "version"
	FieldCreatedAt   = "created_at"

	DefaultPartySize = 1
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusAssigned Status = "assigned"
	StatusRemoved  Status = "removed"
)

type Contact struct {
	Name  string `db:"name"`
	Phone string `db:"phone"`
	Email string `db:"email"`
}

type Entry struct {
	ID          string     `db:"id"`
	PartySize   int        `db:"party_size"`
	Status      Status     `db:"status"`
	TableNumber *int       `db:"table_number"`
	ReleasedAt  *time.Time `db:"released_at"`
	Version     int64      `db:"version"`
	Contact
	model.Metadata
}

// Terminal reports whether the entry can no longer change status.
func (e Entry) Terminal() bool {
	return e.Status == StatusAssigned || e.Status == StatusRemoved
}

// Seated reports whether the entry currently holds its table.
func (e Entry) Seated() bool {
	return e.Status == StatusAssigned && e.ReleasedAt == nil && e.TableNumber != nil
}

// SeatedAt reports whether the entry currently holds the table with the given number.
func (e Entry) SeatedAt(number int) bool {
	return e.Seated() && *e.TableNumber == number
}

// Before reports whether e is ahead of other in the waiting line.
func (e Entry) Before(other Entry) bool {
	if !e.CreatedAt.Equal(other.CreatedAt) {
		return e.CreatedAt.Before(other.CreatedAt)
	}

	return e.ID < other.ID
}
