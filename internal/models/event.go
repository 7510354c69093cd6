package models

import "time"

// Product event types published after a successful change.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent describes a change to the catalog.
type ProductEvent struct {
	Type       string    `json:"type"`
	Product    Product   `json:"product"`
	OccurredAt time.Time `json:"occurredAt"`
}
