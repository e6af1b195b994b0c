package model

// Document is a stored record as returned by the list routes: its id under
// "id" plus every stored field, passed through without a schema.
type Document map[string]any

type RentalItem struct {
	ID           string `json:"id" bson:"_id"`
	Availability int    `json:"availability" bson:"availability"`
}

type RentRequest struct {
	RentalID string `json:"rentalId" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
	Item     any    `json:"item" validate:"required"`
	Location any    `json:"location" validate:"required"`
}

// RentalCreated is published after a rental has been recorded.
type RentalCreated struct {
	RentalID     string `json:"rentalId"`
	UserID       string `json:"userId"`
	Item         any    `json:"item"`
	Location     any    `json:"location"`
	Availability int    `json:"availability"`
	Consistency  string `json:"consistency"`
}
