package http

import (
	"time"

	"github.com/google/uuid"
)

// Error is the JSON error body of the fulfillment API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SMSReply is the JSON body of a successful webhook call.
type SMSReply struct {
	Message []string `json:"message"`
	Status  int      `json:"status"`
}

// SMSError is the JSON body of a failed webhook call.
type SMSError struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Order is one entry of the open-orders listing.
type Order struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	CreatedAt        time.Time `json:"createdAt"`
	LocationName     string    `json:"locationName"`
	LocationAddress1 string    `json:"locationAddress1"`
	Items            string    `json:"items"`
	SubtotalCents    int64     `json:"subtotalCents"`
	Subtotal         string    `json:"subtotal"`
	Status           string    `json:"status"`
}

// StatusChange is the body of POST /api/v1/orders/:id/status.
type StatusChange struct {
	Status string `json:"status"`
}
