package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusOpen    OrderStatus = "OPEN"
	StatusPartial OrderStatus = "PARTIAL"
	StatusFilled  OrderStatus = "FILLED"
)

// Order is a standing bid resting in the book. Quantity is the size at
// placement; Remaining is the unfilled part and is what incoming inventory
// matches against.
type Order struct {
	ID        uuid.UUID
	Quantity  decimal.Decimal
	Remaining decimal.Decimal
	Price     decimal.Decimal
	Total     decimal.Decimal // Quantity * Price, fixed at placement
	Time      int64           // unix seconds, minute granularity
	Sequence  uint64          // arrival counter within Time
	Status    OrderStatus
}

// Receipt is the record handed back to the bidder at placement. It is a
// snapshot; later status changes live on the ledger entry only.
type Receipt struct {
	ID       uuid.UUID       `json:"id"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
	Time     int64           `json:"time"`
	Sequence uint64          `json:"sequence"`
	Status   OrderStatus     `json:"status"`
}
