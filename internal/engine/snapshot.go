package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read-only views for hosts and tests. Everything returns copies; interior
// state never leaves the book.

func (b *Book) BestBid() (decimal.Decimal, bool) {
	return b.highest.Decimal, b.highest.Valid
}

func (b *Book) WorstBid() (decimal.Decimal, bool) {
	return b.lowest.Decimal, b.lowest.Valid
}

// Prices returns every populated price level, best first.
func (b *Book) Prices() []decimal.Decimal {
	max, ok := b.index.Max()
	if !ok {
		return nil
	}
	min, _ := b.index.Min()
	out := make([]decimal.Decimal, 0, b.index.Len())
	b.index.DescendRange(max, min, func(price decimal.Decimal, _ bool) bool {
		out = append(out, price)
		return true
	})
	return out
}

func (b *Book) Line(price decimal.Decimal) (BookLine, bool) {
	line, ok := b.lines.get(price)
	if !ok {
		return BookLine{}, false
	}
	snap := *line
	snap.Orders = make([]uuid.UUID, len(line.Orders))
	copy(snap.Orders, line.Orders)
	return snap, true
}

func (b *Book) Order(id uuid.UUID) (Order, bool) {
	ord, ok := b.ledger.get(id)
	if !ok {
		return Order{}, false
	}
	return *ord, true
}

func (b *Book) OpenOrders() int {
	return b.ledger.len()
}

// CollateralBalance reports the unconsumed escrow behind an order.
func (b *Book) CollateralBalance(id uuid.UUID) (decimal.Decimal, bool) {
	v, ok := b.vaults.collateralVault(id)
	if !ok {
		return decimal.Zero, false
	}
	return v.Balance(), true
}

// DeliveredUnits reports the inventory delivered against an order so far.
func (b *Book) DeliveredUnits(id uuid.UUID) []string {
	v, ok := b.vaults.inventoryVault(id)
	if !ok {
		return nil
	}
	return v.Units()
}

// Cursor exposes the (timestamp, sequence) arrival cursor.
func (b *Book) Cursor() (int64, uint64) {
	return b.latestTime, b.sequence
}
