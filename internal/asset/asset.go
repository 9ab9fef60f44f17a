package asset

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrAssetMismatch       = errors.New("asset mismatch")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Fungible is a transferable amount of one asset.
type Fungible struct {
	Asset  string
	Amount decimal.Decimal
}

func NewFungible(asset string, amount decimal.Decimal) Fungible {
	return Fungible{Asset: asset, Amount: amount}
}

// Batch is a transferable set of non-fungible units from one collection.
type Batch struct {
	Collection string
	Units      []string
}

func NewBatch(collection string, units []string) Batch {
	return Batch{Collection: collection, Units: units}
}

func (b *Batch) Count() int {
	return len(b.Units)
}

// Take splits off the first n units, preserving their order.
func (b *Batch) Take(n int) Batch {
	if n > len(b.Units) {
		n = len(b.Units)
	}
	taken := Batch{Collection: b.Collection, Units: b.Units[:n]}
	b.Units = b.Units[n:]
	return taken
}
