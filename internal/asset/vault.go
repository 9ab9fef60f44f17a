package asset

import (
	"github.com/shopspring/decimal"
)

// FungibleVault escrows a balance of one fungible asset. It only ever
// releases funds through Withdraw/WithdrawAll, so the caller can treat the
// held balance as conserved.
type FungibleVault struct {
	asset   string
	balance decimal.Decimal
}

func NewFungibleVault(b Fungible) *FungibleVault {
	return &FungibleVault{asset: b.Asset, balance: b.Amount}
}

func (v *FungibleVault) Asset() string {
	return v.asset
}

func (v *FungibleVault) Balance() decimal.Decimal {
	return v.balance
}

func (v *FungibleVault) Deposit(b Fungible) error {
	if b.Asset != v.asset {
		return ErrAssetMismatch
	}
	v.balance = v.balance.Add(b.Amount)
	return nil
}

func (v *FungibleVault) Withdraw(amount decimal.Decimal) (Fungible, error) {
	if amount.GreaterThan(v.balance) {
		return Fungible{}, ErrInsufficientBalance
	}
	v.balance = v.balance.Sub(amount)
	return Fungible{Asset: v.asset, Amount: amount}, nil
}

func (v *FungibleVault) WithdrawAll() Fungible {
	out := Fungible{Asset: v.asset, Amount: v.balance}
	v.balance = decimal.Zero
	return out
}

// UnitVault escrows non-fungible units from one collection.
type UnitVault struct {
	collection string
	units      []string
}

func NewUnitVault(b Batch) *UnitVault {
	return &UnitVault{collection: b.Collection, units: b.Units}
}

func (v *UnitVault) Collection() string {
	return v.collection
}

func (v *UnitVault) Count() int {
	return len(v.units)
}

// Units returns the held unit ids in delivery order.
func (v *UnitVault) Units() []string {
	out := make([]string, len(v.units))
	copy(out, v.units)
	return out
}

func (v *UnitVault) Deposit(b Batch) error {
	if b.Collection != v.collection {
		return ErrAssetMismatch
	}
	v.units = append(v.units, b.Units...)
	return nil
}
