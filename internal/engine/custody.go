package engine

import (
	"github.com/google/uuid"

	"github.com/hakimelghazi/bidbook-core/internal/asset"
)

// custodyVaults escrows per-order balances: collateral backing the bid, and
// inventory already delivered against it. One collateral vault is opened per
// order at placement; the inventory vault is opened on first delivery.
type custodyVaults struct {
	collateral map[uuid.UUID]*asset.FungibleVault
	inventory  map[uuid.UUID]*asset.UnitVault
}

func newCustodyVaults() *custodyVaults {
	return &custodyVaults{
		collateral: make(map[uuid.UUID]*asset.FungibleVault),
		inventory:  make(map[uuid.UUID]*asset.UnitVault),
	}
}

func (c *custodyVaults) openCollateral(id uuid.UUID, b asset.Fungible) {
	c.collateral[id] = asset.NewFungibleVault(b)
}

func (c *custodyVaults) collateralVault(id uuid.UUID) (*asset.FungibleVault, bool) {
	v, ok := c.collateral[id]
	return v, ok
}

func (c *custodyVaults) deliver(id uuid.UUID, b asset.Batch) error {
	if v, ok := c.inventory[id]; ok {
		return v.Deposit(b)
	}
	c.inventory[id] = asset.NewUnitVault(b)
	return nil
}

func (c *custodyVaults) inventoryVault(id uuid.UUID) (*asset.UnitVault, bool) {
	v, ok := c.inventory[id]
	return v, ok
}
