package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hakimelghazi/bidbook-core/internal/asset"
)

// Config fixes what a Book trades: one non-fungible collection against one
// settlement asset.
type Config struct {
	Collection string
	Settlement string
}

// Book is a buy-side-only limit order book for a single collection. Bids
// escrow collateral and rest until inventory arrives; FillBid consumes
// inventory best price first, FIFO within a price. The Book does no locking:
// the host serializes calls (see Engine).
type Book struct {
	cfg    Config
	clock  Clock
	index  *PriceIndex
	lines  *lineStore
	ledger *orderLedger
	vaults *custodyVaults

	highest decimal.NullDecimal
	lowest  decimal.NullDecimal

	latestTime int64
	sequence   uint64
}

func New(cfg Config, clock Clock) *Book {
	if clock == nil {
		clock = SystemClock()
	}
	return &Book{
		cfg:    cfg,
		clock:  clock,
		index:  NewPriceIndex(),
		lines:  newLineStore(),
		ledger: newOrderLedger(),
		vaults: newCustodyVaults(),
	}
}

// PlaceBid escrows bid collateral as a standing order at price. The
// collateral must divide into a whole number of units at that price.
// All validation happens before any state changes, so a failed call leaves
// the book untouched.
func (b *Book) PlaceBid(bid asset.Fungible, price decimal.Decimal) (Receipt, error) {
	if !price.IsPositive() {
		return Receipt{}, ErrInvalidPrice
	}
	if !bid.Amount.IsPositive() {
		return Receipt{}, ErrInvalidAmount
	}
	if bid.Asset != b.cfg.Settlement {
		return Receipt{}, ErrWrongAsset
	}

	// Floor the quotient at 18 fractional digits, then require it whole.
	qty, _ := bid.Amount.QuoRem(price, 18)
	if !qty.IsInteger() {
		return Receipt{}, ErrFractionalQuantity
	}
	if !qty.IsPositive() {
		return Receipt{}, ErrInvalidQuantity
	}

	ts := b.clock.Now().Truncate(time.Minute).Unix()
	if ts != b.latestTime {
		b.latestTime = ts
		b.sequence = 0
	} else {
		b.sequence++
	}

	ord := &Order{
		ID:        uuid.New(),
		Quantity:  qty,
		Remaining: qty,
		Price:     price,
		Total:     bid.Amount,
		Time:      ts,
		Sequence:  b.sequence,
		Status:    StatusOpen,
	}
	b.ledger.insert(ord)
	b.vaults.openCollateral(ord.ID, bid)

	if !b.index.Contains(price) {
		b.index.Insert(price)
	}
	line, ok := b.lines.get(price)
	if !ok {
		line = newBookLine(price)
		b.lines.insert(line)
	}
	line.append(ord.ID, bid.Amount)

	if !b.highest.Valid || price.GreaterThan(b.highest.Decimal) {
		b.highest = decimal.NewNullDecimal(price)
	}
	if !b.lowest.Valid || price.LessThan(b.lowest.Decimal) {
		b.lowest = decimal.NewNullDecimal(price)
	}

	return Receipt{
		ID:       ord.ID,
		Quantity: ord.Quantity,
		Price:    ord.Price,
		Total:    ord.Total,
		Time:     ord.Time,
		Sequence: ord.Sequence,
		Status:   ord.Status,
	}, nil
}

// Fill describes one order's settlement within a FillBid call.
type Fill struct {
	OrderID  uuid.UUID       `json:"order_id"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Payout   decimal.Decimal `json:"payout"`
}

type FillResult struct {
	Proceeds []asset.Fungible
	Fills    []Fill
	Leftover *asset.Batch // inventory no bid was left to absorb
}

// fillStep is one planned settlement. takeAll drains the order's whole
// collateral vault and closes the order; otherwise payout is withdrawn and
// the order stays resting as PARTIAL.
type fillStep struct {
	orderID uuid.UUID
	price   decimal.Decimal
	units   decimal.Decimal
	payout  decimal.Decimal
	takeAll bool
}

// FillBid matches the inventory batch against resting bids, walking price
// levels from the best bid downward and each level's queue in arrival order.
// It plans the whole fill against a read-only view first, then applies it,
// so precondition failures never leave partial effects.
func (b *Book) FillBid(units asset.Batch) (FillResult, error) {
	if units.Count() == 0 {
		return FillResult{}, ErrInvalidAmount
	}
	if units.Collection != b.cfg.Collection {
		return FillResult{}, ErrWrongAsset
	}
	if !b.highest.Valid {
		return FillResult{}, ErrNoLiquidity
	}

	steps, err := b.planFill(units.Count())
	if err != nil {
		return FillResult{}, err
	}
	return b.applyFill(units, steps)
}

func (b *Book) planFill(n int) ([]fillStep, error) {
	var steps []fillStep
	var planErr error
	remaining := decimal.NewFromInt(int64(n))

	b.index.DescendRange(b.highest.Decimal, b.lowest.Decimal, func(price decimal.Decimal, _ bool) bool {
		if remaining.IsZero() {
			// consumed at a higher level; liquidity here waits for the
			// next call
			return false
		}
		line, ok := b.lines.get(price)
		if !ok {
			planErr = ErrInvariantViolation
			return false
		}
		for _, id := range line.Orders {
			if remaining.IsZero() {
				return false
			}
			if !remaining.IsPositive() {
				planErr = ErrInvariantViolation
				return false
			}
			ord, ok := b.ledger.get(id)
			if !ok {
				planErr = ErrInvariantViolation
				return false
			}
			switch {
			case remaining.Equal(ord.Remaining):
				steps = append(steps, fillStep{orderID: id, price: price, units: ord.Remaining, takeAll: true})
				remaining = decimal.Zero
			case remaining.GreaterThan(ord.Remaining):
				steps = append(steps, fillStep{orderID: id, price: price, units: ord.Remaining, takeAll: true})
				remaining = remaining.Sub(ord.Remaining)
			default:
				steps = append(steps, fillStep{orderID: id, price: price, units: remaining, payout: remaining.Mul(price)})
				remaining = decimal.Zero
			}
		}
		return true
	})
	return steps, planErr
}

func (b *Book) applyFill(units asset.Batch, steps []fillStep) (FillResult, error) {
	var res FillResult

	for _, st := range steps {
		ord, ok := b.ledger.get(st.orderID)
		if !ok {
			return FillResult{}, ErrInvariantViolation
		}
		vault, ok := b.vaults.collateralVault(st.orderID)
		if !ok {
			return FillResult{}, ErrInvariantViolation
		}

		var paid asset.Fungible
		if st.takeAll {
			paid = vault.WithdrawAll()
		} else {
			var err error
			paid, err = vault.Withdraw(st.payout)
			if err != nil {
				return FillResult{}, ErrInvariantViolation
			}
		}

		delivered := units.Take(int(st.units.IntPart()))
		if err := b.vaults.deliver(st.orderID, delivered); err != nil {
			return FillResult{}, ErrInvariantViolation
		}

		line, ok := b.lines.get(st.price)
		if !ok {
			return FillResult{}, ErrInvariantViolation
		}
		line.Total = line.Total.Sub(paid.Amount)

		if st.takeAll {
			ord.Remaining = decimal.Zero
			ord.Status = StatusFilled
			b.ledger.remove(st.orderID)
			line.drop(st.orderID)
		} else {
			ord.Remaining = ord.Remaining.Sub(st.units)
			ord.Status = StatusPartial
		}

		res.Proceeds = append(res.Proceeds, paid)
		res.Fills = append(res.Fills, Fill{
			OrderID:  st.orderID,
			Price:    st.price,
			Quantity: st.units,
			Payout:   paid.Amount,
		})
	}

	// retire levels whose queues emptied
	for _, st := range steps {
		if line, ok := b.lines.get(st.price); ok && line.empty() {
			b.lines.remove(st.price)
			b.index.Remove(st.price)
		}
	}

	// bounds track the index extremes
	if max, ok := b.index.Max(); ok {
		min, _ := b.index.Min()
		b.highest = decimal.NewNullDecimal(max)
		b.lowest = decimal.NewNullDecimal(min)
	} else {
		b.highest = decimal.NullDecimal{}
		b.lowest = decimal.NullDecimal{}
	}

	if units.Count() > 0 {
		leftover := units
		res.Leftover = &leftover
	}
	return res, nil
}
