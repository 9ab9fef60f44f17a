// internal/engine/loop.go
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/hakimelghazi/bidbook-core/db"
	"github.com/hakimelghazi/bidbook-core/internal/asset"
)

// Engine serializes all access to a Book through a command channel, which is
// the only concurrency control the book gets. After a successful fill it
// records the settlement rows, when a store is configured.
type Engine struct {
	book *Book
	cmds chan Command
	done chan struct{}

	store *db.Store
}

func NewEngine(book *Book, buffer int, store *db.Store) *Engine {
	return &Engine{
		book:  book,
		cmds:  make(chan Command, buffer),
		done:  make(chan struct{}),
		store: store,
	}
}

func (e *Engine) Run(ctx context.Context) {
	defer close(e.done)

	for {
		select {
		case cmd := <-e.cmds:
			switch cmd.Type {

			case CmdPlaceBid:
				rcpt, err := e.book.PlaceBid(cmd.Bid, cmd.Price)
				cmd.Resp <- placeReply{Receipt: rcpt, Err: err}

			case CmdFillBid:
				res, err := e.book.FillBid(cmd.Units)

				// fill history is host bookkeeping; a write failure must not
				// fail the already-applied fill
				if err == nil && len(res.Fills) > 0 && e.store != nil {
					if perr := e.persistFills(ctx, res.Fills); perr != nil {
						logrus.WithError(perr).Error("persist fills failed")
					}
				}

				cmd.Resp <- fillReply{Result: res, Err: err}

			case CmdInspect:
				cmd.Inspect(e.book)
				cmd.Resp <- struct{}{}
			}

		case <-ctx.Done():
			return
		}
	}
}

// Place submits a bid through the command loop and waits for the receipt.
func (e *Engine) Place(ctx context.Context, bid asset.Fungible, price decimal.Decimal) (Receipt, error) {
	resp := make(chan any, 1)
	select {
	case e.cmds <- Command{Type: CmdPlaceBid, Bid: bid, Price: price, Resp: resp}:
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	}
	select {
	case v := <-resp:
		r := v.(placeReply)
		return r.Receipt, r.Err
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	}
}

// Fill submits an inventory batch through the command loop and waits for the
// settlement result.
func (e *Engine) Fill(ctx context.Context, units asset.Batch) (FillResult, error) {
	resp := make(chan any, 1)
	select {
	case e.cmds <- Command{Type: CmdFillBid, Units: units, Resp: resp}:
	case <-ctx.Done():
		return FillResult{}, ctx.Err()
	}
	select {
	case v := <-resp:
		r := v.(fillReply)
		return r.Result, r.Err
	case <-ctx.Done():
		return FillResult{}, ctx.Err()
	}
}

// View runs fn on the command loop, giving it a consistent read of the book.
// fn must not retain the *Book.
func (e *Engine) View(ctx context.Context, fn func(*Book)) error {
	resp := make(chan any, 1)
	select {
	case e.cmds <- Command{Type: CmdInspect, Inspect: fn, Resp: resp}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-resp:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) persistFills(ctx context.Context, fills []Fill) error {
	rows := make([]db.FillRow, 0, len(fills))
	now := time.Now().UTC()
	for _, f := range fills {
		rows = append(rows, db.FillRow{
			ID:       uuid.New(),
			OrderID:  f.OrderID,
			Price:    f.Price,
			Quantity: f.Quantity,
			Payout:   f.Payout,
			FilledAt: now,
		})
	}
	return e.store.RecordFills(ctx, rows)
}
