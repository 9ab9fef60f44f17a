package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hakimelghazi/bidbook-core/internal/asset"
	"github.com/hakimelghazi/bidbook-core/internal/engine"
)

func main() {
	book := engine.New(engine.Config{
		Collection: "punks",
		Settlement: "XRD",
	}, engine.SystemClock())

	// Buyer: 100 XRD at 10 per unit -> standing bid for 10 units
	rcpt, err := book.PlaceBid(
		asset.NewFungible("XRD", decimal.NewFromInt(100)),
		decimal.NewFromInt(10),
	)
	if err != nil {
		panic(err)
	}
	fmt.Printf("receipt: qty=%s price=%s total=%s status=%s\n",
		rcpt.Quantity, rcpt.Price, rcpt.Total, rcpt.Status)

	// Seller: delivers 4 units -> partial fill, 40 XRD proceeds
	res, err := book.FillBid(asset.NewBatch("punks", []string{"p1", "p2", "p3", "p4"}))
	if err != nil {
		panic(err)
	}
	for _, p := range res.Proceeds {
		fmt.Printf("proceeds: %s %s\n", p.Amount, p.Asset)
	}

	ord, _ := book.Order(rcpt.ID)
	fmt.Printf("order: status=%s remaining=%s\n", ord.Status, ord.Remaining)
}
