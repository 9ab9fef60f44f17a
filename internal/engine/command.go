// internal/engine/command.go
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/hakimelghazi/bidbook-core/internal/asset"
)

type CommandType int

const (
	CmdPlaceBid CommandType = iota
	CmdFillBid
	CmdInspect
)

type Command struct {
	Type    CommandType
	Bid     asset.Fungible  // used when Type == CmdPlaceBid
	Price   decimal.Decimal // used when Type == CmdPlaceBid
	Units   asset.Batch     // used when Type == CmdFillBid
	Inspect func(*Book)     // used when Type == CmdInspect, runs on the loop
	Resp    chan any        // engine sends the result back here
}

type placeReply struct {
	Receipt Receipt
	Err     error
}

type fillReply struct {
	Result FillResult
	Err    error
}
