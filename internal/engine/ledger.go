package engine

import "github.com/google/uuid"

// orderLedger holds every live order by id. Removal is explicit and happens
// only when an order's quantity is fully consumed.
type orderLedger struct {
	orders map[uuid.UUID]*Order
}

func newOrderLedger() *orderLedger {
	return &orderLedger{orders: make(map[uuid.UUID]*Order)}
}

func (g *orderLedger) insert(o *Order) {
	g.orders[o.ID] = o
}

func (g *orderLedger) get(id uuid.UUID) (*Order, bool) {
	o, ok := g.orders[id]
	return o, ok
}

func (g *orderLedger) remove(id uuid.UUID) {
	delete(g.orders, id)
}

func (g *orderLedger) len() int {
	return len(g.orders)
}
