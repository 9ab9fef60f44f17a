package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookLine aggregates all resting bids at one price. Orders is FIFO:
// insertion order is arrival order.
type BookLine struct {
	Price  decimal.Decimal
	Count  int             // orders queued at this price
	Total  decimal.Decimal // collateral escrowed across those orders
	Orders []uuid.UUID
}

func newBookLine(price decimal.Decimal) *BookLine {
	return &BookLine{Price: price, Total: decimal.Zero}
}

func (l *BookLine) append(id uuid.UUID, escrowed decimal.Decimal) {
	l.Count++
	l.Total = l.Total.Add(escrowed)
	l.Orders = append(l.Orders, id)
}

func (l *BookLine) drop(id uuid.UUID) {
	for i, oid := range l.Orders {
		if oid == id {
			l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
			l.Count--
			return
		}
	}
}

func (l *BookLine) empty() bool {
	return len(l.Orders) == 0
}

// lineStore maps prices to their book lines. Keys are the decimal's
// canonical string so numerically equal prices collapse to one line; the
// book keeps this key set identical to the price index.
type lineStore struct {
	lines map[string]*BookLine
}

func newLineStore() *lineStore {
	return &lineStore{lines: make(map[string]*BookLine)}
}

func (s *lineStore) get(price decimal.Decimal) (*BookLine, bool) {
	l, ok := s.lines[price.String()]
	return l, ok
}

func (s *lineStore) insert(l *BookLine) {
	s.lines[l.Price.String()] = l
}

func (s *lineStore) remove(price decimal.Decimal) {
	delete(s.lines, price.String())
}

func (s *lineStore) len() int {
	return len(s.lines)
}
