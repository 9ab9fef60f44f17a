package engine

import (
	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"
)

// PriceIndex is the ordered set of distinct prices that currently have a
// book line. It carries no per-price data; the line store does.
type PriceIndex struct {
	tree *btree.BTreeG[decimal.Decimal]
}

func NewPriceIndex() *PriceIndex {
	return &PriceIndex{
		tree: btree.NewBTreeG(func(a, b decimal.Decimal) bool {
			return a.LessThan(b)
		}),
	}
}

func (x *PriceIndex) Insert(price decimal.Decimal) {
	x.tree.Set(price)
}

func (x *PriceIndex) Contains(price decimal.Decimal) bool {
	_, ok := x.tree.Get(price)
	return ok
}

func (x *PriceIndex) Remove(price decimal.Decimal) {
	x.tree.Delete(price)
}

func (x *PriceIndex) Len() int {
	return x.tree.Len()
}

func (x *PriceIndex) Min() (decimal.Decimal, bool) {
	return x.tree.Min()
}

func (x *PriceIndex) Max() (decimal.Decimal, bool) {
	return x.tree.Max()
}

// DescendRange walks prices from hi down to lo, both inclusive. lowerExists
// reports whether a further in-range price remains below the current one.
// Return false from fn to stop. The tree must not be mutated during the walk.
func (x *PriceIndex) DescendRange(hi, lo decimal.Decimal, fn func(price decimal.Decimal, lowerExists bool) bool) {
	it := x.tree.Iter()
	defer it.Release()

	ok := it.Seek(hi) // first price >= hi
	if !ok {
		ok = it.Last()
	} else if it.Item().GreaterThan(hi) {
		ok = it.Prev()
	}
	for ok {
		price := it.Item()
		if price.LessThan(lo) {
			return
		}
		hasPrev := it.Prev()
		lowerExists := hasPrev && !it.Item().LessThan(lo)
		if !fn(price, lowerExists) {
			return
		}
		ok = hasPrev
	}
}
