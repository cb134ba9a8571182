// Package store holds the ordered, mutable collections the matching engine
// scans and repairs on every operation: the limit order book, the call
// order book, the force-settlement queue, and the collateral bid book.
// Every index is a google/btree.BTree keyed on the field the matcher scans
// by, following the same Item/Less/Ascend idiom the host's expiring-order
// index uses; orders sharing a key are held in FIFO arrival order, the way
// a single side of the book groups orders at a shared price.
package store

import (
	"github.com/google/btree"

	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/types"
)

// btreeDegree matches the degree the host uses for its own small in-memory
// indices; there is no tuning benefit to a different value at engine scale.
const btreeDegree = 2

// priceLevel groups every resting limit order at one exact sell price, in
// arrival order, so all of them are offered to an incoming taker before the
// next price level is considered.
type priceLevel struct {
	price  pricing.Price
	orders []*types.LimitOrder
}

func (l *priceLevel) Less(oth btree.Item) bool {
	return l.price.LT(oth.(*priceLevel).price)
}

// LimitBook is the resting limit order index for one (base, quote) asset
// pair and one selling direction. A market needs two: orders selling base
// for quote, and orders selling quote for base.
type LimitBook struct {
	byPrice *btree.BTree
	byID    map[types.OrderID]*types.LimitOrder
}

// NewLimitBook returns an empty book.
func NewLimitBook() *LimitBook {
	return &LimitBook{
		byPrice: btree.New(btreeDegree),
		byID:    make(map[types.OrderID]*types.LimitOrder),
	}
}

// Len returns the number of resting orders.
func (b *LimitBook) Len() int { return len(b.byID) }

// Get returns the order by id, or nil if it isn't resting in this book.
func (b *LimitBook) Get(id types.OrderID) *types.LimitOrder { return b.byID[id] }

// Insert adds a new resting order. Panics if the id is already present;
// callers must Remove before re-Inserting a modified order (see Modify).
func (b *LimitBook) Insert(o *types.LimitOrder) {
	if _, exists := b.byID[o.ID]; exists {
		panic("store: limit order already resting: " + string(o.ID))
	}
	key := &priceLevel{price: o.SellPrice}
	if found := b.byPrice.Get(key); found != nil {
		lvl := found.(*priceLevel)
		lvl.orders = append(lvl.orders, o)
	} else {
		key.orders = []*types.LimitOrder{o}
		b.byPrice.ReplaceOrInsert(key)
	}
	b.byID[o.ID] = o
}

// Remove deletes an order from the book. Reports whether it was present.
func (b *LimitBook) Remove(o *types.LimitOrder) bool {
	if _, exists := b.byID[o.ID]; !exists {
		return false
	}
	key := &priceLevel{price: o.SellPrice}
	found := b.byPrice.Get(key)
	if found == nil {
		delete(b.byID, o.ID)
		return true
	}
	lvl := found.(*priceLevel)
	for i, ord := range lvl.orders {
		if ord.ID == o.ID {
			lvl.orders = append(lvl.orders[:i], lvl.orders[i+1:]...)
			break
		}
	}
	if len(lvl.orders) == 0 {
		b.byPrice.Delete(found)
	}
	delete(b.byID, o.ID)
	return true
}

// Modify repairs the book around a mutation to o's remaining size: since the
// order's key (price) is untouched by a partial fill, the fn is free to
// shrink ForSale in place without any index surgery. Modify exists so call
// sites read the same way whether or not the mutation touches the sort key;
// if fn changes SellPrice, Modify removes and re-inserts to keep the index
// correct.
func (b *LimitBook) Modify(o *types.LimitOrder, fn func(*types.LimitOrder)) {
	before := o.SellPrice
	fn(o)
	if !o.SellPrice.EQ(before) {
		// Remove must find o under the level it was indexed at.
		after := o.SellPrice
		o.SellPrice = before
		b.Remove(o)
		o.SellPrice = after
		b.Insert(o)
	}
}

// Best returns the best (lowest sell price — the order asking the least
// quote per unit of base it gives up) resting order, or nil if the book is
// empty.
func (b *LimitBook) Best() *types.LimitOrder {
	var found *types.LimitOrder
	b.byPrice.Ascend(func(item btree.Item) bool {
		lvl := item.(*priceLevel)
		if len(lvl.orders) > 0 {
			found = lvl.orders[0]
		}
		return false
	})
	return found
}

// AscendLTE walks resting orders in increasing sell-price order, stopping
// once a price level's price is no longer <= bound, or fn returns false.
// This is the range scan the matcher uses to find every order a taker at
// bound can fill.
func (b *LimitBook) AscendLTE(bound pricing.Price, fn func(*types.LimitOrder) bool) {
	b.byPrice.Ascend(func(item btree.Item) bool {
		lvl := item.(*priceLevel)
		if lvl.price.GT(bound) {
			return false
		}
		for _, o := range lvl.orders {
			if !fn(o) {
				return false
			}
		}
		return true
	})
}

// Ascend walks every resting order in increasing sell-price order.
func (b *LimitBook) Ascend(fn func(*types.LimitOrder) bool) {
	b.byPrice.Ascend(func(item btree.Item) bool {
		lvl := item.(*priceLevel)
		for _, o := range lvl.orders {
			if !fn(o) {
				return false
			}
		}
		return true
	})
}
