package store

import (
	"github.com/google/btree"

	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/types"
)

// callLevel groups every call order that happens to share an exact call
// price. In practice collisions are rare (call price is a function of debt,
// collateral and MCR) but the index must still tolerate them.
type callLevel struct {
	price pricing.Price
	calls []*types.CallOrder
}

func (l *callLevel) Less(oth btree.Item) bool {
	return l.price.LT(oth.(*callLevel).price)
}

// CallBook is the call (margin) order index for one market-issued asset,
// ordered ascending by call price so the worst-collateralized position is
// always the first one a sweep encounters (spec.md §4.2).
type CallBook struct {
	byPrice *btree.BTree
	byID    map[types.CallOrderID]*types.CallOrder
}

func NewCallBook() *CallBook {
	return &CallBook{
		byPrice: btree.New(btreeDegree),
		byID:    make(map[types.CallOrderID]*types.CallOrder),
	}
}

func (b *CallBook) Len() int { return len(b.byID) }

func (b *CallBook) Get(id types.CallOrderID) *types.CallOrder { return b.byID[id] }

func (b *CallBook) Insert(c *types.CallOrder) {
	if _, exists := b.byID[c.ID]; exists {
		panic("store: call order already present: " + string(c.ID))
	}
	key := &callLevel{price: c.CallPrice}
	if found := b.byPrice.Get(key); found != nil {
		lvl := found.(*callLevel)
		lvl.calls = append(lvl.calls, c)
	} else {
		key.calls = []*types.CallOrder{c}
		b.byPrice.ReplaceOrInsert(key)
	}
	b.byID[c.ID] = c
}

func (b *CallBook) Remove(c *types.CallOrder) bool {
	if _, exists := b.byID[c.ID]; !exists {
		return false
	}
	key := &callLevel{price: c.CallPrice}
	found := b.byPrice.Get(key)
	if found != nil {
		lvl := found.(*callLevel)
		for i, ord := range lvl.calls {
			if ord.ID == c.ID {
				lvl.calls = append(lvl.calls[:i], lvl.calls[i+1:]...)
				break
			}
		}
		if len(lvl.calls) == 0 {
			b.byPrice.Delete(found)
		}
	}
	delete(b.byID, c.ID)
	return true
}

// Modify repairs the call price index around a mutation that changes debt,
// collateral, or both — and therefore the call order's call_price.
func (b *CallBook) Modify(c *types.CallOrder, fn func(*types.CallOrder)) {
	before := c.CallPrice
	fn(c)
	if !c.CallPrice.EQ(before) {
		// Remove must find c under the level it was indexed at.
		after := c.CallPrice
		c.CallPrice = before
		b.Remove(c)
		c.CallPrice = after
		b.Insert(c)
	}
}

// Worst returns the lowest call-priced (most under-collateralized) call
// order, or nil if the book is empty.
func (b *CallBook) Worst() *types.CallOrder {
	var found *types.CallOrder
	b.byPrice.Ascend(func(item btree.Item) bool {
		lvl := item.(*callLevel)
		if len(lvl.calls) > 0 {
			found = lvl.calls[0]
		}
		return false
	})
	return found
}

// AscendLT walks call orders in increasing call-price order, stopping once
// a level's price is no longer < bound: every call order whose call_price
// sits below a feed-derived threshold is a margin call candidate
// (spec.md §4.2). CheckCallOrders itself does not use this scan; it takes
// one call at a time from Worst.
func (b *CallBook) AscendLT(bound pricing.Price, fn func(*types.CallOrder) bool) {
	b.byPrice.Ascend(func(item btree.Item) bool {
		lvl := item.(*callLevel)
		if !lvl.price.LT(bound) {
			return false
		}
		for _, c := range lvl.calls {
			if !fn(c) {
				return false
			}
		}
		return true
	})
}

// Ascend walks every call order in increasing call-price order.
func (b *CallBook) Ascend(fn func(*types.CallOrder) bool) {
	b.byPrice.Ascend(func(item btree.Item) bool {
		lvl := item.(*callLevel)
		for _, c := range lvl.calls {
			if !fn(c) {
				return false
			}
		}
		return true
	})
}
