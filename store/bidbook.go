package store

import (
	"github.com/google/btree"

	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/types"
)

type bidLevel struct {
	price pricing.Price
	bids  []*types.CollateralBid
}

func (l *bidLevel) Less(oth btree.Item) bool {
	return l.price.LT(oth.(*bidLevel).price)
}

// BidBook is the collateral bid index for one globally settled
// market-issued asset, ordered ascending by inv_swan_price (spec.md §4.8):
// execute_bid consumes bids starting from the one offering the most
// collateral per unit of debt covered.
type BidBook struct {
	byPrice *btree.BTree
	byID    map[types.BidID]*types.CollateralBid
}

func NewBidBook() *BidBook {
	return &BidBook{
		byPrice: btree.New(btreeDegree),
		byID:    make(map[types.BidID]*types.CollateralBid),
	}
}

func (b *BidBook) Len() int { return len(b.byID) }

func (b *BidBook) Get(id types.BidID) *types.CollateralBid { return b.byID[id] }

func (b *BidBook) Insert(bid *types.CollateralBid) {
	if _, exists := b.byID[bid.ID]; exists {
		panic("store: collateral bid already present: " + string(bid.ID))
	}
	key := &bidLevel{price: bid.InvSwanPrice}
	if found := b.byPrice.Get(key); found != nil {
		lvl := found.(*bidLevel)
		lvl.bids = append(lvl.bids, bid)
	} else {
		key.bids = []*types.CollateralBid{bid}
		b.byPrice.ReplaceOrInsert(key)
	}
	b.byID[bid.ID] = bid
}

func (b *BidBook) Remove(bid *types.CollateralBid) bool {
	if _, exists := b.byID[bid.ID]; !exists {
		return false
	}
	key := &bidLevel{price: bid.InvSwanPrice}
	found := b.byPrice.Get(key)
	if found != nil {
		lvl := found.(*bidLevel)
		for i, ord := range lvl.bids {
			if ord.ID == bid.ID {
				lvl.bids = append(lvl.bids[:i], lvl.bids[i+1:]...)
				break
			}
		}
		if len(lvl.bids) == 0 {
			b.byPrice.Delete(found)
		}
	}
	delete(b.byID, bid.ID)
	return true
}

// Ascend walks every collateral bid from most to least collateral offered
// per unit of debt covered.
func (b *BidBook) Ascend(fn func(*types.CollateralBid) bool) {
	b.byPrice.Ascend(func(item btree.Item) bool {
		lvl := item.(*bidLevel)
		for _, bid := range lvl.bids {
			if !fn(bid) {
				return false
			}
		}
		return true
	})
}
