package matching

import "github.com/synthex-labs/matchcore/types"

// PlaceSettleOrder queues a force-settlement request (spec.md §4.6). It
// does no matching itself: the host drains the queue by repeatedly calling
// Match against the worst-collateralized call order, the same way a margin
// call sweep does.
func (e *Engine) PlaceSettleOrder(order *types.SettleOrder) {
	e.Settles.Insert(order)
}

// PlaceBid records a collateral bid against a globally settled asset
// (spec.md §4.8). Bids are only meaningful while HasSettlement() is true;
// the host is responsible for rejecting a bid submitted otherwise.
func (e *Engine) PlaceBid(bid *types.CollateralBid) {
	e.CollBids.Insert(bid)
}
