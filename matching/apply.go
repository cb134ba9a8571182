package matching

import (
	"github.com/synthex-labs/matchcore/events"
	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/types"
)

// ApplyResult is what ApplyOrder produces: the fills generated while
// matching, and — if the order wasn't fully consumed — either the resting
// remainder or a cancellation (the order's leftover rounded to zero
// proceeds at its own price, so it was culled instead of resting).
type ApplyResult struct {
	Fills     []events.Fill
	Resting   bool
	Cancelled *events.LimitOrderCancelled
}

// ApplyOrder matches a newly submitted limit order against the book,
// following the order of priority from spec.md §4.1: opposite-side limit
// orders and, when the order is selling the market-issued asset for its
// backing asset, margin-called call orders, whichever offers the taker a
// better price, feed-protected by the asset's max_short_squeeze_price. Any
// remainder that doesn't clear rests in the book unless it would round to
// zero proceeds at its own price, in which case it's culled instead.
//
// If matching a margin call would require it to pay more collateral than it
// holds, the walk stops short of that fill and instead globally settles the
// market-issued asset at the feed's settlement price before falling through
// to the usual residual handling for whatever is left of order.
func (e *Engine) ApplyOrder(order *types.LimitOrder) (ApplyResult, error) {
	if order.ForSale.Zero() {
		return ApplyResult{}, ErrNonPositiveAmount
	}

	opposite := e.Bids
	checkCalls := false
	if order.SellPrice.Base.AssetID == e.Bitasset.AssetID {
		if order.SellPrice.Quote.AssetID == e.Bitasset.BackingAsset &&
			!e.Bitasset.IsPredictionMarket && !e.Bitasset.HasSettlement() && !e.Bitasset.CurrentFeed.IsNull() {
			checkCalls = true
		}
	} else {
		opposite = e.Asks
	}

	maxPrice := order.SellPrice.Invert()
	minCallPrice := e.Bitasset.CurrentFeed.MaxShortSqueezePrice()

	var fills []events.Fill

	for !order.ForSale.Zero() {
		var bestLimit *types.LimitOrder
		opposite.AscendLTE(maxPrice, func(o *types.LimitOrder) bool {
			bestLimit = o
			return false
		})

		var bestCall *types.CallOrder
		var callEffPrice pricing.Price
		if checkCalls {
			if c := e.Calls.Worst(); c != nil {
				eff := c.CallPrice
				if eff.GTE(e.Bitasset.CurrentFeed.SettlementPrice) {
					checkCalls = false
				} else {
					if eff.LT(minCallPrice) {
						eff = minCallPrice
					}
					if eff.LT(order.SellPrice) {
						checkCalls = false
					} else {
						bestCall = c
						callEffPrice = eff
					}
				}
			} else {
				checkCalls = false
			}
		}

		if bestLimit == nil && bestCall == nil {
			break
		}

		// Prefer whichever side offers the taker a better price; a limit
		// order at exactly the call's effective price is taken first since
		// draining the book is cheaper than a margin call.
		useLimit := bestLimit != nil
		if useLimit && bestCall != nil {
			if callEffPrice.GT(bestLimit.SellPrice.Invert()) {
				useLimit = false
			}
		}

		if useLimit {
			matchFills, makerGone := e.matchLimits(order, bestLimit)
			fills = append(fills, matchFills...)
			if !makerGone {
				break
			}
			continue
		}

		callReceives := pricing.Min(order.ForSale, bestCall.Debt)
		if collateralShortfall(callEffPrice, callReceives, bestCall.Collateral) {
			settleFills, _, err := e.GloballySettleAsset(e.Bitasset.CurrentFeed.SettlementPrice)
			if err != nil {
				return ApplyResult{}, err
			}
			fills = append(fills, settleFills...)
			break
		}

		matchFills, callGone := e.matchLimitCall(order, bestCall, callEffPrice, false)
		fills = append(fills, matchFills...)
		if !callGone {
			break
		}
	}

	if order.ForSale.Zero() {
		return ApplyResult{Fills: fills}, nil
	}
	if order.IsDust() {
		return ApplyResult{
			Fills: fills,
			Cancelled: &events.LimitOrderCancelled{
				OrderID: order.ID,
				Seller:  order.Seller,
				Refund:  order.ForSale,
			},
		}, nil
	}

	e.bookFor(order).Insert(order)
	return ApplyResult{Fills: fills, Resting: true}, nil
}
