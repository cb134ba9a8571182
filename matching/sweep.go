package matching

import (
	"github.com/synthex-labs/matchcore/events"
)

// CheckCallOrders sweeps the worst-collateralized call orders against the
// cheapest resting asks, starting with the least collateralized position,
// as long as its call price sits below the feed's settlement price and there
// is a resting order willing to fill it at the call price floored at the
// feed's max_short_squeeze_price (spec.md §4.7). It stops the moment either condition fails and reports
// whether any margin call executed.
//
// forNewLimitOrder tells it which side of each match is the maker: true
// when the sweep was triggered by the admission of a new limit order (the
// call order is maker, the same assignment ApplyOrder's own margin-call
// matching uses), false when it was triggered by a pure feed or collateral
// update (the call order is taker). enableBlackSwan controls what happens
// when the worst call order can't be covered by its own collateral at the
// fill price: true globally settles the asset at the feed's settlement
// price and reports the sweep as having run; false aborts the sweep without
// mutating anything and returns a *BlackSwanError.
func (e *Engine) CheckCallOrders(enableBlackSwan, forNewLimitOrder bool) (bool, []events.Fill, error) {
	if e.Bitasset.IsPredictionMarket || e.Bitasset.HasSettlement() || e.Bitasset.CurrentFeed.IsNull() {
		return false, nil, nil
	}

	minPrice := e.Bitasset.CurrentFeed.MaxShortSqueezePrice()
	var fills []events.Fill
	marginCalled := false

	for {
		limitOrder := e.Asks.Best()
		if limitOrder == nil || limitOrder.SellPrice.GT(minPrice) {
			return marginCalled, fills, nil
		}
		call := e.Calls.Worst()
		if call == nil {
			return marginCalled, fills, nil
		}

		callPrice := call.CallPrice
		if callPrice.GTE(e.Bitasset.CurrentFeed.SettlementPrice) {
			// The worst position is adequately collateralized; nothing else
			// in the book can be worse.
			return marginCalled, fills, nil
		}
		if callPrice.LT(minPrice) {
			callPrice = minPrice
		}
		if limitOrder.SellPrice.GT(callPrice) {
			// Feed-protected: no resting order is willing to fill at a price
			// this close to the margin call threshold.
			return marginCalled, fills, nil
		}

		if collateralShortfall(callPrice, call.Debt, call.Collateral) {
			if !enableBlackSwan {
				return marginCalled, fills, &BlackSwanError{Price: e.Bitasset.CurrentFeed.SettlementPrice}
			}
			settleFills, _, err := e.GloballySettleAsset(e.Bitasset.CurrentFeed.SettlementPrice)
			if err != nil {
				return marginCalled, fills, err
			}
			return true, append(fills, settleFills...), nil
		}

		marginCalled = true
		matchFills, _ := e.matchLimitCall(limitOrder, call, callPrice, !forNewLimitOrder)
		fills = append(fills, matchFills...)
	}
}
