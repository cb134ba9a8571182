package matching

import (
	"github.com/synthex-labs/matchcore/events"
	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/store"
	"github.com/synthex-labs/matchcore/types"
)

// collateralShortfall reports whether paying amt at matchPrice would take
// more than collateral holds — the black-swan trigger shared by the
// apply-order walk and the margin-call sweep.
func collateralShortfall(matchPrice pricing.Price, amt, collateral pricing.Asset) bool {
	return matchPrice.MulAsset(amt).GT(collateral)
}

func (e *Engine) bookFor(o *types.LimitOrder) *store.LimitBook {
	if o.SellPrice.Base.AssetID == e.Bitasset.AssetID {
		return e.Asks
	}
	return e.Bids
}

// matchLimits matches an incoming (taker) limit order against a resting
// maker at the maker's price. It returns the two fill events and whether
// the maker was fully consumed — the signal apply.go uses to decide whether
// to keep walking the book.
func (e *Engine) matchLimits(taker, maker *types.LimitOrder) ([]events.Fill, bool) {
	matchPrice := maker.SellPrice
	usdForSale := taker.ForSale
	coreForSale := maker.ForSale

	var usdReceives, coreReceives pricing.Asset
	if usdForSale.LTE(matchPrice.MulAsset(coreForSale)) {
		coreReceives = usdForSale
		usdReceives = matchPrice.MulAsset(usdForSale)
	} else {
		usdReceives = coreForSale
		coreReceives = matchPrice.MulAsset(coreForSale)
	}
	corePays := usdReceives
	usdPays := coreReceives

	takerFill := e.fillLimit(e.bookFor(taker), taker, usdPays, usdReceives, false)
	makerFill := e.fillLimit(e.bookFor(maker), maker, corePays, coreReceives, true)
	return []events.Fill{takerFill, makerFill}, makerFill.FullyFilled
}

// matchLimitCall matches a limit order (buying collateral, i.e. selling the
// market-issued asset) against a call order at matchPrice. limitIsMaker
// tells it which side is the maker: a newly submitted order matches an
// already-margin-called order with the call as maker, while a margin-call
// sweep triggered by a feed update makes the resting limit order the maker
// and the call the taker. It returns the fill events and whether the call
// order was fully consumed.
func (e *Engine) matchLimitCall(limitOrder *types.LimitOrder, call *types.CallOrder, matchPrice pricing.Price, limitIsMaker bool) ([]events.Fill, bool) {
	usdForSale := limitOrder.ForSale
	usdToBuy := call.Debt

	var callReceives, orderReceives pricing.Asset
	if usdToBuy.GTE(usdForSale) {
		callReceives = usdForSale
		orderReceives = matchPrice.MulAsset(usdForSale)
	} else {
		callReceives = usdToBuy
		orderReceives = matchPrice.MulAsset(usdToBuy)
	}
	callPays := orderReceives
	orderPays := callReceives

	limitFill := e.fillLimit(e.bookFor(limitOrder), limitOrder, orderPays, orderReceives, limitIsMaker)
	callFill := e.fillCall(call, callPays, callReceives, !limitIsMaker)
	return []events.Fill{limitFill, callFill}, callFill.FullyFilled
}

// Match fills a call order against a force-settlement order at matchPrice,
// covering at most maxSettlement of the settle order's balance. If the call
// order's collateral can't cover the fill at matchPrice, this is a black
// swan: Match returns a *BlackSwanError instead of mutating anything, and
// the caller is expected to cancel the settle order rather than escalate —
// global settlement is triggered only from ApplyOrder and CheckCallOrders.
func (e *Engine) Match(call *types.CallOrder, settle *types.SettleOrder, matchPrice pricing.Price, maxSettlement pricing.Asset) (pricing.Asset, []events.Fill, error) {
	settleForSale := pricing.Min(settle.Balance, maxSettlement)
	callReceives := pricing.Min(settleForSale, call.Debt)
	callPays := matchPrice.MulAsset(callReceives)

	if callPays.GTE(call.Collateral) {
		return pricing.Asset{}, nil, &BlackSwanError{Price: matchPrice}
	}

	callFill := e.fillCall(call, callPays, callReceives, true)
	settleFill := e.fillSettle(settle, callReceives, callPays, false)
	return callReceives, []events.Fill{callFill, settleFill}, nil
}
