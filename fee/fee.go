// Package fee computes the market fee an asset's issuer collects on a
// trade, and folds it into that asset's accumulated-fees counter.
package fee

import (
	"github.com/synthex-labs/matchcore/num"
	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/types"
)

// HundredPercent is the denominator MarketFeePercent is expressed against.
const HundredPercent = 10000

// Calculate returns the issuer's cut of receives, per def, floored and
// capped at def.MaxMarketFee. If def doesn't charge market fees at all, the
// result is zero.
func Calculate(def types.AssetFeeDef, receives pricing.Asset) pricing.Asset {
	if !def.ChargesMarketFees || def.MarketFeePercent == 0 {
		return pricing.NewAsset(num.UintZero(), receives.AssetID)
	}
	amt := num.MulDiv(receives.Amount, num.NewUint(uint64(def.MarketFeePercent)), num.NewUint(HundredPercent))
	if def.MaxMarketFee != nil && amt.GT(def.MaxMarketFee) {
		amt = def.MaxMarketFee.Clone()
	}
	return pricing.NewAsset(amt, receives.AssetID)
}

// Pay computes the issuer's fee on receives and, if non-zero, folds it into
// dyn's accumulated fees. It returns the fee, mirroring pay_market_fees'
// return of the amount so the caller can subtract it from what the seller
// is actually paid.
func Pay(def types.AssetFeeDef, dyn *types.AssetDynamicData, receives pricing.Asset) pricing.Asset {
	issuerFee := Calculate(def, receives)
	if !issuerFee.Zero() {
		dyn.AccumulatedFees = num.UintZero().Add(dyn.AccumulatedFees, issuerFee.Amount)
	}
	return issuerFee
}
