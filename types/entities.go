package types

import (
	"github.com/synthex-labs/matchcore/num"
	"github.com/synthex-labs/matchcore/pricing"
)

// LimitOrder is a resting offer to sell ForSale at SellPrice (spec.md §3).
// The matcher and fillers are the only code permitted to mutate one; the
// store owns it, callers only ever hold a borrowed pointer.
type LimitOrder struct {
	ID     OrderID
	Seller AccountID

	// SellPrice.Base is the asset being sold, SellPrice.Quote the asset the
	// seller wants in return.
	SellPrice pricing.Price
	ForSale   pricing.Asset

	// DeferredFee is an amount of the host's core asset, owed to the seller's
	// fee account on fill or cancel.
	DeferredFee *num.Uint
	// DeferredPaidFee is the same fee, expressed in whatever asset it was
	// originally paid in, when that asset isn't the core asset. A zero
	// amount means no non-core fee was deferred.
	DeferredPaidFee pricing.Asset
}

// AmountToReceive is for_sale * sell_price, rounded up toward the taker's
// cost (spec.md §3: "rounded up toward taker cost").
func (o *LimitOrder) AmountToReceive() pricing.Asset {
	return o.SellPrice.MulUp(o.ForSale)
}

// IsDust reports whether the order's remaining size rounds to zero proceeds
// at its own price — the cull condition from spec.md §3/§7.
func (o *LimitOrder) IsDust() bool {
	return o.AmountToReceive().Zero()
}

// CallOrder is a collateralized debt position (spec.md §3).
type CallOrder struct {
	ID         CallOrderID
	Borrower   AccountID
	Debt       pricing.Asset // market-issued asset, > 0
	Collateral pricing.Asset // backing asset, > 0
	CallPrice  pricing.Price
}

// SettleOrder is a holder's request to redeem a market-issued asset directly
// against the worst-collateralized call (spec.md §3, "Force-Settlement
// Order").
type SettleOrder struct {
	ID             SettleOrderID
	Owner          AccountID
	Balance        pricing.Asset // market-issued asset
	SettlementTime int64
}

// CollateralBid is an offer, made while an asset is in global settlement, to
// cover outstanding debt in exchange for a pro-rata share of the
// settlement fund (spec.md §3).
type CollateralBid struct {
	ID     BidID
	Bidder AccountID
	// InvSwanPrice.Base is the additional collateral offered, InvSwanPrice.Quote
	// is the debt the bid proposes to cover.
	InvSwanPrice pricing.Price
}

// Feed is an oracle-provided quote plus the maintenance and squeeze ratios
// that were in effect when it was last updated (spec.md Glossary: Feed).
type Feed struct {
	SettlementPrice pricing.Price
	MCR             pricing.Ratio
	MSSR            pricing.Ratio
}

// MaxShortSqueezePrice bounds how far below the feed price a limit order can
// force a margin call to execute: settlement_price * (CollateralRatioDenom / MSSR).
func (f Feed) MaxShortSqueezePrice() pricing.Price {
	base := num.UintZero().Mul(f.SettlementPrice.Base.Amount, num.NewUint(uint64(f.MSSR)))
	quote := num.UintZero().Mul(f.SettlementPrice.Quote.Amount, num.NewUint(pricing.CollateralRatioDenom))
	return pricing.Price{
		Base:  pricing.NewAsset(base, f.SettlementPrice.Base.AssetID),
		Quote: pricing.NewAsset(quote, f.SettlementPrice.Quote.AssetID),
	}
}

// IsNull reports whether the feed carries no quote yet.
func (f Feed) IsNull() bool {
	return f.SettlementPrice.Base.Zero() || f.SettlementPrice.Quote.Zero()
}

// BitassetState is the per-market-issued-asset collateralization record
// (spec.md §3, "Bitasset State").
type BitassetState struct {
	AssetID            AssetID
	BackingAsset       AssetID
	CurrentFeed        Feed
	IsPredictionMarket bool

	// SettlementPrice is non-nil iff the asset has undergone global
	// settlement (HasSettlement()).
	SettlementPrice *pricing.Price
	SettlementFund  *num.Uint
}

// HasSettlement reports whether the asset is currently globally settled.
func (b *BitassetState) HasSettlement() bool { return b.SettlementPrice != nil }

// AssetDynamicData tracks the mutable counters for a single asset: how much
// of it exists, and what has accumulated for its issuer (spec.md §3).
type AssetDynamicData struct {
	AssetID         AssetID
	CurrentSupply   *num.Uint
	AccumulatedFees *num.Uint
	FeePool         *num.Uint
}

// AssetFeeDef is the subset of an asset's issuer-configured fee policy the
// market-fee calculator needs (spec.md §4.3). Fee schedule configuration
// itself is out of scope (spec.md §1); this is the narrow read interface the
// engine consumes.
type AssetFeeDef struct {
	AssetID           AssetID
	ChargesMarketFees bool
	// MarketFeePercent is expressed in hundredths of a percent, i.e. over a
	// denominator of 10000 (100.00%), the fee.HundredPercent constant.
	MarketFeePercent uint16
	MaxMarketFee     *num.Uint
}
