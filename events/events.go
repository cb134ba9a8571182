// Package events defines the side effects the matching engine produces.
// Every operation in matching returns these as plain values instead of
// invoking a callback or writing to a channel inline: the caller decides
// how (or whether) to publish them, and tests can assert on them directly
// without standing up a broker.
package events

import (
	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/types"
)

// Fill is emitted once per order whose remaining size changed during a
// match (spec.md §4.1/§4.2: one Fill per participant in a trade, not one per
// trade).
type Fill struct {
	OrderID  string // LimitOrder/CallOrder/SettleOrder id, stringified
	IsMaker  bool
	Pays     pricing.Asset
	Receives pricing.Asset
	Fee      pricing.Asset
	// FullyFilled is true when the order's remaining size went to zero (and
	// was removed from the book) as part of this fill.
	FullyFilled bool
	// CollateralFreed is set when a call order's debt was fully repaid: the
	// leftover collateral returned to the borrower.
	CollateralFreed pricing.Asset
	// DeferredFee is the limit order's deferred core-asset creation fee,
	// released to the seller's account on this fill (spec.md §4.5). Set only
	// on a limit order's own Fill, never on the counterparty's.
	DeferredFee pricing.Asset
	// DeferredFeeAlt is the same fee, expressed in its originally-paid
	// asset, when that asset wasn't the core asset.
	DeferredFeeAlt pricing.Asset
}

// LimitOrderCancelled is emitted when a limit order is removed from the book
// without being fully filled (spec.md §4.5).
type LimitOrderCancelled struct {
	OrderID        types.OrderID
	Seller         types.AccountID
	Refund         pricing.Asset
	RefundedFee    pricing.Asset
	RefundedFeeAlt pricing.Asset // deferred_paid_fee portion, if any
}

// SettleCancelled is emitted when a force-settlement order is withdrawn
// before its settlement time (spec.md §4.6).
type SettleCancelled struct {
	OrderID types.SettleOrderID
	Owner   types.AccountID
	Refund  pricing.Asset
}

// BidCancelled is emitted when a collateral bid is withdrawn, either by its
// owner or because the asset left global settlement (spec.md §4.8).
type BidCancelled struct {
	BidID      types.BidID
	Bidder     types.AccountID
	Collateral pricing.Asset
}

// BidExecuted is emitted for each collateral bid consumed while reviving a
// globally settled asset (spec.md §4.8).
type BidExecuted struct {
	BidID      types.BidID
	Bidder     types.AccountID
	DebtCover  pricing.Asset
	Collateral pricing.Asset
}

// GlobalSettlement is emitted once when an asset enters global settlement
// (spec.md §4.7).
type GlobalSettlement struct {
	AssetID         types.AssetID
	SettlementPrice pricing.Price
	SettlementFund  pricing.Asset
}

// AssetRevived is emitted once when a globally settled asset exits
// settlement (spec.md §4.8).
type AssetRevived struct {
	AssetID types.AssetID
}
