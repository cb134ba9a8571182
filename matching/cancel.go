package matching

import (
	"github.com/synthex-labs/matchcore/events"
	"github.com/synthex-labs/matchcore/num"
	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/types"
)

// CancelLimitOrder removes order from the book and refunds its unsold
// balance to the seller. If skipCancelFee is false and the order still
// carries a deferred creation fee, the host's fee schedule is consulted for
// a cancellation fee capped at that deferred amount; any shortfall between
// the deferred fee and its originally-paid-asset equivalent is prorated up
// (rounded in the protocol's favor, not the seller's) the same way the
// order's creation fee was split (spec.md §4.5).
func (e *Engine) CancelLimitOrder(order *types.LimitOrder, skipCancelFee bool) events.LimitOrderCancelled {
	originalDeferredFee := order.DeferredFee
	coreCancelFee := num.UintZero()
	if !skipCancelFee && !originalDeferredFee.IsZero() {
		coreCancelFee = e.Fees.CancelOrderFee(order)
		if coreCancelFee.GT(originalDeferredFee) {
			coreCancelFee = originalDeferredFee.Clone()
		}
	}

	remainingDeferredFee := num.UintZero().Sub(originalDeferredFee, coreCancelFee)
	paidFeeAssetID := order.DeferredPaidFee.AssetID
	hadAltFee := !order.DeferredPaidFee.Zero()

	var refundedAlt pricing.Asset
	if hadAltFee {
		refundedAlt = order.DeferredPaidFee
	}
	if coreCancelFee.GT(num.UintZero()) && hadAltFee {
		cancelFeeAmt := num.MulDivUp(order.DeferredPaidFee.Amount, coreCancelFee, originalDeferredFee)
		if dyn := e.dynFor(paidFeeAssetID); dyn != nil {
			dyn.AccumulatedFees = num.UintZero().Add(dyn.AccumulatedFees, cancelFeeAmt)
		}
		refundedAlt = pricing.NewAsset(num.UintZero().Sub(order.DeferredPaidFee.Amount, cancelFeeAmt), paidFeeAssetID)
	}

	refund := order.ForSale
	e.bookFor(order).Remove(order)

	ev := events.LimitOrderCancelled{
		OrderID: order.ID,
		Seller:  order.Seller,
		Refund:  refund,
	}
	if !hadAltFee {
		ev.RefundedFee = pricing.NewAsset(remainingDeferredFee, e.CoreAsset)
	} else {
		ev.RefundedFeeAlt = refundedAlt
		if dyn := e.dynFor(paidFeeAssetID); dyn != nil {
			dyn.FeePool = num.UintZero().Add(dyn.FeePool, remainingDeferredFee)
		}
	}
	return ev
}

// CancelSettleOrder withdraws a pending force-settlement request and
// refunds its balance (spec.md §4.6).
func (e *Engine) CancelSettleOrder(order *types.SettleOrder) events.SettleCancelled {
	e.Settles.Remove(order)
	return events.SettleCancelled{
		OrderID: order.ID,
		Owner:   order.Owner,
		Refund:  order.Balance,
	}
}

// CancelBid withdraws a collateral bid, refunding its offered collateral.
// Only meaningful while the asset is in global settlement (spec.md §4.8).
func (e *Engine) CancelBid(bid *types.CollateralBid) events.BidCancelled {
	e.CollBids.Remove(bid)
	return events.BidCancelled{
		BidID:      bid.ID,
		Bidder:     bid.Bidder,
		Collateral: bid.InvSwanPrice.Base,
	}
}
