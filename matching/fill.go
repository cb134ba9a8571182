package matching

import (
	"github.com/synthex-labs/matchcore/events"
	"github.com/synthex-labs/matchcore/fee"
	"github.com/synthex-labs/matchcore/num"
	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/store"
	"github.com/synthex-labs/matchcore/types"
)

// fillLimit applies pays/receives to a resting limit order: the market fee
// on receives is assessed and folded into the receive asset's accumulated
// fees, any fee deferred at order creation is released in full to the
// seller (deferred fees are only ever prorated on cancel, never on a fill),
// and the order is dropped from the book once its remaining size hits zero.
func (e *Engine) fillLimit(book *store.LimitBook, order *types.LimitOrder, pays, receives pricing.Asset, isMaker bool) events.Fill {
	issuerFee := fee.Pay(e.feeDefFor(receives.AssetID), e.dynFor(receives.AssetID), receives)
	net := receives.Sub(issuerFee)

	deferredFee := order.DeferredFee
	deferredPaidFee := order.DeferredPaidFee
	if !deferredPaidFee.Zero() {
		if dyn := e.dynFor(deferredPaidFee.AssetID); dyn != nil {
			dyn.AccumulatedFees = num.UintZero().Add(dyn.AccumulatedFees, deferredPaidFee.Amount)
		}
	}

	var fullyFilled bool
	book.Modify(order, func(o *types.LimitOrder) {
		o.ForSale = o.ForSale.Sub(pays)
		o.DeferredFee = num.UintZero()
		o.DeferredPaidFee = pricing.NewAsset(num.UintZero(), o.DeferredPaidFee.AssetID)
		fullyFilled = o.ForSale.Zero()
	})
	if fullyFilled {
		book.Remove(order)
	}

	f := events.Fill{
		OrderID:     string(order.ID),
		IsMaker:     isMaker,
		Pays:        pays,
		Receives:    net,
		Fee:         issuerFee,
		FullyFilled: fullyFilled,
	}
	if !deferredFee.IsZero() {
		f.DeferredFee = pricing.NewAsset(deferredFee, e.CoreAsset)
	}
	if !deferredPaidFee.Zero() {
		f.DeferredFeeAlt = deferredPaidFee
	}
	return f
}

// fillCall applies pays (collateral given up) and receives (debt
// extinguished) to a call order. No market fee is assessed here: the fee on
// this trade is charged to whichever limit or settle order receives the
// freed collateral, via fillLimit/fillSettle.
func (e *Engine) fillCall(order *types.CallOrder, pays, receives pricing.Asset, isMaker bool) events.Fill {
	e.MIADyn.CurrentSupply = num.UintZero().Sub(e.MIADyn.CurrentSupply, receives.Amount)

	var collateralFreed pricing.Asset
	var fullyFilled bool
	e.Calls.Modify(order, func(c *types.CallOrder) {
		c.Debt = c.Debt.Sub(receives)
		c.Collateral = c.Collateral.Sub(pays)
		if c.Debt.Zero() {
			collateralFreed = c.Collateral
			c.Collateral = pricing.NewAsset(num.UintZero(), c.Collateral.AssetID)
			fullyFilled = true
		} else {
			c.CallPrice = pricing.CallPrice(c.Debt, c.Collateral, e.Bitasset.CurrentFeed.MCR)
		}
	})
	if fullyFilled {
		e.Calls.Remove(order)
	}

	f := events.Fill{
		OrderID:     string(order.ID),
		IsMaker:     isMaker,
		Pays:        pays,
		Receives:    receives,
		Fee:         pricing.NewAsset(num.UintZero(), receives.AssetID),
		FullyFilled: fullyFilled,
	}
	if fullyFilled {
		f.CollateralFreed = collateralFreed
	}
	return f
}

// fillSettle applies pays/receives to a force-settlement order, charging
// the same market fee a limit order taker would pay on the same receive
// asset.
func (e *Engine) fillSettle(order *types.SettleOrder, pays, receives pricing.Asset, isMaker bool) events.Fill {
	issuerFee := fee.Pay(e.feeDefFor(receives.AssetID), e.dynFor(receives.AssetID), receives)
	net := receives.Sub(issuerFee)

	fullyFilled := pays.GTE(order.Balance)
	if fullyFilled {
		e.Settles.Remove(order)
	} else {
		e.Settles.Remove(order)
		order.Balance = order.Balance.Sub(pays)
		e.Settles.Insert(order)
	}

	return events.Fill{
		OrderID:     string(order.ID),
		IsMaker:     isMaker,
		Pays:        pays,
		Receives:    net,
		Fee:         issuerFee,
		FullyFilled: fullyFilled,
	}
}
