package matching

import (
	"github.com/synthex-labs/matchcore/events"
	"github.com/synthex-labs/matchcore/num"
	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/types"
)

// GloballySettleAsset force-closes every call order at settlementPrice and
// puts the asset into global settlement (spec.md §4.7). Every unit of the
// market-issued asset still outstanding becomes redeemable against the
// resulting settlement fund at the recorded settlement price; no new call
// orders may be opened while HasSettlement() is true.
func (e *Engine) GloballySettleAsset(settlementPrice pricing.Price) ([]events.Fill, events.GlobalSettlement, error) {
	if e.Bitasset.HasSettlement() {
		return nil, events.GlobalSettlement{}, ErrAlreadySettled
	}

	originalSupply := e.MIADyn.CurrentSupply.Clone()
	collateralGathered := pricing.NewAsset(num.UintZero(), e.Bitasset.BackingAsset)

	var calls []*types.CallOrder
	e.Calls.Ascend(func(c *types.CallOrder) bool {
		calls = append(calls, c)
		return true
	})

	var fills []events.Fill
	for _, call := range calls {
		pays := settlementPrice.MulAsset(call.Debt)
		if pays.GT(call.Collateral) {
			pays = call.Collateral
		}
		collateralGathered = collateralGathered.Add(pays)
		fills = append(fills, e.fillCall(call, pays, call.Debt, true))
	}

	settlement := pricing.NewPrice(pricing.NewAsset(originalSupply, e.Bitasset.AssetID), collateralGathered)
	e.Bitasset.SettlementPrice = &settlement
	e.Bitasset.SettlementFund = collateralGathered.Amount.Clone()
	// ReviveBitasset relies on current_supply still reflecting the
	// pre-settlement total; fillCall decremented it per call, so restore it.
	e.MIADyn.CurrentSupply = originalSupply

	return fills, events.GlobalSettlement{
		AssetID:         e.Bitasset.AssetID,
		SettlementPrice: settlement,
		SettlementFund:  collateralGathered,
	}, nil
}

// ExecuteBid turns a collateral bid into a new call order backed by the
// bidder's offered collateral plus a share of the settlement fund. newID is
// supplied by the host, since order identifiers are assigned outside this
// package. fromBook is false only for the zero-collateral pseudo-bid
// ReviveBitasset synthesizes, which was never inserted into CollBids.
func (e *Engine) ExecuteBid(bid *types.CollateralBid, newID types.CallOrderID, debtCovered, collateralFromFund pricing.Asset, fromBook bool) (*types.CallOrder, events.BidExecuted) {
	collateral := bid.InvSwanPrice.Base.Add(collateralFromFund)
	call := &types.CallOrder{
		ID:         newID,
		Borrower:   bid.Bidder,
		Debt:       debtCovered,
		Collateral: collateral,
	}
	call.CallPrice = pricing.CallPrice(call.Debt, call.Collateral, e.Bitasset.CurrentFeed.MCR)
	e.Calls.Insert(call)

	if fromBook {
		e.CollBids.Remove(bid)
	}

	return call, events.BidExecuted{
		BidID:      bid.ID,
		Bidder:     bid.Bidder,
		DebtCover:  debtCovered,
		Collateral: collateral,
	}
}

// ReviveBitasset ends global settlement (spec.md §4.8). If any of the
// market-issued asset remains outstanding, the settlement fund is first
// handed to a zero-collateral synthetic bid so the outstanding supply
// still has a backing call order the moment settlement lifts; every
// collateral bid still resting on the book is then cancelled and refunded,
// since the asset no longer needs topping up.
func (e *Engine) ReviveBitasset(pseudoBidder types.AccountID, pseudoCallID types.CallOrderID) ([]events.BidCancelled, *events.BidExecuted, *events.AssetRevived, error) {
	if !e.Bitasset.HasSettlement() {
		return nil, nil, nil, ErrNotSettled
	}
	if e.Bitasset.IsPredictionMarket {
		return nil, nil, nil, ErrAssetMismatch
	}

	var executed *events.BidExecuted
	if !e.MIADyn.CurrentSupply.IsZero() {
		pseudoBid := &types.CollateralBid{
			Bidder: pseudoBidder,
			InvSwanPrice: pricing.NewPrice(
				pricing.NewAsset(num.UintZero(), e.Bitasset.BackingAsset),
				pricing.NewAsset(e.MIADyn.CurrentSupply.Clone(), e.Bitasset.AssetID),
			),
		}
		debtCovered := pricing.NewAsset(e.MIADyn.CurrentSupply.Clone(), e.Bitasset.AssetID)
		fundAsset := pricing.NewAsset(e.Bitasset.SettlementFund.Clone(), e.Bitasset.BackingAsset)
		_, ev := e.ExecuteBid(pseudoBid, pseudoCallID, debtCovered, fundAsset, false)
		executed = &ev
	} else if !e.Bitasset.SettlementFund.IsZero() {
		return nil, nil, nil, ErrAssetMismatch
	}

	var cancelled []events.BidCancelled
	var bids []*types.CollateralBid
	e.CollBids.Ascend(func(b *types.CollateralBid) bool {
		bids = append(bids, b)
		return true
	})
	for _, b := range bids {
		e.CollBids.Remove(b)
		cancelled = append(cancelled, events.BidCancelled{
			BidID:      b.ID,
			Bidder:     b.Bidder,
			Collateral: b.InvSwanPrice.Base,
		})
	}

	e.Bitasset.SettlementPrice = nil
	e.Bitasset.SettlementFund = num.UintZero()

	return cancelled, executed, &events.AssetRevived{AssetID: e.Bitasset.AssetID}, nil
}
