package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthex-labs/matchcore/matching"
	"github.com/synthex-labs/matchcore/num"
	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/types"
)

const (
	mia     types.AssetID = "BITUSD"
	backing types.AssetID = "CORE"
	core    types.AssetID = "CORE"
)

func price(baseAsset types.AssetID, baseAmt uint64, quoteAsset types.AssetID, quoteAmt uint64) pricing.Price {
	return pricing.NewPrice(
		pricing.NewAsset(num.NewUint(baseAmt), baseAsset),
		pricing.NewAsset(num.NewUint(quoteAmt), quoteAsset),
	)
}

func newTestEngine(t *testing.T, supply uint64) *matching.Engine {
	t.Helper()
	bitasset := &types.BitassetState{
		AssetID:      mia,
		BackingAsset: backing,
		CurrentFeed: types.Feed{
			SettlementPrice: price(mia, 1, core, 2), // 2 core per bitusd
			MCR:             1750,
			MSSR:            1100,
		},
	}
	miaDyn := &types.AssetDynamicData{AssetID: mia, CurrentSupply: num.NewUint(supply), AccumulatedFees: num.UintZero(), FeePool: num.UintZero()}
	backingDyn := &types.AssetDynamicData{AssetID: backing, CurrentSupply: num.UintZero(), AccumulatedFees: num.UintZero(), FeePool: num.UintZero()}
	return matching.New(bitasset, miaDyn, backingDyn, backing, types.AssetFeeDef{}, types.AssetFeeDef{}, matching.NoCancelFee{}, nil)
}

func TestApplyOrderCrossesRestingLimitOrder(t *testing.T) {
	e := newTestEngine(t, 0)

	maker := &types.LimitOrder{
		ID:          "maker",
		Seller:      "bob",
		SellPrice:   price(mia, 100, core, 200), // selling 1 bitusd for 2 core
		ForSale:     pricing.NewAsset(num.NewUint(100), mia),
		DeferredFee: num.UintZero(),
	}
	e.Asks.Insert(maker)

	taker := &types.LimitOrder{
		ID:          "taker",
		Seller:      "alice",
		SellPrice:   price(core, 200, mia, 100), // selling 200 core for at least 100 bitusd
		ForSale:     pricing.NewAsset(num.NewUint(200), core),
		DeferredFee: num.UintZero(),
	}

	result, err := e.ApplyOrder(taker)
	require.NoError(t, err)

	assert.False(t, result.Resting)
	assert.Nil(t, result.Cancelled)
	require.Len(t, result.Fills, 2)

	assert.Equal(t, 0, e.Asks.Len())
	assert.True(t, maker.ForSale.Zero())
	assert.True(t, taker.ForSale.Zero())
}

func TestApplyOrderRestsWhenNoMatch(t *testing.T) {
	e := newTestEngine(t, 0)

	taker := &types.LimitOrder{
		ID:          "solo",
		Seller:      "alice",
		SellPrice:   price(mia, 1, core, 5),
		ForSale:     pricing.NewAsset(num.NewUint(10), mia),
		DeferredFee: num.UintZero(),
	}

	result, err := e.ApplyOrder(taker)
	require.NoError(t, err)
	assert.True(t, result.Resting)
	assert.Empty(t, result.Fills)
	assert.Equal(t, taker, e.Asks.Get("solo"))
}

func TestApplyOrderMarginCallsUndercollateralizedCall(t *testing.T) {
	e := newTestEngine(t, 1000)

	call := &types.CallOrder{
		ID:         "short1",
		Borrower:   "carol",
		Debt:       pricing.NewAsset(num.NewUint(100), mia),
		Collateral: pricing.NewAsset(num.NewUint(100), core), // ratio 1.0, MCR requires 1.75
	}
	call.CallPrice = pricing.CallPrice(call.Debt, call.Collateral, e.Bitasset.CurrentFeed.MCR)
	e.Calls.Insert(call)

	// max_short_squeeze_price at MSSR=1100: (1*1100)/(2*1000) => 1100/2000 bitusd/core,
	// i.e. 2000/1100 core per bitusd.
	taker := &types.LimitOrder{
		ID:          "aggressive-ask",
		Seller:      "dave",
		SellPrice:   price(mia, 1100, core, 2000),
		ForSale:     pricing.NewAsset(num.NewUint(50), mia),
		DeferredFee: num.UintZero(),
	}

	result, err := e.ApplyOrder(taker)
	require.NoError(t, err)
	require.Len(t, result.Fills, 2)
	assert.False(t, result.Resting)

	assert.Equal(t, uint64(50), call.Debt.Amount.Uint64())
	assert.Equal(t, uint64(10), call.Collateral.Amount.Uint64())
	assert.NotNil(t, e.Calls.Get("short1"))
}

func TestCheckCallOrdersSweepsWorstFirst(t *testing.T) {
	e := newTestEngine(t, 1000)

	// worst clears its whole 100 debt against the resting ask at the
	// feed-protected floor price without exceeding its own collateral.
	worst := &types.CallOrder{ID: "worst", Borrower: "carol", Debt: pricing.NewAsset(num.NewUint(100), mia), Collateral: pricing.NewAsset(num.NewUint(250), core)}
	worst.CallPrice = pricing.CallPrice(worst.Debt, worst.Collateral, e.Bitasset.CurrentFeed.MCR)
	// healthy sits above the feed's settlement price and is never touched.
	healthy := &types.CallOrder{ID: "healthy", Borrower: "erin", Debt: pricing.NewAsset(num.NewUint(100), mia), Collateral: pricing.NewAsset(num.NewUint(400), core)}
	healthy.CallPrice = pricing.CallPrice(healthy.Debt, healthy.Collateral, e.Bitasset.CurrentFeed.MCR)
	e.Calls.Insert(worst)
	e.Calls.Insert(healthy)

	ask := &types.LimitOrder{
		ID:          "resting-ask",
		Seller:      "dave",
		SellPrice:   price(mia, 1100, core, 2000),
		ForSale:     pricing.NewAsset(num.NewUint(200), mia),
		DeferredFee: num.UintZero(),
	}
	e.Asks.Insert(ask)

	marginCalled, fills, err := e.CheckCallOrders(false, false)
	require.NoError(t, err)
	assert.True(t, marginCalled)
	require.Len(t, fills, 2)

	assert.Nil(t, e.Calls.Get("worst"))
	assert.NotNil(t, e.Calls.Get("healthy"))
	assert.Equal(t, uint64(100), ask.ForSale.Amount.Uint64())
}

func TestApplyOrderGloballySettlesOnBlackSwan(t *testing.T) {
	e := newTestEngine(t, 1000)

	// debt=100, collateral=100 at MCR=1.75 is undercollateralized. A taker
	// offering only 10 mia would cost the call floor(10*2000/1100)=18 core,
	// well inside its 100 core; this taker offers 100 (the call's full
	// debt), which costs floor(100*2000/1100)=181 core, more than the call
	// holds — the walk must catch that before calling fillCall, not panic
	// inside it.
	call := &types.CallOrder{
		ID:         "short1",
		Borrower:   "carol",
		Debt:       pricing.NewAsset(num.NewUint(100), mia),
		Collateral: pricing.NewAsset(num.NewUint(100), core),
	}
	call.CallPrice = pricing.CallPrice(call.Debt, call.Collateral, e.Bitasset.CurrentFeed.MCR)
	e.Calls.Insert(call)

	taker := &types.LimitOrder{
		ID:          "aggressive-ask",
		Seller:      "dave",
		SellPrice:   price(mia, 1100, core, 2000),
		ForSale:     pricing.NewAsset(num.NewUint(100), mia),
		DeferredFee: num.UintZero(),
	}

	result, err := e.ApplyOrder(taker)
	require.NoError(t, err)
	require.Len(t, result.Fills, 1)
	assert.True(t, e.Bitasset.HasSettlement())
	assert.Equal(t, 0, e.Calls.Len())
	assert.True(t, result.Resting)
	assert.Equal(t, uint64(100), taker.ForSale.Amount.Uint64())
}

func TestCheckCallOrdersAbortsBlackSwanWhenDisabled(t *testing.T) {
	e := newTestEngine(t, 1000)

	call := &types.CallOrder{ID: "doomed", Borrower: "carol", Debt: pricing.NewAsset(num.NewUint(100), mia), Collateral: pricing.NewAsset(num.NewUint(100), core)}
	call.CallPrice = pricing.CallPrice(call.Debt, call.Collateral, e.Bitasset.CurrentFeed.MCR)
	e.Calls.Insert(call)

	ask := &types.LimitOrder{
		ID:          "resting-ask",
		Seller:      "dave",
		SellPrice:   price(mia, 1100, core, 2000),
		ForSale:     pricing.NewAsset(num.NewUint(200), mia),
		DeferredFee: num.UintZero(),
	}
	e.Asks.Insert(ask)

	marginCalled, fills, err := e.CheckCallOrders(false, false)
	var swanErr *matching.BlackSwanError
	require.ErrorAs(t, err, &swanErr)
	assert.False(t, marginCalled)
	assert.Empty(t, fills)
	assert.False(t, e.Bitasset.HasSettlement())
	assert.NotNil(t, e.Calls.Get("doomed"))
}

func TestCheckCallOrdersGloballySettlesWhenEnabled(t *testing.T) {
	e := newTestEngine(t, 1000)

	call := &types.CallOrder{ID: "doomed", Borrower: "carol", Debt: pricing.NewAsset(num.NewUint(100), mia), Collateral: pricing.NewAsset(num.NewUint(100), core)}
	call.CallPrice = pricing.CallPrice(call.Debt, call.Collateral, e.Bitasset.CurrentFeed.MCR)
	e.Calls.Insert(call)

	ask := &types.LimitOrder{
		ID:          "resting-ask",
		Seller:      "dave",
		SellPrice:   price(mia, 1100, core, 2000),
		ForSale:     pricing.NewAsset(num.NewUint(200), mia),
		DeferredFee: num.UintZero(),
	}
	e.Asks.Insert(ask)

	marginCalled, fills, err := e.CheckCallOrders(true, false)
	require.NoError(t, err)
	assert.True(t, marginCalled)
	require.Len(t, fills, 1)
	assert.True(t, e.Bitasset.HasSettlement())
	assert.Equal(t, 0, e.Calls.Len())
}

func TestGloballySettleAssetAndRevive(t *testing.T) {
	e := newTestEngine(t, 1000)

	call := &types.CallOrder{
		ID:         "doomed",
		Borrower:   "carol",
		Debt:       pricing.NewAsset(num.NewUint(100), mia),
		Collateral: pricing.NewAsset(num.NewUint(50), core),
	}
	call.CallPrice = pricing.CallPrice(call.Debt, call.Collateral, e.Bitasset.CurrentFeed.MCR)
	e.Calls.Insert(call)

	fills, settlement, err := e.GloballySettleAsset(price(mia, 1, core, 2))
	require.NoError(t, err)
	require.Len(t, fills, 1)
	assert.True(t, e.Bitasset.HasSettlement())
	assert.Equal(t, uint64(50), settlement.SettlementFund.Amount.Uint64())
	assert.Equal(t, uint64(1000), e.MIADyn.CurrentSupply.Uint64())
	assert.Equal(t, 0, e.Calls.Len())

	_, _, err = e.GloballySettleAsset(price(mia, 1, core, 2))
	assert.ErrorIs(t, err, matching.ErrAlreadySettled)

	cancelled, executed, revived, err := e.ReviveBitasset("issuer", "revive-1")
	require.NoError(t, err)
	assert.Empty(t, cancelled)
	require.NotNil(t, executed)
	assert.Equal(t, uint64(1000), executed.DebtCover.Amount.Uint64())
	assert.Equal(t, uint64(50), executed.Collateral.Amount.Uint64())
	require.NotNil(t, revived)

	assert.False(t, e.Bitasset.HasSettlement())
	require.Equal(t, 1, e.Calls.Len())
	revivedCall := e.Calls.Get("revive-1")
	require.NotNil(t, revivedCall)
	assert.Equal(t, uint64(1000), revivedCall.Debt.Amount.Uint64())
	assert.Equal(t, uint64(50), revivedCall.Collateral.Amount.Uint64())
}

func TestCancelLimitOrderRefundsBalance(t *testing.T) {
	e := newTestEngine(t, 0)
	order := &types.LimitOrder{
		ID:          "to-cancel",
		Seller:      "alice",
		SellPrice:   price(mia, 1, core, 5),
		ForSale:     pricing.NewAsset(num.NewUint(30), mia),
		DeferredFee: num.NewUint(10),
	}
	e.Asks.Insert(order)

	ev := e.CancelLimitOrder(order, false)
	assert.Equal(t, types.OrderID("to-cancel"), ev.OrderID)
	assert.Equal(t, uint64(30), ev.Refund.Amount.Uint64())
	assert.Equal(t, uint64(10), ev.RefundedFee.Amount.Uint64())
	assert.Equal(t, 0, e.Asks.Len())
}

func TestPlaceSettleOrderAndMatchAgainstCall(t *testing.T) {
	e := newTestEngine(t, 1000)

	call := &types.CallOrder{
		ID:         "backer",
		Borrower:   "carol",
		Debt:       pricing.NewAsset(num.NewUint(200), mia),
		Collateral: pricing.NewAsset(num.NewUint(500), core),
	}
	call.CallPrice = pricing.CallPrice(call.Debt, call.Collateral, e.Bitasset.CurrentFeed.MCR)
	e.Calls.Insert(call)

	settle := &types.SettleOrder{
		ID:             "settler",
		Owner:          "frank",
		Balance:        pricing.NewAsset(num.NewUint(50), mia),
		SettlementTime: 100,
	}
	e.PlaceSettleOrder(settle)
	require.Equal(t, settle, e.Settles.Front())

	covered, fills, err := e.Match(call, settle, e.Bitasset.CurrentFeed.SettlementPrice, settle.Balance)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), covered.Amount.Uint64())
	require.Len(t, fills, 2)
	assert.Equal(t, uint64(150), call.Debt.Amount.Uint64())
	assert.Nil(t, e.Settles.Get("settler"))
}
