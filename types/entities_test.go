package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/synthex-labs/matchcore/num"
	"github.com/synthex-labs/matchcore/pricing"
	"github.com/synthex-labs/matchcore/types"
)

const (
	mia types.AssetID = "BITUSD"
	core types.AssetID = "CORE"
)

func TestLimitOrderAmountToReceiveRoundsUp(t *testing.T) {
	o := types.LimitOrder{
		SellPrice: pricing.NewPrice(
			pricing.NewAsset(num.NewUint(3), mia),
			pricing.NewAsset(num.NewUint(7), core),
		),
		ForSale: pricing.NewAsset(num.NewUint(5), mia),
	}
	got := o.AmountToReceive()
	assert.Equal(t, uint64(12), got.Amount.Uint64()) // ceil(5*7/3)
}

func TestLimitOrderIsDust(t *testing.T) {
	o := types.LimitOrder{
		SellPrice: pricing.NewPrice(
			pricing.NewAsset(num.NewUint(1000), mia),
			pricing.NewAsset(num.NewUint(1), core),
		),
		ForSale: pricing.NewAsset(num.NewUint(0), mia),
	}
	assert.True(t, o.IsDust())

	o.ForSale = pricing.NewAsset(num.NewUint(5000), mia)
	assert.False(t, o.IsDust())
}

func TestFeedMaxShortSqueezePrice(t *testing.T) {
	f := types.Feed{
		SettlementPrice: pricing.NewPrice(
			pricing.NewAsset(num.NewUint(1), mia),
			pricing.NewAsset(num.NewUint(2), core),
		),
		MCR:  1750,
		MSSR: 1100,
	}
	squeeze := f.MaxShortSqueezePrice()
	assert.Equal(t, uint64(1100), squeeze.Base.Amount.Uint64())
	assert.Equal(t, uint64(2000), squeeze.Quote.Amount.Uint64())
}

func TestFeedIsNull(t *testing.T) {
	var f types.Feed
	assert.True(t, f.IsNull())

	f.SettlementPrice = pricing.NewPrice(
		pricing.NewAsset(num.NewUint(1), mia),
		pricing.NewAsset(num.NewUint(2), core),
	)
	assert.False(t, f.IsNull())
}

func TestBitassetStateHasSettlement(t *testing.T) {
	b := &types.BitassetState{AssetID: mia, BackingAsset: core}
	assert.False(t, b.HasSettlement())

	settled := pricing.NewPrice(
		pricing.NewAsset(num.NewUint(1), mia),
		pricing.NewAsset(num.NewUint(1), core),
	)
	b.SettlementPrice = &settled
	assert.True(t, b.HasSettlement())
}
