package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/synthex-labs/matchcore/num"
)

// CollateralRatioDenom is the fixed-point denominator collateral ratios
// (MCR, MSSR) are expressed against: a ratio of 1750 means 1.75x.
const CollateralRatioDenom = 1000

// Ratio is a collateral ratio (MCR or MSSR) expressed as an integer over
// CollateralRatioDenom, matching the wire representation of the feed this
// engine consumes.
type Ratio uint32

// RatioFromDecimal converts a human-entered ratio ("1.75") into the
// fixed-point Ratio the engine does arithmetic on. Governance and feed
// publishers naturally deal in decimal multiples; the engine never does,
// since every downstream computation needs an exact integer to stay
// overflow- and rounding-safe.
func RatioFromDecimal(d decimal.Decimal) Ratio {
	scaled := d.Mul(decimal.NewFromInt(CollateralRatioDenom)).Round(0)
	return Ratio(scaled.IntPart())
}

// Decimal renders r back as a human-readable multiple, e.g. for display in
// governance proposals or logs.
func (r Ratio) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(r)).Div(decimal.NewFromInt(CollateralRatioDenom))
}

// CallPrice computes price::call_price(debt, collateral, MCR):
//
//	call_price = (collateral * CollateralRatioDenom) / (debt * MCR)
//
// A call order whose call_price is less than the feed's settlement price is
// under-collateralized (spec.md §4.1).
func CallPrice(debt, collateral Asset, mcr Ratio) Price {
	num1 := num.UintZero().Mul(collateral.Amount, num.NewUint(CollateralRatioDenom))
	denom1 := num.UintZero().Mul(debt.Amount, num.NewUint(uint64(mcr)))
	return Price{
		Base:  NewAsset(denom1, debt.AssetID),
		Quote: NewAsset(num1, collateral.AssetID),
	}
}
