// Package pricing implements the engine's price and asset arithmetic:
// fixed-point assets, rational (base/quote) prices, and the scaled
// multiplication rules the matcher relies on for rounding in the maker's
// favor.
package pricing

import (
	"github.com/synthex-labs/matchcore/num"
)

// AssetID is an opaque handle into the host's asset registry.
type AssetID string

// Asset is a fixed-point amount of a single asset.
type Asset struct {
	Amount  *num.Uint
	AssetID AssetID
}

// NewAsset constructs an Asset, defaulting a nil amount to zero.
func NewAsset(amount *num.Uint, id AssetID) Asset {
	if amount == nil {
		amount = num.UintZero()
	}
	return Asset{Amount: amount, AssetID: id}
}

// Zero reports whether the amount is zero, regardless of asset id.
func (a Asset) Zero() bool { return a.Amount == nil || a.Amount.IsZero() }

// Clone returns a deep copy of a.
func (a Asset) Clone() Asset { return Asset{Amount: a.Amount.Clone(), AssetID: a.AssetID} }

// Sub returns a-b. Panics if the asset ids differ or b > a (see num.Uint.Sub).
func (a Asset) Sub(b Asset) Asset {
	if a.AssetID != b.AssetID {
		panic("pricing: asset id mismatch in Sub")
	}
	return Asset{Amount: num.UintZero().Sub(a.Amount, b.Amount), AssetID: a.AssetID}
}

// Add returns a+b. Panics if the asset ids differ.
func (a Asset) Add(b Asset) Asset {
	if a.AssetID != b.AssetID {
		panic("pricing: asset id mismatch in Add")
	}
	return Asset{Amount: num.UintZero().Add(a.Amount, b.Amount), AssetID: a.AssetID}
}

// LT/LTE/GT/GTE compare two assets of the same id.
func (a Asset) LT(b Asset) bool  { return a.Amount.LT(b.Amount) }
func (a Asset) LTE(b Asset) bool { return a.Amount.LTE(b.Amount) }
func (a Asset) GT(b Asset) bool  { return a.Amount.GT(b.Amount) }
func (a Asset) GTE(b Asset) bool { return a.Amount.GTE(b.Amount) }

// Min returns whichever of a, b has the smaller amount.
func Min(a, b Asset) Asset {
	if a.LTE(b) {
		return a
	}
	return b
}

// Price is the rational exchange rate base/quote: an order selling Base
// wants Quote in return. Price carries direction: ~p (Invert) swaps the two.
type Price struct {
	Base  Asset
	Quote Asset
}

// NewPrice builds a price from a base and quote asset. Both amounts must be
// positive for the price to be usable in matching; the range sentinels
// (MinPrice/MaxPrice below) use amounts of 1 and maxUint, never zero.
func NewPrice(base, quote Asset) Price {
	return Price{Base: base, Quote: quote}
}

// Invert returns ~p: a price with base and quote swapped.
func (p Price) Invert() Price {
	return Price{Base: p.Quote, Quote: p.Base}
}

// Mul scales an asset of p.Base's asset id into p.Quote's asset id:
//
//	result = floor(a.Amount * p.Quote.Amount / p.Base.Amount)
//
// This is the taker-side rounding rule from spec.md §4.1: floor, always.
func (p Price) Mul(a Asset) Asset {
	if a.AssetID != p.Base.AssetID {
		panic("pricing: asset does not match price base")
	}
	amt := num.MulDiv(a.Amount, p.Quote.Amount, p.Base.Amount)
	return Asset{Amount: amt, AssetID: p.Quote.AssetID}
}

// MulUp is Mul, rounded up instead of down — used where the spec calls for
// rounding toward the taker's cost (amount_to_receive on a limit order).
func (p Price) MulUp(a Asset) Asset {
	if a.AssetID != p.Base.AssetID {
		panic("pricing: asset does not match price base")
	}
	amt := num.MulDivUp(a.Amount, p.Quote.Amount, p.Base.Amount)
	return Asset{Amount: amt, AssetID: p.Quote.AssetID}
}

// MulAsset multiplies a by p, auto-detecting direction: if a's asset id
// matches p.Base, the result is scaled into p.Quote; if it matches
// p.Quote, the result is scaled into p.Base via the inverted price. This
// mirrors the direction-agnostic asset*price operator the matcher's
// original semantics rely on, since a resting order's price and an
// incoming order's for-sale asset aren't always on the same side.
func (p Price) MulAsset(a Asset) Asset {
	switch a.AssetID {
	case p.Base.AssetID:
		return p.Mul(a)
	case p.Quote.AssetID:
		return p.Invert().Mul(a)
	default:
		panic("pricing: asset matches neither side of price")
	}
}

// MulAssetUp is MulAsset, rounded up.
func (p Price) MulAssetUp(a Asset) Asset {
	switch a.AssetID {
	case p.Base.AssetID:
		return p.MulUp(a)
	case p.Quote.AssetID:
		return p.Invert().MulUp(a)
	default:
		panic("pricing: asset matches neither side of price")
	}
}

// GT reports whether p represents a better (higher quote-per-base) price
// than oth, comparing as p.Quote.Amount/p.Base.Amount > oth.Quote.Amount/oth.Base.Amount
// via cross-multiplication to stay exact.
func (p Price) GT(oth Price) bool {
	lhs := num.UintZero().Mul(p.Quote.Amount, oth.Base.Amount)
	rhs := num.UintZero().Mul(oth.Quote.Amount, p.Base.Amount)
	return lhs.GT(rhs)
}

func (p Price) GTE(oth Price) bool { return p.GT(oth) || p.EQ(oth) }

func (p Price) LT(oth Price) bool { return oth.GT(p) }

func (p Price) LTE(oth Price) bool { return oth.GT(p) || p.EQ(oth) }

func (p Price) EQ(oth Price) bool {
	lhs := num.UintZero().Mul(p.Quote.Amount, oth.Base.Amount)
	rhs := num.UintZero().Mul(oth.Quote.Amount, p.Base.Amount)
	return lhs.EQ(rhs)
}

// MinPrice returns the lowest representable price with base/quote direction
// (base, quote): the sentinel maximum base amount (maxUint) for a single
// quote unit. Used as a sentinel for range-scan bounds over an ordered price
// index.
func MinPrice(base, quote AssetID) Price {
	return Price{Base: NewAsset(maxUint(), base), Quote: NewAsset(num.NewUint(1), quote)}
}

// MaxPrice returns the highest representable price with base/quote direction:
// a single base unit for the sentinel maximum quote amount (maxUint).
func MaxPrice(base, quote AssetID) Price {
	return Price{Base: NewAsset(num.NewUint(1), base), Quote: NewAsset(maxUint(), quote)}
}

func maxUint() *num.Uint {
	u, _ := num.UintFromString("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", 16)
	return u
}
