// Package num provides the fixed-width unsigned integer type used for every
// monetary amount in the engine. A single 256-bit width is used throughout so
// that amount*price scaling never silently overflows, regardless of how the
// two operands' native precisions compare.
package num

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Uint wraps a 256-bit unsigned integer. The zero value is zero.
type Uint struct {
	u uint256.Int
}

// UintZero returns a new zero-valued Uint.
func UintZero() *Uint { return &Uint{} }

// NewUint creates a Uint from a uint64.
func NewUint(val uint64) *Uint {
	return &Uint{*uint256.NewInt(val)}
}

// UintFromBig constructs a Uint from a big.Int. overflow is true if the value
// overflowed 256 bits.
func UintFromBig(b *big.Int) (u *Uint, overflow bool) {
	v, of := uint256.FromBig(b)
	if of {
		return UintZero(), true
	}
	return &Uint{*v}, false
}

// UintFromString parses str in the given base.
func UintFromString(str string, base int) (*Uint, bool) {
	b, ok := big.NewInt(0).SetString(str, base)
	if !ok {
		return UintZero(), true
	}
	return UintFromBig(b)
}

// Min returns the smaller of a and b.
func Min(a, b *Uint) *Uint {
	if a.LT(b) {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b *Uint) *Uint {
	if a.GT(b) {
		return a
	}
	return b
}

// Sum adds vals together, starting from zero.
func Sum(vals ...*Uint) *Uint {
	return UintZero().AddSum(vals...)
}

func (z *Uint) Set(oth *Uint) *Uint {
	z.u.Set(&oth.u)
	return z
}

func (z Uint) Uint64() uint64 { return z.u.Uint64() }

func (z Uint) BigInt() *big.Int { return z.u.ToBig() }

func (z *Uint) Add(x, y *Uint) *Uint {
	z.u.Add(&x.u, &y.u)
	return z
}

// AddSum adds vals into z: z = z + vals[0] + vals[1] + ...
func (z *Uint) AddSum(vals ...*Uint) *Uint {
	for _, x := range vals {
		z.u.Add(&z.u, &x.u)
	}
	return z
}

// Sub sets z = x - y. Panics on underflow, matching the invariant that no
// amount in this engine may go negative (spec invariant: no negative amounts).
func (z *Uint) Sub(x, y *Uint) *Uint {
	if y.GT(x) {
		panic(fmt.Sprintf("num: underflow %s - %s", x, y))
	}
	z.u.Sub(&x.u, &y.u)
	return z
}

// SafeSub sets z = x - y and reports whether y > x (in which case z is left
// at zero rather than panicking).
func (z *Uint) SafeSub(x, y *Uint) (*Uint, bool) {
	_, overflow := z.u.SubOverflow(&x.u, &y.u)
	if overflow {
		z.u.Clear()
	}
	return z, overflow
}

func (z *Uint) Mul(x, y *Uint) *Uint {
	z.u.Mul(&x.u, &y.u)
	return z
}

func (z *Uint) Div(x, y *Uint) *Uint {
	z.u.Div(&x.u, &y.u)
	return z
}

// MulDiv computes floor(x * y / d) using a 256-bit intermediate product, so
// it is exact whenever x * y fits in 256 bits (always the case for operands
// below 2^128); a larger product wraps before the division.
func MulDiv(x, y, d *Uint) *Uint {
	var num, denom uint256.Int
	num.Mul(&x.u, &y.u)
	denom.Set(&d.u)
	var out uint256.Int
	out.Div(&num, &denom)
	return &Uint{out}
}

// MulDivUp is MulDiv, rounded up instead of down.
func MulDivUp(x, y, d *Uint) *Uint {
	var numr, denom uint256.Int
	numr.Mul(&x.u, &y.u)
	denom.Set(&d.u)
	var quot, rem uint256.Int
	quot.DivMod(&numr, &denom, &rem)
	if !rem.IsZero() {
		quot.AddUint64(&quot, 1)
	}
	return &Uint{quot}
}

func (u Uint) LT(oth *Uint) bool  { return u.u.Lt(&oth.u) }
func (u Uint) LTE(oth *Uint) bool { return u.u.Lt(&oth.u) || u.u.Eq(&oth.u) }
func (u Uint) EQ(oth *Uint) bool  { return u.u.Eq(&oth.u) }
func (u Uint) GT(oth *Uint) bool  { return u.u.Gt(&oth.u) }
func (u Uint) GTE(oth *Uint) bool { return u.u.Gt(&oth.u) || u.u.Eq(&oth.u) }

func (u Uint) IsZero() bool { return u.u.IsZero() }

// Clone returns a deep copy of u.
func (u Uint) Clone() *Uint { return &Uint{u.u} }

func (u Uint) String() string { return u.u.ToBig().String() }

func (u Uint) Format(s fmt.State, ch rune) { u.u.Format(s, ch) }

// Bytes returns the big-endian 32-byte representation, used for hashing
// order-book state.
func (u Uint) Bytes() [32]byte { return u.u.Bytes32() }
