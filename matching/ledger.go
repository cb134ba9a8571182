package matching

import (
	"github.com/synthex-labs/matchcore/num"
	"github.com/synthex-labs/matchcore/types"
)

// FeeSchedule is the host's fee-schedule lookup, consumed by
// CancelLimitOrder to compute the core-asset cancellation fee. Fee
// schedule configuration is outside this engine's scope; this is the
// narrow read the cancel path needs.
type FeeSchedule interface {
	// CancelOrderFee returns the core-asset fee for cancelling order before
	// its deferred fee would otherwise be refunded in full.
	CancelOrderFee(order *types.LimitOrder) *num.Uint
}

// NoCancelFee is a FeeSchedule that never charges a cancellation fee,
// useful for hosts that don't model one and for tests.
type NoCancelFee struct{}

func (NoCancelFee) CancelOrderFee(*types.LimitOrder) *num.Uint { return num.UintZero() }
