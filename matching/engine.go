// Package matching implements the order-matching, margin-call sweep, and
// global-settlement logic for one market: a market-issued asset traded
// against the backing asset that collateralizes it. It performs no I/O and
// takes no locks; every mutation is applied synchronously to the books and
// asset state it owns, and every externally visible effect (a trade, a
// cancellation, a black swan) is returned to the caller as a value from the
// events package rather than dispatched inline.
package matching

import (
	"github.com/synthex-labs/matchcore/logging"
	"github.com/synthex-labs/matchcore/store"
	"github.com/synthex-labs/matchcore/types"
)

// Engine owns every book and mutable asset record for one market. A host
// trading N market-issued assets against their respective backing assets
// runs N Engines and is responsible for routing operations to the right
// one and for serializing calls into each (spec.md's concurrency model:
// the engine is not internally concurrency-safe).
type Engine struct {
	Bitasset   *types.BitassetState
	MIADyn     *types.AssetDynamicData
	BackingDyn *types.AssetDynamicData

	// CoreAsset is the host's network fee asset: DeferredFee on a limit
	// order is always denominated in it.
	CoreAsset types.AssetID

	MIAFee     types.AssetFeeDef
	BackingFee types.AssetFeeDef
	Fees       FeeSchedule

	// Asks holds limit orders selling the market-issued asset for the
	// backing asset; Bids holds limit orders selling the backing asset for
	// the market-issued asset.
	Asks *store.LimitBook
	Bids *store.LimitBook

	Calls    *store.CallBook
	Settles  *store.SettleQueue
	CollBids *store.BidBook

	log *logging.Logger
}

// New constructs an Engine for a single market. bitasset, miaDyn and
// backingDyn are owned by the caller and mutated in place; the Engine keeps
// pointers to them rather than copies, so the host's own read paths always
// see up-to-date state without going through this package.
func New(bitasset *types.BitassetState, miaDyn, backingDyn *types.AssetDynamicData, coreAsset types.AssetID,
	miaFee, backingFee types.AssetFeeDef, fees FeeSchedule, log *logging.Logger,
) *Engine {
	if fees == nil {
		fees = NoCancelFee{}
	}
	if log == nil {
		log = logging.New(logging.InfoLevel, false)
	}
	return &Engine{
		Bitasset:   bitasset,
		MIADyn:     miaDyn,
		BackingDyn: backingDyn,
		CoreAsset:  coreAsset,
		MIAFee:     miaFee,
		BackingFee: backingFee,
		Fees:       fees,
		Asks:       store.NewLimitBook(),
		Bids:       store.NewLimitBook(),
		Calls:      store.NewCallBook(),
		Settles:    store.NewSettleQueue(),
		CollBids:   store.NewBidBook(),
		log:        log.Named("matching"),
	}
}

func (e *Engine) feeDefFor(asset types.AssetID) types.AssetFeeDef {
	switch asset {
	case e.Bitasset.AssetID:
		return e.MIAFee
	case e.Bitasset.BackingAsset:
		return e.BackingFee
	default:
		return types.AssetFeeDef{}
	}
}

func (e *Engine) dynFor(asset types.AssetID) *types.AssetDynamicData {
	switch asset {
	case e.Bitasset.AssetID:
		return e.MIADyn
	case e.Bitasset.BackingAsset:
		return e.BackingDyn
	default:
		return nil
	}
}
