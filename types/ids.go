// Package types defines the entities the matching engine mutates: limit
// orders, call orders, force-settlement orders, collateral bids, and the
// per-asset bitasset/dynamic-data records that describe a market-issued
// asset's collateralization state.
package types

import "github.com/synthex-labs/matchcore/pricing"

// AssetID re-exports pricing.AssetID so callers of this package don't need
// to import pricing just to name an asset.
type AssetID = pricing.AssetID

// AccountID is an opaque handle into the host's account registry.
type AccountID string

// OrderID identifies a limit order.
type OrderID string

// CallOrderID identifies a call (margin) order.
type CallOrderID string

// SettleOrderID identifies a force-settlement order.
type SettleOrderID string

// BidID identifies a collateral bid.
type BidID string
