package matching

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/synthex-labs/matchcore/pricing"
)

// Sentinel errors every Engine operation may return.
var (
	ErrNonPositiveAmount = errors.New("matching: amount must be positive")
	ErrAssetMismatch     = errors.New("matching: asset id mismatch")
	ErrAlreadySettled    = errors.New("matching: asset already globally settled")
	ErrNotSettled        = errors.New("matching: asset is not globally settled")
	ErrOrderNotFound     = errors.New("matching: order not found")
)

// BlackSwanError is returned by Match(call, settle, ...) when the least
// collateralized call order can't cover the incoming settlement at the
// current price. The caller decides what happens next: the engine itself
// never escalates to global settlement from inside a settle match, it only
// reports the price at which the swan would occur.
type BlackSwanError struct {
	Price pricing.Price
}

func (e *BlackSwanError) Error() string {
	return fmt.Sprintf("matching: black swan at settlement price %s/%s",
		e.Price.Quote.Amount, e.Price.Base.Amount)
}
