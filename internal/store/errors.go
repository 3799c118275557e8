package store

import (
	"errors"
	"fmt"
)

// #region errors

// ErrUnknownInteraction reports a feedback reference to a missing interaction id.
var ErrUnknownInteraction = errors.New("unknown interaction")

// ErrStoreUnavailable reports that the backing store cannot be reached.
// It is never swallowed; callers see it verbatim.
var ErrStoreUnavailable = errors.New("store unavailable")

// unavailable tags a driver error as a store-availability failure while
// keeping the original message.
func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// #endregion
