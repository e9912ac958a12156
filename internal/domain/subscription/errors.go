package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrProviderIDConflict   = errors.New("provider subscription already linked")
	ErrInvalidSnapshot      = errors.New("invalid provider snapshot")
)
