package store

import "errors"

var ErrRunStoreUnavailable = errors.New("run store unavailable: redis is offline and fallback is disabled")
