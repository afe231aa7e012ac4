package blob

import "errors"

// ErrStoreUnavailable signals a transient failure while talking to the blob
// store (network, auth, throttling). Retried on the next cycle, never fatal.
var ErrStoreUnavailable = errors.New("blob store unavailable")

// ErrObjectGone signals that a blob disappeared between listing and fetching
var ErrObjectGone = errors.New("blob no longer exists")
