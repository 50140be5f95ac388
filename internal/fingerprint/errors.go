package fingerprint

import "errors"

// ErrStoreUnavailable means the persisted digests could not be read or
// written. A run must stop rather than assume nothing changed.
var ErrStoreUnavailable = errors.New("fingerprint store unavailable")
