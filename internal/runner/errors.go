package runner

import "errors"

// ErrRunInProgress is returned when another process holds the run lock.
var ErrRunInProgress = errors.New("run already in progress")
