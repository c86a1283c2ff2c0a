package contract

import "errors"

// ErrInvalidInput marks bad user input: dates, thresholds, paths.
// Commands abort before writing any artifact.
var ErrInvalidInput = errors.New("invalid input")

// ErrToolInvocation marks a failed or missing git invocation.
var ErrToolInvocation = errors.New("git invocation failed")
