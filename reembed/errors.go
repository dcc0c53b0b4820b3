package reembed

import "errors"

// ErrInvalidMaxAttempts is returned when a retry is requested with
// maxAttempts <= 0.
var ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
