package store

import (
	"errors"
	"fmt"
)

// ErrCacheMiss marks a key that is absent from the remote cache (or whose
// entry has expired). It is never retried.
var ErrCacheMiss = errors.New("cache miss")

// TransientError wraps a remote-cache failure (timeout, connection fault)
// that is expected to succeed on retry. Every other fault from the client
// is fatal and propagates immediately.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("store: transient %s failure: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
