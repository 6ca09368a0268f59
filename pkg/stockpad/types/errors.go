package types

import (
	"errors"
	"fmt"
)

// ErrTickerNotFound covers both an unknown symbol at the provider (zero or
// missing price) and an absent row in the store.
var ErrTickerNotFound = errors.New("ticker not found")

// ErrDuplicateTicker is returned when adding a symbol that is already tracked.
var ErrDuplicateTicker = errors.New("ticker already tracked")

// TransportError is a network failure or a non-2xx response from the
// market-data provider.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError is a well-transported but malformed provider response.
type ResponseError struct {
	Endpoint string
	Reason   string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: bad response: %s", e.Endpoint, e.Reason)
}
