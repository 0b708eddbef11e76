package stripe

import "fmt"

// APIError is a non-2xx response from Stripe. Body carries the raw response
// text verbatim so a failure can be diagnosed without reproducing the call.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stripe error %d: %s", e.StatusCode, e.Body)
}

// DecodeError is a 2xx response whose body could not be decoded. It is a
// distinct failure kind from APIError: the call succeeded at the HTTP level.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode stripe response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
