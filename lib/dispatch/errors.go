package dispatch

import (
	"errors"
	"fmt"
)

// ErrInstancesFailed is returned by ExecuteAll after the failure messages of
// the instances have been printed.
var ErrInstancesFailed = errors.New("operation failed on at least one instance")

// ConnectionError is returned when an instance cannot be reached
type ConnectionError struct {
	Hostname string
	Endpoint string // socket path or port
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to %s:%s: %v", e.Hostname, e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Kind() string { return "ConnectionError" }

// ResponseError is returned when the store answers a command with an error reply
type ResponseError struct {
	Msg string
}

func (e *ResponseError) Error() string { return e.Msg }

func (e *ResponseError) Kind() string { return "ResponseError" }

// UnrecognizedOperationError is returned for broadcast operations other than
// PING, SAVE and FLUSHALL.
type UnrecognizedOperationError struct {
	Op string
}

func (e *UnrecognizedOperationError) Error() string {
	return fmt.Sprintf("unrecognized operation %q (expected one of PING, SAVE, FLUSHALL)", e.Op)
}

func (e *UnrecognizedOperationError) Kind() string { return "UnrecognizedOperation" }

// refusedMessage is the per-instance failure line of a broadcast
func refusedMessage(hostname, endpoint string) string {
	return fmt.Sprintf("Could not connect to %s:%s: Connection refused", hostname, endpoint)
}

// --------------------------------------------------------------------------
// Error Rendering
// --------------------------------------------------------------------------

// kinded is implemented by all errors that carry a user facing kind name
type kinded interface {
	error
	Kind() string
}

// Describe renders an error as a single line "<Kind>: <message>". The kind is
// taken from the first kinded error in the chain, the message from err itself.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return fmt.Sprintf("%s: %s", k.Kind(), err.Error())
	}
	return fmt.Sprintf("Error: %s", err.Error())
}
