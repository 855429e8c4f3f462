package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ConnectivityError indicates the server could not be reached at the
// transport level. It is the one place a network failure is translated
// into a user-facing message.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return "couldn't connect to server, is it running?"
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// IsConnectivityError reports whether err (or any error in its chain)
// is a ConnectivityError.
func IsConnectivityError(err error) bool {
	var connErr *ConnectivityError
	return errors.As(err, &connErr)
}

// RemoteError indicates the server rejected the request. Message holds
// the server-supplied error text when the response body carried one,
// or a generic status-based message otherwise.
type RemoteError struct {
	Message string
	Status  int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// IsAuthError reports whether err is a RemoteError with an
// authentication-failure status. Callers must clear the session and
// return to the unauthenticated view when this is true.
func IsAuthError(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr) &&
		remoteErr.Status == http.StatusUnauthorized
}
