// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package david

import (
	"errors"
	"fmt"
)

// ErrValidation marks requests rejected before anything is sent to the
// service. Returned errors wrap it with detail; test with errors.Is.
var ErrValidation = errors.New("invalid request")

// AuthError reports that the service refused the identity.
type AuthError struct {
	Identity string
	Reason   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %q: %s", e.Identity, e.Reason)
}

// RemoteError reports a transport failure, an unexpected HTTP status, a
// SOAP fault or an unreadable response for one service operation.
type RemoteError struct {
	Op         string
	StatusCode int
	Fault      string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Fault != "":
		return fmt.Sprintf("%s: service fault: %s", e.Op, e.Fault)
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: service returned HTTP %d", e.Op, e.StatusCode)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }
