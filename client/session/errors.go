package session

import "errors"

var (
	// ErrUnauthorized is returned by operations that need an authenticated identity.
	ErrUnauthorized = errors.New("not authenticated")
	// ErrNoSession is returned by operations that need a live engine.
	ErrNoSession = errors.New("no active session")
	// ErrBusy is returned when a login is submitted while another is in flight.
	ErrBusy = errors.New("operation already in progress")
)
