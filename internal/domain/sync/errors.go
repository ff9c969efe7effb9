package sync

import "errors"

var (
	// ErrUnknownConnector is a configuration error: raised before any I/O.
	ErrUnknownConnector = errors.New("unknown connector")

	// ErrMissingCredential is a configuration error: a required environment
	// variable for the selected connector is absent.
	ErrMissingCredential = errors.New("missing connector credential")

	// ErrParentUnresolved marks a data error: a record references a parent
	// whose external ID never resolved. The record is skipped, not fatal.
	ErrParentUnresolved = errors.New("parent reference unresolved")
)
