// Package services defines the business logic over compliance alerts:
// the acknowledgment lifecycle, list/stats queries, and the manual
// generation trigger. This file centralizes service-level error values so
// they can be consistently returned by service methods and mapped to HTTP
// results at the handler layer.
package services

import "errors"

var (
	// ErrAlertNotFound indicates that the requested alert does not exist.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrInvalidTransition is returned when a lifecycle action is requested
	// from an incompatible status (e.g. dismissing a completed alert). This
	// is an expected rejection, not a system error.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrGenerationRunning is returned by the manual trigger when a
	// generation run is already in flight; the trigger is coalesced, not
	// queued.
	ErrGenerationRunning = errors.New("generation already running")
)
