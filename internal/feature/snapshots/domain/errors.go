// Package domain defines domain-level errors for the snapshots feature.
package domain

import "errors"

// Domain errors for snapshot ingestion.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrMissingSymbol indicates that no symbol-bearing field (and no ticket to
	// derive one from) could be found in an inbound payload. This is the only
	// fatal normalization failure; any other malformed field degrades to its
	// documented default instead.
	ErrMissingSymbol = errors.New("missing symbol")
)
