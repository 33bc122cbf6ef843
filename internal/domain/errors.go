package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidItems is returned when an items payload is not a JSON array of items
	ErrInvalidItems = errors.New("invalid items payload")

	// ErrCatalogUnavailable is returned when a catalog search or cart request fails.
	// The wrap message carries the catalog id and the failing operation.
	ErrCatalogUnavailable = errors.New("catalog request failed")

	// ErrUnresolvedMatches is returned when a cart mutation is attempted while
	// one or more items are still unresolved
	ErrUnresolvedMatches = errors.New("unresolved matches remain")

	// ErrConfirmationRequired is returned when a mutating cart action is
	// requested without explicit confirmation
	ErrConfirmationRequired = errors.New("cart mutation requires confirmation")
)
