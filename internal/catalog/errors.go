package catalog

import "errors"

var (
	// ErrAnchorNotFound means the anchor id does not exist.
	ErrAnchorNotFound = errors.New("anchor not found")

	// ErrDuplicateAnchor means an anchor already exists for the same
	// product/material/size/qty combination.
	ErrDuplicateAnchor = errors.New("anchor already exists for this product/material/size/qty combination")
)
