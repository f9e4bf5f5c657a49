package repository

import "errors"

var (
	// ErrDocumentNotFound is returned by writes that target a missing document
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDuplicateNumber is returned when a document number is already used by its kind
	ErrDuplicateNumber = errors.New("document number already exists")
	// ErrProductNotFound is returned by writes that target a missing product
	ErrProductNotFound = errors.New("product not found")
)
