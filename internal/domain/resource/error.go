package resource

import (
	"errors"
)

var (
	// ErrNotFound is returned for ids that are not present in a collection.
	// Deletes share this policy: removing an unknown id is an error, not a
	// silent success, symmetric with update.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned when a create or update would leave a
	// required field absent or blank.
	ErrValidation = errors.New("invalid record data")

	// ErrUnknownResource is returned for resource names the registry does
	// not know.
	ErrUnknownResource = errors.New("unknown resource")
)
