package domain

import "errors"

// Error kinds shared by all services. Controllers map these to HTTP
// statuses; services wrap them with context using fmt.Errorf and %w.
var (
	// ErrNotFound indicates an entity or slug lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied indicates the requester does not own the entity.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation indicates a business-rule validation failure.
	ErrValidation = errors.New("validation failed")
)
