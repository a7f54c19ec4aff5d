package core

import "github.com/cockroachdb/errors"

// Sentinel errors returned by store operations. Callers match them with
// errors.Is; returned errors carry the offending id in their message.
var (
	// ErrNotFound reports an operation addressed to an id with no live
	// entity.
	ErrNotFound = errors.New("entity not found")

	// ErrWrongEntityType reports an operation addressed to an entity of a
	// different type than the accessor implies.
	ErrWrongEntityType = errors.New("wrong entity type")

	// ErrInvalidHost reports an attempt to create a hosted entity whose
	// host id is missing or of an unacceptable type.
	ErrInvalidHost = errors.New("invalid host entity")
)

func entityNotFound(id uint64) error {
	return errors.Wrapf(ErrNotFound, "id %d", id)
}

func wrongEntityType(id uint64, want string) error {
	return errors.Wrapf(ErrWrongEntityType, "id %d is not a %s", id, want)
}

func invalidHost(hostID uint64, want string) error {
	return errors.Wrapf(ErrInvalidHost, "host %d is not a live %s", hostID, want)
}
