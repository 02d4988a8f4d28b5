package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a row does not exist or is not visible to the
// requesting user.
var ErrNotFound = errors.New("not found")

// DuplicateTopicError signals that the user already has an active path for
// the topic. ExistingID lets the caller offer the saved copy instead.
type DuplicateTopicError struct {
	Topic      string
	ExistingID uuid.UUID
}

func (e *DuplicateTopicError) Error() string {
	return fmt.Sprintf("a path for topic %q already exists (id %s)", e.Topic, e.ExistingID)
}
