package manager

import (
	"errors"
	"fmt"
)

// ErrIndexNotFound classifies backend failures caused by operating on an
// index that does not exist. The backend client wraps its 404 responses with
// this sentinel so DropAndCreateIndex can absorb exactly that failure and
// nothing else.
var ErrIndexNotFound = errors.New("index not found")

// ForbiddenError is returned when a mutating operation is attempted while the
// manager is in read-only mode.
type ForbiddenError struct {
	Operation string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("manager is in read only state. %s operation is not permitted", e.Operation)
}

// InvalidOperationError is returned when an unsupported bulk operation name
// is supplied.
type InvalidOperationError struct {
	Operation string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("unknown bulk operation %q: must be one of index, create, update, delete", e.Operation)
}
