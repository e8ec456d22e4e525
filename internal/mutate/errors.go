package mutate

import (
	"errors"
	"fmt"
)

var ErrMergeTooFew = errors.New("merge requires at least two statements")
var ErrSplitSelection = errors.New("split requires exactly one statement")
var ErrNoSplit = errors.New("no split possible")

type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("statement not found: %s", e.ID)
}
