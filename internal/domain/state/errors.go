package state

import "errors"

var ErrNotFound = errors.New("state key not found")
