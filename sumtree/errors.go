package sumtree

import "errors"

// ErrInvalidConfig signals an invalid tree configuration.
var ErrInvalidConfig = errors.New("sumtree: invalid configuration")
