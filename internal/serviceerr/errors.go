package serviceerr

import "errors"

var ErrNotFound = errors.New("not found")
var ErrDuplicate = errors.New("already in favorites")
var ErrCapacity = errors.New("favorites limit reached")
var ErrValidation = errors.New("invalid input")
