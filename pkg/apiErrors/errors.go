package apiErrors

import "errors"

var ErrNotFound = errors.New("approval not found")

var ErrInvalidID = errors.New("approval id must be an integer")

var ErrInvalidBody = errors.New("request body is not a valid approval")

var ErrUnknownStoreDriver = errors.New("unknown store driver")
