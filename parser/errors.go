package parser

import "errors"

// ErrMalformedSnapshot signals a snapshot whose overall structure can not be interpreted
var ErrMalformedSnapshot = errors.New("malformed snapshot")

var (
	errEmptyUser         = errors.New("empty user name")
	errNotAnObject       = errors.New("user entry is not an object")
	errMissingCounter    = errors.New("missing counter")
	errNonNumericCounter = errors.New("non-numeric counter")
	errInvalidCounter    = errors.New("negative or fractional counter")
)
