package metrics

import "errors"

var errNilState = errors.New("nil metrics state")
