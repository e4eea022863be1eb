package server

import "errors"

// ErrNothingToWatch is returned by Watch when both the data file and the
// template are embedded.
var ErrNothingToWatch = errors.New("nothing to watch: no data file or template configured")
