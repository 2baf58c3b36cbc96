package extract

import "errors"

// ErrInvalidEncoding is returned when page content is not valid UTF-8.
// The page yields zero links but still counts as visited.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")
