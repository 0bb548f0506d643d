package dataset

import "errors"

var (
	ErrOptionRequired    = errors.New("option required")
	ErrDriverUnsupported = errors.New("driver not supported")
	ErrTableNotLoaded    = errors.New("table not loaded")
	ErrEmptyResult       = errors.New("query returned no columns")
	ErrNotConnected      = errors.New("client not connected")
)
