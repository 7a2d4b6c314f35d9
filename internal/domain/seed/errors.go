package seed

import "errors"

// Sentinel kinds for seed errors.
var (
	ErrLoadSeed    = errors.New("load seed failed")
	ErrInvalidSeed = errors.New("invalid seed")
)
