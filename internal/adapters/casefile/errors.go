package casefile

import "errors"

// Sentinel error kinds for this package.
var (
	ErrDecode        = errors.New("decode case file")
	ErrDuplicateCase = errors.New("duplicate case id")
)
