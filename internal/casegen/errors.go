package casegen

import "errors"

// ErrUnknownProfile is returned by ParseProfile.
var ErrUnknownProfile = errors.New("unknown case profile")
