package app

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	ErrPointsNotInCatalog = errors.New("points not in catalog")
	ErrEmptyBatch         = errors.New("batch has no cases")
)

// PointsError reports a selection whose point value is not offered by its
// component's dropdown.
type PointsError struct {
	Component string // component key
	Points    int
}

func (e *PointsError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Component, e.Points, ErrPointsNotInCatalog)
}

func (e *PointsError) Unwrap() error { return ErrPointsNotInCatalog }
