// Package model contains domain models passed between layers.
package model

import "strconv"

// Selection is the value of a dropdown. The zero value means nothing was chosen.
type Selection struct {
	points int
	set    bool
}

// Select returns a Selection holding points.
func Select(points int) Selection {
	return Selection{points: points, set: true}
}

// FromPtr converts an optional point value, as decoded from files or flags,
// into a Selection. nil stays unselected.
func FromPtr(points *int) Selection {
	if points == nil {
		return Selection{}
	}
	return Select(*points)
}

// Points reports the chosen point value and whether a choice was made.
func (s Selection) Points() (int, bool) {
	return s.points, s.set
}

// IsSet reports whether a choice was made.
func (s Selection) IsSet() bool { return s.set }

// Or returns the chosen points, or def when nothing was selected.
func (s Selection) Or(def int) int {
	if !s.set {
		return def
	}
	return s.points
}

// Ptr is the inverse of FromPtr.
func (s Selection) Ptr() *int {
	if !s.set {
		return nil
	}
	p := s.points
	return &p
}

func (s Selection) String() string {
	if !s.set {
		return "unselected"
	}
	return strconv.Itoa(s.points)
}
