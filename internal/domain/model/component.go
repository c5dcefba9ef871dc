package model

// Option is one entry of an ordinal component's dropdown.
type Option struct {
	Label  string
	Points int
}

// Component describes an ordinal clinical parameter and the point values it may take.
type Component struct {
	Key     string // stable identifier used in flags, files and errors
	Label   string // display name
	Unit    string // unit of the underlying measurement, may be empty
	Options []Option
}

// Contains reports whether points is one of the component's enumerated values.
func (c Component) Contains(points int) bool {
	for _, o := range c.Options {
		if o.Points == points {
			return true
		}
	}
	return false
}

// Min returns the lowest enumerated point value, or 0 for a component without options.
func (c Component) Min() int {
	if len(c.Options) == 0 {
		return 0
	}
	lowest := c.Options[0].Points
	for _, o := range c.Options[1:] {
		if o.Points < lowest {
			lowest = o.Points
		}
	}
	return lowest
}

// Max returns the highest enumerated point value, or 0 for a component without options.
func (c Component) Max() int {
	if len(c.Options) == 0 {
		return 0
	}
	highest := c.Options[0].Points
	for _, o := range c.Options[1:] {
		if o.Points > highest {
			highest = o.Points
		}
	}
	return highest
}

// OptionFor returns the option carrying points.
func (c Component) OptionFor(points int) (Option, bool) {
	for _, o := range c.Options {
		if o.Points == points {
			return o, true
		}
	}
	return Option{}, false
}
