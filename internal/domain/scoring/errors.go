package scoring

import (
	"errors"
	"strings"
)

// ErrMissingInput matches any *MissingInputError via errors.Is.
var ErrMissingInput = errors.New("missing HACOR input")

// MissingInputError names the mandatory components that were not selected.
type MissingInputError struct {
	Components []string // component keys in canonical order
}

func (e *MissingInputError) Error() string {
	return "missing HACOR components: " + strings.Join(e.Components, ", ")
}

// Is makes errors.Is(err, ErrMissingInput) hold.
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// Labels returns the display names of the missing components.
func (e *MissingInputError) Labels() []string {
	out := make([]string, 0, len(e.Components))
	for _, key := range e.Components {
		if c, ok := Lookup(key); ok {
			out = append(out, c.Label)
			continue
		}
		out = append(out, key)
	}
	return out
}
