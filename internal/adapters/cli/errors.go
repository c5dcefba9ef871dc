package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/hacor/internal/app"
	"github.com/okian/hacor/internal/domain/scoring"
	"github.com/okian/hacor/internal/domain/sofa"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitInput   = 2
)

// MissingInputMessage is printed when the original HACOR components are
// incomplete or carry values the dropdowns do not offer.
const MissingInputMessage = "Please fill in all the original HACOR components (Heart Rate, pH, Glasgow, PaO₂/FiO₂, and Respiratory Rate)."

// SOFAInputMessage is printed when a SOFA component carries a value its
// dropdown does not offer.
const SOFAInputMessage = "Please choose one of the listed values for each SOFA component."

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// describe maps an error to its exit code and the text shown to the user.
func describe(err error) (int, string) {
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code, ee.msg
	}

	var missing *scoring.MissingInputError
	if errors.As(err, &missing) {
		return ExitInput, MissingInputMessage + "\nMissing: " + strings.Join(missing.Labels(), ", ")
	}

	var pe *app.PointsError
	if errors.As(err, &pe) {
		msg, label := MissingInputMessage, pe.Component
		if c, ok := scoring.Lookup(pe.Component); ok {
			label = c.Label
		} else if c, ok := sofa.Lookup(pe.Component); ok {
			msg, label = SOFAInputMessage, c.Label
		}
		return ExitInput, fmt.Sprintf("%s\n%s: %d is not one of the offered values (see `hacor components`)", msg, label, pe.Points)
	}

	if errors.Is(err, app.ErrEmptyBatch) {
		return ExitInput, err.Error()
	}

	return ExitFailure, err.Error()
}
