// Package form collects a HACOR request through interactive terminal
// prompts. Every dropdown starts at "Not selected", so forgetting a field
// surfaces as a missing component instead of a silent zero.
package form

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/okian/hacor/internal/app"
	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/scoring"
	"github.com/okian/hacor/internal/domain/sofa"
)

// NotSelected is the option value of the empty dropdown entry.
const NotSelected = -1

// How the SOFA sub-score is obtained.
const (
	SOFASkip    = "skip"
	SOFAEnter   = "enter"
	SOFACompute = "compute"
)

// Condition keys offered by the multi-select.
const (
	CondPneumonia         = "pneumonia"
	CondCPE               = "cpe"
	CondARDS              = "ards"
	CondImmunosuppression = "immunosuppression"
	CondSepticShock       = "septic_shock"
)

// Answers are the raw form values.
type Answers struct {
	HACOR      [5]int // point values in scoring.Components() order
	SOFAMode   string
	SOFAText   string
	SOFA       [6]int // point values in sofa.Components() order
	Conditions []string
}

// NewAnswers returns answers with every dropdown unselected.
func NewAnswers() *Answers {
	a := &Answers{SOFAMode: SOFASkip}
	for i := range a.HACOR {
		a.HACOR[i] = NotSelected
	}
	for i := range a.SOFA {
		a.SOFA[i] = NotSelected
	}
	return a
}

// Request maps the answers onto a service request.
func (a *Answers) Request() app.Request {
	sel := func(p int) model.Selection {
		if p == NotSelected {
			return model.Selection{}
		}
		return model.Select(p)
	}

	req := app.Request{
		Input: model.HACORInput{
			HeartRate:       sel(a.HACOR[0]),
			PH:              sel(a.HACOR[1]),
			Glasgow:         sel(a.HACOR[2]),
			PaO2FiO2:        sel(a.HACOR[3]),
			RespiratoryRate: sel(a.HACOR[4]),
		},
	}
	for _, c := range a.Conditions {
		switch c {
		case CondPneumonia:
			req.Input.Conditions.Pneumonia = true
		case CondCPE:
			req.Input.Conditions.CardiogenicPulmonaryEdema = true
		case CondARDS:
			req.Input.Conditions.ARDS = true
		case CondImmunosuppression:
			req.Input.Conditions.Immunosuppression = true
		case CondSepticShock:
			req.Input.Conditions.SepticShock = true
		}
	}

	switch a.SOFAMode {
	case SOFAEnter:
		req.Input.SOFA = scoring.ParseSubScore(a.SOFAText)
	case SOFACompute:
		req.SOFA = &model.SOFAInput{
			Respiration:    sel(a.SOFA[0]),
			Coagulation:    sel(a.SOFA[1]),
			Liver:          sel(a.SOFA[2]),
			Cardiovascular: sel(a.SOFA[3]),
			CNS:            sel(a.SOFA[4]),
			Renal:          sel(a.SOFA[5]),
		}
	}
	return req
}

// Build assembles the form around a. Groups for the SOFA value and the SOFA
// components are shown only for the matching mode.
func Build(a *Answers, in io.Reader, out io.Writer) *huh.Form {
	hacor := scoring.Components()
	hacorFields := make([]huh.Field, len(hacor))
	for i, c := range hacor {
		hacorFields[i] = dropdown(c, &a.HACOR[i])
	}

	organs := sofa.Components()
	organFields := make([]huh.Field, len(organs))
	for i, c := range organs {
		organFields[i] = dropdown(c, &a.SOFA[i])
	}

	form := huh.NewForm(
		huh.NewGroup(hacorFields...).
			Title("Original HACOR"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("SOFA sub-score").
				Options(
					huh.NewOption("Skip (counts as 0)", SOFASkip),
					huh.NewOption("Enter a value", SOFAEnter),
					huh.NewOption("Compute from components", SOFACompute),
				).
				Value(&a.SOFAMode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("SOFA value").
				Description("0 to 24; values outside the range are clamped").
				Placeholder("0").
				Value(&a.SOFAText).
				Validate(validateSubScore),
		).WithHideFunc(func() bool { return a.SOFAMode != SOFAEnter }),
		huh.NewGroup(organFields...).
			Title("SOFA components").
			WithHideFunc(func() bool { return a.SOFAMode != SOFACompute }),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Baseline conditions").
				Options(
					huh.NewOption("Pneumonia (+2.5)", CondPneumonia),
					huh.NewOption("Cardiogenic pulmonary edema (−4)", CondCPE),
					huh.NewOption("ARDS (+3)", CondARDS),
					huh.NewOption("Immunosuppression (+1.5)", CondImmunosuppression),
					huh.NewOption("Septic shock (+2.5)", CondSepticShock),
				).
				Value(&a.Conditions),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}
	return form
}

// Run prompts for every field and returns the resulting request.
func Run(ctx context.Context, in io.Reader, out io.Writer) (app.Request, error) {
	a := NewAnswers()
	if err := Build(a, in, out).RunWithContext(ctx); err != nil {
		return app.Request{}, fmt.Errorf("form failed: %w", err)
	}
	return a.Request(), nil
}

func dropdown(c model.Component, v *int) *huh.Select[int] {
	opts := make([]huh.Option[int], 0, len(c.Options)+1)
	opts = append(opts, huh.NewOption("Not selected", NotSelected))
	for _, o := range c.Options {
		opts = append(opts, huh.NewOption(optionLabel(o), o.Points))
	}
	title := c.Label
	if c.Unit != "" {
		title += " (" + c.Unit + ")"
	}
	return huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(v)
}

func optionLabel(o model.Option) string {
	return o.Label + "  [" + strconv.Itoa(o.Points) + "]"
}

func validateSubScore(s string) error {
	if !scoring.ValidSubScoreText(s) {
		return fmt.Errorf("enter a number")
	}
	return nil
}
