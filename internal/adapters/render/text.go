package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/okian/hacor/internal/app"
	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/risk"
	"github.com/okian/hacor/internal/domain/sofa"
)

// Text renders for terminals. Columns are aligned by display width, so
// labels like "PaO₂/FiO₂" and "≤120" line up.
type Text struct{}

const labelWidth = 24

// Assessment prints the score, its tier and the non-zero contributions.
func (Text) Assessment(w io.Writer, a model.Assessment) error {
	b := a.Breakdown
	var sb strings.Builder
	row(&sb, "Updated HACOR score", score(a.Score))
	row(&sb, "Risk", a.Tier.String())
	sb.WriteString("\n")
	row(&sb, "Original HACOR", strconv.Itoa(b.Base))
	row(&sb, "SOFA "+num(b.SOFA)+" × 0.5", signed(b.SOFAPoints))
	for _, c := range []struct {
		label string
		v     float64
	}{
		{"Pneumonia", b.Pneumonia},
		{"Cardiogenic pulmonary edema", b.CardiogenicPulmonaryEdema},
		{"ARDS", b.ARDS},
		{"Immunosuppression", b.Immunosuppression},
		{"Septic shock", b.SepticShock},
	} {
		if c.v != 0 {
			row(&sb, c.label, signed(c.v))
		}
	}
	return write(w, sb.String())
}

// SubScore prints a SOFA sum.
func (Text) SubScore(w io.Writer, v int) error {
	return write(w, fmt.Sprintf("SOFA sub-score %d / %d\n", v, sofa.MaxScore))
}

// Classification prints a score with its tier.
func (Text) Classification(w io.Writer, s float64, t risk.Tier) error {
	return write(w, score(s)+" • "+t.Label+" • "+t.Rate+" NIV Failure Rate\n")
}

// Tiers prints the tier table with score ranges.
func (Text) Tiers(w io.Writer, tiers []risk.Tier) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s  %s\n", padRight("Tier", 16), padRight("Score", 14), "NIV failure") //nolint:errcheck
	lower := ""
	for _, t := range tiers {
		var rng string
		switch {
		case lower == "":
			rng = "≤ " + num(t.UpperBound)
		case t.Bounded():
			rng = "> " + lower + ", ≤ " + num(t.UpperBound)
		default:
			rng = "> " + lower
		}
		fmt.Fprintf(&sb, "%s  %s  %s\n", padRight(t.Label, 16), padRight(rng, 14), t.Rate) //nolint:errcheck
		lower = num(t.UpperBound)
	}
	return write(w, sb.String())
}

// Components prints both catalogs.
func (Text) Components(w io.Writer, hacor, organs []model.Component) error {
	var sb strings.Builder
	sb.WriteString("HACOR components\n")
	catalog(&sb, hacor)
	sb.WriteString("\nSOFA components\n")
	catalog(&sb, organs)
	return write(w, sb.String())
}

// Batch prints one line per case and a summary.
func (Text) Batch(w io.Writer, results []app.CaseResult) error {
	idWidth := len("Case")
	for _, r := range results {
		idWidth = max(idWidth, runewidth.StringWidth(r.ID))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s  %s\n", padRight("Case", idWidth), padRight("Score", 6), "Risk") //nolint:errcheck
	sb.WriteString(strings.Repeat("─", idWidth+2+6+2+len("Risk")) + "\n")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&sb, "%s  %s  error: %v\n", padRight(r.ID, idWidth), padRight("-", 6), r.Err) //nolint:errcheck
			continue
		}
		a := r.Assessment
		fmt.Fprintf(&sb, "%s  %s  %s\n", padRight(r.ID, idWidth), padRight(score(a.Score), 6), a.Tier.String()) //nolint:errcheck
	}
	sum := app.Summarize(results)
	fmt.Fprintf(&sb, "\n%d scored, %d failed\n", sum.Scored, sum.Failed) //nolint:errcheck
	return write(w, sb.String())
}

func catalog(sb *strings.Builder, cs []model.Component) {
	for _, c := range cs {
		title := c.Label
		if c.Unit != "" {
			title += " (" + c.Unit + ")"
		}
		sb.WriteString("  " + title + "  [" + c.Key + "]\n")
		for _, o := range c.Options {
			sb.WriteString("    " + padRight(o.Label, labelWidth+6) + strconv.Itoa(o.Points) + "\n")
		}
	}
}

func row(sb *strings.Builder, label, value string) {
	sb.WriteString(padRight(label, labelWidth+4) + value + "\n")
}

func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func score(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func signed(v float64) string {
	if v >= 0 {
		return "+" + score(v)
	}
	return score(v)
}

func write(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
