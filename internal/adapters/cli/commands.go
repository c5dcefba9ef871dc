package cli

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/hacor/internal/domain/risk"
	"github.com/okian/hacor/internal/domain/scoring"
	"github.com/okian/hacor/internal/domain/sofa"
)

func newSofaCmd(st *state) *cobra.Command {
	var v [6]int
	cmd := &cobra.Command{
		Use:     "sofa",
		Short:   "Sum the six SOFA components",
		Example: "  hacor sofa --respiration 0 --coagulation 1 --liver 2 --cardiovascular 1 --cns 0 --renal 1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, _ := sofaInput(cmd, "", v)
			return st.renderer.SubScore(st.out, st.svc.SubScore(cmd.Context(), in))
		},
	}
	registerSofaFlags(cmd, "", &v, "")
	return cmd
}

func newClassifyCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "classify SCORE",
		Short: "Map a score to its risk tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
			if err != nil || math.IsNaN(score) {
				return exitError(ExitInput, "invalid score %q: expected a number", args[0])
			}
			// Scores are classified at the precision they are reported.
			score = scoring.Round1(score)
			return st.renderer.Classification(st.out, score, st.svc.Classify(cmd.Context(), score))
		},
	}
}

func newComponentsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the HACOR and SOFA dropdowns with their point values",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return st.renderer.Components(st.out, scoring.Components(), sofa.Components())
		},
	}
}

func newTiersCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "List the risk tiers and their NIV failure rates",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return st.renderer.Tiers(st.out, risk.Tiers())
		},
	}
}
