package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/hacor/internal/adapters/form"
	"github.com/okian/hacor/internal/app"
	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/scoring"
	"github.com/okian/hacor/internal/domain/sofa"
)

// Flag names of the HACOR components. Values are point values, not
// measurements; `hacor components` lists them.
var hacorFlags = [5]struct{ name, key string }{
	{"heart-rate", scoring.KeyHeartRate},
	{"ph", scoring.KeyPH},
	{"glasgow", scoring.KeyGlasgow},
	{"pao2-fio2", scoring.KeyPaO2FiO2},
	{"rr", scoring.KeyRespiratoryRate},
}

const sofaFlagPrefix = "sofa-"

var sofaFlags = [6]string{
	sofa.KeyRespiration,
	sofa.KeyCoagulation,
	sofa.KeyLiver,
	sofa.KeyCardiovascular,
	sofa.KeyCNS,
	sofa.KeyRenal,
}

type assessFlags struct {
	hacor       [5]int
	sofaText    string
	sofa        [6]int
	conditions  model.Conditions
	interactive bool
}

func newAssessCmd(st *state) *cobra.Command {
	f := &assessFlags{}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Compute the Updated HACOR score and its risk tier",
		Example: `  hacor assess --heart-rate 0 --ph 2 --glasgow 0 --pao2-fio2 2 --rr 1 --sofa 6 --pneumonia --ards
  hacor assess --heart-rate 1 --ph 0 --glasgow 2 --pao2-fio2 3 --rr 0 --sofa-liver 2 --sofa-renal 1
  hacor assess -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var req app.Request
			if f.interactive {
				r, err := form.Run(ctx, st.in, st.errOut)
				if err != nil {
					return err
				}
				req = r
			} else {
				req = f.request(cmd)
			}

			a, err := st.svc.Assess(ctx, req)
			if err != nil {
				return err
			}
			return st.renderer.Assessment(st.out, a)
		},
	}

	flags := cmd.Flags()
	for i, hf := range hacorFlags {
		c, _ := scoring.Lookup(hf.key)
		flags.IntVar(&f.hacor[i], hf.name, 0, c.Label+" points")
	}
	flags.StringVar(&f.sofaText, "sofa", "", "SOFA sub-score 0-24 (non-numeric counts as 0)")
	registerSofaFlags(cmd, sofaFlagPrefix, &f.sofa, " (replaces --sofa)")
	flags.BoolVar(&f.conditions.Pneumonia, "pneumonia", false, "Pneumonia (+2.5)")
	flags.BoolVar(&f.conditions.CardiogenicPulmonaryEdema, "cpe", false, "Cardiogenic pulmonary edema (-4)")
	flags.BoolVar(&f.conditions.ARDS, "ards", false, "ARDS (+3)")
	flags.BoolVar(&f.conditions.Immunosuppression, "immunosuppression", false, "Immunosuppression (+1.5)")
	flags.BoolVar(&f.conditions.SepticShock, "septic-shock", false, "Septic shock (+2.5)")
	flags.BoolVarP(&f.interactive, "interactive", "i", false, "Prompt for every field")

	return cmd
}

// request builds the service request. Flags that were not given stay
// unselected; any --sofa-* flag switches SOFA to the component sum.
func (f *assessFlags) request(cmd *cobra.Command) app.Request {
	flags := cmd.Flags()
	sel := func(name string, v int) model.Selection {
		if !flags.Changed(name) {
			return model.Selection{}
		}
		return model.Select(v)
	}

	req := app.Request{
		Input: model.HACORInput{
			HeartRate:       sel(hacorFlags[0].name, f.hacor[0]),
			PH:              sel(hacorFlags[1].name, f.hacor[1]),
			Glasgow:         sel(hacorFlags[2].name, f.hacor[2]),
			PaO2FiO2:        sel(hacorFlags[3].name, f.hacor[3]),
			RespiratoryRate: sel(hacorFlags[4].name, f.hacor[4]),
			SOFA:            scoring.ParseSubScore(f.sofaText),
			Conditions:      f.conditions,
		},
	}
	if s, ok := sofaInput(cmd, sofaFlagPrefix, f.sofa); ok {
		req.SOFA = &s
	}
	return req
}

func registerSofaFlags(cmd *cobra.Command, prefix string, dst *[6]int, suffix string) {
	organs := sofa.Components()
	for i, name := range sofaFlags {
		cmd.Flags().IntVar(&dst[i], prefix+name, 0, organs[i].Label+" points"+suffix)
	}
}

// sofaInput reports false when no SOFA component flag was given.
func sofaInput(cmd *cobra.Command, prefix string, v [6]int) (model.SOFAInput, bool) {
	var s [6]model.Selection
	given := false
	for i, name := range sofaFlags {
		if cmd.Flags().Changed(prefix + name) {
			s[i] = model.Select(v[i])
			given = true
		}
	}
	return model.SOFAInput{
		Respiration:    s[0],
		Coagulation:    s[1],
		Liver:          s[2],
		Cardiovascular: s[3],
		CNS:            s[4],
		Renal:          s[5],
	}, given
}
