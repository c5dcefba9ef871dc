package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/hacor/internal/adapters/casefile"
	"github.com/okian/hacor/internal/casegen"
	"github.com/okian/hacor/pkg/logger"
	"github.com/okian/hacor/pkg/metrics"
)

func newBatchCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Score every case of a YAML or JSON case file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				doc casefile.Document
				err error
			)
			if args[0] == "-" {
				doc, err = casefile.Decode(st.in)
			} else {
				doc, err = casefile.Load(ctx, args[0])
			}
			if err != nil {
				metrics.RecordErrorByComponent("casefile", "decode")
				return exitError(ExitInput, "failed to load cases: %v", err)
			}

			results, err := st.svc.AssessBatch(ctx, doc.Requests())
			if err != nil {
				return err
			}
			return st.renderer.Batch(st.out, results)
		},
	}
}

type generateFlags struct {
	count      int
	seed       uint64
	profile    string
	incomplete float64
	out        string
}

func newGenerateCmd(st *state) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic case file for the batch command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			profile, err := casegen.ParseProfile(f.profile)
			if err != nil {
				return exitError(ExitInput, "%v", err)
			}

			doc, err := casegen.New(
				casegen.WithCount(f.count),
				casegen.WithSeed(f.seed),
				casegen.WithProfile(profile),
				casegen.WithIncompleteFraction(f.incomplete),
				casegen.WithLogger(logger.Named("casegen")),
			).Generate(ctx)
			if err != nil {
				return err
			}

			var w io.Writer = st.out
			if f.out != "" {
				file, err := os.Create(f.out)
				if err != nil {
					return fmt.Errorf("create %s: %w", f.out, err)
				}
				defer func() { _ = file.Close() }()
				w = file
			}
			return casefile.Encode(w, doc)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.count, "count", 10, "Number of cases")
	flags.Uint64Var(&f.seed, "seed", 1, "Random seed; equal seeds give equal files")
	flags.StringVar(&f.profile, "profile", string(casegen.ProfileMixed), "Severity profile: stable, deteriorating, critical or mixed")
	flags.Float64Var(&f.incomplete, "incomplete", 0, "Share of cases missing one HACOR component (0-1)")
	flags.StringVar(&f.out, "out", "", "Output file (default: stdout)")
	return cmd
}
