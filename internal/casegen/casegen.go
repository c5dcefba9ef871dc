// Package casegen produces synthetic, reproducible HACOR case files for
// demos and load runs of the batch command.
package casegen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/okian/hacor/internal/adapters/casefile"
	"github.com/okian/hacor/internal/app"
	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/scoring"
	"github.com/okian/hacor/internal/domain/sofa"
	"github.com/okian/hacor/pkg/logger"
)

// Profile shapes how sick the generated patients are.
type Profile string

// Known profiles.
const (
	ProfileStable        Profile = "stable"
	ProfileDeteriorating Profile = "deteriorating"
	ProfileCritical      Profile = "critical"
	ProfileMixed         Profile = "mixed"
)

// Profiles lists the accepted profile names.
func Profiles() []Profile {
	return []Profile{ProfileStable, ProfileDeteriorating, ProfileCritical, ProfileMixed}
}

// ParseProfile resolves a profile name, case-insensitively.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Profiles() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProfile, s)
}

// severity is the slice of each dropdown a profile draws from, as fractions
// of the option list, plus the chance of each condition flag.
type severity struct {
	lo, hi    float64
	condition float64
}

var severities = map[Profile]severity{
	ProfileStable:        {lo: 0, hi: 0.45, condition: 0.08},
	ProfileDeteriorating: {lo: 0.25, hi: 0.8, condition: 0.25},
	ProfileCritical:      {lo: 0.55, hi: 1, condition: 0.5},
}

// Generator draws cases from the component catalogs.
type Generator struct {
	count      int
	seed       uint64
	profile    Profile
	incomplete float64
	logger     logger.Logger
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithCount sets the number of cases.
func WithCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.count = n
		}
	}
}

// WithSeed fixes the random source. Equal seeds give equal documents.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithProfile selects the severity profile.
func WithProfile(p Profile) Option {
	return func(g *Generator) {
		if _, ok := severities[p]; ok || p == ProfileMixed {
			g.profile = p
		}
	}
}

// WithIncompleteFraction sets the share of cases missing one HACOR component.
func WithIncompleteFraction(f float64) Option {
	return func(g *Generator) {
		if f >= 0 && f <= 1 {
			g.incomplete = f
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New constructs a Generator. Defaults: 10 mixed cases, seed 1, all complete.
func New(opts ...Option) *Generator {
	g := &Generator{
		count:   10,
		seed:    1,
		profile: ProfileMixed,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logger.Named("casegen")
	}
	return g
}

// Generate builds the document. Ids are "case-0001", "case-0002", ...
func (g *Generator) Generate(ctx context.Context) (casefile.Document, error) {
	r := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	doc := casefile.Document{Cases: make([]casefile.Case, 0, g.count)}

	mixed := []Profile{ProfileStable, ProfileDeteriorating, ProfileCritical}
	for i := range g.count {
		if err := ctx.Err(); err != nil {
			return casefile.Document{}, fmt.Errorf("case generation interrupted: %w", err)
		}
		p := g.profile
		if p == ProfileMixed {
			p = mixed[r.IntN(len(mixed))]
		}
		req := g.request(r, severities[p])
		doc.Cases = append(doc.Cases, casefile.FromRequest(fmt.Sprintf("case-%04d", i+1), req))
	}

	g.logger.Info(ctx, "generated cases",
		logger.Int("count", len(doc.Cases)),
		logger.String("profile", string(g.profile)),
	)
	return doc, nil
}

func (g *Generator) request(r *rand.Rand, sev severity) app.Request {
	hacor := scoring.Components()
	var sel [5]model.Selection
	for i, c := range hacor {
		sel[i] = model.Select(pick(r, c, sev))
	}
	if g.incomplete > 0 && r.Float64() < g.incomplete {
		sel[r.IntN(len(sel))] = model.Selection{}
	}

	req := app.Request{
		Input: model.HACORInput{
			HeartRate:       sel[0],
			PH:              sel[1],
			Glasgow:         sel[2],
			PaO2FiO2:        sel[3],
			RespiratoryRate: sel[4],
			Conditions: model.Conditions{
				Pneumonia:                 r.Float64() < sev.condition,
				CardiogenicPulmonaryEdema: r.Float64() < sev.condition/2,
				ARDS:                      r.Float64() < sev.condition,
				Immunosuppression:         r.Float64() < sev.condition,
				SepticShock:               r.Float64() < sev.condition/2,
			},
		},
	}

	// Half the cases carry the organ breakdown, the rest a typed-in value.
	organs := sofa.Components()
	if r.IntN(2) == 0 {
		var s [6]model.Selection
		for i, c := range organs {
			s[i] = model.Select(pick(r, c, sev))
		}
		req.SOFA = &model.SOFAInput{
			Respiration:    s[0],
			Coagulation:    s[1],
			Liver:          s[2],
			Cardiovascular: s[3],
			CNS:            s[4],
			Renal:          s[5],
		}
	} else {
		total := 0
		for _, c := range organs {
			total += pick(r, c, sev)
		}
		req.Input.SOFA = float64(total)
	}
	return req
}

// pick draws an option from the profile's slice of the component's list.
func pick(r *rand.Rand, c model.Component, sev severity) int {
	n := len(c.Options)
	lo := int(sev.lo * float64(n))
	hi := int(sev.hi * float64(n))
	if hi > n {
		hi = n
	}
	if hi <= lo {
		hi = lo + 1
	}
	return c.Options[lo+r.IntN(hi-lo)].Points
}
