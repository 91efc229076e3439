// Package generator synthesizes ranked lead batches for the 3D in-vitro
// models sales vertical. Identities are drawn from fixed enumeration pools,
// scored by the scoring engine, and optionally verified against Hunter.io.
package generator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/akash-eu-prime/leadgen-cli/internal/model"
	"github.com/akash-eu-prime/leadgen-cli/internal/scoring"
	"github.com/akash-eu-prime/leadgen-cli/pkg/hunter"
)

// Tables holds the enumeration pools the generator draws identities from.
type Tables struct {
	FirstNames      []string
	LastNames       []string
	Roles           []string
	Companies       []string
	Hubs            []string
	RemoteLocations []string
	FundingRounds   []string
	TechTags        []string
}

// DefaultTables returns the built-in identity pools.
func DefaultTables() Tables {
	return Tables{
		FirstNames: []string{
			"Alex", "Jordan", "Taylor", "Morgan", "Casey",
			"Riley", "Drew", "Quinn", "Blake", "Hayden",
		},
		LastNames: []string{
			"Smith", "Johnson", "Williams", "Brown", "Jones",
			"Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
		},
		Roles: []string{
			"Director of Toxicology",
			"Head of Preclinical Safety",
			"Senior Scientist - Hepatic Models",
			"Principal Investigator - 3D Cell Culture",
			"VP Drug Discovery",
			"Research Lead - In Vitro Models",
			"Toxicology Manager",
			"Senior Director of Safety Assessment",
			"Lab Head - Organ-on-Chip",
			"Associate Director - DILI",
		},
		Companies: []string{
			"Biogen", "Moderna", "Novartis", "Pfizer", "Johnson & Johnson",
			"Merck", "GSK", "Roche", "Sanofi", "AstraZeneca",
			"Vertex Pharmaceuticals", "Regeneron", "Bristol Myers Squibb",
			"Genentech", "Amgen", "Biocoat", "Emulate Inc", "CN Bio",
			"Mimetas", "TissUse",
		},
		Hubs: []string{
			"Boston", "Bay Area", "Basel", "UK Triangle", "Cambridge MA",
			"San Diego", "Research Triangle Park", "Seattle", "New York",
		},
		RemoteLocations: []string{
			"Remote Colorado", "Remote Oregon", "Remote Florida", "Remote Texas",
		},
		FundingRounds: []string{"Series A", "Series B", "Series C", "Seed", "None"},
		TechTags: []string{
			"in-vitro models", "NAMs", "Organ-on-chip", "Hepatic spheroids",
		},
	}
}

// EmailVerifier verifies a synthesized email address. *hunter.Client
// satisfies it.
type EmailVerifier interface {
	VerifyEmail(ctx context.Context, email string) (*hunter.Verification, error)
	Enabled() bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithVerifier attaches an email verifier. Roughly 30% of generated leads
// are verified through it.
func WithVerifier(v EmailVerifier) Option {
	return func(g *Generator) {
		g.verifier = v
	}
}

// WithRand sets the random source, so callers can pin a seed.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// Generator produces scored, ranked lead batches.
type Generator struct {
	tables   Tables
	weights  scoring.Weights
	engine   *scoring.Engine
	verifier EmailVerifier
	rng      *rand.Rand
}

// New creates a Generator. A nil rng option gets a time-seeded source.
func New(tables Tables, weights scoring.Weights, engine *scoring.Engine, opts ...Option) *Generator {
	g := &Generator{
		tables:  tables,
		weights: weights,
		engine:  engine,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate synthesizes n leads, scores them, and returns the collection
// ranked descending by total score. Verification failures are logged and
// the lead keeps its synthetic contact defaults.
func (g *Generator) Generate(ctx context.Context, n int) (model.LeadCollection, error) {
	leads := make([]model.Lead, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return model.LeadCollection{}, err
		}
		lead := g.synthesize(i + 1)

		// Verify roughly 30% of leads when a verifier is attached.
		if g.verifier != nil && g.verifier.Enabled() && g.rng.Float64() > 0.7 {
			g.verify(ctx, &lead)
		}

		g.score(&lead)
		leads = append(leads, lead)
	}

	return model.NewCollection(leads).Ranked(), nil
}

// synthesize builds one unscored lead from the identity pools.
func (g *Generator) synthesize(id int) model.Lead {
	first := g.pick(g.tables.FirstNames)
	last := g.pick(g.tables.LastNames)
	company := g.pick(g.tables.Companies)
	domain := companyDomain(company)

	// Person location leans toward hubs, two to one.
	location := g.pick(g.tables.Hubs)
	if g.rng.Float64() > 0.66 {
		location = g.pick(g.tables.RemoteLocations)
	}

	return model.Lead{
		ID:              id,
		Name:            first + " " + last,
		Title:           g.pick(g.tables.Roles),
		Company:         company,
		Email:           g.email(first, last, domain),
		EmailConfidence: 50 + g.rng.Intn(51),
		Phone: fmt.Sprintf("+1-%d-%d-%d",
			200+g.rng.Intn(800), 200+g.rng.Intn(800), 1000+g.rng.Intn(9000)),
		LinkedIn: fmt.Sprintf("https://linkedin.com/in/%s-%s-%d",
			strings.ToLower(first), strings.ToLower(last), 100+g.rng.Intn(900)),
		PersonLocation: location,
		CompanyHQ:      g.pick(g.tables.Hubs),
		RecentPaper:    g.rng.Float64() > 0.5,
		FundingRound:   g.pick(g.tables.FundingRounds),
		UsesTech:       g.pick(g.tables.TechTags),
		LastActivity: time.Now().
			AddDate(0, 0, -(1 + g.rng.Intn(365))).
			Format("2006-01-02"),
		DataSource: "synthetic",
	}
}

// verify runs the email through the verifier and folds the result into the
// lead. Errors never fail the batch.
func (g *Generator) verify(ctx context.Context, lead *model.Lead) {
	v, err := g.verifier.VerifyEmail(ctx, lead.Email)
	if err != nil {
		zap.L().Warn("generator: email verification failed",
			zap.Int("lead_id", lead.ID),
			zap.Error(err),
		)
		return
	}
	lead.EmailVerified = v.IsValid
	lead.EmailConfidence = v.Score
	if !v.Synthetic {
		lead.DataSource = "synthetic + hunter.io"
	}
	lead.EnrichmentData = map[string]any{
		"hunter_status": v.Status,
		"hunter_result": v.Result,
	}
}

// score runs the five component scorers and derives the total.
func (g *Generator) score(lead *model.Lead) {
	scores := g.engine.Score(lead.Title, lead.Company, lead.PersonLocation, lead.RecentPaper)

	lead.RoleFitScore = scores[scoring.RoleFit]
	lead.CompanyIntentScore = scores[scoring.CompanyIntent]
	lead.TechnographicScore = scores[scoring.Technographic]
	lead.LocationScore = scores[scoring.Location]
	lead.ScientificIntentScore = scores[scoring.ScientificIntent]

	lead.TotalScore = scoring.Total(g.weights, scores)
	lead.Probability = int(math.Round(lead.TotalScore))
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// email draws one of the four address shapes: dot-separated,
// first-initial+last, first+last-initial, or underscore-separated.
func (g *Generator) email(first, last, domain string) string {
	f, l := strings.ToLower(first), strings.ToLower(last)
	switch g.rng.Intn(4) {
	case 0:
		return fmt.Sprintf("%s.%s@%s", f, l, domain)
	case 1:
		return fmt.Sprintf("%s%s@%s", f[:1], l, domain)
	case 2:
		return fmt.Sprintf("%s%s@%s", f, l[:1], domain)
	default:
		return fmt.Sprintf("%s_%s@%s", f, l, domain)
	}
}

// companyDomain derives an email domain from a company name by lowercasing
// and stripping spaces, ampersands, and dots.
func companyDomain(company string) string {
	r := strings.NewReplacer(" ", "", "&", "", ".", "")
	return r.Replace(strings.ToLower(company)) + ".com"
}
