package generator

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash-eu-prime/leadgen-cli/internal/scoring"
	"github.com/akash-eu-prime/leadgen-cli/pkg/hunter"
)

// emailShapes enumerates the four valid addresses for a lead: first.last,
// first-initial+last, first+last-initial, and first_last.
func emailShapes(name, company string) []string {
	parts := strings.SplitN(name, " ", 2)
	f, l := strings.ToLower(parts[0]), strings.ToLower(parts[1])
	d := companyDomain(company)
	return []string{
		f + "." + l + "@" + d,
		f[:1] + l + "@" + d,
		f + l[:1] + "@" + d,
		f + "_" + l + "@" + d,
	}
}

func newTestGenerator(seed int64, opts ...Option) *Generator {
	rng := rand.New(rand.NewSource(seed))
	engine := scoring.NewEngine(scoring.DefaultTables(), rand.New(rand.NewSource(seed+1)))
	opts = append([]Option{WithRand(rng)}, opts...)
	return New(DefaultTables(), scoring.DefaultWeights(), engine, opts...)
}

func TestGenerate_Batch(t *testing.T) {
	g := newTestGenerator(42)

	c, err := g.Generate(context.Background(), 50)
	require.NoError(t, err)
	require.Equal(t, 50, c.Len())

	seenRanks := make(map[int]bool, 50)
	maxScore := c.Leads[0].TotalScore

	for _, lead := range c.Leads {
		assert.NotEmpty(t, lead.Name)
		assert.NotEmpty(t, lead.Title)
		assert.NotEmpty(t, lead.Company)
		assert.Contains(t, emailShapes(lead.Name, lead.Company), lead.Email)
		assert.Regexp(t, `^\+1-\d{3}-\d{3}-\d{4}$`, lead.Phone)
		assert.Contains(t, lead.LinkedIn, "linkedin.com/in/")
		assert.GreaterOrEqual(t, lead.TotalScore, 20.0)
		assert.LessOrEqual(t, lead.TotalScore, 100.0)
		assert.LessOrEqual(t, lead.TotalScore, maxScore)
		assert.Equal(t, "synthetic", lead.DataSource)
		seenRanks[lead.Rank] = true
		maxScore = lead.TotalScore
	}

	// Ranks are a permutation of 1..n.
	for r := 1; r <= 50; r++ {
		assert.True(t, seenRanks[r], "missing rank %d", r)
	}
	assert.Equal(t, 1, c.Leads[0].Rank)
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := newTestGenerator(7).Generate(context.Background(), 20)
	require.NoError(t, err)
	b, err := newTestGenerator(7).Generate(context.Background(), 20)
	require.NoError(t, err)

	assert.Equal(t, a.Leads, b.Leads)
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestGenerator(1).Generate(ctx, 10)
	require.ErrorIs(t, err, context.Canceled)
}

type stubVerifier struct {
	calls int
	v     *hunter.Verification
	err   error
}

func (s *stubVerifier) VerifyEmail(ctx context.Context, email string) (*hunter.Verification, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := *s.v
	out.Email = email
	return &out, nil
}

func (s *stubVerifier) Enabled() bool { return true }

func TestGenerate_WithVerifier(t *testing.T) {
	stub := &stubVerifier{v: &hunter.Verification{
		Status:  "valid",
		Result:  "deliverable",
		Score:   95,
		IsValid: true,
	}}
	g := newTestGenerator(11, WithVerifier(stub))

	c, err := g.Generate(context.Background(), 200)
	require.NoError(t, err)

	// Roughly 30% of leads go through the verifier.
	assert.Greater(t, stub.calls, 30)
	assert.Less(t, stub.calls, 90)

	var verified int
	for _, lead := range c.Leads {
		if lead.EmailVerified {
			verified++
			assert.Equal(t, 95, lead.EmailConfidence)
			assert.Equal(t, "synthetic + hunter.io", lead.DataSource)
			assert.Equal(t, "valid", lead.EnrichmentData["hunter_status"])
		}
	}
	assert.Equal(t, stub.calls, verified)
}

func TestGenerate_VerifierErrorKeepsDefaults(t *testing.T) {
	stub := &stubVerifier{err: errors.New("quota exceeded")}
	g := newTestGenerator(11, WithVerifier(stub))

	c, err := g.Generate(context.Background(), 100)
	require.NoError(t, err)
	require.Greater(t, stub.calls, 0)

	for _, lead := range c.Leads {
		assert.False(t, lead.EmailVerified)
		assert.Equal(t, "synthetic", lead.DataSource)
		assert.GreaterOrEqual(t, lead.EmailConfidence, 50)
		assert.LessOrEqual(t, lead.EmailConfidence, 100)
	}
}

func TestCompanyDomain(t *testing.T) {
	assert.Equal(t, "johnsonjohnson.com", companyDomain("Johnson & Johnson"))
	assert.Equal(t, "cnbio.com", companyDomain("CN Bio"))
	assert.Equal(t, "moderna.com", companyDomain("Moderna"))
}
