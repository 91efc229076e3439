package filter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash-eu-prime/leadgen-cli/internal/model"
)

func sampleLeads() model.LeadCollection {
	return model.NewCollection([]model.Lead{
		{
			ID: 1, Name: "Alex Smith", Title: "Director of Toxicology",
			Company: "Moderna", PersonLocation: "Boston", CompanyHQ: "Cambridge MA",
			UsesTech: "Organ-on-chip", FundingRound: "Series B",
			RecentPaper: true, EmailVerified: true,
			TotalScore: 92.4, Probability: 92,
		},
		{
			ID: 2, Name: "Jordan Garcia", Title: "Lab Technician",
			Company: "Mimetas", PersonLocation: "Remote Texas", CompanyHQ: "Basel",
			UsesTech: "NAMs", FundingRound: "Seed",
			RecentPaper: false, EmailVerified: false,
			TotalScore: 31.1, Probability: 31,
		},
		{
			ID: 3, Name: "Taylor Davis", Title: "Head of Preclinical Safety",
			Company: "Moderna", PersonLocation: "Bay Area", CompanyHQ: "Boston",
			UsesTech: "Hepatic spheroids", FundingRound: "Series B",
			RecentPaper: true, EmailVerified: false,
			TotalScore: 76.8, Probability: 77,
		},
		{
			ID: 4, Name: "Casey Brown", Title: "VP Drug Discovery",
			Company: "CN Bio", PersonLocation: "UK Triangle", CompanyHQ: "UK Triangle",
			UsesTech: "in-vitro models", FundingRound: "None",
			RecentPaper: false, EmailVerified: true,
			TotalScore: 64.0, Probability: 64,
		},
	})
}

func leadIDs(c model.LeadCollection) []int {
	ids := make([]int, 0, c.Len())
	for _, l := range c.Leads {
		ids = append(ids, l.ID)
	}
	return ids
}

func TestBySearch(t *testing.T) {
	leads := sampleLeads()

	assert.Equal(t, []int{1}, leadIDs(BySearch(leads, "toxicology")))
	assert.Equal(t, []int{1, 3}, leadIDs(BySearch(leads, "moderna")))
	assert.Equal(t, []int{1, 3}, leadIDs(BySearch(leads, "BOSTON")))
	assert.Equal(t, []int{2}, leadIDs(BySearch(leads, "NAMs")))
	assert.Empty(t, leadIDs(BySearch(leads, "zzz")))
}

func TestBySearch_EmptyQueryIsNoop(t *testing.T) {
	leads := sampleLeads()
	out := BySearch(leads, "")
	assert.Equal(t, leads.Leads, out.Leads)
}

func TestByScoreRange(t *testing.T) {
	leads := sampleLeads()

	assert.Equal(t, []int{1, 3, 4}, leadIDs(ByScoreRange(leads, 60, 100)))
	assert.Equal(t, []int{4}, leadIDs(ByScoreRange(leads, 64, 64)), "bounds are inclusive")
	assert.Empty(t, leadIDs(ByScoreRange(leads, 95, 100)))
}

func TestByLocationAndCompany(t *testing.T) {
	leads := sampleLeads()

	assert.Equal(t, []int{2}, leadIDs(ByLocation(leads, "remote")))
	// Person location and company HQ both count: lead 3 is only tied to
	// Boston through its HQ, lead 2 only to Basel through its HQ.
	assert.Equal(t, []int{1, 3}, leadIDs(ByLocation(leads, "Boston")))
	assert.Equal(t, []int{2}, leadIDs(ByLocation(leads, "basel")))
	assert.Equal(t, leads.Leads, ByLocation(leads, "All").Leads)
	assert.Equal(t, leads.Leads, ByLocation(leads, "").Leads)

	assert.Equal(t, []int{4}, leadIDs(ByCompany(leads, "cn bio")))
	assert.Equal(t, leads.Leads, ByCompany(leads, "all").Leads)
}

func TestByFunding(t *testing.T) {
	leads := sampleLeads()

	assert.Equal(t, []int{1, 3}, leadIDs(ByFunding(leads, "Series B")))
	// Exact match, not substring.
	assert.Empty(t, leadIDs(ByFunding(leads, "Series")))
	assert.Equal(t, leads.Leads, ByFunding(leads, "All").Leads)
}

func TestByPublications(t *testing.T) {
	leads := sampleLeads()

	assert.Equal(t, []int{1, 3}, leadIDs(ByPublications(leads, true)))
	assert.Equal(t, []int{2, 4}, leadIDs(ByPublications(leads, false)))
}

func TestByEmailVerification(t *testing.T) {
	leads := sampleLeads()

	assert.Equal(t, []int{1, 4}, leadIDs(ByEmailVerification(leads, true)))
	// False is opt-out: the input passes through unchanged.
	assert.Equal(t, leads.Leads, ByEmailVerification(leads, false).Leads)
}

func TestApply_Composite(t *testing.T) {
	leads := sampleLeads()
	min := 60
	hasPaper := true

	out := Apply(leads, Criteria{
		Search:   "moderna",
		MinScore: &min,
		HasPaper: &hasPaper,
	})
	assert.Equal(t, []int{1, 3}, leadIDs(out))

	out = Apply(leads, Criteria{
		Search:       "moderna",
		MinScore:     &min,
		HasPaper:     &hasPaper,
		VerifiedOnly: true,
	})
	assert.Equal(t, []int{1}, leadIDs(out))
}

func TestApply_EmptyCriteriaIsNoop(t *testing.T) {
	leads := sampleLeads()
	out := Apply(leads, Criteria{})
	assert.Equal(t, leads.Leads, out.Leads)
}

func TestApply_OrderInvariance(t *testing.T) {
	// Random leads; score_range then location must equal the reverse order.
	rng := rand.New(rand.NewSource(99))
	locations := []string{"Boston", "Bay Area", "Remote Texas", "Basel"}
	leads := make([]model.Lead, 50)
	for i := range leads {
		p := rng.Intn(101)
		leads[i] = model.Lead{
			ID:             i + 1,
			PersonLocation: locations[rng.Intn(len(locations))],
			Probability:    p,
			TotalScore:     float64(p),
		}
	}
	c := model.NewCollection(leads)

	a := ByLocation(ByScoreRange(c, 80, 100), "Boston")
	b := ByScoreRange(ByLocation(c, "Boston"), 80, 100)
	require.Equal(t, leadIDs(a), leadIDs(b))
}

func TestOptionsFor(t *testing.T) {
	opts := OptionsFor(sampleLeads())

	assert.Equal(t, []string{"All", "Bay Area", "Boston", "Remote Texas", "UK Triangle"}, opts.Locations)
	assert.Equal(t, []string{"All", "CN Bio", "Mimetas", "Moderna"}, opts.Companies)
	assert.Equal(t, []string{"All", "None", "Seed", "Series B"}, opts.FundingRounds)
	assert.Equal(t, 0, opts.ScoreMin)
	assert.Equal(t, 100, opts.ScoreMax)
	assert.Equal(t, 2, opts.WithPapers)
	assert.Equal(t, 2, opts.Verified)
}

func TestOptionsFor_Empty(t *testing.T) {
	opts := OptionsFor(model.LeadCollection{})
	assert.Equal(t, Options{}, opts)
}
