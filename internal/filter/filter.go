// Package filter provides pure, composable predicates over a lead
// collection. Every filter returns a new collection and never mutates its
// input, so filtered views can be layered without copying defensively.
package filter

import (
	"strings"

	"github.com/akash-eu-prime/leadgen-cli/internal/model"
)

// sentinel values that make a filter a no-op.
const allSentinel = "all"

// Criteria bundles every filter criterion. Zero values mean "not set": the
// corresponding filter stage passes the collection through unchanged. The
// pointer fields distinguish "unset" from a deliberate zero.
type Criteria struct {
	Search       string
	MinScore     *int
	MaxScore     *int
	Location     string
	Company      string
	FundingRound string
	HasPaper     *bool
	VerifiedOnly bool
}

// BySearch keeps leads where the query is a case-insensitive substring of
// any of: name, title, company, person location, company HQ, or technology
// tag. An empty query returns the input unchanged.
func BySearch(c model.LeadCollection, query string) model.LeadCollection {
	if query == "" {
		return c
	}
	q := strings.ToLower(query)
	var kept []model.Lead
	for _, lead := range c.Leads {
		haystacks := []string{
			lead.Name, lead.Title, lead.Company,
			lead.PersonLocation, lead.CompanyHQ, lead.UsesTech,
		}
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), q) {
				kept = append(kept, lead)
				break
			}
		}
	}
	return model.NewCollection(kept)
}

// ByScoreRange keeps leads whose probability lies in [min, max] inclusive.
func ByScoreRange(c model.LeadCollection, min, max int) model.LeadCollection {
	var kept []model.Lead
	for _, lead := range c.Leads {
		if lead.Probability >= min && lead.Probability <= max {
			kept = append(kept, lead)
		}
	}
	return model.NewCollection(kept)
}

// ByLocation keeps leads whose person location or company HQ contains the
// value, case-insensitively. "All" or empty is a no-op.
func ByLocation(c model.LeadCollection, location string) model.LeadCollection {
	if isNoop(location) {
		return c
	}
	want := strings.ToLower(location)
	var kept []model.Lead
	for _, lead := range c.Leads {
		if strings.Contains(strings.ToLower(lead.PersonLocation), want) ||
			strings.Contains(strings.ToLower(lead.CompanyHQ), want) {
			kept = append(kept, lead)
		}
	}
	return model.NewCollection(kept)
}

// ByCompany keeps leads whose company contains the value,
// case-insensitively. "All" or empty is a no-op.
func ByCompany(c model.LeadCollection, company string) model.LeadCollection {
	if isNoop(company) {
		return c
	}
	want := strings.ToLower(company)
	var kept []model.Lead
	for _, lead := range c.Leads {
		if strings.Contains(strings.ToLower(lead.Company), want) {
			kept = append(kept, lead)
		}
	}
	return model.NewCollection(kept)
}

// ByFunding keeps leads whose funding round matches exactly. "All" or empty
// is a no-op.
func ByFunding(c model.LeadCollection, round string) model.LeadCollection {
	if isNoop(round) {
		return c
	}
	return c.Where(model.FieldFundingRound, round)
}

// ByPublications keeps leads whose recent-paper flag matches hasPaper.
func ByPublications(c model.LeadCollection, hasPaper bool) model.LeadCollection {
	if hasPaper {
		return c.Where(model.FieldRecentPaper, "true")
	}
	return c.Where(model.FieldRecentPaper, "false")
}

// ByEmailVerification keeps only verified leads when verifiedOnly is true.
// False is a no-op; the filter is opt-in, it never selects the unverified.
func ByEmailVerification(c model.LeadCollection, verifiedOnly bool) model.LeadCollection {
	if !verifiedOnly {
		return c
	}
	return c.Where(model.FieldEmailVerified, "true")
}

// Apply runs every set criterion in a fixed order: search, score range,
// location, company, funding round, publications, email verification. The
// filters commute; the order is fixed only so results are reproducible.
func Apply(c model.LeadCollection, criteria Criteria) model.LeadCollection {
	out := BySearch(c, criteria.Search)

	if criteria.MinScore != nil || criteria.MaxScore != nil {
		min, max := 0, 100
		if criteria.MinScore != nil {
			min = *criteria.MinScore
		}
		if criteria.MaxScore != nil {
			max = *criteria.MaxScore
		}
		out = ByScoreRange(out, min, max)
	}

	out = ByLocation(out, criteria.Location)
	out = ByCompany(out, criteria.Company)
	out = ByFunding(out, criteria.FundingRound)

	if criteria.HasPaper != nil {
		out = ByPublications(out, *criteria.HasPaper)
	}

	return ByEmailVerification(out, criteria.VerifiedOnly)
}

func isNoop(v string) bool {
	return v == "" || strings.EqualFold(v, allSentinel)
}
