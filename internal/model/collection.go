package model

import (
	"sort"
	"strconv"
)

// LeadCollection is an ordered snapshot of leads. Filter and sort operations
// return new collections and never mutate their input, so snapshots are safe
// for concurrent readers.
type LeadCollection struct {
	Leads []Lead `json:"leads"`
}

// NewCollection wraps a lead slice. The slice is not copied; callers hand
// over ownership.
func NewCollection(leads []Lead) LeadCollection {
	return LeadCollection{Leads: leads}
}

// Len returns the number of leads.
func (c LeadCollection) Len() int {
	return len(c.Leads)
}

// SortByScore returns a new collection sorted by total score. The sort is
// stable: equal scores keep their original relative order.
func (c LeadCollection) SortByScore(ascending bool) LeadCollection {
	sorted := make([]Lead, len(c.Leads))
	copy(sorted, c.Leads)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].TotalScore < sorted[j].TotalScore
		}
		return sorted[i].TotalScore > sorted[j].TotalScore
	})
	return LeadCollection{Leads: sorted}
}

// Ranked returns a new collection sorted descending by total score with rank
// assigned from the sorted position (1-based). Rank is a property of the
// batch, not of a lead in isolation; re-ranking an already-ranked collection
// yields identical ranks.
func (c LeadCollection) Ranked() LeadCollection {
	ranked := c.SortByScore(false)
	for i := range ranked.Leads {
		ranked.Leads[i].Rank = i + 1
	}
	return ranked
}

// Field names a lead attribute usable for equality matching. The set is
// closed so every match is statically verifiable; there is no reflective
// field lookup.
type Field string

const (
	FieldName           Field = "name"
	FieldTitle          Field = "title"
	FieldCompany        Field = "company"
	FieldPersonLocation Field = "person_location"
	FieldCompanyHQ      Field = "company_hq"
	FieldFundingRound   Field = "funding_round"
	FieldUsesTech       Field = "uses_tech"
	FieldDataSource     Field = "data_source"
	FieldRecentPaper    Field = "recent_paper"
	FieldEmailVerified  Field = "email_verified"
)

// Where returns a new collection keeping leads whose value for the named
// field equals any of the given values (scalar equality when one value is
// given, set membership otherwise). Boolean fields match against "true" and
// "false".
func (c LeadCollection) Where(field Field, values ...string) LeadCollection {
	if len(values) == 0 {
		return c
	}
	var kept []Lead
	for _, lead := range c.Leads {
		v := fieldValue(lead, field)
		for _, want := range values {
			if v == want {
				kept = append(kept, lead)
				break
			}
		}
	}
	return LeadCollection{Leads: kept}
}

func fieldValue(l Lead, f Field) string {
	switch f {
	case FieldName:
		return l.Name
	case FieldTitle:
		return l.Title
	case FieldCompany:
		return l.Company
	case FieldPersonLocation:
		return l.PersonLocation
	case FieldCompanyHQ:
		return l.CompanyHQ
	case FieldFundingRound:
		return l.FundingRound
	case FieldUsesTech:
		return l.UsesTech
	case FieldDataSource:
		return l.DataSource
	case FieldRecentPaper:
		return strconv.FormatBool(l.RecentPaper)
	case FieldEmailVerified:
		return strconv.FormatBool(l.EmailVerified)
	default:
		return ""
	}
}
