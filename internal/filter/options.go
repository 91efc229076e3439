package filter

import (
	"sort"

	"github.com/akash-eu-prime/leadgen-cli/internal/model"
)

// Options describes the filter choices available for a collection, derived
// from its actual values. Choice lists carry an "All" sentinel first.
type Options struct {
	Locations     []string `json:"locations"`
	Companies     []string `json:"companies"`
	FundingRounds []string `json:"funding_rounds"`
	ScoreMin      int      `json:"score_min"`
	ScoreMax      int      `json:"score_max"`
	WithPapers    int      `json:"with_papers"`
	Verified      int      `json:"verified"`
}

// OptionsFor derives the available filter choices from a collection. An
// empty collection yields the zero Options.
func OptionsFor(c model.LeadCollection) Options {
	if c.Len() == 0 {
		return Options{}
	}

	locations := make(map[string]bool)
	companies := make(map[string]bool)
	rounds := make(map[string]bool)
	var withPapers, verified int

	for _, lead := range c.Leads {
		locations[lead.PersonLocation] = true
		companies[lead.Company] = true
		if lead.FundingRound != "" {
			rounds[lead.FundingRound] = true
		}
		if lead.RecentPaper {
			withPapers++
		}
		if lead.EmailVerified {
			verified++
		}
	}

	return Options{
		Locations:     withAll(sortedKeys(locations)),
		Companies:     withAll(sortedKeys(companies)),
		FundingRounds: withAll(sortedKeys(rounds)),
		ScoreMin:      0,
		ScoreMax:      100,
		WithPapers:    withPapers,
		Verified:      verified,
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func withAll(values []string) []string {
	return append([]string{"All"}, values...)
}
