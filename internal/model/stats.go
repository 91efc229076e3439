package model

import "sort"

// CompanyCount pairs a company name with its lead count.
type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// Distribution is the four-bucket probability histogram.
type Distribution struct {
	Low      int `json:"low"`       // < 30
	Medium   int `json:"medium"`    // [30, 60)
	High     int `json:"high"`      // [60, 80)
	VeryHigh int `json:"very_high"` // >= 80
}

// Stats holds derived statistics over a collection.
type Stats struct {
	TotalLeads      int            `json:"total_leads"`
	AverageScore    float64        `json:"average_score"`
	HighProbability int            `json:"high_probability_leads"`
	WithPapers      int            `json:"with_papers"`
	VerifiedEmails  int            `json:"verified_emails"`
	InHubs          int            `json:"in_hubs"`
	TopCompanies    []CompanyCount `json:"top_companies"`
	Distribution    Distribution   `json:"score_distribution"`
}

// Stats computes derived statistics. An empty collection yields zero-value
// stats, never an error.
func (c LeadCollection) Stats() Stats {
	if len(c.Leads) == 0 {
		return Stats{}
	}

	s := Stats{TotalLeads: len(c.Leads)}
	companies := make(map[string]int)
	var scoreSum float64

	for _, l := range c.Leads {
		scoreSum += l.TotalScore
		companies[l.Company]++

		if l.Probability >= 80 {
			s.HighProbability++
		}
		if l.RecentPaper {
			s.WithPapers++
		}
		if l.EmailVerified {
			s.VerifiedEmails++
		}
		if l.LocationScore >= 80 {
			s.InHubs++
		}

		switch {
		case l.Probability < 30:
			s.Distribution.Low++
		case l.Probability < 60:
			s.Distribution.Medium++
		case l.Probability < 80:
			s.Distribution.High++
		default:
			s.Distribution.VeryHigh++
		}
	}

	s.AverageScore = scoreSum / float64(len(c.Leads))
	s.TopCompanies = topCompanies(companies, 5)
	return s
}

// topCompanies returns the n companies with the most leads, ordered by count
// descending with name ascending as the tiebreak so output is deterministic.
func topCompanies(counts map[string]int, n int) []CompanyCount {
	all := make([]CompanyCount, 0, len(counts))
	for company, count := range counts {
		all = append(all, CompanyCount{Company: company, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Company < all[j].Company
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}
