package model

import (
	"strconv"

	"github.com/rotisserie/eris"
)

// Table is a row-oriented tabular view of a collection: a header of column
// names plus one string row per lead. It covers the flat lead field set (the
// open enrichment mapping is not tabular) and round-trips exactly through
// FromTable.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// tableColumns is the stable column order for tabular views and exports.
var tableColumns = []string{
	"id", "name", "title", "company",
	"email", "email_verified", "email_confidence", "phone", "linkedin",
	"person_location", "company_hq",
	"recent_paper", "funding_round", "uses_tech", "last_activity",
	"role_fit_score", "company_intent_score", "technographic_score",
	"location_score", "scientific_intent_score",
	"total_score", "probability", "rank", "data_source",
}

// ToTable converts the collection to its tabular representation. An empty
// collection yields a table with the header and no rows.
func (c LeadCollection) ToTable() Table {
	t := Table{
		Columns: tableColumns,
		Rows:    make([][]string, 0, len(c.Leads)),
	}
	for _, l := range c.Leads {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(l.ID),
			l.Name,
			l.Title,
			l.Company,
			l.Email,
			strconv.FormatBool(l.EmailVerified),
			strconv.Itoa(l.EmailConfidence),
			l.Phone,
			l.LinkedIn,
			l.PersonLocation,
			l.CompanyHQ,
			strconv.FormatBool(l.RecentPaper),
			l.FundingRound,
			l.UsesTech,
			l.LastActivity,
			strconv.Itoa(l.RoleFitScore),
			strconv.Itoa(l.CompanyIntentScore),
			strconv.Itoa(l.TechnographicScore),
			strconv.Itoa(l.LocationScore),
			strconv.Itoa(l.ScientificIntentScore),
			strconv.FormatFloat(l.TotalScore, 'f', -1, 64),
			strconv.Itoa(l.Probability),
			strconv.Itoa(l.Rank),
			l.DataSource,
		})
	}
	return t
}

// FromTable rebuilds a collection from its tabular representation. Columns
// are resolved by name, so reordered tables still parse.
func FromTable(t Table) (LeadCollection, error) {
	idx := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		idx[col] = i
	}
	for _, col := range tableColumns {
		if _, ok := idx[col]; !ok {
			return LeadCollection{}, eris.Errorf("model: table missing column %q", col)
		}
	}

	leads := make([]Lead, 0, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return LeadCollection{}, eris.Errorf("model: table row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}
		cell := func(col string) string { return row[idx[col]] }

		lead := Lead{
			Name:           cell("name"),
			Title:          cell("title"),
			Company:        cell("company"),
			Email:          cell("email"),
			Phone:          cell("phone"),
			LinkedIn:       cell("linkedin"),
			PersonLocation: cell("person_location"),
			CompanyHQ:      cell("company_hq"),
			FundingRound:   cell("funding_round"),
			UsesTech:       cell("uses_tech"),
			LastActivity:   cell("last_activity"),
			DataSource:     cell("data_source"),
		}

		var err error
		for _, f := range []struct {
			col string
			dst *int
		}{
			{"id", &lead.ID},
			{"email_confidence", &lead.EmailConfidence},
			{"role_fit_score", &lead.RoleFitScore},
			{"company_intent_score", &lead.CompanyIntentScore},
			{"technographic_score", &lead.TechnographicScore},
			{"location_score", &lead.LocationScore},
			{"scientific_intent_score", &lead.ScientificIntentScore},
			{"probability", &lead.Probability},
			{"rank", &lead.Rank},
		} {
			if *f.dst, err = strconv.Atoi(cell(f.col)); err != nil {
				return LeadCollection{}, eris.Wrapf(err, "model: table row %d: parse %s", i, f.col)
			}
		}

		if lead.EmailVerified, err = strconv.ParseBool(cell("email_verified")); err != nil {
			return LeadCollection{}, eris.Wrapf(err, "model: table row %d: parse email_verified", i)
		}
		if lead.RecentPaper, err = strconv.ParseBool(cell("recent_paper")); err != nil {
			return LeadCollection{}, eris.Wrapf(err, "model: table row %d: parse recent_paper", i)
		}
		if lead.TotalScore, err = strconv.ParseFloat(cell("total_score"), 64); err != nil {
			return LeadCollection{}, eris.Wrapf(err, "model: table row %d: parse total_score", i)
		}

		leads = append(leads, lead)
	}
	return LeadCollection{Leads: leads}, nil
}
