package scoring

import (
	"math/rand"
	"strings"
	"time"
)

// Tables holds the enumeration sets used for category membership testing.
// The engine treats them as opaque closed sets.
type Tables struct {
	DomainKeywords    []string
	SeniorityKeywords []string
	FundedCompanies   []string
	Hubs              []string
}

// DefaultTables returns the built-in enumeration sets for the 3D in-vitro
// models sales vertical.
func DefaultTables() Tables {
	return Tables{
		DomainKeywords: []string{
			"toxicology", "safety", "hepatic", "3d", "preclinical", "dili",
		},
		SeniorityKeywords: []string{
			"director", "head", "vp", "principal",
		},
		FundedCompanies: []string{
			"Moderna", "Biogen", "Vertex Pharmaceuticals", "Emulate Inc", "CN Bio",
		},
		Hubs: []string{
			"Boston", "Bay Area", "Basel", "UK Triangle", "Cambridge MA",
			"San Diego", "Research Triangle Park", "Seattle", "New York",
		},
	}
}

// technographicBuckets is the discrete score set for the technographic draw.
var technographicBuckets = []int{20, 40, 60, 80, 100}

// Engine computes the five component scores for a candidate lead.
//
// Each scorer draws uniformly within a band selected by the input category;
// the band is the contract, the draw stands in for not-yet-integrated real
// signals. The random source is injectable so tests can pin a seed.
type Engine struct {
	tables Tables
	funded map[string]bool
	hubs   map[string]bool
	rng    *rand.Rand
}

// NewEngine creates an Engine over the given enumeration tables. A nil rng
// gets a time-seeded source.
func NewEngine(tables Tables, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{
		tables: tables,
		funded: make(map[string]bool, len(tables.FundedCompanies)),
		hubs:   make(map[string]bool, len(tables.Hubs)),
		rng:    rng,
	}
	for _, c := range tables.FundedCompanies {
		e.funded[c] = true
	}
	for _, h := range tables.Hubs {
		e.hubs[h] = true
	}
	return e
}

// RoleFitScore scores a job title. Domain keywords dominate seniority
// keywords when both match.
func (e *Engine) RoleFitScore(title string) (int, string) {
	lower := strings.ToLower(title)
	if containsAny(lower, e.tables.DomainKeywords...) {
		return e.between(70, 100), "domain keyword match"
	}
	if containsAny(lower, e.tables.SeniorityKeywords...) {
		return e.between(50, 80), "seniority keyword match"
	}
	return e.between(20, 50), "no keyword match"
}

// CompanyIntentScore scores a company by recent-funding likelihood. Companies
// outside the funded set get a mid-band score with ~30% probability, a noise
// model standing in for a future funding-data integration.
func (e *Engine) CompanyIntentScore(company string) (int, string) {
	if e.funded[company] {
		return e.between(80, 100), "recently funded"
	}
	if e.rng.Float64() > 0.7 {
		return e.between(60, 80), "possible funding signal"
	}
	return e.between(20, 50), "no funding signal"
}

// TechnographicScore draws from a fixed discrete score set, uniformly.
func (e *Engine) TechnographicScore() (int, string) {
	return technographicBuckets[e.rng.Intn(len(technographicBuckets))], "technology adoption draw"
}

// LocationScore scores a person location by hub membership.
func (e *Engine) LocationScore(location string) (int, string) {
	if e.hubs[location] {
		return e.between(80, 100), "biotech hub"
	}
	return e.between(20, 50), "outside hub"
}

// ScientificIntentScore scores the has-recent-paper flag.
func (e *Engine) ScientificIntentScore(hasPaper bool) (int, string) {
	if hasPaper {
		return e.between(80, 100), "recent publication"
	}
	return e.between(20, 60), "no recent publication"
}

// Score runs all five component scorers for one candidate.
func (e *Engine) Score(title, company, location string, hasPaper bool) map[Component]int {
	roleFit, _ := e.RoleFitScore(title)
	companyIntent, _ := e.CompanyIntentScore(company)
	technographic, _ := e.TechnographicScore()
	loc, _ := e.LocationScore(location)
	scientific, _ := e.ScientificIntentScore(hasPaper)

	return map[Component]int{
		RoleFit:          roleFit,
		CompanyIntent:    companyIntent,
		Technographic:    technographic,
		Location:         loc,
		ScientificIntent: scientific,
	}
}

// between returns a uniform draw from [lo, hi] inclusive.
func (e *Engine) between(lo, hi int) int {
	return lo + e.rng.Intn(hi-lo+1)
}

// containsAny checks if s contains any of the given substrings.
func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
