// Package model defines the lead data model and collection operations.
package model

// Lead is one prospective sales contact with identity, contact, and scoring
// attributes. ID is assigned at creation and never mutated.
type Lead struct {
	// Identity.
	ID      int    `json:"id" csv:"id"`
	Name    string `json:"name" csv:"name"`
	Title   string `json:"title" csv:"title"`
	Company string `json:"company" csv:"company"`

	// Contact.
	Email           string `json:"email" csv:"email"`
	EmailVerified   bool   `json:"email_verified" csv:"email_verified"`
	EmailConfidence int    `json:"email_confidence" csv:"email_confidence"`
	Phone           string `json:"phone" csv:"phone"`
	LinkedIn        string `json:"linkedin" csv:"linkedin"`

	// Location.
	PersonLocation string `json:"person_location" csv:"person_location"`
	CompanyHQ      string `json:"company_hq" csv:"company_hq"`

	// Professional signals.
	RecentPaper  bool   `json:"recent_paper" csv:"recent_paper"`
	FundingRound string `json:"funding_round" csv:"funding_round"`
	UsesTech     string `json:"uses_tech" csv:"uses_tech"`
	LastActivity string `json:"last_activity" csv:"last_activity"`

	// Component scores, each in [0,100].
	RoleFitScore          int `json:"role_fit_score" csv:"role_fit_score"`
	CompanyIntentScore    int `json:"company_intent_score" csv:"company_intent_score"`
	TechnographicScore    int `json:"technographic_score" csv:"technographic_score"`
	LocationScore         int `json:"location_score" csv:"location_score"`
	ScientificIntentScore int `json:"scientific_intent_score" csv:"scientific_intent_score"`

	// Derived scores. TotalScore is the weighted sum rounded to one decimal;
	// Probability is TotalScore rounded to the nearest whole; Rank is the
	// 1-based position within the owning batch sorted descending by
	// TotalScore.
	TotalScore  float64 `json:"total_score" csv:"total_score"`
	Probability int     `json:"probability" csv:"probability"`
	Rank        int     `json:"rank" csv:"rank"`

	// Metadata.
	DataSource     string         `json:"data_source" csv:"data_source"`
	EnrichmentData map[string]any `json:"enrichment_data,omitempty" csv:"-"`
}

// FundingRounds enumerates the closed set of funding stages.
var FundingRounds = []string{"Series A", "Series B", "Series C", "Seed", "None"}
