// Package scoring implements the weighted lead scoring model.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Component identifies one of the five scoring dimensions.
type Component string

const (
	RoleFit          Component = "role_fit"
	CompanyIntent    Component = "company_intent"
	Technographic    Component = "technographic"
	Location         Component = "location"
	ScientificIntent Component = "scientific_intent"
)

// Components lists the scoring dimensions in canonical order.
var Components = []Component{RoleFit, CompanyIntent, Technographic, Location, ScientificIntent}

// weightTolerance is the floating-point slack allowed when checking that
// weights sum to 1.
const weightTolerance = 1e-9

// Weights maps each scoring component to its share of the total score.
// The table is immutable at runtime; it is validated once at load time.
type Weights struct {
	RoleFit          float64 `yaml:"role_fit" mapstructure:"role_fit"`
	CompanyIntent    float64 `yaml:"company_intent" mapstructure:"company_intent"`
	Technographic    float64 `yaml:"technographic" mapstructure:"technographic"`
	Location         float64 `yaml:"location" mapstructure:"location"`
	ScientificIntent float64 `yaml:"scientific_intent" mapstructure:"scientific_intent"`
}

// DefaultWeights returns the standard weight table. Weights sum to 1.
func DefaultWeights() Weights {
	return Weights{
		RoleFit:          0.30,
		CompanyIntent:    0.20,
		Technographic:    0.15,
		Location:         0.10,
		ScientificIntent: 0.40,
	}
}

// Of returns the weight for a component. Unknown components weigh zero.
func (w Weights) Of(c Component) float64 {
	switch c {
	case RoleFit:
		return w.RoleFit
	case CompanyIntent:
		return w.CompanyIntent
	case Technographic:
		return w.Technographic
	case Location:
		return w.Location
	case ScientificIntent:
		return w.ScientificIntent
	default:
		return 0
	}
}

// Sum returns the sum of all component weights.
func (w Weights) Sum() float64 {
	var sum float64
	for _, c := range Components {
		sum += w.Of(c)
	}
	return sum
}

// Validate checks the weight table for configuration errors. Weights must be
// non-negative and sum to 1 within floating-point tolerance. A malformed
// table is reported to the operator at load time, never silently
// renormalized by the engine.
func (w Weights) Validate() error {
	var errs []string
	for _, c := range Components {
		if w.Of(c) < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", c))
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		errs = append(errs, fmt.Sprintf("weights must sum to 1.0, got %v", sum))
	}
	if len(errs) > 0 {
		return eris.Errorf("scoring: weight validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Total combines component scores into one weighted total, rounded to one
// decimal place. A component absent from scores contributes zero; partial
// maps are allowed during incremental enrichment. The weighted total is the
// single source of truth for a lead's ranking.
func Total(w Weights, scores map[Component]int) float64 {
	var total float64
	for _, c := range Components {
		s, ok := scores[c]
		if !ok {
			continue
		}
		total += float64(s) * w.Of(c)
	}
	return math.Round(total*10) / 10
}
