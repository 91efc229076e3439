package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestEngine(seed int64) *Engine {
	return NewEngine(DefaultTables(), rand.New(rand.NewSource(seed)))
}

func TestRoleFitScore_DomainKeyword(t *testing.T) {
	e := newTestEngine(1)

	// Keyword match dominates the seniority match in the same title.
	for i := 0; i < 100; i++ {
		score, band := e.RoleFitScore("Director of Toxicology")
		assert.GreaterOrEqual(t, score, 70)
		assert.LessOrEqual(t, score, 100)
		assert.Equal(t, "domain keyword match", band)
	}
}

func TestRoleFitScore_SeniorityKeyword(t *testing.T) {
	e := newTestEngine(2)

	for i := 0; i < 100; i++ {
		score, band := e.RoleFitScore("VP Drug Discovery")
		assert.GreaterOrEqual(t, score, 50)
		assert.LessOrEqual(t, score, 80)
		assert.Equal(t, "seniority keyword match", band)
	}
}

func TestRoleFitScore_NoMatch(t *testing.T) {
	e := newTestEngine(3)

	for i := 0; i < 100; i++ {
		score, band := e.RoleFitScore("Research Associate")
		assert.GreaterOrEqual(t, score, 20)
		assert.LessOrEqual(t, score, 50)
		assert.Equal(t, "no keyword match", band)
	}
}

func TestCompanyIntentScore_FundedCompany(t *testing.T) {
	e := newTestEngine(4)

	for i := 0; i < 100; i++ {
		score, band := e.CompanyIntentScore("Moderna")
		assert.GreaterOrEqual(t, score, 80)
		assert.LessOrEqual(t, score, 100)
		assert.Equal(t, "recently funded", band)
	}
}

func TestCompanyIntentScore_UnfundedBands(t *testing.T) {
	e := newTestEngine(5)

	mid := 0
	for i := 0; i < 1000; i++ {
		score, band := e.CompanyIntentScore("Acme Biosciences")
		switch band {
		case "possible funding signal":
			mid++
			assert.GreaterOrEqual(t, score, 60)
			assert.LessOrEqual(t, score, 80)
		case "no funding signal":
			assert.GreaterOrEqual(t, score, 20)
			assert.LessOrEqual(t, score, 50)
		default:
			t.Fatalf("unexpected band %q", band)
		}
	}
	// ~30% mid-band bump; allow generous slack around the expectation.
	assert.Greater(t, mid, 200)
	assert.Less(t, mid, 400)
}

func TestTechnographicScore_DiscreteSet(t *testing.T) {
	e := newTestEngine(6)

	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		score, _ := e.TechnographicScore()
		assert.Contains(t, technographicBuckets, score)
		seen[score] = true
	}
	assert.Len(t, seen, len(technographicBuckets))
}

func TestLocationScore_Hub(t *testing.T) {
	e := newTestEngine(7)

	for i := 0; i < 100; i++ {
		score, band := e.LocationScore("Boston")
		assert.GreaterOrEqual(t, score, 80)
		assert.LessOrEqual(t, score, 100)
		assert.Equal(t, "biotech hub", band)
	}
}

func TestLocationScore_Remote(t *testing.T) {
	e := newTestEngine(8)

	for i := 0; i < 100; i++ {
		score, band := e.LocationScore("Remote Texas")
		assert.GreaterOrEqual(t, score, 20)
		assert.LessOrEqual(t, score, 50)
		assert.Equal(t, "outside hub", band)
	}
}

func TestScientificIntentScore(t *testing.T) {
	e := newTestEngine(9)

	for i := 0; i < 100; i++ {
		score, _ := e.ScientificIntentScore(true)
		assert.GreaterOrEqual(t, score, 80)
		assert.LessOrEqual(t, score, 100)

		score, _ = e.ScientificIntentScore(false)
		assert.GreaterOrEqual(t, score, 20)
		assert.LessOrEqual(t, score, 60)
	}
}

func TestScore_AllComponentsPresent(t *testing.T) {
	e := newTestEngine(10)

	scores := e.Score("Head of Preclinical Safety", "CN Bio", "Basel", true)
	assert.Len(t, scores, len(Components))
	for _, c := range Components {
		assert.Contains(t, scores, c)
		assert.GreaterOrEqual(t, scores[c], 0)
		assert.LessOrEqual(t, scores[c], 100)
	}
}

func TestNewEngine_NilRandDoesNotPanic(t *testing.T) {
	e := NewEngine(DefaultTables(), nil)
	score, _ := e.RoleFitScore("Toxicology Manager")
	assert.GreaterOrEqual(t, score, 70)
}
