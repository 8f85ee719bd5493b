package recommend_test

import (
	"testing"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/analyzer"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/catalog"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/matcher"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/ranker"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/recommend"
)

func service(id, category string, monthly float64, complexity int, freeTier bool) *catalog.Service {
	return &catalog.Service{
		ID:          id,
		Name:        id,
		Category:    category,
		Pricing:     &catalog.Pricing{Model: "fixed", BaseMonthly: monthly, FreeTier: freeTier},
		Complexity:  complexity,
		Scalability: 4,
		Managed:     true,
		Established: true,
	}
}

func candidate(patternID, variantID, axis string, score float64, services ...*catalog.Service) matcher.CandidateArchitecture {
	cands := make([]ranker.ServiceCandidate, 0, len(services))
	for _, s := range services {
		cands = append(cands, ranker.ServiceCandidate{ServiceID: s.ID, Definition: s})
	}
	return matcher.CandidateArchitecture{
		PatternID:  patternID,
		VariantID:  variantID,
		Name:       patternID + " " + variantID,
		Axis:       axis,
		Services:   cands,
		Score:      score,
		Confidence: 0.8,
	}
}

func analysisStub() *analyzer.AnalysisResult {
	return &analyzer.AnalysisResult{
		Framework:      analyzer.DetectionResult{Primary: analyzer.Match{ID: "react", Confidence: 0.9}},
		AppType:        analyzer.DetectionResult{Primary: analyzer.Match{ID: "spa", Confidence: 0.85}},
		Infrastructure: analyzer.InfraResult{Complexity: 2},
	}
}

func TestGenerateOrdersBySuitability(t *testing.T) {
	cheap := service("cheap", "compute", 5, 2, true)
	dear := service("dear", "compute", 300, 5, false)

	report := recommend.Generate(
		[]matcher.CandidateArchitecture{
			candidate("pricey", "", "", 1.0, dear),
			candidate("frugal", "", "", 1.0, cheap),
		},
		analysisStub(),
		config.Requirements{Traffic: config.TrafficLow},
		config.DefaultPreferences(),
		config.DefaultTunables().Ranking,
	)

	if len(report.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(report.Recommendations))
	}
	if report.Recommendations[0].PatternID != "frugal" {
		t.Errorf("cheapest simple stack should rank first, got %s", report.Recommendations[0].PatternID)
	}
	for _, rec := range report.Recommendations {
		if rec.Tier == "" {
			t.Errorf("%s: tier missing", rec.PatternID)
		}
		if rec.Suitability < 0 || rec.Suitability > 1 {
			t.Errorf("%s: suitability %.3f outside [0,1]", rec.PatternID, rec.Suitability)
		}
	}
}

func TestAxisMatchBreaksTies(t *testing.T) {
	svc := service("same", "compute", 10, 2, true)

	report := recommend.Generate(
		[]matcher.CandidateArchitecture{
			candidate("p", "perf", config.PriorityPerformance, 1.0, svc),
			candidate("p", "budget", config.PriorityCost, 1.0, svc),
		},
		analysisStub(),
		config.DefaultRequirements(),
		config.Preferences{Priority: config.PriorityCost},
		config.DefaultTunables().Ranking,
	)

	if report.Recommendations[0].VariantID != "budget" {
		t.Errorf("the variant on the preferred axis should win the tie, got %s", report.Recommendations[0].VariantID)
	}
}

func TestAggregateCost(t *testing.T) {
	a := service("a", "compute", 10, 2, true)
	b := service("b", "database", 30, 3, true)

	report := recommend.Generate(
		[]matcher.CandidateArchitecture{candidate("p", "", "", 1.0, a, b)},
		analysisStub(),
		config.Requirements{Traffic: config.TrafficLow},
		config.DefaultPreferences(),
		config.DefaultTunables().Ranking,
	)

	cost := report.Recommendations[0].Cost
	if cost.MonthlyLow != 30 || cost.MonthlyHigh != 60 {
		t.Errorf("cost bracket = %.0f-%.0f, want 30-60", cost.MonthlyLow, cost.MonthlyHigh)
	}
	if !cost.FreeTierEligible {
		t.Error("all services have free tiers; the stack is eligible")
	}

	b.Pricing.FreeTier = false
	report = recommend.Generate(
		[]matcher.CandidateArchitecture{candidate("p", "", "", 1.0, a, b)},
		analysisStub(),
		config.Requirements{Traffic: config.TrafficLow},
		config.DefaultPreferences(),
		config.DefaultTunables().Ranking,
	)
	if report.Recommendations[0].Cost.FreeTierEligible {
		t.Error("one paid service disqualifies the free tier")
	}
}

func TestExpensiveServiceSuggestionUnderCostPriority(t *testing.T) {
	report := recommend.Generate(
		[]matcher.CandidateArchitecture{candidate("p", "", "", 1.0, service("mainframe", "compute", 200, 4, false))},
		analysisStub(),
		config.Requirements{Traffic: config.TrafficLow},
		config.Preferences{Priority: config.PriorityCost},
		config.DefaultTunables().Ranking,
	)

	found := false
	for _, s := range report.Suggestions {
		if s.Action == "replace-expensive-services" {
			found = true
			if len(s.Services) == 0 || s.Services[0] != "mainframe" {
				t.Errorf("suggestion should name the expensive service, got %v", s.Services)
			}
		}
	}
	if !found {
		t.Errorf("expected a replace-expensive-services suggestion, got %v", report.Suggestions)
	}
}

func TestCacheSuggestionForHighPerformance(t *testing.T) {
	db := service("plain_db", "database", 15, 3, true)

	report := recommend.Generate(
		[]matcher.CandidateArchitecture{candidate("p", "", "", 1.0, db)},
		analysisStub(),
		config.DefaultRequirements(),
		config.Preferences{PerformanceLevel: "high"},
		config.DefaultTunables().Ranking,
	)

	for _, s := range report.Suggestions {
		if s.Action == "add-cache-layer" {
			return
		}
	}
	t.Errorf("uncached database under a high performance requirement should suggest a cache, got %v", report.Suggestions)
}

func TestCostSpreadInsight(t *testing.T) {
	report := recommend.Generate(
		[]matcher.CandidateArchitecture{
			candidate("p", "", "", 1.0, service("tiny", "compute", 3, 1, true)),
			candidate("q", "", "", 1.0, service("huge", "compute", 250, 4, false)),
		},
		analysisStub(),
		config.Requirements{Traffic: config.TrafficLow},
		config.DefaultPreferences(),
		config.DefaultTunables().Ranking,
	)

	for _, in := range report.Insights {
		if in.Kind == "cost-spread" {
			return
		}
	}
	t.Errorf("expected a cost-spread insight, got %v", report.Insights)
}
