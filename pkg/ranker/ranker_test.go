package ranker_test

import (
	"reflect"
	"testing"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/catalog"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/ranker"
)

func fixedPriceCandidate(id string, monthly float64) ranker.ServiceCandidate {
	return ranker.ServiceCandidate{
		ServiceID: id,
		Definition: &catalog.Service{
			ID:          id,
			Name:        id,
			Category:    "compute",
			Pricing:     &catalog.Pricing{Model: "fixed", BaseMonthly: monthly},
			Complexity:  3,
			Scalability: 3,
			Managed:     true,
			Established: true,
		},
	}
}

func rank(t *testing.T, cands []ranker.ServiceCandidate, reqs config.Requirements, prefs config.Preferences) []ranker.RankedService {
	t.Helper()
	return ranker.RankServices(cands, reqs, prefs, ranker.Context{}, config.DefaultTunables().Ranking)
}

func TestCostScoreMonotonicInEstimate(t *testing.T) {
	cands := []ranker.ServiceCandidate{
		fixedPriceCandidate("cheap", 5),
		fixedPriceCandidate("mid", 40),
		fixedPriceCandidate("upper", 80),
		fixedPriceCandidate("dear", 150),
		fixedPriceCandidate("rich", 300),
	}
	ranked := rank(t, cands, config.Requirements{Traffic: config.TrafficLow}, config.DefaultPreferences())

	byID := map[string]ranker.RankedService{}
	for _, r := range ranked {
		byID[r.ServiceID] = r
	}
	order := []string{"cheap", "mid", "upper", "dear", "rich"}
	prev := 2.0
	for _, id := range order {
		score := byID[id].Breakdown[ranker.CriterionCost].Score
		if score > prev {
			t.Errorf("cost score for %s (%.2f) rose above cheaper %.2f", id, score, prev)
		}
		prev = score
	}
}

func TestRankingIdempotent(t *testing.T) {
	cands := []ranker.ServiceCandidate{
		fixedPriceCandidate("a", 100),
		fixedPriceCandidate("b", 10),
		fixedPriceCandidate("c", 10),
	}
	reqs := config.Requirements{Traffic: config.TrafficMedium}
	prefs := config.DefaultPreferences()

	first := rank(t, cands, reqs, prefs)
	second := rank(t, cands, reqs, prefs)
	if !reflect.DeepEqual(first, second) {
		t.Error("same inputs must produce identical rankings")
	}

	// Equal-scoring candidates keep their declaration order.
	posB, posC := -1, -1
	for i, r := range first {
		switch r.ServiceID {
		case "b":
			posB = i
		case "c":
			posC = i
		}
	}
	if posB > posC {
		t.Errorf("tie broken against declaration order: b at %d, c at %d", posB, posC)
	}
}

func TestRanksAndTiersAssigned(t *testing.T) {
	ranked := rank(t,
		[]ranker.ServiceCandidate{fixedPriceCandidate("x", 10), fixedPriceCandidate("y", 300)},
		config.Requirements{Traffic: config.TrafficLow}, config.DefaultPreferences())

	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Errorf("rank[%d] = %d", i, r.Rank)
		}
		if r.Tier == "" {
			t.Errorf("tier missing for %s", r.ServiceID)
		}
		if r.Overall < 0 || r.Overall > 1 {
			t.Errorf("overall %.3f outside [0,1]", r.Overall)
		}
		if len(r.Breakdown) != 6 {
			t.Errorf("expected 6 criteria, got %d", len(r.Breakdown))
		}
	}
	if len(ranked) == 2 && ranked[0].Overall < ranked[1].Overall {
		t.Error("ranking not in descending order")
	}
}

func TestMissingDefinitionFallsBackToNeutral(t *testing.T) {
	ranked := rank(t,
		[]ranker.ServiceCandidate{{ServiceID: "mystery"}},
		config.DefaultRequirements(), config.DefaultPreferences())

	r := ranked[0]
	for _, crit := range []string{ranker.CriterionCost, ranker.CriterionComplexity, ranker.CriterionScalability, ranker.CriterionReliability, ranker.CriterionMaturity} {
		cs := r.Breakdown[crit]
		if cs.Score != 0.5 {
			t.Errorf("%s = %.2f, want neutral 0.5", crit, cs.Score)
		}
		if len(cs.Warnings) == 0 {
			t.Errorf("%s: neutral fallback should carry a warning", crit)
		}
	}
}

func TestTierFor(t *testing.T) {
	tun := config.DefaultTunables().Ranking
	tests := []struct {
		overall float64
		want    string
	}{
		{0.95, ranker.TierRecommended},
		{0.8, ranker.TierRecommended},
		{0.79, ranker.TierSuitable},
		{0.6, ranker.TierSuitable},
		{0.5, ranker.TierAcceptable},
		{0.39, ranker.TierNotRecommended},
	}
	for _, tt := range tests {
		if got := ranker.TierFor(tt.overall, tun); got != tt.want {
			t.Errorf("TierFor(%.2f) = %s, want %s", tt.overall, got, tt.want)
		}
	}
}

func TestEstimateMonthlyCost(t *testing.T) {
	cand := fixedPriceCandidate("svc", 10)

	tests := []struct {
		traffic string
		want    float64
	}{
		{config.TrafficLow, 10},
		{config.TrafficMedium, 20},
		{config.TrafficHigh, 40},
		{"", 20}, // unknown tier falls back to medium
	}
	for _, tt := range tests {
		got, ok := ranker.EstimateMonthlyCost(cand, tt.traffic)
		if !ok || got != tt.want {
			t.Errorf("EstimateMonthlyCost(%q) = %.0f/%v, want %.0f", tt.traffic, got, ok, tt.want)
		}
	}

	if _, ok := ranker.EstimateMonthlyCost(ranker.ServiceCandidate{ServiceID: "x"}, config.TrafficLow); ok {
		t.Error("no pricing data must report ok=false")
	}
}

func TestBudgetPenalty(t *testing.T) {
	cand := fixedPriceCandidate("svc", 90)
	within := rank(t, []ranker.ServiceCandidate{cand}, config.Requirements{Traffic: config.TrafficLow, BudgetMonthly: 500}, config.DefaultPreferences())
	breached := rank(t, []ranker.ServiceCandidate{cand}, config.Requirements{Traffic: config.TrafficLow, BudgetMonthly: 100}, config.DefaultPreferences())

	ws := within[0].Breakdown[ranker.CriterionCost]
	bs := breached[0].Breakdown[ranker.CriterionCost]
	if bs.Score >= ws.Score {
		t.Errorf("budget breach must cut the cost score: %.2f vs %.2f", bs.Score, ws.Score)
	}
	if len(bs.Warnings) == 0 {
		t.Error("budget breach should warn")
	}
}

func TestConfigurationBonuses(t *testing.T) {
	plain := fixedPriceCandidate("plain", 10)
	tuned := fixedPriceCandidate("tuned", 10)
	tuned.Config = map[string]bool{"auto_scaling": true, "multi_az": true, "backups": true}

	ranked := rank(t, []ranker.ServiceCandidate{plain, tuned},
		config.Requirements{Traffic: config.TrafficHigh}, config.DefaultPreferences())

	byID := map[string]ranker.RankedService{}
	for _, r := range ranked {
		byID[r.ServiceID] = r
	}
	if byID["tuned"].Breakdown[ranker.CriterionScalability].Score <= byID["plain"].Breakdown[ranker.CriterionScalability].Score {
		t.Error("auto-scaling must raise the scalability score")
	}
	if byID["tuned"].Breakdown[ranker.CriterionReliability].Score <= byID["plain"].Breakdown[ranker.CriterionReliability].Score {
		t.Error("multi-AZ and backups must raise the reliability score")
	}
}
