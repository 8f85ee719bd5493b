// Package recommend turns candidate architectures and their ranked services
// into the final ordered recommendations, plus derived insights, trade-offs
// and optimization suggestions. This stage performs no new criterion scoring;
// it only folds preferences into a suitability ordering and summarizes the
// breakdowns the ranker already computed.
package recommend

import (
	"fmt"
	"sort"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/analyzer"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/matcher"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/ranker"
)

// CostEstimate is the aggregate monthly cost of one recommendation. Low and
// High bracket the traffic-adjusted service estimates.
type CostEstimate struct {
	MonthlyLow       float64 `json:"monthly_low"`
	MonthlyHigh      float64 `json:"monthly_high"`
	FreeTierEligible bool    `json:"free_tier_eligible"`
}

// Recommendation is a named architecture variant with its ranked services,
// aggregate cost and the suitability score used for final ordering.
type Recommendation struct {
	PatternID       string                 `json:"pattern_id"`
	VariantID       string                 `json:"variant_id,omitempty"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description,omitempty"`
	Axis            string                 `json:"axis,omitempty"`
	Services        []ranker.RankedService `json:"services"`
	Cost            CostEstimate           `json:"cost"`
	Suitability     float64                `json:"suitability"`
	Tier            string                 `json:"tier"`
	Confidence      float64                `json:"confidence"`
	Reasons         []string               `json:"reasons,omitempty"`
	Warnings        []string               `json:"warnings,omitempty"`
	Pros            []string               `json:"pros,omitempty"`
	Cons            []string               `json:"cons,omitempty"`
	Characteristics map[string]string      `json:"characteristics,omitempty"`
}

// Insight is a human-readable observation derived from the score breakdowns.
type Insight struct {
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	Services []string `json:"services,omitempty"`
}

// TradeOff surfaces that two desirable qualities pull toward different
// services, so no single option dominates.
type TradeOff struct {
	Between []string `json:"between"`
	Message string   `json:"message"`
}

// Suggestion is a concrete corrective action conditioned on the user's
// preference weights.
type Suggestion struct {
	Action   string   `json:"action"`
	Message  string   `json:"message"`
	Services []string `json:"services,omitempty"`
}

// Report is the engine's full output.
type Report struct {
	Recommendations []Recommendation `json:"recommendations"`
	Insights        []Insight        `json:"insights,omitempty"`
	TradeOffs       []TradeOff       `json:"trade_offs,omitempty"`
	Suggestions     []Suggestion     `json:"suggestions,omitempty"`
}

// Generate ranks each candidate architecture's services, orders the variants
// by suitability and derives the report's insights from the breakdowns.
func Generate(candidates []matcher.CandidateArchitecture, analysis *analyzer.AnalysisResult, reqs config.Requirements, prefs config.Preferences, tun config.RankingTunables) Report {
	reqs = reqs.Normalize()
	prefs = prefs.Normalize()

	rctx := ranker.Context{
		AppType:         analysis.AppType.Primary.ID,
		InfraComplexity: analysis.Infrastructure.Complexity,
	}

	recs := make([]Recommendation, 0, len(candidates))
	for _, cand := range candidates {
		ranked := ranker.RankServices(cand.Services, reqs, prefs, rctx, tun)
		rec := Recommendation{
			PatternID:       cand.PatternID,
			VariantID:       cand.VariantID,
			Name:            cand.Name,
			Description:     cand.Description,
			Axis:            cand.Axis,
			Services:        ranked,
			Cost:            aggregateCost(ranked, reqs.Traffic),
			Suitability:     suitability(cand, ranked, prefs),
			Confidence:      cand.Confidence,
			Reasons:         cand.Reasons,
			Warnings:        cand.Warnings,
			Pros:            cand.Pros,
			Cons:            cand.Cons,
			Characteristics: cand.Characteristics,
		}
		rec.Tier = ranker.TierFor(rec.Suitability, tun)
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Suitability > recs[j].Suitability })

	all := allServices(recs)
	return Report{
		Recommendations: recs,
		Insights:        deriveInsights(all, reqs, prefs),
		TradeOffs:       deriveTradeOffs(all),
		Suggestions:     deriveSuggestions(all, reqs, prefs),
	}
}

// suitability folds the user's optimization axis into the mean service score:
// a variant on the preferred axis gets a flat bump, and the matcher's own
// pattern score contributes alongside the service mean.
func suitability(cand matcher.CandidateArchitecture, ranked []ranker.RankedService, prefs config.Preferences) float64 {
	var mean float64
	if len(ranked) > 0 {
		var sum float64
		for _, s := range ranked {
			sum += s.Overall
		}
		mean = sum / float64(len(ranked))
	}

	s := 0.7*mean + 0.3*cand.Score
	if cand.Axis != "" && cand.Axis == prefs.Priority {
		s += 0.05
	}
	if s > 1 {
		s = 1
	}
	return s
}

func aggregateCost(ranked []ranker.RankedService, traffic string) CostEstimate {
	var total float64
	free := len(ranked) > 0
	for _, s := range ranked {
		est, ok := ranker.EstimateMonthlyCost(s.ServiceCandidate, traffic)
		if ok {
			total += est
		}
		if s.Definition == nil || s.Definition.Pricing == nil || !s.Definition.Pricing.FreeTier {
			free = false
		}
	}
	return CostEstimate{
		MonthlyLow:       0.75 * total,
		MonthlyHigh:      1.5 * total,
		FreeTierEligible: free,
	}
}

// allServices deduplicates the ranked services across recommendations,
// keeping the first (deterministic) occurrence of each service ID.
func allServices(recs []Recommendation) []ranker.RankedService {
	seen := map[string]bool{}
	var out []ranker.RankedService
	for _, rec := range recs {
		for _, s := range rec.Services {
			if seen[s.ServiceID] {
				continue
			}
			seen[s.ServiceID] = true
			out = append(out, s)
		}
	}
	return out
}

func deriveInsights(services []ranker.RankedService, reqs config.Requirements, prefs config.Preferences) []Insight {
	var insights []Insight

	// Cost spread across the considered services.
	var lo, hi float64
	first := true
	for _, s := range services {
		est, ok := ranker.EstimateMonthlyCost(s.ServiceCandidate, reqs.Traffic)
		if !ok {
			continue
		}
		if first || est < lo {
			lo = est
		}
		if first || est > hi {
			hi = est
		}
		first = false
	}
	if !first && hi > 0 {
		insights = append(insights, Insight{
			Kind:    "cost-spread",
			Message: fmt.Sprintf("monthly service estimates range from $%.0f to $%.0f at %s traffic", lo, hi, reqs.Traffic),
		})
	}

	// Complexity pressure under a low tolerance.
	if prefs.ComplexityTolerance <= 2 {
		var complex []string
		for _, s := range services {
			if s.Definition != nil && s.Definition.Complexity >= 4 {
				complex = append(complex, s.ServiceID)
			}
		}
		if len(complex) > 0 {
			insights = append(insights, Insight{
				Kind:     "complexity",
				Message:  "some candidate services are operationally complex despite a low complexity tolerance",
				Services: complex,
			})
		}
	}

	// Scalability pressure under high traffic.
	if reqs.Traffic == config.TrafficHigh {
		var weak []string
		for _, s := range services {
			if s.Definition != nil && s.Definition.Scalability < 5 {
				weak = append(weak, s.ServiceID)
			}
		}
		if len(weak) > 0 {
			insights = append(insights, Insight{
				Kind:     "scalability",
				Message:  "high traffic demands maximum scalability; some candidates fall short",
				Services: weak,
			})
		}
	}

	return insights
}

// deriveTradeOffs looks for disjoint sets between competing qualities: when
// no high-performance candidate is also low-cost, or no simple candidate is
// also highly scalable, the user has a real decision to make.
func deriveTradeOffs(services []ranker.RankedService) []TradeOff {
	var tradeOffs []TradeOff

	highPerf := map[string]bool{}
	lowCost := map[string]bool{}
	simple := map[string]bool{}
	flexible := map[string]bool{}
	for _, s := range services {
		if s.Breakdown[ranker.CriterionPerformance].Score >= 0.8 {
			highPerf[s.ServiceID] = true
		}
		if s.Breakdown[ranker.CriterionCost].Score >= 0.8 {
			lowCost[s.ServiceID] = true
		}
		if s.Breakdown[ranker.CriterionComplexity].Score >= 0.7 {
			simple[s.ServiceID] = true
		}
		if s.Breakdown[ranker.CriterionScalability].Score >= 0.9 {
			flexible[s.ServiceID] = true
		}
	}

	if len(highPerf) > 0 && len(lowCost) > 0 && disjoint(highPerf, lowCost) {
		tradeOffs = append(tradeOffs, TradeOff{
			Between: []string{"performance", "cost"},
			Message: "no candidate is both high-performance and low-cost; pick which matters more",
		})
	}
	if len(simple) > 0 && len(flexible) > 0 && disjoint(simple, flexible) {
		tradeOffs = append(tradeOffs, TradeOff{
			Between: []string{"simplicity", "flexibility"},
			Message: "the simplest candidates are not the most scalable ones",
		})
	}
	return tradeOffs
}

func disjoint(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return false
		}
	}
	return true
}

func deriveSuggestions(services []ranker.RankedService, reqs config.Requirements, prefs config.Preferences) []Suggestion {
	var suggestions []Suggestion

	if prefs.Priority == config.PriorityCost {
		var pricey []string
		for _, s := range services {
			est, ok := ranker.EstimateMonthlyCost(s.ServiceCandidate, reqs.Traffic)
			if ok && est > 50 {
				pricey = append(pricey, s.ServiceID)
			}
		}
		if len(pricey) > 0 {
			suggestions = append(suggestions, Suggestion{
				Action:   "replace-expensive-services",
				Message:  "cost is the stated priority; consider usage-based alternatives for the most expensive services",
				Services: pricey,
			})
		}
	}

	if prefs.PerformanceLevel == "high" {
		var uncached []string
		for _, s := range services {
			if s.Definition != nil && s.Definition.Category == "database" && !s.Config["caching"] {
				uncached = append(uncached, s.ServiceID)
			}
		}
		if len(uncached) > 0 {
			suggestions = append(suggestions, Suggestion{
				Action:   "add-cache-layer",
				Message:  "a cache in front of the database would help meet the high performance requirement",
				Services: uncached,
			})
		}
	}

	if prefs.ComplexityTolerance <= 2 {
		var complex []string
		for _, s := range services {
			if s.Definition != nil && s.Definition.Complexity >= 4 {
				complex = append(complex, s.ServiceID)
			}
		}
		if len(complex) > 0 {
			suggestions = append(suggestions, Suggestion{
				Action:   "prefer-managed-alternatives",
				Message:  "swap the most complex services for managed alternatives to match the low complexity tolerance",
				Services: complex,
			})
		}
	}

	return suggestions
}
