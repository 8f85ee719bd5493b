// Package matcher maps an analysis result to candidate architecture
// templates and derives cost/performance/simplicity variants from each by
// substituting services, while keeping every required capability covered.
package matcher

import (
	"fmt"
	"sort"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/analyzer"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/catalog"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/ranker"
)

// maxPatterns bounds how many templates are expanded into candidates.
const maxPatterns = 3

// CandidateArchitecture is one concrete architecture proposal: a pattern (or
// one of its variants) resolved to service candidates for the analyzed
// application.
type CandidateArchitecture struct {
	PatternID       string                    `json:"pattern_id"`
	VariantID       string                    `json:"variant_id,omitempty"`
	Name            string                    `json:"name"`
	Description     string                    `json:"description,omitempty"`
	Axis            string                    `json:"axis,omitempty"`
	Services        []ranker.ServiceCandidate `json:"services"`
	Confidence      float64                   `json:"confidence"`
	Score           float64                   `json:"score"`
	Reasons         []string                  `json:"reasons,omitempty"`
	Warnings        []string                  `json:"warnings,omitempty"`
	Pros            []string                  `json:"pros,omitempty"`
	Cons            []string                  `json:"cons,omitempty"`
	Characteristics map[string]string         `json:"characteristics,omitempty"`
}

// Match returns the candidate architectures for an analysis, ordered by
// descending score (ties keep catalog declaration order). Each of the top
// patterns contributes a base candidate plus any variants that survive the
// capability-coverage check.
func Match(analysis *analyzer.AnalysisResult, prefs config.Preferences, cat *catalog.Catalog) ([]CandidateArchitecture, error) {
	appType := analysis.AppType.Primary.ID
	patterns := cat.PatternsForAppType(appType)
	if len(patterns) == 0 {
		// Unknown or unmatched shape: fall back to every pattern rather than
		// returning nothing to rank.
		for i := range cat.Patterns {
			patterns = append(patterns, &cat.Patterns[i])
		}
	}
	if len(patterns) > maxPatterns {
		patterns = patterns[:maxPatterns]
	}

	required := requiredCapabilities(analysis)

	var out []CandidateArchitecture
	for _, p := range patterns {
		base, err := buildCandidate(p, nil, analysis, required, cat)
		if err != nil {
			return nil, err
		}
		out = append(out, base)

		for i := range p.Variants {
			v := &p.Variants[i]
			cand, err := buildCandidate(p, v, analysis, required, cat)
			if err != nil {
				return nil, err
			}
			if !coversAll(cand.Services, required) {
				// Substitution broke required coverage; the variant is not a
				// valid proposal for this analysis.
				continue
			}
			out = append(out, cand)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// requiredCapability is one capability the analysis marked required.
type requiredCapability struct {
	Name    string
	Subtype string
}

func requiredCapabilities(analysis *analyzer.AnalysisResult) []requiredCapability {
	names := make([]string, 0, len(analysis.Infrastructure.Capabilities))
	for name, req := range analysis.Infrastructure.Capabilities {
		if req.Required {
			names = append(names, name)
		}
	}
	sort.Strings(names) // map order must not leak into results

	out := make([]requiredCapability, 0, len(names))
	for _, name := range names {
		out = append(out, requiredCapability{
			Name:    name,
			Subtype: analysis.Infrastructure.Capabilities[name].Subtype,
		})
	}
	return out
}

// buildCandidate resolves a pattern (or one variant of it) to service
// candidates, appending catalog defaults for any required capability the
// service set leaves uncovered.
func buildCandidate(p *catalog.Pattern, v *catalog.Variant, analysis *analyzer.AnalysisResult, required []requiredCapability, cat *catalog.Catalog) (CandidateArchitecture, error) {
	ids := make([]string, 0, len(p.Services))
	ids = append(ids, p.Services...)

	name := p.Name
	axis := ""
	variantID := ""
	pros, cons := p.Pros, p.Cons
	if v != nil {
		variantID = v.ID
		name = v.Name
		axis = v.Axis
		ids = applyVariant(ids, v)
		if len(v.Pros) > 0 {
			pros = v.Pros
		}
		if len(v.Cons) > 0 {
			cons = v.Cons
		}
	}

	services, err := resolveServices(ids, cat)
	if err != nil {
		return CandidateArchitecture{}, err
	}

	var reasons, warnings []string
	reasons = append(reasons, fmt.Sprintf("%s serves %s applications", p.Name, analysis.AppType.Primary.DisplayName))

	// Cover required capabilities with catalog defaults.
	for _, rc := range required {
		if coversCapability(services, rc.Name) {
			continue
		}
		def, ok := lookupDefault(cat.CapabilityDefaults, rc)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("no service available for required capability %q", rc.Name))
			continue
		}
		svc, err := cat.Service(def)
		if err != nil {
			return CandidateArchitecture{}, fmt.Errorf("resolving default for capability %q: %w", rc.Name, err)
		}
		services = append(services, ranker.ServiceCandidate{ServiceID: svc.ID, Definition: svc})
		reasons = append(reasons, fmt.Sprintf("added %s for detected %s requirement", svc.Name, rc.Name))
	}

	covered := 0
	for _, rc := range required {
		if coversCapability(services, rc.Name) {
			covered++
		}
	}
	coverage := 1.0
	if len(required) > 0 {
		coverage = float64(covered) / float64(len(required))
	}

	return CandidateArchitecture{
		PatternID:       p.ID,
		VariantID:       variantID,
		Name:            name,
		Description:     p.Description,
		Axis:            axis,
		Services:        services,
		Confidence:      analysis.AppType.Primary.Confidence,
		Score:           0.6 + 0.4*coverage,
		Reasons:         reasons,
		Warnings:        warnings,
		Pros:            pros,
		Cons:            cons,
		Characteristics: p.Characteristics,
	}, nil
}

// applyVariant substitutes and appends service IDs. An empty substitution
// value drops the service.
func applyVariant(ids []string, v *catalog.Variant) []string {
	out := make([]string, 0, len(ids)+len(v.Additions))
	for _, id := range ids {
		if repl, ok := v.Substitutions[id]; ok {
			if repl != "" {
				out = append(out, repl)
			}
			continue
		}
		out = append(out, id)
	}
	return append(out, v.Additions...)
}

func resolveServices(ids []string, cat *catalog.Catalog) ([]ranker.ServiceCandidate, error) {
	out := make([]ranker.ServiceCandidate, 0, len(ids))
	for _, id := range ids {
		svc, err := cat.Service(id)
		if err != nil {
			return nil, err
		}
		out = append(out, ranker.ServiceCandidate{ServiceID: svc.ID, Definition: svc})
	}
	return out, nil
}

func lookupDefault(defaults map[string]string, rc requiredCapability) (string, bool) {
	if rc.Subtype != "" {
		if id, ok := defaults[rc.Name+"/"+rc.Subtype]; ok {
			return id, true
		}
	}
	id, ok := defaults[rc.Name]
	return id, ok
}

func coversCapability(services []ranker.ServiceCandidate, capability string) bool {
	for _, s := range services {
		if s.Definition != nil && s.Definition.Covers(capability) {
			return true
		}
	}
	return false
}

func coversAll(services []ranker.ServiceCandidate, required []requiredCapability) bool {
	for _, rc := range required {
		if !coversCapability(services, rc.Name) {
			return false
		}
	}
	return true
}
