package analyzer

import (
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/catalog"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
)

// DetectInfrastructure runs the independent per-capability scorers. Each
// capability's confidence is matches/indicators plus a flat bonus per strong
// indicator, capped at 1.0; confidence under the evidence floor is treated as
// no evidence at all. Database is a two-way race between the SQL and NoSQL
// indicator sets; the winner decides both the confidence and the subtype.
func DetectInfrastructure(c *Corpus, cat *catalog.Catalog, tun config.InfraTunables) InfraResult {
	caps := make(map[string]CapabilityRequirement, len(cat.Capabilities))
	complexity := 1

	for i := range cat.Capabilities {
		rule := &cat.Capabilities[i]

		var req CapabilityRequirement
		if len(rule.Subtypes) > 0 {
			req = scoreSubtypes(c, rule.Subtypes, tun)
		} else {
			conf, evidence := scoreIndicators(c, rule.Indicators, tun)
			req = CapabilityRequirement{Confidence: conf, Evidence: evidence}
		}

		if req.Confidence < tun.ReportThreshold {
			continue
		}
		req.Required = req.Confidence >= tun.RequiredThreshold
		caps[rule.ID] = req

		if req.Required {
			complexity += rule.Weight
		}
	}

	if complexity > 5 {
		complexity = 5
	}
	return InfraResult{Capabilities: caps, Complexity: complexity}
}

// scoreSubtypes races competing indicator sets; the higher-confidence subtype
// wins and labels the capability.
func scoreSubtypes(c *Corpus, subtypes []catalog.Subtype, tun config.InfraTunables) CapabilityRequirement {
	var best CapabilityRequirement
	for i := range subtypes {
		conf, evidence := scoreIndicators(c, subtypes[i].Indicators, tun)
		if conf > best.Confidence {
			best = CapabilityRequirement{
				Confidence: conf,
				Subtype:    subtypes[i].ID,
				Evidence:   evidence,
			}
		}
	}
	return best
}

func scoreIndicators(c *Corpus, indicators []catalog.Indicator, tun config.InfraTunables) (float64, []string) {
	if len(indicators) == 0 {
		return 0, nil
	}
	matched := 0
	strong := 0
	var evidence []string
	for i := range indicators {
		if indicators[i].Regexp().MatchString(c.Text) {
			matched++
			if indicators[i].Strong {
				strong++
			}
			evidence = append(evidence, indicators[i].Name)
		}
	}

	conf := float64(matched)/float64(len(indicators)) + tun.StrongBonus*float64(strong)
	conf = clamp(conf, 0, 1)
	if conf < tun.EvidenceFloor {
		return 0, nil
	}
	return conf, evidence
}
