// Package analyzer turns a free-text description and a set of uploaded source
// files into a structured analysis: detected framework, application shape and
// infrastructure requirements, each with a normalized confidence. The pipeline
// is pure and deterministic; the same input always yields the same result.
package analyzer

import "time"

// UnknownID is the terminal classification when no rule scores above zero.
const UnknownID = "unknown"

// InputFile is one uploaded file. Content is raw text; nothing is assumed
// about its format.
type InputFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// AnalysisInput is the external contract for one analysis request.
type AnalysisInput struct {
	Description string      `json:"description,omitempty"`
	Files       []InputFile `json:"files,omitempty"`
}

// Match is one scored classification. Score is the raw weighted category sum
// before boost/penalty adjustment; Confidence is the adjusted value clamped to
// [0,1].
type Match struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
	Confidence  float64 `json:"confidence"`
}

// DetectionResult is the shared output shape of the framework and
// application-type detectors. Alternatives are sorted by descending
// confidence and never include the primary.
type DetectionResult struct {
	Primary      Match   `json:"primary"`
	Alternatives []Match `json:"alternatives,omitempty"`
}

// Unknown reports whether the detector found no evidence at all.
func (d DetectionResult) Unknown() bool {
	return d.Primary.ID == UnknownID
}

// CapabilityRequirement is the verdict for one infrastructure capability.
// Required is a threshold function of Confidence; the two never disagree.
type CapabilityRequirement struct {
	Required   bool     `json:"required"`
	Confidence float64  `json:"confidence"`
	Subtype    string   `json:"subtype,omitempty"`
	Evidence   []string `json:"evidence,omitempty"`
}

// InfraResult aggregates the per-capability verdicts and an overall 1..5
// complexity score.
type InfraResult struct {
	Capabilities map[string]CapabilityRequirement `json:"capabilities"`
	Complexity   int                              `json:"complexity"`
}

// AnalysisResult is the sole contract consumed by the architecture matcher.
// It is created once per request and never mutated; the shape survives a JSON
// round-trip so downstream layers can persist and re-render it.
type AnalysisResult struct {
	Framework         DetectionResult `json:"framework"`
	AppType           DetectionResult `json:"app_type"`
	Infrastructure    InfraResult     `json:"infrastructure"`
	OverallConfidence float64         `json:"overall_confidence"`
	Timestamp         time.Time       `json:"timestamp"`
}

func unknownResult() DetectionResult {
	return DetectionResult{Primary: Match{ID: UnknownID, DisplayName: "Unknown"}}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
