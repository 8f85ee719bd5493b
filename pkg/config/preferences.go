package config

// Traffic tiers used for cost and scalability scoring.
const (
	TrafficLow    = "low"
	TrafficMedium = "medium"
	TrafficHigh   = "high"
)

// Optimization axes a user can prioritize.
const (
	PriorityBalanced    = "balanced"
	PriorityCost        = "cost"
	PriorityPerformance = "performance"
	PrioritySimplicity  = "simplicity"
)

// Requirements describes the workload the ranked services must carry.
type Requirements struct {
	Traffic       string  `json:"traffic"`
	BudgetMonthly float64 `json:"budget_monthly,omitempty"` // 0 means no budget
	Criticality   string  `json:"criticality,omitempty"`    // "", "normal" or "high"
}

// Preferences captures what the user is optimizing for.
type Preferences struct {
	Priority            string `json:"priority"`
	ComplexityTolerance int    `json:"complexity_tolerance"` // 1..5
	PerformanceLevel    string `json:"performance_level"`    // low, medium or high
}

// DefaultRequirements is a medium-traffic, non-critical workload with no
// budget cap.
func DefaultRequirements() Requirements {
	return Requirements{Traffic: TrafficMedium}
}

// DefaultPreferences is balanced with mid complexity tolerance.
func DefaultPreferences() Preferences {
	return Preferences{
		Priority:            PriorityBalanced,
		ComplexityTolerance: 3,
		PerformanceLevel:    "medium",
	}
}

// Normalize fills zero values with defaults and clamps the tolerance range.
func (p Preferences) Normalize() Preferences {
	if p.Priority == "" {
		p.Priority = PriorityBalanced
	}
	if p.ComplexityTolerance == 0 {
		p.ComplexityTolerance = 3
	}
	if p.ComplexityTolerance < 1 {
		p.ComplexityTolerance = 1
	}
	if p.ComplexityTolerance > 5 {
		p.ComplexityTolerance = 5
	}
	if p.PerformanceLevel == "" {
		p.PerformanceLevel = "medium"
	}
	return p
}

// Normalize fills zero values with defaults.
func (r Requirements) Normalize() Requirements {
	if r.Traffic == "" {
		r.Traffic = TrafficMedium
	}
	return r
}
