package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Eamateli/aws-deploy-assistant-sub002/cmd/ui"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/matcher"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/recommend"
)

var (
	traffic     string
	budget      float64
	priority    string
	tolerance   int
	performance string
	criticality string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [PROJECT_PATH]",
	Short: "Analyze and rank candidate AWS architectures",
	Long: Logo + `
Recommend runs the full pipeline: detection, architecture matching, service
ranking and recommendation tiers, with insights and trade-offs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&traffic, "traffic", config.TrafficMedium, "Expected traffic tier (low, medium, high)")
	recommendCmd.Flags().Float64Var(&budget, "budget", 0, "Monthly budget in USD (0 for none)")
	recommendCmd.Flags().StringVar(&priority, "priority", config.PriorityBalanced, "Optimization priority (balanced, cost, performance, simplicity)")
	recommendCmd.Flags().IntVar(&tolerance, "complexity-tolerance", 3, "Operational complexity tolerance (1-5)")
	recommendCmd.Flags().StringVar(&performance, "performance", "medium", "Performance requirement (low, medium, high)")
	recommendCmd.Flags().StringVar(&criticality, "criticality", "", "Workload criticality (normal, high)")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	result, err := analyzeTarget(args)
	if err != nil {
		return err
	}

	tun, err := config.LoadTunables(configPath)
	if err != nil {
		return err
	}
	cat, err := ruleLoader.Load()
	if err != nil {
		return err
	}

	reqs := config.Requirements{
		Traffic:       traffic,
		BudgetMonthly: budget,
		Criticality:   criticality,
	}
	prefs := config.Preferences{
		Priority:            priority,
		ComplexityTolerance: tolerance,
		PerformanceLevel:    performance,
	}

	candidates, err := matcher.Match(result, prefs, cat)
	if err != nil {
		return fmt.Errorf("matching architectures: %w", err)
	}
	report := recommend.Generate(candidates, result, reqs, prefs, tun.Ranking)

	if jsonOutput || !isTerminal() {
		return emitJSON(report)
	}
	fmt.Println(logoStyle.Render(Logo))
	fmt.Println(ui.RenderAnalysis(result))
	fmt.Println(ui.RenderReport(report))
	return nil
}
