package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Eamateli/aws-deploy-assistant-sub002/cmd/ui"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/analyzer"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/input"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [PROJECT_PATH]",
	Short: "Detect framework, application shape and infrastructure needs",
	Long: Logo + `
Analyze builds a searchable corpus from the project files and/or description,
runs the detection pipeline and prints the structured analysis.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	result, err := analyzeTarget(args)
	if err != nil {
		return err
	}

	if jsonOutput || !isTerminal() {
		return emitJSON(result)
	}
	fmt.Println(logoStyle.Render(Logo))
	fmt.Println(ui.RenderAnalysis(result))
	return nil
}

// analyzeTarget assembles the input (directory scan, description or both) and
// runs the pipeline.
func analyzeTarget(args []string) (*analyzer.AnalysisResult, error) {
	log := newLogger()

	var in analyzer.AnalysisInput
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return nil, fmt.Errorf("cannot access path %q: %w", args[0], err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("path %q is not a directory", args[0])
		}
		in, err = input.Collect(os.DirFS(args[0]), description)
		if err != nil {
			return nil, fmt.Errorf("reading project: %w", err)
		}
		log.WithField("files", len(in.Files)).Debug("collected project files")
	} else {
		in = analyzer.AnalysisInput{Description: description}
	}

	a, _, err := newAnalyzer()
	if err != nil {
		return nil, err
	}
	result, err := a.Analyze(in)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]any{
		"framework":  result.Framework.Primary.ID,
		"app_type":   result.AppType.Primary.ID,
		"confidence": fmt.Sprintf("%.2f", result.OverallConfidence),
	}).Debug("analysis complete")
	return result, nil
}

func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
