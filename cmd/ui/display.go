// Package ui renders analysis and recommendation results for the terminal.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/analyzer"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/recommend"
)

var (
	titleStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#FF9900")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9900")).Bold(true)
	valueStyle   = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF9900")).
			Padding(1, 2).
			Width(72)
)

// RenderAnalysis formats an analysis result as a bordered summary box.
func RenderAnalysis(result *analyzer.AnalysisResult) string {
	var content strings.Builder

	content.WriteString(labelStyle.Render("Framework:"))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%s (%.0f%%)", result.Framework.Primary.DisplayName, result.Framework.Primary.Confidence*100)))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("App type:"))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%s (%.0f%%)", result.AppType.Primary.DisplayName, result.AppType.Primary.Confidence*100)))
	content.WriteString("\n")

	content.WriteString(labelStyle.Render("Complexity:"))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%d/5", result.Infrastructure.Complexity)))
	content.WriteString("\n")

	if len(result.Infrastructure.Capabilities) > 0 {
		content.WriteString("\n")
		content.WriteString(labelStyle.Render("Infrastructure:"))
		content.WriteString("\n")
		for _, name := range sortedCapabilities(result) {
			req := result.Infrastructure.Capabilities[name]
			marker := warnStyle.Render("  ~ ")
			if req.Required {
				marker = successStyle.Render("  ✓ ")
			}
			line := name
			if req.Subtype != "" {
				line += " (" + req.Subtype + ")"
			}
			content.WriteString(marker)
			content.WriteString(detailStyle.Render(fmt.Sprintf("%s %.0f%%", line, req.Confidence*100)))
			content.WriteString("\n")
		}
	}

	if len(result.Framework.Alternatives) > 0 {
		content.WriteString("\n")
		content.WriteString(labelStyle.Render("Could also be:"))
		content.WriteString("\n")
		for _, alt := range result.Framework.Alternatives {
			content.WriteString(detailStyle.Render(fmt.Sprintf("  %s (%.0f%%)", alt.DisplayName, alt.Confidence*100)))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(labelStyle.Render("Overall confidence:"))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%.0f%%", result.OverallConfidence*100)))

	return titleStyle.Render("Application Analysis") + "\n\n" + boxStyle.Render(content.String())
}

// RenderReport formats the ranked recommendations with their insights.
func RenderReport(report recommend.Report) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Recommended Architectures"))
	s.WriteString("\n\n")

	for i, rec := range report.Recommendations {
		var content strings.Builder
		content.WriteString(labelStyle.Render(fmt.Sprintf("#%d %s", i+1, rec.Name)))
		content.WriteString(valueStyle.Render(fmt.Sprintf("[%s, %.0f%%]", rec.Tier, rec.Suitability*100)))
		content.WriteString("\n")
		if rec.Description != "" {
			content.WriteString(detailStyle.Render(rec.Description))
			content.WriteString("\n")
		}
		content.WriteString(detailStyle.Render(fmt.Sprintf("Estimated cost: $%.0f-$%.0f/month", rec.Cost.MonthlyLow, rec.Cost.MonthlyHigh)))
		if rec.Cost.FreeTierEligible {
			content.WriteString(successStyle.Render("  (free tier eligible)"))
		}
		content.WriteString("\n\n")

		for _, svc := range rec.Services {
			content.WriteString(successStyle.Render("  • "))
			content.WriteString(detailStyle.Render(fmt.Sprintf("%s %.0f%% (%s)", svc.Definition.Name, svc.Overall*100, svc.Tier)))
			content.WriteString("\n")
		}
		for _, w := range rec.Warnings {
			content.WriteString(warnStyle.Render("  ! " + w))
			content.WriteString("\n")
		}

		s.WriteString(boxStyle.Render(content.String()))
		s.WriteString("\n\n")
	}

	if len(report.Insights) > 0 || len(report.TradeOffs) > 0 || len(report.Suggestions) > 0 {
		var notes strings.Builder
		for _, in := range report.Insights {
			notes.WriteString(detailStyle.Render("• " + in.Message))
			notes.WriteString("\n")
		}
		for _, t := range report.TradeOffs {
			notes.WriteString(warnStyle.Render("• " + t.Message))
			notes.WriteString("\n")
		}
		for _, sg := range report.Suggestions {
			notes.WriteString(detailStyle.Render("• " + sg.Message))
			notes.WriteString("\n")
		}
		s.WriteString(titleStyle.Render("Notes"))
		s.WriteString("\n\n")
		s.WriteString(boxStyle.Render(strings.TrimRight(notes.String(), "\n")))
	}

	return s.String()
}

func sortedCapabilities(result *analyzer.AnalysisResult) []string {
	names := make([]string, 0, len(result.Infrastructure.Capabilities))
	for name := range result.Infrastructure.Capabilities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
