package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/analyzer"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/catalog"
	"github.com/Eamateli/aws-deploy-assistant-sub002/pkg/config"
)

const Version = "1.0.0"

var (
	jsonOutput  bool
	verbose     bool
	configPath  string
	description string

	logoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9900")).Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

const Logo = `
██████╗ ███████╗██████╗ ██╗      ██████╗ ██╗   ██╗ █████╗ ███████╗███████╗██╗███████╗████████╗
██╔══██╗██╔════╝██╔══██╗██║     ██╔═══██╗╚██╗ ██╔╝██╔══██╗██╔════╝██╔════╝██║██╔════╝╚══██╔══╝
██║  ██║█████╗  ██████╔╝██║     ██║   ██║ ╚████╔╝ ███████║███████╗███████╗██║███████╗   ██║
██║  ██║██╔══╝  ██╔═══╝ ██║     ██║   ██║  ╚██╔╝  ██╔══██║╚════██║╚════██║██║╚════██║   ██║
██████╔╝███████╗██║     ███████╗╚██████╔╝   ██║   ██║  ██║███████║███████║██║███████║   ██║
╚═════╝ ╚══════╝╚═╝     ╚══════╝ ╚═════╝    ╚═╝   ╚═╝  ╚═╝╚══════╝╚══════╝╚═╝╚══════╝   ╚═╝
`

var rootCmd = &cobra.Command{
	Use:   "deployassist",
	Short: "Analyze an application and rank AWS deployment architectures",
	Long: Logo + `
Deploy Assistant reads a project (or a free-text description), detects the
framework, application shape and infrastructure requirements, and ranks
candidate AWS architectures with cost and deployment metadata.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runAnalyze,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("deployassist version {{.Version}}\n")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(recommendCmd)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose stage logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a tunables config file")
	rootCmd.PersistentFlags().StringVarP(&description, "description", "d", "", "Free-text description of the application")
}

// ruleLoader is the process-wide catalog handle: one memoized load shared by
// every command in this invocation.
var ruleLoader = catalog.NewLoader()

// newAnalyzer wires the shared pipeline pieces: the catalog loader handle and
// tunables layered from config file and env.
func newAnalyzer() (*analyzer.Analyzer, config.Tunables, error) {
	tun, err := config.LoadTunables(configPath)
	if err != nil {
		return nil, config.Tunables{}, err
	}
	return analyzer.New(ruleLoader, tun), tun, nil
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

func isTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return os.Getenv("TERM") != ""
}
