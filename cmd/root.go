package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scenescope/scenescope/cmd/parse"
	"github.com/scenescope/scenescope/cmd/validate"
	"github.com/scenescope/scenescope/cmd/version"
	"github.com/scenescope/scenescope/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "scenescope [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Scenescope is a script analysis and storyboarding toolchain.",
		Long: `Scenescope parses film and video scripts into scenes, runs analyzer plugins
over them to validate structure and continuity, and renders reports and
storyboards from the results.
`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(parse.ParseCmd)
	rootCmd.AddCommand(validate.ValidateCmd)
}

func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Printf("failed to initialize config - %v \n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	version.Init(AppConfig)
	parse.Init(AppConfig)
	validate.Init(AppConfig)
}
