package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pders01/factorlab/internal/config"
	"github.com/pders01/factorlab/internal/prompt"
	"github.com/pders01/factorlab/internal/ui"
	"github.com/pders01/factorlab/internal/workspace"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "factorlab",
	Short: "Turn annotated transcripts into datasets and run factor analysis",
	Long: `factorlab prepares social-science research data:
  - builds a CSV dataset from annotated text transcripts
  - extracts keywords per topic with a local embedding model
  - runs exploratory factor analysis with plots and a text report

Run without arguments for the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

// session carries the terminal and folders a workflow works with
type session struct {
	ws      *workspace.Workspace
	prompts prompt.Prompter
	console *ui.Console
}

// newSession is replaced in tests
var newSession = func() *session {
	return &session{
		ws:      config.GetWorkspace(),
		prompts: prompt.NewTerminal(),
		console: ui.NewConsole(),
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		msg := err.Error()
		if errors.Is(err, prompt.ErrAborted) {
			msg = "Aborting"
		}
		fmt.Fprintln(os.Stderr, ui.Alert(msg))
		os.Exit(1)
	}
}

// failed labels a workflow error for the final alert; aborts pass through
func failed(workflow string, err error) error {
	if err == nil || errors.Is(err, prompt.ErrAborted) {
		return err
	}
	return fmt.Errorf("%s failed: %w", workflow, err)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/factorlab/config.toml)")
}

// contextOf returns the command context, or a background context when the
// handler is called directly
func contextOf(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "factorlab"), nil
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(dir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("factorlab")
	viper.AutomaticEnv()
	config.SetDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

const menuExit = "Exit"

// menuEntry is one workflow reachable from the menu
type menuEntry struct {
	label string
	run   func(*cobra.Command, []string) error
}

func menu() []menuEntry {
	return []menuEntry{
		{"Build CSV", runBuild},
		{"Create Keywords", runKeywords},
		{"EFA Analysis", runAnalyze},
	}
}

// runMenu loops over the workflows until Exit. An interrupted workflow
// returns to the menu; a failed one ends the session.
func runMenu(cmd *cobra.Command, args []string) error {
	s := newSession()
	entries := menu()

	labels := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		labels = append(labels, e.label)
	}
	labels = append(labels, menuExit)

	for {
		choice, err := s.prompts.Select("What would you like to do", labels)
		if errors.Is(err, prompt.ErrAborted) || choice == menuExit {
			return nil
		}
		if err != nil {
			return err
		}

		s.console.Statusf("%s selected", choice)
		for _, e := range entries {
			if e.label != choice {
				continue
			}
			err := e.run(cmd, args)
			if errors.Is(err, prompt.ErrAborted) {
				s.console.Alertf("Aborting %s", choice)
				break
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(s.console.Out)
		}
	}
}
