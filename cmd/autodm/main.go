// Autodm configures comment-to-DM automations for Instagram posts.
//
// It provides an interactive wizard with a live phone preview, a scripted
// run command for automation and CI, a preview server for remote clients and
// mDNS discovery of running preview servers.
//
// Usage:
//
//	autodm [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'autodm --help' for available commands.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/config"
	"github.com/muurk/autodm/internal/logging"
	"github.com/muurk/autodm/internal/session"
	"github.com/muurk/autodm/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath   string
	outputFormat string
	logLevel     string
)

// settings is loaded once before any command runs
var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "autodm",
	Short: "Comment-to-DM automation configurator",
	Long: `Configure automations that send a direct message to everyone who comments
on a post, optionally only when the comment contains specific keywords.

The interactive wizard shows a live phone preview of what commenters will see.
Scripted runs, the preview server and discovery are available as subcommands.

If no command is specified, the interactive wizard will launch automatically.`,
	Version:           version.Get().Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runWizard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/autodm/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format (text, compact, detailed, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when empty")

	rootCmd.AddCommand(versionCmd)
}

// setup loads settings and initializes logging for every command
func setup(cmd *cobra.Command, args []string) error {
	s, err := config.Load(configPath)
	if err != nil {
		return err
	}
	settings = s

	level := logLevel
	if level == "" {
		level = s.Log.Level
	}

	// The wizard owns the terminal, so its logs always go to a file
	path := s.Log.File
	if interactive(cmd) && level != "" && path == "" {
		path = filepath.Join(os.TempDir(), "autodm.log")
	}

	return logging.InitializeTo(level, path)
}

// interactive reports whether cmd starts the wizard: the root itself or 'wizard'
func interactive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "wizard"
}

// resultFormat returns the format used to print a completed automation
func resultFormat() (string, error) {
	format := outputFormat
	if format == "" {
		format = settings.Output.Format
	}
	if !automation.ValidFormat(format) {
		return "", fmt.Errorf("invalid format %q (expected one of %v)", format, automation.Formats)
	}
	return format, nil
}

// newSession builds a session over the configured catalog
func newSession(opts ...session.Option) (*session.Session, error) {
	posts, err := settings.Posts()
	if err != nil {
		return nil, err
	}

	store, err := catalog.NewStore(posts)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	opts = append([]session.Option{session.WithBotName(settings.Bot.Name)}, opts...)
	return session.New(store, opts...), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		switch outputFormat {
		case automation.FormatJSON, automation.FormatYAML:
			return encode(cmd.OutOrStdout(), outputFormat, info)
		default:
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		}
	},
}
