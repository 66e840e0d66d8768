package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/config"
	"github.com/muurk/autodm/internal/discovery"
	"github.com/muurk/autodm/internal/logging"
	"github.com/muurk/autodm/internal/server"
	"github.com/muurk/autodm/internal/session"
	"github.com/muurk/autodm/internal/ui"
	"github.com/muurk/autodm/internal/wizard/tui"
)

// Command flags
var (
	runPost     string
	runKeywords []string
	runMessages []string
	runScript   string
	runPreview  bool
	runNoFinish bool

	scanTimeout time.Duration
	scanNoSave  bool

	serveHost      string
	servePort      int
	serveAdvertise bool
	serveInstance  string

	initForce bool
)

func init() {
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// wizardCmd launches the interactive TUI wizard
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch interactive configuration wizard",
	Long: `Launch an interactive TUI wizard for configuring an automation.

The wizard shows the editing panels on the left and a phone preview of
what commenters will see on the right:
- Choosing the post that triggers the automation
- Adding the keywords a comment must contain
- Writing the DMs sent after the opening message

When the setup is completed the automation is printed in the selected format.

This is the recommended way to configure automations for most users.`,
	Example: `  # Launch the wizard
  autodm wizard
  # Or simply (wizard is default):
  autodm

  # Print the result as JSON when the wizard exits
  autodm --format json`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	format, err := resultFormat()
	if err != nil {
		return err
	}

	sess, err := newSession()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewAppModel(sess), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}

	app, ok := final.(tui.AppModel)
	if !ok || app.Result == nil {
		return nil
	}
	return app.Result.Encode(cmd.OutOrStdout(), format)
}

// runCmd drives a session without the TUI
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Configure an automation non-interactively",
	Long: `Configure an automation from flags or a command script without the wizard.

Each --keyword is submitted as one comment (commas separate words), each
--message as one custom DM. The run prints a line per command, the stage
progress and the assembled automation.

A script is a YAML list of session commands, the same commands accepted by
the preview server:

  - type: select_post
    post_id: "2"
  - type: submit_comment
    text: link, info
  - type: advance
  - type: submit_message
    text: Here it is https://example.com
  - type: complete`,
	Example: `  # Any comment on post 2 gets the DM
  autodm run --post 2 --message "Here is the link: https://example.com"

  # Only comments containing "link" or "info", printed as JSON
  autodm run --post 2 --keyword "link,info" --message "https://example.com" --format json

  # Show the phone preview after every stage change
  autodm run --post 1 --keyword guide --preview

  # Replay a command script
  autodm run --script commands.yaml`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runPost, "post", "", "Post ID that triggers the automation")
	runCmd.Flags().StringArrayVar(&runKeywords, "keyword", nil, "Comment keywords, repeatable (commas separate words)")
	runCmd.Flags().StringArrayVar(&runMessages, "message", nil, "Custom DM sent after the opening message, repeatable")
	runCmd.Flags().StringVar(&runScript, "script", "", "YAML file with session commands (replaces --post, --keyword and --message)")
	runCmd.Flags().BoolVar(&runPreview, "preview", false, "Print the phone preview after every stage change")
	runCmd.Flags().BoolVar(&runNoFinish, "no-complete", false, "Stop before completing the setup")
	runCmd.MarkFlagsMutuallyExclusive("script", "post")
}

func runRun(cmd *cobra.Command, args []string) error {
	format, err := resultFormat()
	if err != nil {
		return err
	}

	var cmds []session.Command
	if runScript != "" {
		cmds, err = loadScript(runScript)
	} else {
		cmds, err = buildCommands(runPost, runKeywords, runMessages, !runNoFinish)
	}
	if err != nil {
		return err
	}

	sess, err := newSession()
	if err != nil {
		return err
	}

	// Structured output goes to stdout on its own so it can be piped
	progressOut := cmd.OutOrStdout()
	if format == automation.FormatJSON || format == automation.FormatYAML {
		progressOut = cmd.ErrOrStderr()
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:       "Automation Run",
		Command:     "autodm " + strings.Join(os.Args[1:], " "),
		Params:      runParams(sess, len(cmds)),
		Output:      progressOut,
		ShowPreview: runPreview,
	})

	cfg, err := runner.Run(cmd.Context(), sess, cmds)
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}

	if progressOut == cmd.OutOrStdout() {
		fmt.Fprintln(progressOut)
	}
	return cfg.Encode(cmd.OutOrStdout(), format)
}

// buildCommands turns the run flags into session commands
func buildCommands(postID string, keywords, messages []string, complete bool) ([]session.Command, error) {
	if postID == "" {
		return nil, fmt.Errorf("--post is required (list the available posts: autodm posts)")
	}

	cmds := []session.Command{{Type: session.CmdSelectPost, PostID: postID}}
	for _, k := range keywords {
		cmds = append(cmds, session.Command{Type: session.CmdSubmitComment, Text: k})
	}
	cmds = append(cmds, session.Command{Type: session.CmdAdvance})
	for _, m := range messages {
		cmds = append(cmds, session.Command{Type: session.CmdSubmitMessage, Text: m})
	}
	if complete {
		cmds = append(cmds, session.Command{Type: session.CmdComplete})
	}
	return cmds, nil
}

// loadScript reads a YAML list of session commands
func loadScript(path string) ([]session.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	var cmds []session.Command
	if err := yaml.Unmarshal(data, &cmds); err != nil {
		return nil, fmt.Errorf("failed to parse script %s: %w", path, err)
	}
	if len(cmds) == 0 {
		return nil, fmt.Errorf("script %s has no commands", path)
	}
	return cmds, nil
}

func runParams(sess *session.Session, commands int) []ui.Param {
	params := []ui.Param{
		{Key: "Sender", Value: "@" + sess.BotName()},
		{Key: "Commands", Value: humanize.Comma(int64(commands))},
	}
	if settings.Catalog != "" {
		params = append(params, ui.Param{Key: "Catalog", Value: settings.Catalog})
	}
	return params
}

// postsCmd lists the catalog
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List the posts that can trigger an automation",
	Long: `List the posts of the configured catalog.

The built-in demo catalog is used unless a catalog file is configured with
the 'catalog' setting or AUTODM_CATALOG.`,
	Example: `  # Table for the terminal
  autodm posts

  # Machine-readable output
  autodm posts --format json
  autodm posts --format yaml > catalog.yaml`,
	RunE: runPosts,
}

func runPosts(cmd *cobra.Command, args []string) error {
	posts, err := settings.Posts()
	if err != nil {
		return err
	}

	switch outputFormat {
	case automation.FormatJSON:
		return encode(cmd.OutOrStdout(), outputFormat, config.CatalogFile{Posts: posts})
	case automation.FormatYAML:
		return config.WriteCatalog(cmd.OutOrStdout(), posts)
	case "", "table", automation.FormatText:
		ui.NewPrinter(cmd.OutOrStdout()).PrintPosts(posts)
		return nil
	default:
		return fmt.Errorf("invalid format %q (expected table, json or yaml)", outputFormat)
	}
}

// scanCmd discovers preview servers on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for preview servers on the network",
	Long: `Scan for running autodm preview servers using mDNS/DNS-SD discovery.

Servers started with --advertise announce themselves as _autodm._tcp.
Every server found is remembered in the config file.`,
	Example: `  # Scan with the configured timeout (5 seconds by default)
  autodm scan

  # Longer scan for busy networks
  autodm scan --timeout 15s`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 0, "Scan timeout (default from config)")
	scanCmd.Flags().BoolVar(&scanNoSave, "no-save", false, "Do not remember found servers in the config file")
}

func runScan(cmd *cobra.Command, args []string) error {
	timeout := scanTimeout
	if timeout <= 0 {
		timeout = settings.Discovery.Timeout()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanning for preview servers (timeout: %s)...\n\n", timeout)

	instances, err := discovery.Scan(cmd.Context(), timeout)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(instances) == 0 {
		fmt.Fprintln(out, "No preview servers found.")
		fmt.Fprintln(out, "\nTroubleshooting:")
		fmt.Fprintln(out, "  - Start a server with: autodm serve --advertise")
		fmt.Fprintln(out, "  - Check that both machines are on the same network")
		fmt.Fprintln(out, "  - Try increasing --timeout for slower networks")
		return nil
	}

	fmt.Fprintf(out, "Found %d server(s):\n\n", len(instances))

	for i, inst := range instances {
		fmt.Fprintf(out, "%d. %s\n", i+1, inst.Name)
		fmt.Fprintf(out, "   Address: %s\n", inst.BaseURL())
		fmt.Fprintf(out, "   Feed:    %s\n", inst.WebSocketURL())
		if v := inst.Version(); v != "" {
			fmt.Fprintf(out, "   Version: %s\n", v)
		}
		fmt.Fprintln(out)

		settings.RecordServer(inst.Name, inst.IP, inst.Port)
	}

	if scanNoSave {
		return nil
	}
	if err := settings.Save(); err != nil {
		logging.Warn("Failed to remember discovered servers", zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not save config: %v\n", err)
	}
	return nil
}

// serveCmd runs the preview server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview server",
	Long: `Start an HTTP and WebSocket server around one configuration session.

Remote clients list posts, read the preview and send session commands:
  GET  /api/posts
  GET  /api/preview
  POST /api/commands
  GET  /ws            live preview feed, also accepts commands

Every command from every client is applied in order by a single goroutine.`,
	Example: `  # Serve on the configured address (127.0.0.1:8480 by default)
  autodm serve

  # Listen on all interfaces and announce over mDNS
  autodm serve --host 0.0.0.0 --advertise`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen address (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config)")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "Announce the server over mDNS")
	serveCmd.Flags().StringVar(&serveInstance, "instance", "", "mDNS instance name (default autodm-<hostname>)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := server.Config{
		Host:      settings.Server.Host,
		Port:      settings.Server.Port,
		Advertise: settings.Server.Advertise || serveAdvertise,
		Instance:  serveInstance,
	}
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	sess, err := newSession()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Preview server listening on %s:%d (Ctrl+C to stop)\n", cfg.Host, cfg.Port)
	return server.New(cfg, sess).Start(cmd.Context())
}

// configCmd manages the config file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), settings.Path())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long:  `Print the settings after applying the config file and AUTODM_* environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := outputFormat
		if format != automation.FormatJSON {
			format = automation.FormatYAML
		}
		return encode(cmd.OutOrStdout(), format, settings)
	},
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables that override settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := config.Describe()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), desc)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default settings",
	Example: `  # Create the default config file
  autodm config init

  # Overwrite an existing file without asking
  autodm config init --force`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file without confirmation")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEnvCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := settings.Path()

	if _, err := os.Stat(path); err == nil && !initForce {
		if !ui.ConfirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), path) {
			return nil
		}
	}

	fresh := config.NewSettings()
	fresh.SetPath(path)
	if err := fresh.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}

// encode writes v as JSON or YAML
func encode(w io.Writer, format string, v any) error {
	if format == automation.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
