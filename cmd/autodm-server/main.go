// Autodm-server exposes an autodm configuration session over HTTP and WebSocket.
//
// Remote clients (a web front end, a phone, another terminal) list posts, send
// session commands and receive the phone preview after every change. The
// server can announce itself over mDNS so 'autodm scan' finds it.
//
// Usage:
//
//	autodm-server serve [flags]
//
// See 'autodm-server serve --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/config"
	"github.com/muurk/autodm/internal/logging"
	"github.com/muurk/autodm/internal/server"
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

var rootCmd = &cobra.Command{
	Use:   "autodm-server",
	Short: "Autodm Preview Server",
	Long: `A standalone server for configuring comment-to-DM automations remotely.

All commands from all clients are applied to one session in the order they
arrive, and every connected client receives the updated preview.

Note: For interactive configuration, use the 'autodm' wizard.`,
	Version:      version.Get().Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Server command and flags
var (
	configPath string
	host       string
	port       int
	logLevel   string
	advertise  bool
	instance   string
	botName    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview server",
	Long: `Start the preview server around a fresh configuration session.

Endpoints:
  GET  /api/posts     catalog of posts
  GET  /api/preview   current preview descriptor
  POST /api/commands  apply one session command
  GET  /ws            live preview feed, also accepts commands
  GET  /healthz       liveness

Settings come from the autodm config file and AUTODM_* environment
variables; flags override both.`,
	Example: `  # Start on the configured address (127.0.0.1:8480 by default)
  autodm-server serve

  # Listen on all interfaces with debug logging
  autodm-server serve --host 0.0.0.0 --port 9000 --log-level debug

  # Announce the server so 'autodm scan' can find it
  autodm-server serve --host 0.0.0.0 --advertise --instance studio`,
	RunE: runServer,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/autodm/config.yaml)")
	serveCmd.Flags().StringVar(&host, "host", "", "Listen address (default from config)")
	serveCmd.Flags().IntVar(&port, "port", 0, "Listen port (default from config)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&advertise, "advertise", false, "Announce the server over mDNS")
	serveCmd.Flags().StringVar(&instance, "instance", "", "mDNS instance name (default autodm-<hostname>)")
	serveCmd.Flags().StringVar(&botName, "bot", "", "Account shown as the sender of automated DMs (default from config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logging.InitializeTo(logLevel, settings.Log.File); err != nil {
		return err
	}

	cfg := server.Config{
		Host:      settings.Server.Host,
		Port:      settings.Server.Port,
		Advertise: settings.Server.Advertise || advertise,
		Instance:  instance,
	}
	if host != "" {
		cfg.Host = host
	}
	if port != 0 {
		cfg.Port = port
	}
	if cfg.Port <= 0 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if botName != "" {
		settings.Bot.Name = botName
	}

	posts, err := settings.Posts()
	if err != nil {
		return err
	}
	store, err := catalog.NewStore(posts)
	if err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	sess := session.New(store, session.WithBotName(settings.Bot.Name))

	logging.Info("Starting preview server",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("posts", len(posts)),
		zap.String("version", version.Get().Version),
	)

	return server.New(cfg, sess).Start(cmd.Context())
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("autodm-server %s\n", version.Full())
	},
}
