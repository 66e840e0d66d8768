package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/autodm/internal/automation"
	"github.com/muurk/autodm/internal/config"
	"github.com/muurk/autodm/internal/remote"
	"github.com/muurk/autodm/internal/server"
	"github.com/muurk/autodm/internal/session"
	"github.com/muurk/autodm/internal/ui"
)

var remoteServer string

// remoteCmd groups commands that drive a running preview server
var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Drive a running preview server",
	Long: `Inspect and drive the session of a running preview server.

The server is taken from --server, or from the config file when 'autodm scan'
has recorded exactly one server.`,
}

var remotePostsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List the server's posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := remoteClient()
		if err != nil {
			return err
		}
		posts, err := c.Posts(cmd.Context())
		if err != nil {
			return remoteError(err)
		}

		switch outputFormat {
		case automation.FormatJSON:
			return encode(cmd.OutOrStdout(), outputFormat, config.CatalogFile{Posts: posts})
		case automation.FormatYAML:
			return config.WriteCatalog(cmd.OutOrStdout(), posts)
		default:
			ui.NewPrinter(cmd.OutOrStdout()).PrintPosts(posts)
			return nil
		}
	},
}

var remotePreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the server's current preview",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := remoteClient()
		if err != nil {
			return err
		}
		u, err := c.Preview(cmd.Context())
		if err != nil {
			return remoteError(err)
		}
		return printUpdate(cmd.OutOrStdout(), *u)
	},
}

var remoteSendCmd = &cobra.Command{
	Use:   "send <command> [post-id|text]",
	Short: "Apply one command to the server's session",
	Long: `Apply one session command and print the resulting preview.

Commands: select_post, set_keyword_draft, submit_comment, advance,
set_message_draft, submit_message, complete, reset.`,
	Example: `  autodm remote send select_post 2
  autodm remote send submit_comment "link, free"
  autodm remote send advance
  autodm remote send complete --format json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		command, err := parseCommand(args)
		if err != nil {
			return err
		}
		c, err := remoteClient()
		if err != nil {
			return err
		}
		u, err := c.Apply(cmd.Context(), command)
		if err != nil {
			return remoteError(err)
		}
		return printUpdate(cmd.OutOrStdout(), *u)
	},
}

var remoteWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the server's preview live",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := remoteClient()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n\n", c.BaseURL)

		err = c.Watch(cmd.Context(), func(u server.Update) error {
			return printUpdate(out, u)
		})
		if err != nil {
			return remoteError(err)
		}
		return nil
	},
}

func init() {
	remoteCmd.PersistentFlags().StringVar(&remoteServer, "server", "", "Preview server URL or host:port")

	remoteCmd.AddCommand(remotePostsCmd)
	remoteCmd.AddCommand(remotePreviewCmd)
	remoteCmd.AddCommand(remoteSendCmd)
	remoteCmd.AddCommand(remoteWatchCmd)

	rootCmd.AddCommand(remoteCmd)
}

// remoteClient picks the server from --server or the single recorded one
func remoteClient() (*remote.Client, error) {
	base, err := serverURL(remoteServer, settings.Servers)
	if err != nil {
		return nil, err
	}
	c := remote.NewClientWithURL(base)
	c.SetTimeout(settings.Discovery.Timeout() * 2)
	return c, nil
}

// serverURL resolves the --server flag. Without it, exactly one known server must exist.
func serverURL(flag string, known map[string]*config.KnownServer) (string, error) {
	if flag != "" {
		if !strings.Contains(flag, "://") {
			flag = "http://" + flag
		}
		u, err := url.Parse(flag)
		if err != nil || u.Host == "" {
			return "", fmt.Errorf("invalid --server %q", flag)
		}
		return strings.TrimRight(u.String(), "/"), nil
	}

	switch len(known) {
	case 0:
		return "", errors.New("no preview server known: pass --server or run 'autodm scan'")
	case 1:
		for _, s := range known {
			return remote.NewClient(s.Host, s.Port).BaseURL, nil
		}
	}

	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)
	return "", fmt.Errorf("several preview servers known (%s): pass --server", strings.Join(names, ", "))
}

// parseCommand builds a session command from 'send' arguments
func parseCommand(args []string) (session.Command, error) {
	cmd := session.Command{Type: session.CommandType(args[0])}
	arg := ""
	if len(args) > 1 {
		arg = args[1]
	}

	switch cmd.Type {
	case session.CmdSelectPost:
		if arg == "" {
			return cmd, errors.New("select_post needs a post id")
		}
		cmd.PostID = arg
	case session.CmdSetKeywordDraft, session.CmdSubmitComment,
		session.CmdSetMessageDraft, session.CmdSubmitMessage:
		cmd.Text = arg
	case session.CmdAdvance, session.CmdComplete, session.CmdReset:
		if arg != "" {
			return cmd, fmt.Errorf("%s takes no argument", cmd.Type)
		}
	default:
		return cmd, fmt.Errorf("unknown command %q", args[0])
	}
	return cmd, nil
}

// printUpdate prints a server update in the selected format
func printUpdate(w io.Writer, u server.Update) error {
	switch outputFormat {
	case automation.FormatJSON, automation.FormatYAML:
		return encode(w, outputFormat, u)
	}

	p := ui.NewPrinter(w)
	if u.Error != nil {
		p.PrintWarning(u.Error.Kind, ui.Param{Key: "Command", Value: u.Error.Command}, ui.Param{Key: "Reason", Value: u.Error.Message})
	}
	if u.Preview != nil {
		p.PrintPreview(*u.Preview)
	}
	if u.Result != nil {
		p.PrintSuccess("Automation ready", ui.Param{Key: "Summary", Value: u.Result.Summary()})
		p.Println(u.Result.FormatDetailed())
	}
	p.Newline()
	return nil
}

// remoteError turns a client error into a one-line message
func remoteError(err error) error {
	if remote.IsRejected(err) {
		var e *remote.Error
		errors.As(err, &e)
		return fmt.Errorf("%s: %s", e.Kind, e.Message)
	}
	return errors.New(remote.ShortMessage(err))
}
