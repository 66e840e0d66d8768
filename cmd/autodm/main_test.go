package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/autodm/internal/config"
	"github.com/muurk/autodm/internal/session"
)

func TestBuildCommands(t *testing.T) {
	cmds, err := buildCommands("2", []string{"link, info"}, []string{"https://example.com"}, true)
	require.NoError(t, err)

	want := []session.Command{
		{Type: session.CmdSelectPost, PostID: "2"},
		{Type: session.CmdSubmitComment, Text: "link, info"},
		{Type: session.CmdAdvance},
		{Type: session.CmdSubmitMessage, Text: "https://example.com"},
		{Type: session.CmdComplete},
	}
	assert.Equal(t, want, cmds)
}

func TestBuildCommandsWithoutComplete(t *testing.T) {
	cmds, err := buildCommands("1", nil, nil, false)
	require.NoError(t, err)

	require.Len(t, cmds, 2)
	assert.Equal(t, session.CmdAdvance, cmds[1].Type)
}

func TestBuildCommandsRequiresPost(t *testing.T) {
	_, err := buildCommands("", []string{"link"}, nil, true)
	assert.ErrorContains(t, err, "--post is required")
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	script := `- type: select_post
  post_id: "3"
- type: submit_comment
  text: recipe
- type: advance
- type: complete
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0600))

	cmds, err := loadScript(path)
	require.NoError(t, err)
	require.Len(t, cmds, 4)
	assert.Equal(t, session.Command{Type: session.CmdSelectPost, PostID: "3"}, cmds[0])
	assert.Equal(t, "recipe", cmds[1].Text)
}

func TestLoadScriptEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0600))

	_, err := loadScript(path)
	assert.ErrorContains(t, err, "no commands")
}

func TestResultFormat(t *testing.T) {
	settings = config.NewSettings()
	t.Cleanup(func() { outputFormat = "" })

	outputFormat = ""
	format, err := resultFormat()
	require.NoError(t, err)
	assert.Equal(t, "text", format)

	outputFormat = "json"
	format, err = resultFormat()
	require.NoError(t, err)
	assert.Equal(t, "json", format)

	outputFormat = "xml"
	_, err = resultFormat()
	assert.Error(t, err)
}

func TestNewSessionUsesBotName(t *testing.T) {
	settings = config.NewSettings()
	settings.Bot.Name = "acme"

	sess, err := newSession()
	require.NoError(t, err)
	assert.Equal(t, "acme", sess.BotName())
	assert.Len(t, sess.Store().Posts(), 4)
}

func TestEncode(t *testing.T) {
	v := map[string]int{"posts": 4}

	var js bytes.Buffer
	require.NoError(t, encode(&js, "json", v))
	assert.JSONEq(t, `{"posts": 4}`, js.String())

	var ym bytes.Buffer
	require.NoError(t, encode(&ym, "yaml", v))
	assert.Equal(t, "posts: 4\n", ym.String())
}

func TestInteractive(t *testing.T) {
	root := &cobra.Command{Use: "autodm"}
	wizard := &cobra.Command{Use: "wizard"}
	posts := &cobra.Command{Use: "posts"}
	root.AddCommand(wizard, posts)

	assert.True(t, interactive(root))
	assert.True(t, interactive(wizard))
	assert.False(t, interactive(posts))
}
