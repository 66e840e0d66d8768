package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/autodm/internal/config"
	"github.com/muurk/autodm/internal/session"
)

func TestServerURL(t *testing.T) {
	one := map[string]*config.KnownServer{"studio": {Host: "192.168.1.20", Port: 8480}}
	two := map[string]*config.KnownServer{
		"studio": {Host: "192.168.1.20", Port: 8480},
		"desk":   {Host: "192.168.1.30", Port: 8480},
	}

	tests := []struct {
		name    string
		flag    string
		known   map[string]*config.KnownServer
		want    string
		wantErr string
	}{
		{name: "flag with scheme", flag: "http://localhost:9000/", want: "http://localhost:9000"},
		{name: "flag without scheme", flag: "localhost:9000", want: "http://localhost:9000"},
		{name: "flag wins over known", flag: "https://preview.example.com", known: two, want: "https://preview.example.com"},
		{name: "single known server", known: one, want: "http://192.168.1.20:8480"},
		{name: "nothing known", wantErr: "autodm scan"},
		{name: "ambiguous", known: two, wantErr: "desk, studio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := serverURL(tt.flag, tt.known)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand(t *testing.T) {
	cmd, err := parseCommand([]string{"select_post", "2"})
	require.NoError(t, err)
	assert.Equal(t, session.Command{Type: session.CmdSelectPost, PostID: "2"}, cmd)

	cmd, err = parseCommand([]string{"submit_comment", "link, free"})
	require.NoError(t, err)
	assert.Equal(t, "link, free", cmd.Text)

	cmd, err = parseCommand([]string{"advance"})
	require.NoError(t, err)
	assert.Equal(t, session.CmdAdvance, cmd.Type)

	_, err = parseCommand([]string{"select_post"})
	assert.Error(t, err)

	_, err = parseCommand([]string{"complete", "now"})
	assert.Error(t, err)

	_, err = parseCommand([]string{"publish"})
	assert.ErrorContains(t, err, "unknown command")
}
