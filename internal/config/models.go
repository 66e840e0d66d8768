package config

import "time"

// Settings represents the entire user configuration file.
//
// Every scalar can be overridden from the environment; the env tags are read by
// cleanenv after the YAML file, so the environment always wins.
type Settings struct {
	Version int `yaml:"version" env-default:"1"`

	// Catalog is an optional YAML file replacing the built-in demo posts
	Catalog string `yaml:"catalog,omitempty" env:"AUTODM_CATALOG" env-description:"path to a YAML post catalog"`

	Bot       BotSettings       `yaml:"bot"`
	Output    OutputSettings    `yaml:"output"`
	Log       LogSettings       `yaml:"log"`
	Server    ServerSettings    `yaml:"server"`
	Discovery DiscoverySettings `yaml:"discovery"`

	// Servers remembers preview servers found by scan, keyed by mDNS instance name
	Servers map[string]*KnownServer `yaml:"servers,omitempty"`

	path string
}

// BotSettings configures the automation account shown in the preview.
type BotSettings struct {
	Name string `yaml:"name" env:"AUTODM_BOT_NAME" env-default:"botspacehq" env-description:"account that sends the automated DMs"`
}

// OutputSettings configures how completed automations are printed.
type OutputSettings struct {
	Format string `yaml:"format" env:"AUTODM_OUTPUT_FORMAT" env-default:"text" env-description:"text, compact, detailed, json or yaml"`
}

// LogSettings configures zap logging. An empty level keeps logging silent.
type LogSettings struct {
	Level string `yaml:"level,omitempty" env:"AUTODM_LOG_LEVEL" env-description:"debug, info, warn or error"`
	File  string `yaml:"file,omitempty" env:"AUTODM_LOG_FILE" env-description:"write logs to this file instead of stdout"`
}

// ServerSettings configures the preview server.
type ServerSettings struct {
	Host string `yaml:"host" env:"AUTODM_SERVER_HOST" env-default:"127.0.0.1" env-description:"preview server listen address"`
	Port int    `yaml:"port" env:"AUTODM_SERVER_PORT" env-default:"8480" env-description:"preview server port"`
	// Advertise announces the server over mDNS
	Advertise bool `yaml:"advertise" env:"AUTODM_SERVER_ADVERTISE" env-description:"announce the server over mDNS"`
}

// DiscoverySettings configures mDNS browsing.
type DiscoverySettings struct {
	TimeoutSeconds int `yaml:"timeout_seconds" env:"AUTODM_DISCOVERY_TIMEOUT" env-default:"5" env-description:"mDNS browse timeout in seconds"`
}

// KnownServer is a preview server seen during discovery.
type KnownServer struct {
	Host     string    `yaml:"host"`
	Port     int       `yaml:"port"`
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// Timeout returns the discovery timeout as a duration
func (d DiscoverySettings) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Bot:     BotSettings{Name: "botspacehq"},
		Output:  OutputSettings{Format: "text"},
		Server: ServerSettings{
			Host: "127.0.0.1",
			Port: 8480,
		},
		Discovery: DiscoverySettings{TimeoutSeconds: 5},
		Servers:   make(map[string]*KnownServer),
	}
}

// RecordServer stores or refreshes a discovered preview server.
func (s *Settings) RecordServer(instance, host string, port int) {
	if s.Servers == nil {
		s.Servers = make(map[string]*KnownServer)
	}
	s.Servers[instance] = &KnownServer{
		Host:     host,
		Port:     port,
		LastSeen: time.Now(),
	}
}

// Path returns the file the settings were loaded from
func (s *Settings) Path() string {
	return s.path
}

// SetPath changes the file Save writes to
func (s *Settings) SetPath(path string) {
	s.path = path
}
