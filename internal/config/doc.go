// Package config provides user configuration management for autodm.
//
// Settings live in a YAML file in the OS-specific configuration directory and can be
// overridden with AUTODM_* environment variables:
//   - Linux: $XDG_CONFIG_HOME/autodm/config.yaml or $HOME/.config/autodm/config.yaml
//   - macOS: $HOME/.config/autodm/config.yaml
//   - Windows: %LOCALAPPDATA%\autodm\config.yaml
//
// The package also loads optional post catalogs, which replace the built-in demo posts.
//
// # Usage Example
//
//	settings, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	posts, err := settings.Posts()
//
//	settings.RecordServer("autodm-preview", "192.168.1.20", 8480)
//	if err := settings.Save(); err != nil {
//	    return err
//	}
//
// Save writes to a temporary file and renames it, so a crash never leaves a
// half-written config behind.
package config
