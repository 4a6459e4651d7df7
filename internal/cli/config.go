package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
)

// Config is the on-disk configuration, read from
// ~/.config/tfdiagram/config.toml. Every field is optional; unset fields
// fall back to the built-in defaults and flags override both.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Server   ServerConfig   `toml:"server"`
}

// DefaultsConfig overrides the built-in layout defaults.
type DefaultsConfig struct {
	Layout         string   `toml:"layout"`
	FlowDirection  string   `toml:"flow_direction"`
	GroupBy        string   `toml:"group_by"`
	Theme          string   `toml:"theme"`
	ShowZones      *bool    `toml:"show_zones"`
	CompactMode    *bool    `toml:"compact_mode"`
	MaxConnections int      `toml:"max_connections"`
	Width          float64  `toml:"width"`
	Height         float64  `toml:"height"`
	Padding        *float64 `toml:"padding"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// configPath returns the config file location.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfig reads the config file. A missing file yields the zero Config
// without error.
func loadConfig() (Config, error) {
	var cfg Config
	path, err := configPath()
	if err != nil {
		return cfg, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// baseOptions resolves the layout options a command starts from: built-in
// defaults overlaid with the config file. Flags are bound to the result,
// so they take precedence over both.
func baseOptions(cfg Config) diagram.Options {
	opts := diagram.DefaultOptions()
	d := cfg.Defaults

	if d.Layout != "" {
		opts.Layout = d.Layout
	}
	if d.FlowDirection != "" {
		opts.FlowDirection = d.FlowDirection
	}
	if d.GroupBy != "" {
		opts.GroupBy = d.GroupBy
	}
	if d.Theme != "" {
		opts.Theme = d.Theme
	}
	if d.ShowZones != nil {
		opts.ShowZones = *d.ShowZones
	}
	if d.CompactMode != nil {
		opts.CompactMode = *d.CompactMode
	}
	if d.MaxConnections > 0 {
		opts.MaxConnectionsPerResource = d.MaxConnections
	}
	if d.Width > 0 {
		opts.Width = d.Width
	}
	if d.Height > 0 {
		opts.Height = d.Height
	}
	if d.Padding != nil {
		opts.Padding = *d.Padding
	}
	return opts
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective default options",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts := baseOptions(cfg)

			printKeyValue("layout", opts.Layout)
			printKeyValue("direction", opts.FlowDirection)
			printKeyValue("group-by", opts.GroupBy)
			printKeyValue("theme", opts.Theme)
			printKeyValue("show-zones", fmt.Sprintf("%t", opts.ShowZones))
			printKeyValue("compact", fmt.Sprintf("%t", opts.CompactMode))
			printKeyValue("max-connections", fmt.Sprintf("%d", opts.MaxConnectionsPerResource))
			printKeyValue("canvas", fmt.Sprintf("%.0fx%.0f", opts.Width, opts.Height))
			printKeyValue("padding", fmt.Sprintf("%.0f", opts.Padding))
			return nil
		},
	})

	return cmd
}
