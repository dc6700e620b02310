package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	// ErrConfiguration is matched by every configuration failure
	ErrConfiguration = errors.New("configuration error")
	// ErrUsernameNotSet is returned when neither the file nor the CLI provide a username
	ErrUsernameNotSet = fmt.Errorf("%w: username is not configured: set username in ~/.config/fedora.toml or pass --username", ErrConfiguration)
)

const (
	DefaultBodhiURL = "https://bodhi.fedoraproject.org"
	DefaultTimeout  = time.Minute
	DefaultThrottle = time.Second
)

// Config is the resolved run configuration. It is built once at startup and
// passed explicitly; Merge returns a new value instead of mutating.
type Config struct {
	// Username is the FAS account whose own updates and comments are ignored
	Username string `toml:"username"`
	// Interests lists package names the user wants to hear about
	Interests []string `toml:"interests"`
	// StrictParsing aborts the run on the first malformed package identifier
	StrictParsing bool               `toml:"strict_parsing"`
	Bodhi         BodhiConfig        `toml:"bodhi"`
	Notifications NotificationConfig `toml:"notifications"`
}

// BodhiConfig holds Bodhi API settings
type BodhiConfig struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
	Retries int      `toml:"retries"`
}

// NotificationConfig holds desktop notification settings
type NotificationConfig struct {
	Enabled bool `toml:"enabled"`
	// Strict turns a failed notification into a fatal error
	Strict   bool     `toml:"strict"`
	Throttle Duration `toml:"throttle"`
}

// Duration decodes TOML strings like "30s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Overrides are values supplied on the command line
type Overrides struct {
	Username  string
	Interests []string
	// StrictNotifications overrides notifications.strict when non-nil
	StrictNotifications *bool
	// LenientParsing disables strict_parsing
	LenientParsing bool
}

// Default returns the configuration used for keys missing from the file
func Default() *Config {
	return &Config{
		StrictParsing: true,
		Bodhi: BodhiConfig{
			URL:     DefaultBodhiURL,
			Timeout: Duration{DefaultTimeout},
		},
		Notifications: NotificationConfig{
			Enabled:  true,
			Strict:   true,
			Throttle: Duration{DefaultThrottle},
		},
	}
}

// ConfigPaths returns all possible config file paths in priority order
// 1. $XDG_CONFIG_HOME/fedora-feedback/config.toml
// 2. ~/.config/fedora.toml (shared with other Fedora tooling)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "fedora-feedback", "config.toml"),
		filepath.Join(home, ".config", "fedora.toml"),
	}, nil
}

// FindConfigPath returns the first existing config file path, or "" if none exists
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// Load reads configuration from the first available config file.
// Having no config file at all is not an error; the username may still come
// from the command line.
func Load() (*Config, error) {
	path, err := FindConfigPath()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from a specific file path.
// Unlike Load, a missing file is an error here.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read configuration file %s: %v", ErrConfiguration, path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML data on top of the defaults. source names the data in
// error messages.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse configuration file %s: %v", ErrConfiguration, source, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrConfiguration, source, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfiguration, source, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Bodhi.Retries < 0 {
		return errors.New("bodhi.retries must not be negative")
	}
	if c.Bodhi.Timeout.Duration < 0 {
		return errors.New("bodhi.timeout must not be negative")
	}
	if c.Notifications.Throttle.Duration < 0 {
		return errors.New("notifications.throttle must not be negative")
	}
	return nil
}

// ApplyEnv applies environment overrides and returns the result.
// BODHI_URL replaces bodhi.url.
func (c *Config) ApplyEnv() *Config {
	out := c.clone()
	if url := os.Getenv("BODHI_URL"); url != "" {
		out.Bodhi.URL = url
	}
	return out
}

// Merge applies command-line overrides. The CLI username replaces the file's,
// CLI interests are appended to the file's. The merged configuration must
// carry a username.
func (c *Config) Merge(o Overrides) (*Config, error) {
	out := c.clone()

	if o.Username != "" {
		out.Username = o.Username
	}
	out.Interests = append(out.Interests, o.Interests...)
	if o.StrictNotifications != nil {
		out.Notifications.Strict = *o.StrictNotifications
	}
	if o.LenientParsing {
		out.StrictParsing = false
	}

	out.Username = strings.TrimSpace(out.Username)
	if out.Username == "" {
		return nil, ErrUsernameNotSet
	}
	return out, nil
}

func (c *Config) clone() *Config {
	out := *c
	out.Interests = append([]string(nil), c.Interests...)
	return &out
}
