// Package config wraps viper to provide the settings for the shell
// and the autoplay runner. Flags override environment variables
// (TRESRAYA_ prefix), which override the defaults.
package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "tresraya"

// Config wraps a viper instance.
type Config struct {
	v *viper.Viper
}

type configKey struct {
	name  string
	kind  string // "bool", "int", "string"
	def   any
	usage string
}

var knownKeys = []configKey{
	{"debug", "bool", false, "debug logging on"},
	{"seed", "int", 0, "seed for the random engine; 0 picks one"},
	{"autoplay-threads", "int", 1, "worker count for autoplay"},
	{"history-file", "string", "/tmp/tresraya_readline.tmp", "readline history file"},
	{"cpu-profile", "string", "", "write a CPU profile to this file"},
	{"mem-profile", "string", "", "write a memory profile to this file"},
}

// DefaultConfig returns a config with every key at its default,
// environment variables bound but no flags parsed. Tests use this.
func DefaultConfig() Config {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, k := range knownKeys {
		v.SetDefault(k.name, k.def)
	}
	return Config{v: v}
}

// Load parses command-line arguments of the form -key value (or
// --key=value) over the defaults and environment.
func (c *Config) Load(args []string) error {
	if c.v == nil {
		*c = DefaultConfig()
	}
	i := 0
	for i < len(args) {
		arg := strings.TrimLeft(args[i], "-")
		if arg == args[i] {
			return fmt.Errorf("unexpected bare argument %q", args[i])
		}
		var val string
		if k, v, found := strings.Cut(arg, "="); found {
			arg, val = k, v
		} else {
			if i+1 >= len(args) {
				return fmt.Errorf("flag -%s needs a value", arg)
			}
			val = args[i+1]
			i++
		}
		if err := c.SetFromString(arg, val); err != nil {
			return err
		}
		i++
	}
	return nil
}

// SetFromString sets a known key from its string form, converting the
// value to the key's declared type. The shell's `set` command and the
// flag parser both go through here.
func (c *Config) SetFromString(name, val string) error {
	key, err := lookupKey(name)
	if err != nil {
		return err
	}
	switch key.kind {
	case "bool":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
		c.Set(key.name, b)
	case "int":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
		c.Set(key.name, n)
	default:
		c.Set(key.name, val)
	}
	return nil
}

func lookupKey(name string) (configKey, error) {
	for _, k := range knownKeys {
		if k.name == name {
			return k, nil
		}
	}
	return configKey{}, fmt.Errorf("unknown setting %q", name)
}

// AdjustRelativePaths anchors relative file settings at the
// executable's directory.
func (c *Config) AdjustRelativePaths(exPath string) {
	for _, key := range []string{"history-file", "cpu-profile", "mem-profile"} {
		val := c.v.GetString(key)
		if val != "" && !filepath.IsAbs(val) {
			c.v.Set(key, filepath.Join(exPath, val))
		}
	}
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// AllSettings returns every setting, for display at startup.
func (c *Config) AllSettings() map[string]any {
	return c.v.AllSettings()
}
