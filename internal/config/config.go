package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dosanma1/forge-native/internal/errors"
	"github.com/dosanma1/forge-native/pkg/xos"
)

// FileName is the project-level configuration file.
const FileName = ".forge-native.yaml"

// EnvPrefix prefixes environment overrides, e.g. FORGE_NATIVE_NSEXTENSION.
const EnvPrefix = "FORGE_NATIVE"

// Config represents the .forge-native.yaml configuration file.
type Config struct {
	// NsExtension marks mobile files: app.module.<ns>.ts.
	NsExtension string `yaml:"nsExtension" mapstructure:"nsExtension"`

	// WebExtension, when set, marks web files the same way.
	WebExtension string `yaml:"webExtension,omitempty" mapstructure:"webExtension"`

	// DefaultProject overrides angular.json's defaultProject.
	DefaultProject string `yaml:"defaultProject,omitempty" mapstructure:"defaultProject"`

	// Interactive enables x-prompt questions for missing options.
	Interactive bool `yaml:"interactive" mapstructure:"interactive"`

	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	NativeScript NativeScriptConfig `yaml:"nativescript" mapstructure:"nativescript"`

	// path is the file the config was read from, empty for defaults.
	path string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Verbosity int  `yaml:"verbosity" mapstructure:"verbosity"`
	JSON      bool `yaml:"json" mapstructure:"json"`
}

// NativeScriptConfig holds the package versions add-ns installs.
type NativeScriptConfig struct {
	Angular    string `yaml:"angular" mapstructure:"angular"`
	Core       string `yaml:"core" mapstructure:"core"`
	Theme      string `yaml:"theme" mapstructure:"theme"`
	Webpack    string `yaml:"webpack" mapstructure:"webpack"`
	Types      string `yaml:"types" mapstructure:"types"`
	AppID      string `yaml:"appId,omitempty" mapstructure:"appId"`
	Typescript string `yaml:"typescript" mapstructure:"typescript"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("nsExtension", "tns")
	v.SetDefault("webExtension", "")
	v.SetDefault("defaultProject", "")
	v.SetDefault("interactive", true)

	v.SetDefault("log.verbosity", 0)
	v.SetDefault("log.json", false)

	v.SetDefault("nativescript.angular", "^17.0.0")
	v.SetDefault("nativescript.core", "~8.6.0")
	v.SetDefault("nativescript.theme", "~3.0.2")
	v.SetDefault("nativescript.webpack", "~5.0.18")
	v.SetDefault("nativescript.types", "~8.6.0")
	v.SetDefault("nativescript.appId", "")
	v.SetDefault("nativescript.typescript", "~5.2.0")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c, err := load(newViper(), "")
	if err != nil {
		// defaults always validate
		panic(err)
	}
	return c
}

// Load reads the nearest .forge-native.yaml at or above dir. Without one,
// defaults and environment overrides apply.
func Load(dir string) (*Config, error) {
	v := newViper()

	path := Find(dir)
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}
	return load(v, path)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

func load(v *viper.Viper, path string) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	config.path = path

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &config, nil
}

// Find walks up from dir looking for FileName.
func Find(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string { return c.path }

// Save writes the config to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := xos.WriteFile(path, data, xos.FilePerm); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.NsExtension == "" {
		return errors.New("nsExtension is required")
	}
	for _, ext := range []string{c.NsExtension, c.WebExtension} {
		if strings.ContainsAny(ext, "./\\ ") {
			return errors.Newf("extension %q must be a bare word such as tns", ext)
		}
	}
	if c.NsExtension == c.WebExtension {
		return errors.Newf("nsExtension and webExtension must differ, both are %q", c.NsExtension)
	}
	if c.Log.Verbosity < 0 {
		return errors.New("log.verbosity must not be negative")
	}
	return nil
}

// Dependencies returns the runtime packages add-ns installs.
func (c *Config) Dependencies() map[string]string {
	return map[string]string{
		"@nativescript/angular": c.NativeScript.Angular,
		"@nativescript/core":    c.NativeScript.Core,
		"@nativescript/theme":   c.NativeScript.Theme,
	}
}

// DevDependencies returns the build packages add-ns installs.
func (c *Config) DevDependencies() map[string]string {
	return map[string]string{
		"@nativescript/types":   c.NativeScript.Types,
		"@nativescript/webpack": c.NativeScript.Webpack,
		"typescript":            c.NativeScript.Typescript,
	}
}
