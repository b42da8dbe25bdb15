package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	Spec              string            `koanf:"spec"`
	Templates         TemplateConfig    `koanf:"templates"`
	IncludeOperations []string          `koanf:"include-operations"`
	ExcludeOperations []string          `koanf:"exclude-operations"`
	RenameOperations  map[string]string `koanf:"rename-operations"`
	Go                GoConfig          `koanf:"go"`
}

type GoConfig struct {
	OutputDir string   `koanf:"output-dir"`
	Package   string   `koanf:"package"`
	Targets   []string `koanf:"targets"`
}

type TemplateConfig struct {
	Dir string `koanf:"dir"`
}

// IncludeOperation reports whether the operation should survive filtering.
// An empty include list keeps everything; the exclude list always wins.
func (c *Config) IncludeOperation(id string) bool {
	if len(c.IncludeOperations) > 0 && !slices.Contains(c.IncludeOperations, id) {
		return false
	}
	return !slices.Contains(c.ExcludeOperations, id)
}

// RenameOperation maps an operationId to its generated name. IDs without an
// entry pass through unchanged.
func (c *Config) RenameOperation(id string) string {
	if renamed, ok := c.RenameOperations[id]; ok {
		return renamed
	}
	return id
}

// BindCommonFlags binds generation-agnostic flags to the generate command.
func BindCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: tesla-openapi.yaml)")
	flags.StringP("spec", "s", "", "OpenAPI spec file path")
	flags.String("templates", "", "Custom templates directory")
	flags.StringSlice("include-operations", nil, "Operation ids to include (exclusive)")
	flags.StringSlice("exclude-operations", nil, "Operation ids to exclude")
	flags.Bool("dry-run", false, "Print output without writing files")
}

func Load(cmd *cobra.Command, targets []string) (*Config, error) {
	k := koanf.New(".")

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile, _ = cmd.PersistentFlags().GetString("config")
	}
	if configFile == "" {
		if _, err := os.Stat("tesla-openapi.yaml"); err == nil {
			configFile = "tesla-openapi.yaml"
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// CLI targets override config file targets
	if len(targets) > 0 {
		cfg.Go.Targets = targets
	}
	cfg.Go.Targets = expandTargets(cfg.Go.Targets)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func expandTargets(targets []string) []string {
	var result []string
	for _, t := range targets {
		if t == "all" {
			result = append(result, "types", "client")
		} else {
			result = append(result, t)
		}
	}
	return result
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	getStringSlice := func(name string) []string {
		if v, err := cmd.Flags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		if v, err := cmd.PersistentFlags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		return nil
	}

	if v := getString("spec"); v != "" {
		m["spec"] = v
	}
	if v := getString("templates"); v != "" {
		m["templates.dir"] = v
	}
	if v := getStringSlice("include-operations"); len(v) > 0 {
		m["include-operations"] = v
	}
	if v := getStringSlice("exclude-operations"); len(v) > 0 {
		m["exclude-operations"] = v
	}
	if v := getString("output-dir"); v != "" {
		m["go.output-dir"] = v
	}
	if v := getString("package"); v != "" {
		m["go.package"] = v
	}

	return m
}

func (c *Config) Validate() error {
	if c.Spec == "" {
		return fmt.Errorf("spec file is required")
	}
	if c.Go.Package == "" {
		return fmt.Errorf("package name is required")
	}
	if c.Go.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}

	validTargets := map[string]bool{"types": true, "client": true}
	for _, t := range c.Go.Targets {
		if !validTargets[t] {
			return fmt.Errorf("invalid target: %s (valid: types, client)", t)
		}
	}

	return nil
}

// HasTarget checks if a specific target should be generated
func (c *Config) HasTarget(target string) bool {
	return slices.Contains(c.Go.Targets, target)
}
