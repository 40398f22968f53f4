// Package config loads the analysis configuration: log directory, money
// divisor and the identity groups declaring which platform IDs belong to
// the same human.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete analysis configuration.
//
//	dir     = "./exports"
//	divisor = 100
//
//	group "alice" {
//	  ids = ["x1f2", "q9z8"]
//	}
type Config struct {
	Dir     string  `hcl:"dir,optional"`
	Divisor int     `hcl:"divisor,optional"`
	Groups  []Group `hcl:"group,block"`
}

// Group declares one set of platform IDs known to be the same person.
type Group struct {
	Label string   `hcl:"label,label"`
	IDs   []string `hcl:"ids"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Dir:     ".",
		Divisor: 100,
	}
}

// Load reads an HCL configuration file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Divisor == 0 {
		cfg.Divisor = 100
	}
	return &cfg, nil
}

// GroupMap returns the identity groups keyed by label, the shape the
// player merge consumes.
func (c *Config) GroupMap() map[string][]string {
	if len(c.Groups) == 0 {
		return nil
	}
	groups := make(map[string][]string, len(c.Groups))
	for _, g := range c.Groups {
		groups[g.Label] = g.IDs
	}
	return groups
}
