// Command cleanarchguard checks that module packages only import inward: presentation
// and infrastructure may use services and domain, services may use domain, and domain
// imports no other layer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type config struct {
	Version           int      `yaml:"version"`
	Root              string   `yaml:"root"`
	IgnoreTests       bool     `yaml:"ignore_tests"`
	IgnorePackages    []string `yaml:"ignore_packages"`
	AllowedViolations []string `yaml:"allow_violations"`
	Aliases           struct {
		Domain         []string `yaml:"domain"`
		Application    []string `yaml:"application"`
		Interfaces     []string `yaml:"interfaces"`
		Infrastructure []string `yaml:"infrastructure"`
	} `yaml:"aliases"`
}

var (
	defaultDomainAliases         = []string{"domain", "entities"}
	defaultApplicationAliases    = []string{"services"}
	defaultInterfacesAliases     = []string{"presentation"}
	defaultInfrastructureAliases = []string{"infrastructure"}
)

func main() {
	configPath := flag.String("config", ".gocleanarch.yml", "config file")
	debug := flag.Bool("debug", false, "enable go-cleanarch debug output")
	flag.Parse()

	logger := logrus.New()
	violations, err := run(*configPath, *debug)
	if err != nil {
		logger.WithError(err).Fatal("cleanarch check failed to run")
	}
	for _, v := range violations {
		logger.Error(v)
	}
	if len(violations) > 0 {
		logger.Errorf("%d layering violations", len(violations))
		os.Exit(1)
	}
	logger.Info("layering check passed")
}

// run validates the tree described by the config at path and returns the violations
// that are not explicitly allowed.
func run(path string, debug bool) ([]string, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", cfg.Root, err)
	}

	aliases := map[string]cleanarch.Layer{}
	addAliases(aliases, cfg.Aliases.Domain, defaultDomainAliases, cleanarch.LayerDomain)
	addAliases(aliases, cfg.Aliases.Application, defaultApplicationAliases, cleanarch.LayerApplication)
	addAliases(aliases, cfg.Aliases.Interfaces, defaultInterfacesAliases, cleanarch.LayerInterfaces)
	addAliases(aliases, cfg.Aliases.Infrastructure, defaultInfrastructureAliases, cleanarch.LayerInfrastructure)

	if debug {
		cleanarch.Log.SetOutput(os.Stderr)
	}
	_, errs, err := cleanarch.NewValidator(aliases).Validate(root, cfg.IgnoreTests, cfg.IgnorePackages)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", root, err)
	}

	var out []string
	for _, e := range errs {
		if msg := e.Error(); !allowed(msg, cfg.AllowedViolations) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Version != 0 && cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported config version %d", cfg.Version)
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	return cfg, nil
}

func addAliases(dst map[string]cleanarch.Layer, custom, defaults []string, layer cleanarch.Layer) {
	candidates := defaults
	if len(custom) > 0 {
		candidates = custom
	}
	for _, alias := range candidates {
		if alias != "" {
			dst[alias] = layer
		}
	}
}

func allowed(msg string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
