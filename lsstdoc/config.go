package lsstdoc

import (
	_ "embed"
	"errors"
	"net/url"
	"os"
	"strings"

	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/latex"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

// handlePlaceholder is replaced by a document handle in Config.DocushareURL.
const handlePlaceholder = "{handle}"

// Config holds the document-reference settings used when rendering.
type Config struct {
	// DocushareURL is the link template for document references. The
	// {handle} placeholder is replaced by the referenced handle. An empty
	// template renders references as plain text.
	DocushareURL string `yaml:"docushare_url"`

	// References maps an argument-free macro name to the handle it cites.
	References map[string]string `yaml:"references"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfig, &cfg); err != nil {
		panic("lsstdoc: invalid embedded config: " + err.Error())
	}
	return &cfg
}

// LoadConfig reads a YAML configuration file and merges it over the
// built-in configuration. References in the file add to or replace the
// built-in ones.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, texmeta.Errorf(texmeta.ENOTFOUND, "config file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, texmeta.Errorf(texmeta.EINVALID, "invalid config %s: %v", path, err)
	}

	cfg := DefaultConfig()
	if override.DocushareURL != "" {
		cfg.DocushareURL = override.DocushareURL
	}
	if cfg.References == nil {
		cfg.References = make(map[string]string, len(override.References))
	}
	for macro, handle := range override.References {
		cfg.References[macro] = handle
	}
	return cfg, nil
}

// RefURL returns the link for a document handle, or "" when no link
// template is configured.
func (c *Config) RefURL(handle string) string {
	if c.DocushareURL == "" || handle == "" {
		return ""
	}
	return strings.ReplaceAll(c.DocushareURL, handlePlaceholder, url.PathEscape(handle))
}

// Rules returns the default rule table extended with the configured
// reference macros and the \citeds citation commands.
func (c *Config) Rules() map[string]latex.Rule {
	rules := latex.DefaultRules()
	for macro, handle := range c.References {
		rules[macro] = latex.Rule{Kind: latex.RuleDocRef, Handle: handle}
	}
	rules["citeds"] = latex.Rule{Kind: latex.RuleDocRef}
	rules["citedsp"] = latex.Rule{Kind: latex.RuleDocRef}
	return rules
}

// NewRenderer returns a renderer for lsstdoc documents using cfg.
func NewRenderer(cfg *Config) *latex.Renderer {
	r := latex.NewRenderer(cfg.Rules())
	r.RefURL = cfg.RefURL
	return r
}
