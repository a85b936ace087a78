package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ExcludeRule hides customers whose name matches Pattern. Before and After
// narrow the rule to customers acquired before, or on or after, a date; both
// take the same date forms as the ledger import.
type ExcludeRule struct {
	Pattern string `yaml:"pattern"`
	Before  string `yaml:"before,omitempty"`
	After   string `yaml:"after,omitempty"`

	name           *regexp.Regexp
	acquiredBefore time.Time
	acquiredFrom   time.Time
}

func (r *ExcludeRule) compile() error {
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return errors.Wrapf(err, "exclude pattern %q", r.Pattern)
	}
	r.name = re

	if r.Before != "" {
		if r.acquiredBefore, err = ParseDate(r.Before); err != nil {
			return errors.Wrapf(err, "exclude rule %q: before", r.Pattern)
		}
	}
	if r.After != "" {
		if r.acquiredFrom, err = ParseDate(r.After); err != nil {
			return errors.Wrapf(err, "exclude rule %q: after", r.Pattern)
		}
	}
	return nil
}

func (r *ExcludeRule) matches(c *Customer) bool {
	if !r.name.MatchString(c.Name()) {
		return false
	}
	if !r.acquiredBefore.IsZero() && !c.Acquired().Before(r.acquiredBefore) {
		return false
	}
	if !r.acquiredFrom.IsZero() && c.Acquired().Before(r.acquiredFrom) {
		return false
	}
	return true
}

// decodeExcludeRule accepts a bare pattern string or a rule mapping.
func decodeExcludeRule(node *yaml.Node) (ExcludeRule, error) {
	var rule ExcludeRule
	switch node.Kind {
	case yaml.ScalarNode:
		rule.Pattern = node.Value
	case yaml.MappingNode:
		if err := node.Decode(&rule); err != nil {
			return rule, errors.Wrapf(err, "line %d", node.Line)
		}
	default:
		return rule, errors.Newf("line %d: exclude rule must be a pattern or a mapping", node.Line)
	}
	if err := rule.compile(); err != nil {
		return rule, err
	}
	return rule, nil
}

type Config struct {
	// Currency is the ISO 4217 code used to format prices in table output
	Currency string `yaml:"currency,omitempty"`

	// Descriptions maps customer ids to custom descriptions
	Descriptions map[string]string `yaml:"descriptions,omitempty"`

	// Tags maps customer ids to a list of tags (e.g., "wholesale", "priority")
	Tags map[string][]string `yaml:"tags,omitempty"`

	// Exclude is a list of exclusion rules (can be strings or objects with time bounds)
	Exclude []yaml.Node `yaml:"exclude,omitempty"`

	// compiled exclusion rules (not serialized)
	excludeRules []ExcludeRule `yaml:"-"`
}

// DefaultConfigPath returns the default config file path (~/.sales-ledger/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sales-ledger", "config.yaml")
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data and compiles its exclude rules.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	for i := range cfg.Exclude {
		rule, err := decodeExcludeRule(&cfg.Exclude[i])
		if err != nil {
			return nil, errors.Wrapf(err, "exclude[%d]", i)
		}
		cfg.excludeRules = append(cfg.excludeRules, rule)
	}
	return &cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ShouldExclude reports whether any exclude rule matches the customer's name
// and acquisition date.
func (c *Config) ShouldExclude(cust *Customer) bool {
	if c == nil {
		return false
	}
	for i := range c.excludeRules {
		if c.excludeRules[i].matches(cust) {
			return true
		}
	}
	return false
}

// GetDescription returns the custom description for a customer id, or empty string
func (c *Config) GetDescription(id string) string {
	if c == nil || c.Descriptions == nil {
		return ""
	}
	return c.Descriptions[id]
}

// GetTags returns the tags for a customer id, or nil if none
func (c *Config) GetTags(id string) []string {
	if c == nil || c.Tags == nil {
		return nil
	}
	return c.Tags[id]
}

// CurrencyCode returns the configured currency, or fallback when unset
func (c *Config) CurrencyCode(fallback string) string {
	if c == nil || c.Currency == "" {
		return fallback
	}
	return c.Currency
}

// GenerateConfigTemplate creates a config template listing every customer id
func GenerateConfigTemplate(l *Ledger, currency string) *Config {
	cfg := &Config{
		Currency:     currency,
		Descriptions: make(map[string]string),
	}

	for _, id := range l.IDs() {
		cfg.Descriptions[id] = "" // Empty description as placeholder
	}

	return cfg
}
