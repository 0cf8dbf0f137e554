package main

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/alc6/catdiff/catalog"
	"github.com/alc6/catdiff/report"
)

const (
	// DefaultConfigFile is read when --config is not given
	DefaultConfigFile = "catdiff.yaml"

	DefaultOutputDir = "data"
	DefaultTimeout   = 30 * time.Second
	DefaultParallel  = 1
)

type (
	// CatalogConfig holds the connection parameters of one logical catalog.
	CatalogConfig struct {
		Dialect  string            `yaml:"dialect"`
		Host     string            `yaml:"host"`
		Port     int               `yaml:"port,omitempty"`
		Database string            `yaml:"database"`
		User     string            `yaml:"user,omitempty"`
		Password string            `yaml:"password,omitempty"`
		Options  map[string]string `yaml:"options,omitempty"`
	}

	// LabelsConfig names the two sides in reports, e.g. preprod and prod.
	LabelsConfig struct {
		Left  string `yaml:"left,omitempty"`
		Right string `yaml:"right,omitempty"`
	}

	// OutputConfig controls where and how reports are written.
	OutputConfig struct {
		// Dir receives one report per category with differences. Files in it
		// are removed at the start of every run.
		Dir string `yaml:"dir"`

		// Format is csv or json
		Format string `yaml:"format"`

		Labels LabelsConfig `yaml:"labels,omitempty"`

		// Headers selects the report column names: en (default) or fr
		Headers string `yaml:"headers,omitempty"`
	}

	// Config is the catdiff configuration file.
	Config struct {
		// Catalogs maps the logical names used on the command line to
		// connection parameters.
		Catalogs map[string]CatalogConfig `yaml:"catalogs"`

		Output OutputConfig `yaml:"output"`

		// Timeout bounds the reads of one category
		Timeout time.Duration `yaml:"timeout"`

		// Parallel is the number of categories compared at once
		Parallel int `yaml:"parallel"`
	}
)

var envRefRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadConfig parses a configuration from r, expands ${VAR} references from
// the environment and applies defaults. It does not validate.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal catdiff config")
	}

	dialects := catalog.DefaultDialects()
	for name, c := range cfg.Catalogs {
		c.Host = expandEnv(c.Host)
		c.Database = expandEnv(c.Database)
		c.User = expandEnv(c.User)
		c.Password = expandEnv(c.Password)
		for k, v := range c.Options {
			c.Options[k] = expandEnv(v)
		}
		if c.Port == 0 {
			if d, err := dialects.Get(c.Dialect); err == nil {
				c.Port = d.DefaultPort()
			}
		}
		cfg.Catalogs[name] = c
	}

	cfg.Output.Dir = expandEnv(cfg.Output.Dir)
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = string(report.FormatCSV)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Parallel == 0 {
		cfg.Parallel = DefaultParallel
	}

	return &cfg, nil
}

// LoadConfigFile loads the configuration at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

func expandEnv(s string) string {
	return envRefRe.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(envRefRe.FindStringSubmatch(ref)[1])
	})
}

// Validate checks that every catalog can be connected to and that the
// output settings are supported.
func (c *Config) Validate() error {
	if len(c.Catalogs) == 0 {
		return errors.New("no catalogs configured")
	}

	dialects := catalog.DefaultDialects()
	for _, name := range c.CatalogNames() {
		cat := c.Catalogs[name]
		if _, err := dialects.Get(cat.Dialect); err != nil {
			return errors.Wrapf(err, "catalog %s", name)
		}
		if cat.Host == "" || cat.Database == "" {
			return errors.Errorf("catalog %s: host and database are required", name)
		}
	}

	if !slices.Contains(report.Formats(), report.Format(c.Output.Format)) {
		return errors.Errorf("unsupported output format %q", c.Output.Format)
	}
	switch c.Output.Headers {
	case "", "en", "fr":
	default:
		return errors.Errorf("unsupported output headers %q, expected en or fr", c.Output.Headers)
	}
	if c.Parallel < 1 {
		return errors.Errorf("parallel must be at least 1, got %d", c.Parallel)
	}
	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative, got %s", c.Timeout)
	}

	return nil
}

// CatalogNames returns the configured catalog names, sorted
func (c *Config) CatalogNames() []string {
	names := make([]string, 0, len(c.Catalogs))
	for name := range c.Catalogs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Catalog returns the connection parameters of the named catalog.
func (c *Config) Catalog(name string) (catalog.ConnParams, error) {
	cat, ok := c.Catalogs[name]
	if !ok {
		return catalog.ConnParams{}, fmt.Errorf("unknown catalog %q", name)
	}
	return catalog.ConnParams{
		Dialect:  cat.Dialect,
		Host:     cat.Host,
		Port:     cat.Port,
		Database: cat.Database,
		User:     cat.User,
		Password: cat.Password,
		Options:  cat.Options,
	}, nil
}

// ReportOptions translates the output settings into report writer options.
func (c *Config) ReportOptions() []report.Option {
	opts := []report.Option{report.WithSideLabels(c.Output.Labels.Left, c.Output.Labels.Right)}
	if c.Output.Headers == "fr" {
		opts = append(opts, report.WithHeaders(report.FrenchHeaders))
	}
	return opts
}
