// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/akash-eu-prime/leadgen-cli/internal/scoring"
)

// Config holds the full application configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator" mapstructure:"generator"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Hunter    HunterConfig    `yaml:"hunter" mapstructure:"hunter"`
	PubMed    PubMedConfig    `yaml:"pubmed" mapstructure:"pubmed"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// GeneratorConfig holds the enumeration tables the generator draws from.
type GeneratorConfig struct {
	MaxLeads        int      `yaml:"max_leads" mapstructure:"max_leads"`
	FirstNames      []string `yaml:"first_names" mapstructure:"first_names"`
	LastNames       []string `yaml:"last_names" mapstructure:"last_names"`
	TargetRoles     []string `yaml:"target_roles" mapstructure:"target_roles"`
	TargetCompanies []string `yaml:"target_companies" mapstructure:"target_companies"`
	Hubs            []string `yaml:"hubs" mapstructure:"hubs"`
	RemoteLocations []string `yaml:"remote_locations" mapstructure:"remote_locations"`
	FundingRounds   []string `yaml:"funding_rounds" mapstructure:"funding_rounds"`
	TechTags        []string `yaml:"tech_tags" mapstructure:"tech_tags"`
}

// ScoringConfig holds the weight table and keyword sets for the scoring engine.
type ScoringConfig struct {
	Weights           scoring.Weights `yaml:"weights" mapstructure:"weights"`
	DomainKeywords    []string        `yaml:"domain_keywords" mapstructure:"domain_keywords"`
	SeniorityKeywords []string        `yaml:"seniority_keywords" mapstructure:"seniority_keywords"`
	FundedCompanies   []string        `yaml:"funded_companies" mapstructure:"funded_companies"`
}

// HunterConfig holds Hunter.io API settings.
type HunterConfig struct {
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// PubMedConfig holds PubMed E-utilities settings. The public API allows
// 3 requests per second without a key.
type PubMedConfig struct {
	APIKey            string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// StoreConfig configures the batch persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Tables builds the scoring enumeration tables from config.
func (c *Config) Tables() scoring.Tables {
	return scoring.Tables{
		DomainKeywords:    c.Scoring.DomainKeywords,
		SeniorityKeywords: c.Scoring.SeniorityKeywords,
		FundedCompanies:   c.Scoring.FundedCompanies,
		Hubs:              c.Generator.Hubs,
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration before any scoring occurs. A malformed
// weight table is surfaced here, at load time.
func (c *Config) Validate() error {
	if err := c.Scoring.Weights.Validate(); err != nil {
		return err
	}
	if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
		return eris.Errorf("config: store driver must be sqlite or postgres (got %q)", c.Store.Driver)
	}
	if c.Generator.MaxLeads <= 0 {
		return eris.Errorf("config: generator max_leads must be > 0 (got %d)", c.Generator.MaxLeads)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "leadgen.db")

	v.SetDefault("hunter.base_url", "https://api.hunter.io/v2")
	v.SetDefault("hunter.requests_per_second", 1.0)
	v.SetDefault("pubmed.base_url", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils")
	v.SetDefault("pubmed.requests_per_second", 3.0)

	v.SetDefault("scoring.weights.role_fit", 0.30)
	v.SetDefault("scoring.weights.company_intent", 0.20)
	v.SetDefault("scoring.weights.technographic", 0.15)
	v.SetDefault("scoring.weights.location", 0.10)
	v.SetDefault("scoring.weights.scientific_intent", 0.40)
	v.SetDefault("scoring.domain_keywords", []string{
		"toxicology", "safety", "hepatic", "3d", "preclinical", "dili",
	})
	v.SetDefault("scoring.seniority_keywords", []string{
		"director", "head", "vp", "principal",
	})
	v.SetDefault("scoring.funded_companies", []string{
		"Moderna", "Biogen", "Vertex Pharmaceuticals", "Emulate Inc", "CN Bio",
	})

	v.SetDefault("generator.max_leads", 1000)
	v.SetDefault("generator.first_names", []string{
		"Alex", "Jordan", "Taylor", "Morgan", "Casey",
		"Riley", "Drew", "Quinn", "Blake", "Hayden",
	})
	v.SetDefault("generator.last_names", []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones",
		"Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	})
	v.SetDefault("generator.target_roles", []string{
		"Director of Toxicology",
		"Head of Preclinical Safety",
		"Senior Scientist - Hepatic Models",
		"Principal Investigator - 3D Cell Culture",
		"VP Drug Discovery",
		"Research Lead - In Vitro Models",
		"Toxicology Manager",
		"Senior Director of Safety Assessment",
		"Lab Head - Organ-on-Chip",
		"Associate Director - DILI",
	})
	v.SetDefault("generator.target_companies", []string{
		"Biogen", "Moderna", "Novartis", "Pfizer", "Johnson & Johnson",
		"Merck", "GSK", "Roche", "Sanofi", "AstraZeneca",
		"Vertex Pharmaceuticals", "Regeneron", "Bristol Myers Squibb",
		"Genentech", "Amgen", "Biocoat", "Emulate Inc", "CN Bio",
		"Mimetas", "TissUse",
	})
	v.SetDefault("generator.hubs", []string{
		"Boston", "Bay Area", "Basel", "UK Triangle", "Cambridge MA",
		"San Diego", "Research Triangle Park", "Seattle", "New York",
	})
	v.SetDefault("generator.remote_locations", []string{
		"Remote Colorado", "Remote Oregon", "Remote Florida", "Remote Texas",
	})
	v.SetDefault("generator.funding_rounds", []string{
		"Series A", "Series B", "Series C", "Seed", "None",
	})
	v.SetDefault("generator.tech_tags", []string{
		"in-vitro models", "NAMs", "Organ-on-chip", "Hepatic spheroids",
	})
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
