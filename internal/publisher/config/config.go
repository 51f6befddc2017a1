package config

import (
	"fmt"
	"time"

	"research-publisher/internal/shared/docpath"
	"research-publisher/internal/shared/errors"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the publisher. Defaults reproduce the
// values the original upload run used, so an empty environment still publishes
// to the same destination layout.
type Config struct {
	// MongoDB Configuration
	MongoURI     string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"truckerbooks-mvp-prod"`

	// Input
	ResearchFile string `env:"RESEARCH_FILE" envDefault:"research/pricing-monetization-analysis.json"`

	// Destination layout
	RootCollection string `env:"ROOT_COLLECTION" envDefault:"ai_music_studio"`
	RootDocument   string `env:"ROOT_DOCUMENT" envDefault:"pricing_strategy"`
	VersionID      string `env:"RESEARCH_VERSION_ID" envDefault:"v1_2026_01_05"`
	AnalysisID     string `env:"COMPETITOR_ANALYSIS_ID" envDefault:"analysis_2026_01_05"`

	// Upload metadata
	Version     string `env:"RESEARCH_VERSION" envDefault:"v1.0"`
	UploadedBy  string `env:"UPLOADED_BY" envDefault:"pricing-research-pipeline"`
	Status      string `env:"RESEARCH_STATUS" envDefault:"active"`
	Description string `env:"INDEX_DESCRIPTION" envDefault:"AI Music Studio pricing strategy and monetization research"`

	// Connection behavior
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"30s"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every value used as a path segment is a legal ID.
func (c *Config) Validate() error {
	segments := map[string]string{
		"ROOT_COLLECTION":        c.RootCollection,
		"ROOT_DOCUMENT":          c.RootDocument,
		"RESEARCH_VERSION_ID":    c.VersionID,
		"COMPETITOR_ANALYSIS_ID": c.AnalysisID,
	}
	for name, value := range segments {
		if !docpath.IsValidID(value) {
			return errors.NewValidationError("configuration value is not a valid path segment").
				WithDetail("variable", name).
				WithDetail("value", value)
		}
	}

	if c.ResearchFile == "" {
		return errors.NewValidationError("RESEARCH_FILE cannot be empty")
	}
	if c.MongoURI == "" {
		return errors.NewValidationError("MONGODB_URI cannot be empty")
	}

	return nil
}

// RootPath returns the path of the index document.
func (c *Config) RootPath() string {
	return docpath.Build(c.RootCollection, c.RootDocument)
}
