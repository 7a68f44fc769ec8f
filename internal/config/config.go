package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "UTC"
	configPathEnv     = "PAPER_SUMMARIZER_CONFIG"
	databaseDSNEnv    = "DATABASE_DSN"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	analysisAPIKeyEnv = "ANALYSIS_API_KEY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Ingest    IngestConfig    `yaml:"ingest"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Papers    []PaperConfig   `yaml:"papers"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines when the pipeline should run. An empty cron
// expression means a single immediate run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// IngestConfig groups settings for document sources.
type IngestConfig struct {
	ArxivBaseURL string `yaml:"arxivBaseUrl"`
}

// OpenAIConfig defines how to contact the generative rewriting service.
type OpenAIConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"apiKey"`
	SystemPrompt   string `yaml:"systemPrompt"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// AnalysisConfig describes the external keyword-inference service.
type AnalysisConfig struct {
	InferenceURL string `yaml:"inferenceUrl"`
	APIKey       string `yaml:"apiKey"`
}

// PipelineConfig is the preprocessing and summarization parameter table.
// Zero values fall back to component defaults.
type PipelineConfig struct {
	Mode                 string  `yaml:"mode"`
	DisableReferenceCut  bool    `yaml:"disableReferenceCut"`
	RemoveCitations      bool    `yaml:"removeCitations"`
	MaxTokensPerChunk    int     `yaml:"maxTokensPerChunk"`
	OverlapTokens        int     `yaml:"overlapTokens"`
	ChunkChars           int     `yaml:"chunkChars"`
	OverlapChars         int     `yaml:"overlapChars"`
	FocusMaxChars        int     `yaml:"focusMaxChars"`
	SectionCap           int     `yaml:"sectionCap"`
	MinSectionChars      int     `yaml:"minSectionChars"`
	ExtractiveSentences  int     `yaml:"extractiveSentences"`
	HybridReductionRatio float64 `yaml:"hybridReductionRatio"`
	GenerateTimeoutSecs  int     `yaml:"generateTimeoutSeconds"`
}

// PaperConfig names one document to process: an arXiv id for source "arxiv",
// a file path for "pdf" (pre-extracted text) or "text".
type PaperConfig struct {
	Source string `yaml:"source"`
	Ref    string `yaml:"ref"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. File values are layered over compiled-in defaults.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(analysisAPIKeyEnv); v != "" {
		c.Analysis.APIKey = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Database:  DatabaseConfig{DSN: ""},
		Scheduler: SchedulerConfig{Timezone: defaultTimezone, location: tz},
		Ingest:    IngestConfig{ArxivBaseURL: "https://arxiv.org"},
		OpenAI: OpenAIConfig{
			Endpoint:       "https://api.openai.com/v1/chat/completions",
			Model:          "gpt-4o-mini",
			SystemPrompt:   "You rewrite condensed excerpts of scientific papers into a fluent summary.",
			TimeoutSeconds: 60,
		},
		Pipeline: PipelineConfig{
			Mode:                 "hybrid",
			MaxTokensPerChunk:    900,
			OverlapTokens:        120,
			ChunkChars:           3000,
			OverlapChars:         200,
			FocusMaxChars:        120000,
			MinSectionChars:      200,
			ExtractiveSentences:  10,
			HybridReductionRatio: 0.5,
		},
	}
}
