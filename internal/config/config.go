package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port      string `toml:"port"`
	StaticDir string `toml:"static_dir"`
}

type SPARQLConfig struct {
	Endpoint          string  `toml:"endpoint"`
	DefaultGraph      string  `toml:"default_graph"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

type GraphConfig struct {
	// Backend is "sparql" or "memgraph".
	Backend string `toml:"backend"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type RankingConfig struct {
	// Backend is "http" or "llm".
	Backend           string   `toml:"backend"`
	Endpoint          string   `toml:"endpoint"`
	Top               int      `toml:"top"`
	ExcludeNamespaces []string `toml:"exclude_namespaces"`
	TimeoutSeconds    int      `toml:"timeout_seconds"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type ResourcesConfig struct {
	Blacklist string `toml:"blacklist"`
	Prefixes  string `toml:"prefixes"`
	Classes   string `toml:"classes"`
}

type PipelineConfig struct {
	// MaxAttempts bounds whole-pipeline restarts; 0 retries until the context ends.
	MaxAttempts        int      `toml:"max_attempts"`
	QuestionsPerEntity int      `toml:"questions_per_entity"`
	RestartRate        float64  `toml:"restart_rate"`
	RestartBurst       int      `toml:"restart_burst"`
	YearCeiling        int      `toml:"year_ceiling"`
	Distractors        int      `toml:"distractors"`
	DatatypeNamespaces []string `toml:"datatype_namespaces"`
}

type LoggerConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
	Compress   bool   `toml:"compress"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	SPARQL    SPARQLConfig    `toml:"sparql"`
	Graph     GraphConfig     `toml:"graph"`
	Memgraph  MemgraphConfig  `toml:"memgraph"`
	Ranking   RankingConfig   `toml:"ranking"`
	LLM       LLMConfig       `toml:"llm"`
	Resources ResourcesConfig `toml:"resources"`
	Pipeline  PipelineConfig  `toml:"pipeline"`
	Logger    LoggerConfig    `toml:"logger"`
}

// Default returns a configuration that talks to the public DBpedia endpoint and a
// ranking service on localhost.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		SPARQL: SPARQLConfig{
			Endpoint:       "https://dbpedia.org/sparql",
			DefaultGraph:   "http://dbpedia.org",
			TimeoutSeconds: 30,
		},
		Graph:    GraphConfig{Backend: "sparql"},
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Ranking: RankingConfig{
			Backend:           "http",
			Endpoint:          "http://localhost:5000/rank",
			Top:               50,
			ExcludeNamespaces: []string{"http://dbpedia.org/property/"},
			TimeoutSeconds:    15,
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "gpt-oss:latest",
			BaseURL:  "http://localhost:11434",
		},
		Resources: ResourcesConfig{
			Blacklist: "resources/blacklist.json",
			Prefixes:  "resources/prefixes.json",
			Classes:   "resources/classes_sorted.json",
		},
		Pipeline: PipelineConfig{
			MaxAttempts:        25,
			QuestionsPerEntity: 1,
			YearCeiling:        2017,
			Distractors:        3,
			DatatypeNamespaces: []string{
				"http://www.w3.org/2001/XMLSchema#",
				"http://dbpedia.org/datatype/",
			},
		},
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "console",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Load reads a TOML file over the defaults; keys absent from the file keep their
// default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnvOverrides replaces settings with the environment variables that are set.
func (c *Config) ApplyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"PORT", &c.Server.Port},
		{"SPARQL_ENDPOINT", &c.SPARQL.Endpoint},
		{"GRAPH_BACKEND", &c.Graph.Backend},
		{"MEMGRAPH_URI", &c.Memgraph.URI},
		{"MEMGRAPH_USER", &c.Memgraph.User},
		{"MEMGRAPH_PASSWORD", &c.Memgraph.Password},
		{"RANKING_ENDPOINT", &c.Ranking.Endpoint},
		{"RANKING_BACKEND", &c.Ranking.Backend},
		{"LLM_PROVIDER", &c.LLM.Provider},
		{"LLM_MODEL", &c.LLM.Model},
		{"LLM_API_KEY", &c.LLM.APIKey},
		{"LLM_BASE_URL", &c.LLM.BaseURL},
		{"LOG_LEVEL", &c.Logger.Level},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

// Validate reports every unusable setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Graph.Backend {
	case "sparql":
		if c.SPARQL.Endpoint == "" {
			errs = append(errs, errors.New("sparql.endpoint is required for the sparql backend"))
		}
	case "memgraph":
		if c.Memgraph.URI == "" {
			errs = append(errs, errors.New("memgraph.uri is required for the memgraph backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown graph.backend %q", c.Graph.Backend))
	}

	switch c.Ranking.Backend {
	case "http":
		if c.Ranking.Endpoint == "" {
			errs = append(errs, errors.New("ranking.endpoint is required for the http ranking backend"))
		}
	case "llm":
		if c.LLM.Provider == "" {
			errs = append(errs, errors.New("llm.provider is required for the llm ranking backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ranking.backend %q", c.Ranking.Backend))
	}

	if c.Ranking.Top <= 0 {
		errs = append(errs, errors.New("ranking.top must be positive"))
	}
	if c.Pipeline.MaxAttempts < 0 {
		errs = append(errs, errors.New("pipeline.max_attempts must not be negative"))
	}
	if c.Pipeline.Distractors <= 0 {
		errs = append(errs, errors.New("pipeline.distractors must be positive"))
	}
	if c.Pipeline.RestartRate < 0 || c.SPARQL.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("rates must not be negative"))
	}
	for name, path := range map[string]string{
		"resources.blacklist": c.Resources.Blacklist,
		"resources.prefixes":  c.Resources.Prefixes,
		"resources.classes":   c.Resources.Classes,
	} {
		if strings.TrimSpace(path) == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}

	return errors.Join(errs...)
}

func (c SPARQLConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c RankingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
