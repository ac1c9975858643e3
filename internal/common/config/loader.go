package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
)

// ErrMissingGenAIKey is returned when no Gemini credential is configured.
// Both processes treat it as fatal.
var ErrMissingGenAIKey = errors.New("apis.genai.api_key is required (set GEMINI_API_KEY)")

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top
// and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up from the working
// directory, so tests and binaries run from any subdirectory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

func setIfEmpty(dst *string, envKeys ...string) {
	if *dst != "" {
		return
	}
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			*dst = val
			return
		}
	}
}

// overrideEmptyConfig fills credentials and addresses still empty after
// expansion from the conventional environment variables.
func overrideEmptyConfig(cfg *Config) {
	setIfEmpty(&cfg.APIs.GenAI.APIKey, "GEMINI_API_KEY", "GENAI_API_KEY")
	setIfEmpty(&cfg.APIs.GenAI.Model, "GEMINI_MODEL_NAME")
	setIfEmpty(&cfg.APIs.WebSearch.APIKey, "SERPAPI_API_KEY", "WEB_SEARCH_API_KEY")
	setIfEmpty(&cfg.Server.Address, "SERVER_ADDRESS")
	setIfEmpty(&cfg.Camunda.BrokerAddress, "ZEEBE_ADDRESS")
	setIfEmpty(&cfg.App.Environment, "APP_ENVIRONMENT")
	setIfEmpty(&cfg.Observability.JaegerEndpoint, "JAEGER_ENDPOINT")
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "seo-agent"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8000"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 120000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 5 << 20
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 90000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}
	if cfg.Camunda.HealthAddress == "" {
		cfg.Camunda.HealthAddress = ":8080"
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 90000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}

	if cfg.APIs.GenAI.Model == "" {
		cfg.APIs.GenAI.Model = "gemini-2.5-flash"
	}
	if cfg.APIs.GenAI.Timeout == 0 {
		cfg.APIs.GenAI.Timeout = 60000
	}
	if cfg.APIs.GenAI.Temperature == 0 {
		cfg.APIs.GenAI.Temperature = 0.4
	}
	if cfg.APIs.GenAI.MaxOutputTokens == 0 {
		cfg.APIs.GenAI.MaxOutputTokens = 2048
	}

	if cfg.APIs.WebSearch.BaseURL == "" {
		cfg.APIs.WebSearch.BaseURL = "https://serpapi.com/search.json"
	}
	if cfg.APIs.WebSearch.Engine == "" {
		cfg.APIs.WebSearch.Engine = "google"
	}
	if cfg.APIs.WebSearch.NumResults == 0 {
		cfg.APIs.WebSearch.NumResults = 5
	}
	if cfg.APIs.WebSearch.Timeout == 0 {
		cfg.APIs.WebSearch.Timeout = 15000
	}

	if cfg.APIs.PageFetch.Timeout == 0 {
		cfg.APIs.PageFetch.Timeout = 15000
	}
	if cfg.APIs.PageFetch.UserAgent == "" {
		cfg.APIs.PageFetch.UserAgent = "Mozilla/5.0"
	}
	if cfg.APIs.PageFetch.MaxBytes == 0 {
		cfg.APIs.PageFetch.MaxBytes = 2 << 20
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
	if cfg.Observability.SampleRatio == 0 {
		cfg.Observability.SampleRatio = 1
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.APIs.GenAI.APIKey == "" {
		return apperrors.NewGenAIConfigMissingError(ErrMissingGenAIKey)
	}
	if cfg.APIs.GenAI.Temperature < 0 || cfg.APIs.GenAI.Temperature > 2 {
		return fmt.Errorf("apis.genai.temperature must be within [0, 2], got %v", cfg.APIs.GenAI.Temperature)
	}
	if cfg.APIs.GenAI.MaxOutputTokens < 0 {
		return fmt.Errorf("apis.genai.max_output_tokens must be positive")
	}
	if cfg.APIs.WebSearch.NumResults < 0 {
		return fmt.Errorf("apis.web_search.num_results must be positive")
	}
	return nil
}

// ValidateForWorkers checks the settings only the Zeebe worker manager needs.
func ValidateForWorkers(cfg *Config) error {
	if cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}

	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       90000,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled checks if a specific worker is enabled
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
